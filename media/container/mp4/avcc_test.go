package mp4

import (
	"bytes"
	"testing"

	"github.com/bugVanisher/avcbox/media/codec/h264"
	"github.com/stretchr/testify/require"
)

// TestAvcDecoderConfigurationRecordRoundTrip is spec.md §8 scenario S5:
// an avcC payload with 1 SPS and 1 PPS resolves GetSPS/GetPPS by id and
// round-trips through Write exactly.
func TestAvcDecoderConfigurationRecordRoundTrip(t *testing.T) {
	rec := &AvcDecoderConfigurationRecord{
		ConfigurationVersion: 1,
		AvcProfileIndication: 66,
		ProfileCompatibility: 0xE0,
		AvcLevelIndication:   30,
		LengthSizeMinusOne:   3,
		SPSUnits:             []*h264.SPS{minimalSPS(7)},
		PPSUnits:             []*h264.PPS{minimalPPS(4, 7)},
	}

	var buf bytes.Buffer
	require.NoError(t, rec.Write(&buf))

	got, err := ReadAvcDecoderConfigurationRecord(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	sps, ok := got.GetSPS(7)
	require.True(t, ok)
	require.Equal(t, uint64(66), sps.ProfileIdc)

	pps, ok := got.GetPPS(4)
	require.True(t, ok)
	require.Equal(t, uint64(7), pps.SeqParameterSetID)

	var buf2 bytes.Buffer
	require.NoError(t, got.Write(&buf2))
	require.Equal(t, buf.Bytes(), buf2.Bytes())
}

func TestAvcDecoderConfigurationRecordRejectsExtendedProfile(t *testing.T) {
	rec := &AvcDecoderConfigurationRecord{
		ConfigurationVersion: 1,
		AvcProfileIndication: 100,
		SPSUnits:             []*h264.SPS{minimalSPS(0)},
	}
	var buf bytes.Buffer
	require.NoError(t, rec.Write(&buf))

	_, err := ReadAvcDecoderConfigurationRecord(bytes.NewReader(buf.Bytes()))
	require.Error(t, err)
}

func TestAvccBoxWithinBoxList(t *testing.T) {
	rec := &AvcDecoderConfigurationRecord{
		ConfigurationVersion: 1,
		AvcProfileIndication: 66,
		AvcLevelIndication:   30,
		SPSUnits:             []*h264.SPS{minimalSPS(0)},
		PPSUnits:             []*h264.PPS{minimalPPS(0, 0)},
	}
	avcc := &AvccBox{Record: rec}

	var buf bytes.Buffer
	require.NoError(t, avcc.Write(&buf))

	tree, err := ReadTree(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Len(t, tree.Boxes, 1)
	got, ok := tree.Boxes[0].(*AvccBox)
	require.True(t, ok)
	require.Len(t, got.Record.SPSUnits, 1)
	require.Len(t, got.Record.PPSUnits, 1)
}
