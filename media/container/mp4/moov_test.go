package mp4

import (
	"bytes"
	"testing"

	"github.com/bugVanisher/avcbox/media/codec/h264"
	"github.com/stretchr/testify/require"
)

// TestFullHierarchyRoundTrip builds the supported
// moov>trak>mdia>minf>stbl>{stsd>avc1>avcC, stsz} nesting spec.md §3
// describes and checks it round-trips byte-for-byte.
func TestFullHierarchyRoundTrip(t *testing.T) {
	avcc := &AvccBox{Record: &AvcDecoderConfigurationRecord{
		ConfigurationVersion: 1,
		AvcProfileIndication: 66,
		AvcLevelIndication:   30,
		SPSUnits:             []*h264.SPS{minimalSPS(0)},
		PPSUnits:             []*h264.PPS{minimalPPS(0, 0)},
	}}
	avc1 := &Avc1Box{
		DataReferenceIndex: 1,
		Width:              640,
		Height:             480,
		Children:           &BoxList{Boxes: []Box{avcc}},
	}
	stsd := &StsdBox{Children: &BoxList{Boxes: []Box{avc1}}}
	stsz := &StszBox{SampleSize: 0, SampleCount: 2, EntrySizes: []uint32{100, 200}}
	stbl := &StblBox{Children: &BoxList{Boxes: []Box{stsd, stsz}}}
	minf := &MinfBox{Children: &BoxList{Boxes: []Box{stbl}}}
	mdia := &MdiaBox{Children: &BoxList{Boxes: []Box{minf}}}
	trak := &TrakBox{Children: &BoxList{Boxes: []Box{mdia}}}
	mvhd := &MvhdBox{Version: 0, Timescale: 1000, Duration: 5000}
	moov := &MoovBox{Children: &BoxList{Boxes: []Box{mvhd, trak}}}

	var input bytes.Buffer
	require.NoError(t, moov.Write(&input))

	tree, err := ReadTree(bytes.NewReader(input.Bytes()))
	require.NoError(t, err)
	require.Len(t, tree.Boxes, 1)

	var output bytes.Buffer
	require.NoError(t, WriteTree(tree, &output))
	require.Equal(t, input.Bytes(), output.Bytes())

	require.Len(t, AllSPS(tree), 1)
	require.Len(t, AllPPS(tree), 1)
}
