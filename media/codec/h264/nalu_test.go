package h264

import (
	"bytes"
	"testing"

	"github.com/bugVanisher/avcbox/common/errs"
	"github.com/bugVanisher/avcbox/media/bits"
	"github.com/stretchr/testify/require"
)

// buildMinimalSPS returns a baseline-profile SPS (which skips the
// profile-gated block) with just enough fields set to exercise
// slice-header field widths.
func buildMinimalSPS(id uint64) *SPS {
	return &SPS{
		ProfileIdc:                66,
		LevelIdc:                  30,
		SeqParameterSetID:         id,
		MaxNumRefFrames:           1,
		PicWidthInMbsMinus1:       10,
		PicHeightInMapUnitsMinus1: 7,
		FrameMbsOnlyFlag:          true,
		Direct8x8InferenceFlag:    true,
	}
}

func buildMinimalPPS(id, spsID uint64) *PPS {
	return &PPS{
		PicParameterSetID: id,
		SeqParameterSetID: spsID,
	}
}

// bitsBytes drains a byte-aligned writer's buffered payload through
// WriteWithHeader (which requires alignment), stripping the throwaway
// header byte back off.
func bitsBytes(w *bits.DescriptorWriter) ([]byte, error) {
	var buf bytes.Buffer
	if err := w.WriteWithHeader(&buf, 0x00); err != nil {
		return nil, err
	}
	return buf.Bytes()[1:], nil
}

func TestSPSRoundTrip(t *testing.T) {
	sps := buildMinimalSPS(0)

	w := bits.NewDescriptorWriter()
	require.NoError(t, sps.Write(w, nil))
	buf, err := bitsBytes(w)
	require.NoError(t, err)

	r := bits.NewDescriptorReader(buf)
	got, err := ReadSPS(r)
	require.NoError(t, err)
	require.Equal(t, sps.ProfileIdc, got.ProfileIdc)
	require.Equal(t, sps.PicWidthInMbsMinus1, got.PicWidthInMbsMinus1)

	w2 := bits.NewDescriptorWriter()
	require.NoError(t, got.Write(w2, nil))
	buf2, err := bitsBytes(w2)
	require.NoError(t, err)
	require.Equal(t, buf, buf2)
}

func TestSPSRejectsPicOrderCntType1(t *testing.T) {
	sps := buildMinimalSPS(0)

	w := bits.NewDescriptorWriter()
	w.AppendU(8, sps.ProfileIdc)
	for range sps.ConstraintSetFlags {
		w.AppendU1(false)
	}
	w.AppendU(2, 0)
	w.AppendU(8, sps.LevelIdc)
	w.AppendUE(sps.SeqParameterSetID)
	w.AppendUE(0) // log2_max_frame_num_minus4
	w.AppendUE(1) // pic_order_cnt_type
	w.AppendRbspTrailingBits()

	buf, err := bitsBytes(w)
	require.NoError(t, err)
	r := bits.NewDescriptorReader(buf)
	_, err = ReadSPS(r)
	require.Error(t, err)
	require.EqualValues(t, errs.CodeUnsupportedSyntax, errs.Code(err))
}

func TestPPSRejectsMultipleSliceGroups(t *testing.T) {
	w := bits.NewDescriptorWriter()
	w.AppendUE(0) // pic_parameter_set_id
	w.AppendUE(0) // seq_parameter_set_id
	w.AppendU1(false)
	w.AppendU1(false)
	w.AppendUE(1) // num_slice_groups_minus1 > 0
	w.AppendRbspTrailingBits()

	buf, err := bitsBytes(w)
	require.NoError(t, err)
	r := bits.NewDescriptorReader(buf)
	_, err = ReadPPS(r)
	require.Error(t, err)
	require.EqualValues(t, errs.CodeUnsupportedSyntax, errs.Code(err))
}

// TestProviderResolutionAcrossList builds a NaluList with SPS(id=0) and
// PPS(id=4, sps_id=0), and verifies a slice referencing PPS id 4 resolves
// frame_num / pic_order_cnt_lsb widths from SPS id 0.
func TestProviderResolutionAcrossList(t *testing.T) {
	sps := buildMinimalSPS(0)
	sps.Log2MaxFrameNumMinus4 = 4       // frame_num is 8 bits
	sps.Log2MaxPicOrderCntLsbMinus4 = 2 // pic_order_cnt_lsb is 6 bits
	pps := buildMinimalPPS(4, 0)

	list := &NaluList{Units: []Nalu{sps, pps}}

	slice := &SliceHeader{
		IdrPicFlag:        true,
		FirstMbInSlice:    0,
		RawSliceType:      7,
		PicParameterSetID: 4,
		FrameNum:          0xAB, // fits in 8 bits
		PicOrderCntLsb:    0x2F, // fits in 6 bits
	}

	w := bits.NewDescriptorWriter()
	require.NoError(t, slice.Write(w, list))
	w.AppendRbspTrailingBits()
	buf, err := bitsBytes(w)
	require.NoError(t, err)

	r := bits.NewDescriptorReader(buf)
	got, err := ReadSliceHeader(r, true, list)
	require.NoError(t, err)
	require.Equal(t, slice.FrameNum, got.FrameNum)
	require.Equal(t, slice.PicOrderCntLsb, got.PicOrderCntLsb)
}

func TestSliceHeaderMissingParameterSet(t *testing.T) {
	list := &NaluList{}
	w := bits.NewDescriptorWriter()
	w.AppendUE(0)
	w.AppendUE(7)
	w.AppendUE(9) // pic_parameter_set_id referencing nothing
	w.AppendRbspTrailingBits()
	buf, err := bitsBytes(w)
	require.NoError(t, err)

	r := bits.NewDescriptorReader(buf)
	_, err = ReadSliceHeader(r, true, list)
	require.Error(t, err)
	require.EqualValues(t, errs.CodeMissingParameterSet, errs.Code(err))
}

func TestEmulationPreventionRoundTrip(t *testing.T) {
	rbsp := []byte{0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x02, 0x00, 0x00, 0x03}
	escaped := InsertEmulationPrevention(rbsp)
	require.True(t, bytes.Contains(escaped, []byte{0x00, 0x00, 0x03, 0x00}))
	require.Equal(t, rbsp, RemoveEmulationPrevention(escaped))
}

// TestNaluListSampleOffsets checks that Write reports one sample offset
// per delimiter-preceded run of VCL NALUs. The IDR/NonIDR Tail fields are
// hand-set to the stop-bit padding their (short, hand-built) slice headers
// require to reach byte alignment, mirroring what ReadToEnd would have
// captured from a real bitstream.
func TestNaluListSampleOffsets(t *testing.T) {
	sps := buildMinimalSPS(0)
	pps := buildMinimalPPS(0, 0)
	idr := &IDR{
		Slice: &SliceHeader{PicParameterSetID: 0, RawSliceType: 7, IdrPicFlag: true},
		Tail:  bits.OpaqueData{ResidueBits: 6, ResidueValue: 0x80},
	}
	delim := &Delim{}
	nonIDR := &NonIDR{
		Header: 0x21,
		Slice:  &SliceHeader{PicParameterSetID: 0, RawSliceType: 0},
		Tail:   bits.OpaqueData{ResidueBits: 5, ResidueValue: 0x80},
	}

	list := &NaluList{Units: []Nalu{sps, pps, delim, idr, delim, nonIDR}}

	var out bytes.Buffer
	offsets, err := list.Write(&out)
	require.NoError(t, err)
	require.Len(t, offsets, 2)
}
