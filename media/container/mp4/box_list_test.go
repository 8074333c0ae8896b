package mp4

import (
	"bytes"
	"testing"

	"github.com/bugVanisher/avcbox/media/bits"
	"github.com/bugVanisher/avcbox/media/codec/h264"
	"github.com/stretchr/testify/require"
)

// idrSliceTail is the RBSP stop-bit-plus-padding that aligns a
// minimalSPS/minimalPPS-resolved IDR slice header (first_mb_in_slice=0,
// slice_type=7, pic_parameter_set_id=0) to a byte boundary: 18 payload
// bits, 6 bits of stop-bit-then-zero-padding to reach 24.
var idrSliceTail = bits.OpaqueData{ResidueBits: 6, ResidueValue: 0x80}

func minimalSPS(id uint64) *h264.SPS {
	return &h264.SPS{
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

func minimalPPS(id, spsID uint64) *h264.PPS {
	return &h264.PPS{PicParameterSetID: id, SeqParameterSetID: spsID}
}

// TestMinimalFileRoundTrip is spec.md §8 scenario S2: a minimal valid
// file (ftyp + mdat carrying one SPS, one PPS, one IDR) round-trips
// byte-for-byte through ReadTree/WriteTree.
func TestMinimalFileRoundTrip(t *testing.T) {
	ftyp := &FtypBox{
		MajorBrand:       NewFourCC("isom"),
		CompatibleBrands: []FourCC{NewFourCC("isom"), NewFourCC("avc1")},
	}

	sps := minimalSPS(0)
	pps := minimalPPS(0, 0)
	idr := &h264.IDR{
		Slice: &h264.SliceHeader{
			IdrPicFlag:        true,
			FirstMbInSlice:    0,
			RawSliceType:      7,
			PicParameterSetID: 0,
		},
		Tail: idrSliceTail,
	}
	nalus := &h264.NaluList{Units: []h264.Nalu{sps, pps, idr}}
	mdat := &MdatBox{Nalus: nalus}

	var input bytes.Buffer
	require.NoError(t, ftyp.Write(&input))
	require.NoError(t, mdat.Write(&input))

	tree, err := ReadTree(bytes.NewReader(input.Bytes()))
	require.NoError(t, err)
	require.Len(t, tree.Boxes, 2)

	var output bytes.Buffer
	require.NoError(t, WriteTree(tree, &output))
	require.Equal(t, input.Bytes(), output.Bytes())
}

// TestMdatSampleOffsets checks that an IDR immediately following SPS/PPS
// (no access-unit delimiter) records a sample offset that includes the
// preceding parameter sets' framed bytes: the SPS (4-byte length + 1-byte
// header + 7-byte RBSP) and the PPS (4+1+3) precede the IDR, so the
// pushed offset is their cumulative length, 20, not 0.
func TestMdatSampleOffsets(t *testing.T) {
	sps := minimalSPS(0)
	pps := minimalPPS(0, 0)
	idr := &h264.IDR{
		Slice: &h264.SliceHeader{IdrPicFlag: true, RawSliceType: 7, PicParameterSetID: 0},
		Tail:  idrSliceTail,
	}
	mdat := &MdatBox{Nalus: &h264.NaluList{Units: []h264.Nalu{sps, pps, idr}}}

	offsets, err := mdat.ComputeSampleOffsets()
	require.NoError(t, err)
	require.Len(t, offsets, 1)
	require.Equal(t, 20, offsets[0])
}

func TestUnknownBoxRoundTrip(t *testing.T) {
	input := []byte{0x00, 0x00, 0x00, 0x0C, 'f', 'r', 'e', 'e', 0xAA, 0xBB, 0xCC, 0xDD}
	tree, err := ReadTree(bytes.NewReader(input))
	require.NoError(t, err)
	require.Len(t, tree.Boxes, 1)
	unk, ok := tree.Boxes[0].(*UnknownBox)
	require.True(t, ok)
	require.Equal(t, "free", unk.FourCC().String())

	var out bytes.Buffer
	require.NoError(t, WriteTree(tree, &out))
	require.Equal(t, input, out.Bytes())
}
