package mp4

import (
	"bytes"
	"testing"

	"github.com/bugVanisher/avcbox/common/errs"
	"github.com/stretchr/testify/require"
)

// TestFtypEmptyPayloadIsMalformed is spec.md §8 scenario S1: an 8-byte
// ftyp box (size and type fields only, zero payload bytes) cannot hold
// major_brand+minor_version and must be flagged as MalformedHeader.
func TestFtypEmptyPayloadIsMalformed(t *testing.T) {
	input := []byte{0x00, 0x00, 0x00, 0x08, 'f', 't', 'y', 'p'}
	_, err := ReadTree(bytes.NewReader(input))
	require.Error(t, err)
	require.EqualValues(t, errs.CodeMalformedHeader, errs.Code(err))
}

func TestFtypRoundTrip(t *testing.T) {
	b := &FtypBox{
		MajorBrand:       NewFourCC("isom"),
		MinorVersion:     0,
		CompatibleBrands: []FourCC{NewFourCC("isom"), NewFourCC("avc1")},
	}
	var buf bytes.Buffer
	require.NoError(t, b.Write(&buf))

	tree, err := ReadTree(&buf)
	require.NoError(t, err)
	require.Len(t, tree.Boxes, 1)
	got, ok := tree.Boxes[0].(*FtypBox)
	require.True(t, ok)
	require.Equal(t, b.MajorBrand, got.MajorBrand)
	require.Equal(t, b.CompatibleBrands, got.CompatibleBrands)

	var buf2 bytes.Buffer
	require.NoError(t, got.Write(&buf2))
	require.Equal(t, buf.Bytes(), buf2.Bytes())
}
