package mp4

import (
	"bytes"
	"testing"

	"github.com/bugVanisher/avcbox/common/errs"
	"github.com/stretchr/testify/require"
)

func TestFourCCRoundTrip(t *testing.T) {
	want := NewFourCC("isom")
	got, err := readFourCC(bytes.NewReader(want[:]))
	require.NoError(t, err)
	require.Equal(t, want, got)
	require.Equal(t, "isom", got.String())
}

func TestFourCCShortRead(t *testing.T) {
	_, err := readFourCC(bytes.NewReader([]byte{0x66, 0x74}))
	require.Error(t, err)
}

func TestFourCCNonASCIIIsMalformed(t *testing.T) {
	_, err := readFourCC(bytes.NewReader([]byte{0x66, 0x74, 0x79, 0xFF}))
	require.Error(t, err)
	require.EqualValues(t, errs.CodeMalformedHeader, errs.Code(err))
}
