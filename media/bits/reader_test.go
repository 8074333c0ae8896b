package bits

import (
	"errors"
	"testing"

	"github.com/bugVanisher/avcbox/common/errs"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

func TestDescriptorReaderReadU(t *testing.T) {
	r := NewDescriptorReader([]byte{0b10111010})
	v, err := r.ReadU(3)
	require.NoError(t, err)
	require.Equal(t, uint64(0b101), v)

	v, err = r.ReadU(5)
	require.NoError(t, err)
	require.Equal(t, uint64(0b11010), v)
}

func TestDescriptorReaderReadUAcrossBytes(t *testing.T) {
	r := NewDescriptorReader([]byte{0xFF, 0x00})
	v, err := r.ReadU(12)
	require.NoError(t, err)
	require.Equal(t, uint64(0xFF0)>>0, v)
}

func TestDescriptorReaderEndOfStream(t *testing.T) {
	r := NewDescriptorReader([]byte{0xFF})
	_, err := r.ReadU(16)
	require.Error(t, err)
	require.EqualValues(t, errs.CodeEndOfStream, errs.Code(err))
}

func TestDescriptorReaderMalformedHeaderOnOversizeWidth(t *testing.T) {
	r := NewDescriptorReader([]byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00})
	_, err := r.ReadU(65)
	require.Error(t, err)
	require.EqualValues(t, errs.CodeMalformedHeader, errs.Code(err))
}

func TestDescriptorReaderReadUE(t *testing.T) {
	// "1" -> 0, "010" -> 1, "011" -> 2, "00100" -> 3
	w := NewDescriptorWriter()
	w.AppendUE(0)
	w.AppendUE(1)
	w.AppendUE(2)
	w.AppendUE(3)
	w.AppendRbspTrailingBits()
	buf, err := w.bytes()
	require.NoError(t, err)

	r := NewDescriptorReader(buf)
	v, err := r.ReadUE()
	require.NoError(t, err)
	require.EqualValues(t, 0, v)

	v, err = r.ReadUE()
	require.NoError(t, err)
	require.EqualValues(t, 1, v)

	v, err = r.ReadUE()
	require.NoError(t, err)
	require.EqualValues(t, 2, v)

	v, err = r.ReadUE()
	require.NoError(t, err)
	require.EqualValues(t, 3, v)
}

func TestDescriptorReaderReadSE(t *testing.T) {
	w := NewDescriptorWriter()
	for _, want := range []int64{0, 1, -1, 2, -2, 3, -3} {
		w.AppendSE(want)
	}
	w.AppendRbspTrailingBits()
	buf, err := w.bytes()
	require.NoError(t, err)

	r := NewDescriptorReader(buf)
	for _, want := range []int64{0, 1, -1, 2, -2, 3, -3} {
		got, err := r.ReadSE()
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func TestDescriptorReaderMoreRbspDataAndTrailing(t *testing.T) {
	w := NewDescriptorWriter()
	w.AppendU(3, 0b101)
	w.AppendRbspTrailingBits()
	buf, err := w.bytes()
	require.NoError(t, err)

	r := NewDescriptorReader(buf)
	_, err = r.ReadU(3)
	require.NoError(t, err)
	require.False(t, r.MoreRbspData())
	require.NoError(t, r.ReadRbspTrailingBits())
}

func TestDescriptorReaderRbspTrailingViolation(t *testing.T) {
	r := NewDescriptorReader([]byte{0x00})
	err := r.ReadRbspTrailingBits()
	require.Error(t, err)
	require.EqualValues(t, errs.CodeRbspTrailingViolation, errs.Code(err))
}

func TestDescriptorReaderReadToEnd(t *testing.T) {
	r := NewDescriptorReader([]byte{0xAB, 0xCD, 0xE0})
	_, err := r.ReadU(4)
	require.NoError(t, err)

	opaque, err := r.ReadToEnd()
	require.NoError(t, err)
	require.Equal(t, 0, r.bitsLeft())
	require.Equal(t, []byte{0xCD, 0xE0}, opaque.Bytes)
	require.EqualValues(t, 4, opaque.ResidueBits)
	require.EqualValues(t, 0xB0, opaque.ResidueValue)
}

func TestDescriptorReaderFromIOReaderSurfacesEndOfStream(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockR := NewMockReader(ctrl)
	mockR.EXPECT().Read(gomock.Any()).Return(0, errors.New("connection reset"))

	_, err := NewDescriptorReaderFromIOReader(mockR, 8)
	require.Error(t, err)
	require.EqualValues(t, errs.CodeEndOfStream, errs.Code(err))
}
