package bits

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDescriptorWriterAppendUWriteWithHeader(t *testing.T) {
	w := NewDescriptorWriter()
	w.AppendU(3, 0b101)
	w.AppendU(5, 0b11010)

	var out bytes.Buffer
	require.NoError(t, w.WriteWithHeader(&out, 0x67))
	require.Equal(t, []byte{0x67, 0b10111010}, out.Bytes())
}

func TestDescriptorWriterAvccLengthPrefixed(t *testing.T) {
	w := NewDescriptorWriter()
	w.AppendU8(0xAA)
	w.AppendU8(0xBB)

	var out bytes.Buffer
	require.NoError(t, w.WriteAvccLengthPrefixed(&out, 0x67))
	require.Equal(t, []byte{0x00, 0x00, 0x00, 0x03, 0x67, 0xAA, 0xBB}, out.Bytes())
}

func TestDescriptorWriterReaderRoundTripArbitraryWidths(t *testing.T) {
	for n := uint8(0); n <= 64; n++ {
		var v uint64
		if n > 0 {
			v = (uint64(1) << (n - 1)) | 1
			if n < 64 {
				v &= (uint64(1) << n) - 1
			}
		}
		w := NewDescriptorWriter()
		w.AppendU(n, v)
		buf, err := w.bytes()
		require.NoError(t, err)

		wantBytes := (int(n) + 7) / 8
		require.Equal(t, wantBytes, len(buf))

		r := NewDescriptorReader(buf)
		got, err := r.ReadU(n)
		require.NoError(t, err)
		require.Equal(t, v, got)
	}
}

func TestDescriptorWriterAppendAllRoundTrip(t *testing.T) {
	src := NewDescriptorReader([]byte{0xAB, 0xCD, 0xE0})
	_, err := src.ReadU(4)
	require.NoError(t, err)
	opaque, err := src.ReadToEnd()
	require.NoError(t, err)

	w := NewDescriptorWriter()
	w.AppendU(4, 0xA)
	w.AppendAll(opaque)
	buf, err := w.bytes()
	require.NoError(t, err)
	require.Equal(t, []byte{0xAB, 0xCD, 0xE0}, buf)
}
