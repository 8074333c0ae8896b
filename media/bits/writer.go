package bits

import (
	"encoding/binary"
	"io"

	"github.com/bugVanisher/avcbox/common/errs"
)

// countBits returns the number of bits needed to hold value (0 for 0,
// 1 for 0b1, 2 for 0b10..0b11, ...), used by AppendUE to size the
// Exp-Golomb zero prefix.
func countBits(value uint64) uint8 {
	var n uint8
	for value > 0 {
		n++
		value >>= 1
	}
	return n
}

// DescriptorWriter buffers an output bitstream: a growing byte slice plus
// a partial trailing byte (residueBits, residueValue). Operations mirror
// DescriptorReader.
type DescriptorWriter struct {
	buffer       []byte
	residueBits  uint8
	residueValue byte
}

// NewDescriptorWriter returns an empty writer.
func NewDescriptorWriter() *DescriptorWriter {
	return &DescriptorWriter{}
}

// AppendU appends the low `bits` bits of value, MSB-first.
func (w *DescriptorWriter) AppendU(bits uint8, value uint64) {
	remaining := bits
	for remaining > 0 {
		writeBits := 8 - w.residueBits
		if writeBits > remaining {
			writeBits = remaining
		}
		writeValue := byte(value>>(remaining-writeBits)) << (8 - w.residueBits - writeBits)
		w.residueValue |= writeValue
		w.residueBits += writeBits
		remaining -= writeBits
		if w.residueBits == 8 {
			w.buffer = append(w.buffer, w.residueValue)
			w.residueValue = 0
			w.residueBits = 0
		}
	}
}

// AppendU1 appends a single bit.
func (w *DescriptorWriter) AppendU1(value bool) {
	var v uint64
	if value {
		v = 1
	}
	w.AppendU(1, v)
}

// AppendU8 appends 8 bits.
func (w *DescriptorWriter) AppendU8(value uint8) { w.AppendU(8, uint64(value)) }

// AppendU16 appends 16 bits.
func (w *DescriptorWriter) AppendU16(value uint16) { w.AppendU(16, uint64(value)) }

// AppendU32 appends 32 bits.
func (w *DescriptorWriter) AppendU32(value uint32) { w.AppendU(32, uint64(value)) }

// AppendUE appends an Exp-Golomb unsigned code for value.
func (w *DescriptorWriter) AppendUE(value uint64) {
	n := countBits(value + 1)
	w.AppendU(n-1, 0)
	w.AppendU(n, value+1)
}

// AppendSE appends an Exp-Golomb signed code for value, the inverse of
// DescriptorReader.ReadSE (0->0, +1->1, -1->2, +2->3, ...).
func (w *DescriptorWriter) AppendSE(value int64) {
	var u uint64
	if value <= 0 {
		u = uint64(-value) * 2
	} else {
		u = uint64(value)*2 - 1
	}
	w.AppendUE(u)
}

// AppendAll appends a previously-captured OpaqueData tail at the current
// (possibly unaligned) bit position.
func (w *DescriptorWriter) AppendAll(data OpaqueData) {
	if data.ResidueBits > 0 {
		w.AppendU(data.ResidueBits, uint64(data.ResidueValue>>(8-data.ResidueBits)))
	}
	for _, b := range data.Bytes {
		w.AppendU8(b)
	}
}

// AppendRbspTrailingBits appends the RBSP stop bit (1) then zero-pads to
// byte alignment.
func (w *DescriptorWriter) AppendRbspTrailingBits() {
	w.AppendU1(true)
	for w.residueBits != 0 {
		w.AppendU1(false)
	}
}

// bytes returns the buffered payload; unflushed residue bits, if any, are
// returned zero-padded in one final partial byte. The writer is unchanged.
func (w *DescriptorWriter) bytes() ([]byte, error) {
	if w.residueBits == 0 {
		return w.buffer, nil
	}
	out := make([]byte, len(w.buffer), len(w.buffer)+1)
	copy(out, w.buffer)
	return append(out, w.residueValue), nil
}

// WriteWithHeader writes header followed by the buffered, byte-aligned
// payload to sink, then resets the writer for reuse.
func (w *DescriptorWriter) WriteWithHeader(sink io.Writer, header byte) error {
	if w.residueBits != 0 {
		return errs.Wrapf(errs.ErrSizeMismatchOnWrite, "bits: writer has %d unflushed residue bits", w.residueBits)
	}
	payload, err := w.bytes()
	if err != nil {
		return err
	}
	if _, err := sink.Write([]byte{header}); err != nil {
		return err
	}
	if _, err := sink.Write(payload); err != nil {
		return err
	}
	w.buffer = nil
	return nil
}

// WriteAvccLengthPrefixed writes a 4-byte big-endian length (covering
// header + payload) followed by header and the buffered payload, then
// resets the writer for reuse.
func (w *DescriptorWriter) WriteAvccLengthPrefixed(sink io.Writer, header byte) error {
	if w.residueBits != 0 {
		return errs.Wrapf(errs.ErrSizeMismatchOnWrite, "bits: writer has %d unflushed residue bits", w.residueBits)
	}
	payload, err := w.bytes()
	if err != nil {
		return err
	}
	length := uint32(len(payload) + 1)
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], length)
	if _, err := sink.Write(lenBuf[:]); err != nil {
		return err
	}
	if _, err := sink.Write([]byte{header}); err != nil {
		return err
	}
	if _, err := sink.Write(payload); err != nil {
		return err
	}
	w.buffer = nil
	return nil
}

// Len reports the number of whole bytes currently buffered (excluding any
// unflushed residue bits).
func (w *DescriptorWriter) Len() int {
	return len(w.buffer)
}
