package mp4

import (
	"bytes"
	"io"

	"github.com/bugVanisher/avcbox/common/errs"
)

// AvccBox wraps the AVCDecoderConfigurationRecord plus any bytes past it
// within the declared payload (size diff between the parsed record and
// the box's payload length), preserved opaquely so round-trip survives a
// record shorter than its enclosing box.
type AvccBox struct {
	Record           *AvcDecoderConfigurationRecord
	Remaining        []byte
	usesExtendedSize bool
}

func readAvcc(payload []byte, extended bool) (*AvccBox, error) {
	r := bytes.NewReader(payload)
	record, err := ReadAvcDecoderConfigurationRecord(r)
	if err != nil {
		return nil, err
	}
	remaining := make([]byte, r.Len())
	if _, err := io.ReadFull(r, remaining); err != nil {
		return nil, errs.Wrapf(errs.ErrEndOfStream, "mp4: short read on avcC trailing bytes: %v", err)
	}
	return &AvccBox{Record: record, Remaining: remaining, usesExtendedSize: extended}, nil
}

// FourCC reports this box's type.
func (b *AvccBox) FourCC() FourCC { return NewFourCC("avcC") }

// Write serializes the avcC box: the record, recomputed from its current
// SPS/PPS lists, then any opaque trailing bytes.
func (b *AvccBox) Write(w io.Writer) error {
	var buf bytes.Buffer
	if err := b.Record.Write(&buf); err != nil {
		return err
	}
	buf.Write(b.Remaining)
	return writeBox(w, b.FourCC(), b.usesExtendedSize, buf.Bytes())
}
