package mp4

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/bugVanisher/avcbox/common/errs"
)

// StsdBox is the sample description box: a full-box version+flags
// prefix, then an entry_count (read and discarded; rewritten from the
// child BoxList's length on write) and a nested BoxList of sample entry
// boxes (avc1, for this implementation).
type StsdBox struct {
	Version          uint8
	Flags            [3]byte
	Children         *BoxList
	usesExtendedSize bool
}

func readStsd(payload []byte, extended bool) (*StsdBox, error) {
	if len(payload) < 8 {
		return nil, errs.Wrapf(errs.ErrMalformedHeader, "mp4: stsd payload %d bytes, need at least 8 for version+flags+entry_count", len(payload))
	}
	b := &StsdBox{Version: payload[0], usesExtendedSize: extended}
	copy(b.Flags[:], payload[1:4])
	// entry_count at payload[4:8] is not trusted; ReadBoxList determines
	// the real entry count from the remaining bytes.
	children, err := ReadBoxList(bytes.NewReader(payload[8:]), uint64(len(payload)-8))
	if err != nil {
		return nil, err
	}
	b.Children = children
	return b, nil
}

// FourCC reports this box's type.
func (b *StsdBox) FourCC() FourCC { return NewFourCC("stsd") }

// Write serializes the stsd box, recomputing entry_count from the
// current child count.
func (b *StsdBox) Write(w io.Writer) error {
	childBytes, err := b.Children.bytes()
	if err != nil {
		return err
	}
	payload := make([]byte, 8, 8+len(childBytes))
	payload[0] = b.Version
	copy(payload[1:4], b.Flags[:])
	binary.BigEndian.PutUint32(payload[4:8], uint32(len(b.Children.Boxes)))
	payload = append(payload, childBytes...)
	return writeBox(w, b.FourCC(), b.usesExtendedSize, payload)
}
