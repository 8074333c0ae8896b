package mp4

import "io"

// UnknownBox preserves any box type outside the fully-modeled set
// (spec.md §4.5) as a raw payload, reproduced verbatim on write.
type UnknownBox struct {
	Boxtype          FourCC
	Payload          []byte
	usesExtendedSize bool
}

func readUnknown(boxtype FourCC, payload []byte, extended bool) (*UnknownBox, error) {
	return &UnknownBox{Boxtype: boxtype, Payload: payload, usesExtendedSize: extended}, nil
}

// FourCC reports this box's original type.
func (b *UnknownBox) FourCC() FourCC { return b.Boxtype }

// Write serializes the box verbatim.
func (b *UnknownBox) Write(w io.Writer) error {
	return writeBox(w, b.FourCC(), b.usesExtendedSize, b.Payload)
}
