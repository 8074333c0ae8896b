package mp4

import (
	"bytes"
	"io"
)

// MinfBox is a pure container box: a BoxList over its payload.
type MinfBox struct {
	Children         *BoxList
	usesExtendedSize bool
}

func readMinf(payload []byte, extended bool) (*MinfBox, error) {
	children, err := ReadBoxList(bytes.NewReader(payload), uint64(len(payload)))
	if err != nil {
		return nil, err
	}
	return &MinfBox{Children: children, usesExtendedSize: extended}, nil
}

// FourCC reports this box's type.
func (b *MinfBox) FourCC() FourCC { return NewFourCC("minf") }

// Write serializes the minf box and its children.
func (b *MinfBox) Write(w io.Writer) error {
	payload, err := b.Children.bytes()
	if err != nil {
		return err
	}
	return writeBox(w, b.FourCC(), b.usesExtendedSize, payload)
}
