package mp4

import (
	"bytes"
	"io"
)

// MdiaBox is a pure container box: a BoxList over its payload.
type MdiaBox struct {
	Children         *BoxList
	usesExtendedSize bool
}

func readMdia(payload []byte, extended bool) (*MdiaBox, error) {
	children, err := ReadBoxList(bytes.NewReader(payload), uint64(len(payload)))
	if err != nil {
		return nil, err
	}
	return &MdiaBox{Children: children, usesExtendedSize: extended}, nil
}

// FourCC reports this box's type.
func (b *MdiaBox) FourCC() FourCC { return NewFourCC("mdia") }

// Write serializes the mdia box and its children.
func (b *MdiaBox) Write(w io.Writer) error {
	payload, err := b.Children.bytes()
	if err != nil {
		return err
	}
	return writeBox(w, b.FourCC(), b.usesExtendedSize, payload)
}
