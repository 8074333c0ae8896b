package mp4

import (
	"bytes"
	"io"
)

// StblBox is a pure container box: a BoxList over its payload.
type StblBox struct {
	Children         *BoxList
	usesExtendedSize bool
}

func readStbl(payload []byte, extended bool) (*StblBox, error) {
	children, err := ReadBoxList(bytes.NewReader(payload), uint64(len(payload)))
	if err != nil {
		return nil, err
	}
	return &StblBox{Children: children, usesExtendedSize: extended}, nil
}

// FourCC reports this box's type.
func (b *StblBox) FourCC() FourCC { return NewFourCC("stbl") }

// Write serializes the stbl box and its children.
func (b *StblBox) Write(w io.Writer) error {
	payload, err := b.Children.bytes()
	if err != nil {
		return err
	}
	return writeBox(w, b.FourCC(), b.usesExtendedSize, payload)
}
