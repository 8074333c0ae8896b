package mp4

import (
	"bytes"
	"io"
)

// TrakBox is a pure container box: a BoxList over its payload.
type TrakBox struct {
	Children         *BoxList
	usesExtendedSize bool
}

func readTrak(payload []byte, extended bool) (*TrakBox, error) {
	children, err := ReadBoxList(bytes.NewReader(payload), uint64(len(payload)))
	if err != nil {
		return nil, err
	}
	return &TrakBox{Children: children, usesExtendedSize: extended}, nil
}

// FourCC reports this box's type.
func (b *TrakBox) FourCC() FourCC { return NewFourCC("trak") }

// Write serializes the trak box and its children.
func (b *TrakBox) Write(w io.Writer) error {
	payload, err := b.Children.bytes()
	if err != nil {
		return err
	}
	return writeBox(w, b.FourCC(), b.usesExtendedSize, payload)
}
