package mp4

import (
	"bytes"
	"io"
)

// MoovBox is the movie container box: a pure BoxList over its payload.
type MoovBox struct {
	Children         *BoxList
	usesExtendedSize bool
}

func readMoov(payload []byte, extended bool) (*MoovBox, error) {
	children, err := ReadBoxList(bytes.NewReader(payload), uint64(len(payload)))
	if err != nil {
		return nil, err
	}
	return &MoovBox{Children: children, usesExtendedSize: extended}, nil
}

// FourCC reports this box's type.
func (b *MoovBox) FourCC() FourCC { return NewFourCC("moov") }

// Write serializes the moov box and its children.
func (b *MoovBox) Write(w io.Writer) error {
	payload, err := b.Children.bytes()
	if err != nil {
		return err
	}
	return writeBox(w, b.FourCC(), b.usesExtendedSize, payload)
}
