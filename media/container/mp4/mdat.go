package mp4

import (
	"bytes"
	"io"

	"github.com/bugVanisher/avcbox/media/codec/h264"
)

// MdatBox is the media data box: for this implementation, always an
// AVCC-framed NaluList. SampleOffsets, filled in by the last Write call,
// is the explicit hook spec.md §9 leaves for a caller to synchronize a
// sibling stsz — nothing in this package calls it automatically.
type MdatBox struct {
	Nalus            *h264.NaluList
	sampleOffsets    []int
	usesExtendedSize bool
}

func readMdat(payload []byte, extended bool) (*MdatBox, error) {
	nalus, err := h264.ReadNaluList(bytes.NewReader(payload), len(payload))
	if err != nil {
		return nil, err
	}
	return &MdatBox{Nalus: nalus, usesExtendedSize: extended}, nil
}

// FourCC reports this box's type.
func (b *MdatBox) FourCC() FourCC { return NewFourCC("mdat") }

// Write serializes the mdat box's NaluList and records the per-sample
// byte offsets the write produced.
func (b *MdatBox) Write(w io.Writer) error {
	var buf bytes.Buffer
	offsets, err := b.Nalus.Write(&buf)
	if err != nil {
		return err
	}
	b.sampleOffsets = offsets
	return writeBox(w, b.FourCC(), b.usesExtendedSize, buf.Bytes())
}

// SampleOffsets reports the byte offset (relative to the start of this
// mdat's payload) of each coded video sample, as of the last Write call.
// A caller wanting to keep a sibling stsz in sync calls Write, then reads
// this to recompute stsz entries — this package does not do so itself.
func (b *MdatBox) SampleOffsets() []int {
	return b.sampleOffsets
}

// ComputeSampleOffsets serializes the NaluList to a scratch buffer
// purely to populate SampleOffsets, without affecting any later real
// Write call's output (the NaluList content is unchanged either way).
// This is the explicit post-parse step spec.md §9 leaves for a caller
// that wants to resynchronize a sibling stsz before it writes the tree.
func (b *MdatBox) ComputeSampleOffsets() ([]int, error) {
	var buf bytes.Buffer
	offsets, err := b.Nalus.Write(&buf)
	if err != nil {
		return nil, err
	}
	b.sampleOffsets = offsets
	return offsets, nil
}
