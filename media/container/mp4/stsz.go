package mp4

import (
	"encoding/binary"
	"io"

	"github.com/bugVanisher/avcbox/common/errs"
)

// StszBox is the sample size box: a full-box version+flags prefix, a
// default sample_size, sample_count, and — only when sample_size is 0 —
// sample_count per-sample u32 entries.
type StszBox struct {
	Version          uint8
	Flags            [3]byte
	SampleSize       uint32
	SampleCount      uint32
	EntrySizes       []uint32
	usesExtendedSize bool
}

func readStsz(payload []byte, extended bool) (*StszBox, error) {
	if len(payload) < 12 {
		return nil, errs.Wrapf(errs.ErrMalformedHeader, "mp4: stsz payload %d bytes, need at least 12 for version+flags+sample_size+sample_count", len(payload))
	}
	b := &StszBox{Version: payload[0], usesExtendedSize: extended}
	copy(b.Flags[:], payload[1:4])
	b.SampleSize = binary.BigEndian.Uint32(payload[4:8])
	b.SampleCount = binary.BigEndian.Uint32(payload[8:12])

	if b.SampleSize == 0 {
		pos := 12
		need := 12 + 4*int(b.SampleCount)
		if len(payload) < need {
			return nil, errs.Wrapf(errs.ErrMalformedHeader, "mp4: stsz declares %d entries but payload is only %d bytes", b.SampleCount, len(payload))
		}
		b.EntrySizes = make([]uint32, b.SampleCount)
		for i := range b.EntrySizes {
			b.EntrySizes[i] = binary.BigEndian.Uint32(payload[pos : pos+4])
			pos += 4
		}
	}
	return b, nil
}

// FourCC reports this box's type.
func (b *StszBox) FourCC() FourCC { return NewFourCC("stsz") }

// Write serializes the stsz box. When SampleSize is 0, SampleCount and
// len(EntrySizes) must agree — callers that mutate one must update the
// other.
func (b *StszBox) Write(w io.Writer) error {
	var entries []uint32
	if b.SampleSize == 0 {
		entries = b.EntrySizes
	}
	payload := make([]byte, 12+4*len(entries))
	payload[0] = b.Version
	copy(payload[1:4], b.Flags[:])
	binary.BigEndian.PutUint32(payload[4:8], b.SampleSize)
	binary.BigEndian.PutUint32(payload[8:12], b.SampleCount)
	pos := 12
	for _, e := range entries {
		binary.BigEndian.PutUint32(payload[pos:pos+4], e)
		pos += 4
	}
	return writeBox(w, b.FourCC(), b.usesExtendedSize, payload)
}
