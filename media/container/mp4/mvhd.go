package mp4

import (
	"encoding/binary"
	"io"

	"github.com/bugVanisher/avcbox/common/errs"
)

// MvhdBox is the movie header box: creation/modification times,
// timescale and duration, version-gated between 32-bit (v0) and 64-bit
// (v1) time fields. Everything past duration (rate, volume, matrix,
// next_track_ID, ...) is preserved opaquely.
type MvhdBox struct {
	Version          uint8
	Flags            [3]byte
	CreationTime     uint64
	ModificationTime uint64
	Timescale        uint32
	Duration         uint64
	Tail             []byte

	usesExtendedSize bool
}

func readMvhd(payload []byte, extended bool) (*MvhdBox, error) {
	if len(payload) < 4 {
		return nil, errs.Wrapf(errs.ErrMalformedHeader, "mp4: mvhd payload %d bytes, need at least 4 for version+flags", len(payload))
	}
	b := &MvhdBox{Version: payload[0], usesExtendedSize: extended}
	copy(b.Flags[:], payload[1:4])

	pos := 4
	switch b.Version {
	case 1:
		if len(payload) < pos+28 {
			return nil, errs.Wrapf(errs.ErrMalformedHeader, "mp4: mvhd v1 payload too short for 64-bit time fields")
		}
		b.CreationTime = binary.BigEndian.Uint64(payload[pos : pos+8])
		b.ModificationTime = binary.BigEndian.Uint64(payload[pos+8 : pos+16])
		b.Timescale = binary.BigEndian.Uint32(payload[pos+16 : pos+20])
		b.Duration = binary.BigEndian.Uint64(payload[pos+20 : pos+28])
		pos += 28
	default:
		if len(payload) < pos+16 {
			return nil, errs.Wrapf(errs.ErrMalformedHeader, "mp4: mvhd v0 payload too short for 32-bit time fields")
		}
		b.CreationTime = uint64(binary.BigEndian.Uint32(payload[pos : pos+4]))
		b.ModificationTime = uint64(binary.BigEndian.Uint32(payload[pos+4 : pos+8]))
		b.Timescale = binary.BigEndian.Uint32(payload[pos+8 : pos+12])
		b.Duration = uint64(binary.BigEndian.Uint32(payload[pos+12 : pos+16]))
		pos += 16
	}
	b.Tail = append([]byte(nil), payload[pos:]...)
	return b, nil
}

// FourCC reports this box's type.
func (b *MvhdBox) FourCC() FourCC { return NewFourCC("mvhd") }

// Write serializes the mvhd box, choosing 32- or 64-bit time field
// widths from Version exactly as it was parsed.
func (b *MvhdBox) Write(w io.Writer) error {
	var fields []byte
	if b.Version == 1 {
		fields = make([]byte, 28)
		binary.BigEndian.PutUint64(fields[0:8], b.CreationTime)
		binary.BigEndian.PutUint64(fields[8:16], b.ModificationTime)
		binary.BigEndian.PutUint32(fields[16:20], b.Timescale)
		binary.BigEndian.PutUint64(fields[20:28], b.Duration)
	} else {
		fields = make([]byte, 16)
		binary.BigEndian.PutUint32(fields[0:4], uint32(b.CreationTime))
		binary.BigEndian.PutUint32(fields[4:8], uint32(b.ModificationTime))
		binary.BigEndian.PutUint32(fields[8:12], b.Timescale)
		binary.BigEndian.PutUint32(fields[12:16], uint32(b.Duration))
	}

	payload := make([]byte, 0, 4+len(fields)+len(b.Tail))
	payload = append(payload, b.Version)
	payload = append(payload, b.Flags[:]...)
	payload = append(payload, fields...)
	payload = append(payload, b.Tail...)
	return writeBox(w, b.FourCC(), b.usesExtendedSize, payload)
}
