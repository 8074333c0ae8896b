package mp4

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/bugVanisher/avcbox/common/errs"
)

const avc1FixedHeaderSize = 78

// Avc1Box is the avc1 VisualSampleEntry: the handful of fields callers
// actually care about (data_reference_index, dimensions,
// compressorname), plus a nested BoxList (holding avcC) over the
// remainder. Every other VisualSampleEntry field is a fixed constant on
// write per spec.md §6 (horiz/vert resolution, frame_count, depth,
// pre_defined) rather than a round-tripped value, matching how this
// implementation's reference Rust source always writes them.
type Avc1Box struct {
	DataReferenceIndex      uint16
	VisualSampleEntryReserved uint16
	Width                   uint16
	Height                  uint16
	Compressorname          [32]byte
	Children                *BoxList
	usesExtendedSize        bool
}

func readAvc1(payload []byte, extended bool) (*Avc1Box, error) {
	if len(payload) < avc1FixedHeaderSize {
		return nil, errs.Wrapf(errs.ErrMalformedHeader, "mp4: avc1 payload %d bytes, need at least %d", len(payload), avc1FixedHeaderSize)
	}
	b := &Avc1Box{usesExtendedSize: extended}
	b.DataReferenceIndex = binary.BigEndian.Uint16(payload[6:8])
	// payload[8:10] pre_defined, ignored on read
	b.VisualSampleEntryReserved = binary.BigEndian.Uint16(payload[10:12])
	// payload[12:24] is 3 reserved u32 pre_defined fields
	b.Width = binary.BigEndian.Uint16(payload[24:26])
	b.Height = binary.BigEndian.Uint16(payload[26:28])
	// payload[28:36] horiz/vert resolution, payload[36:40] reserved,
	// payload[40:42] frame_count are all fixed constants, not stored
	copy(b.Compressorname[:], payload[42:74])
	// payload[74:76] depth, payload[76:78] pre_defined are fixed constants

	children, err := ReadBoxList(bytes.NewReader(payload[avc1FixedHeaderSize:]), uint64(len(payload)-avc1FixedHeaderSize))
	if err != nil {
		return nil, err
	}
	b.Children = children
	return b, nil
}

// FourCC reports this box's type.
func (b *Avc1Box) FourCC() FourCC { return NewFourCC("avc1") }

// Write serializes the avc1 box, rewriting the fixed-constant fields per
// spec.md §6 regardless of what was originally present in those slots.
func (b *Avc1Box) Write(w io.Writer) error {
	childBytes, err := b.Children.bytes()
	if err != nil {
		return err
	}
	payload := make([]byte, avc1FixedHeaderSize, avc1FixedHeaderSize+len(childBytes))
	// payload[0:6] reserved, left zero
	binary.BigEndian.PutUint16(payload[6:8], b.DataReferenceIndex)
	binary.BigEndian.PutUint16(payload[8:10], 0) // pre_defined
	binary.BigEndian.PutUint16(payload[10:12], b.VisualSampleEntryReserved)
	// payload[12:24] reserved, left zero
	binary.BigEndian.PutUint16(payload[24:26], b.Width)
	binary.BigEndian.PutUint16(payload[26:28], b.Height)
	binary.BigEndian.PutUint32(payload[28:32], 0x00480000) // horizresolution
	binary.BigEndian.PutUint32(payload[32:36], 0x00480000) // vertresolution
	binary.BigEndian.PutUint32(payload[36:40], 0)          // reserved
	binary.BigEndian.PutUint16(payload[40:42], 1)           // frame_count
	copy(payload[42:74], b.Compressorname[:])
	binary.BigEndian.PutUint16(payload[74:76], 0x0018) // depth
	binary.BigEndian.PutUint16(payload[76:78], 0xFFFF) // pre_defined = -1

	payload = append(payload, childBytes...)
	return writeBox(w, b.FourCC(), b.usesExtendedSize, payload)
}
