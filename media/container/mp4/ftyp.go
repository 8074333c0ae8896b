package mp4

import (
	"encoding/binary"
	"io"

	"github.com/bugVanisher/avcbox/common/errs"
)

// FtypBox is the file-type compatibility box: a major brand, a minor
// version, and zero or more compatible brands.
type FtypBox struct {
	MajorBrand        FourCC
	MinorVersion      uint32
	CompatibleBrands  []FourCC
	usesExtendedSize  bool
}

func readFtyp(payload []byte, extended bool) (*FtypBox, error) {
	if len(payload) < 8 {
		return nil, errs.Wrapf(errs.ErrMalformedHeader, "mp4: ftyp payload %d bytes, need at least 8 for major_brand+minor_version", len(payload))
	}
	var major FourCC
	copy(major[:], payload[0:4])
	minor := binary.BigEndian.Uint32(payload[4:8])

	rest := payload[8:]
	if len(rest)%4 != 0 {
		return nil, errs.Wrapf(errs.ErrMalformedHeader, "mp4: ftyp compatible_brands region %d bytes is not a multiple of 4", len(rest))
	}
	brands := make([]FourCC, len(rest)/4)
	for i := range brands {
		copy(brands[i][:], rest[i*4:i*4+4])
	}
	return &FtypBox{
		MajorBrand:       major,
		MinorVersion:     minor,
		CompatibleBrands: brands,
		usesExtendedSize: extended,
	}, nil
}

// FourCC reports this box's type.
func (b *FtypBox) FourCC() FourCC { return NewFourCC("ftyp") }

// Write serializes the ftyp box.
func (b *FtypBox) Write(w io.Writer) error {
	payload := make([]byte, 8+4*len(b.CompatibleBrands))
	copy(payload[0:4], b.MajorBrand[:])
	binary.BigEndian.PutUint32(payload[4:8], b.MinorVersion)
	for i, brand := range b.CompatibleBrands {
		copy(payload[8+4*i:12+4*i], brand[:])
	}
	return writeBox(w, b.FourCC(), b.usesExtendedSize, payload)
}
