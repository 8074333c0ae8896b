// Package mp4 implements the ISOBMFF box tree: a recursive container of
// length-tagged, FourCC-typed atoms. A fully-modeled subset (ftyp, moov,
// mvhd, trak, mdia, minf, stbl, stsd, avc1, avcC, stsz, mdat) exposes its
// fields for inspection and round-trip-safe mutation; every other box
// type is preserved opaquely.
package mp4

import (
	"io"

	"github.com/bugVanisher/avcbox/common/errs"
)

// FourCC is a 4-byte box type identifier, e.g. "ftyp", "mdat", "avcC".
type FourCC [4]byte

// String decodes the identifier as ASCII.
func (f FourCC) String() string {
	return string(f[:])
}

// NewFourCC builds a FourCC from a 4-character string, for dispatch
// tables and tests. Panics if s is not exactly 4 bytes — this is only
// ever called with string literals.
func NewFourCC(s string) FourCC {
	if len(s) != 4 {
		panic("mp4: fourcc literal must be 4 bytes: " + s)
	}
	var f FourCC
	copy(f[:], s)
	return f
}

// readFourCC reads the 4-byte type tag that follows a box's size field.
// Per spec.md §7, a non-ASCII fourcc is a MalformedHeader, not silently
// accepted as an opaque type.
func readFourCC(r io.Reader) (FourCC, error) {
	var f FourCC
	if _, err := io.ReadFull(r, f[:]); err != nil {
		return f, errs.Wrapf(errs.ErrEndOfStream, "mp4: short read on fourcc: %v", err)
	}
	for _, b := range f {
		if b > 0x7F {
			return f, errs.Wrapf(errs.ErrMalformedHeader, "mp4: fourcc %x is not ASCII", f[:])
		}
	}
	return f, nil
}
