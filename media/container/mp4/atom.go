package mp4

import (
	"encoding/binary"
	"io"

	"github.com/bugVanisher/avcbox/common/errs"
)

// Box is a typed ISOBMFF atom: every variant knows its FourCC and can
// serialize its complete on-disk form (size header, FourCC, payload).
type Box interface {
	FourCC() FourCC
	Write(w io.Writer) error
}

// boxHeader is the generic size/type prefix every box begins with.
type boxHeader struct {
	FourCC       FourCC
	PayloadSize  uint64
	UsesExtended bool // original size field was 1 (64-bit extended size)
}

// readBoxHeader reads one box's size+type prefix. ok is false (with a nil
// error) when the stream is cleanly exhausted before any header bytes are
// read, the normal way ReadBoxList notices the end of an implicit-length
// (EOF-terminated) list.
func readBoxHeader(r io.Reader) (boxHeader, bool, error) {
	var sizeBuf [4]byte
	n, err := io.ReadFull(r, sizeBuf[:])
	if err != nil {
		if n == 0 && err == io.EOF {
			return boxHeader{}, false, nil
		}
		return boxHeader{}, false, errs.Wrapf(errs.ErrEndOfStream, "mp4: short read on box size: %v", err)
	}
	size := uint64(binary.BigEndian.Uint32(sizeBuf[:]))

	var h boxHeader
	switch {
	case size == 1:
		var extBuf [8]byte
		if _, err := io.ReadFull(r, extBuf[:]); err != nil {
			return boxHeader{}, false, errs.Wrapf(errs.ErrEndOfStream, "mp4: short read on extended box size: %v", err)
		}
		extSize := binary.BigEndian.Uint64(extBuf[:])
		if extSize < 16 {
			return boxHeader{}, false, errs.Wrapf(errs.ErrMalformedHeader, "mp4: extended box size %d smaller than 16-byte header", extSize)
		}
		h.PayloadSize = extSize - 16
		h.UsesExtended = true
	case size < 8:
		return boxHeader{}, false, errs.Wrapf(errs.ErrMalformedHeader, "mp4: box size %d smaller than 8-byte header", size)
	default:
		h.PayloadSize = size - 8
	}

	fourcc, err := readFourCC(r)
	if err != nil {
		return boxHeader{}, false, err
	}
	h.FourCC = fourcc
	return h, true, nil
}

// writeBoxHeader writes the size/type prefix for a box whose payload is
// payloadSize bytes. extended forces the 64-bit size==1 form, used only
// to preserve a box that was originally read that way (spec.md §9: the
// extended form is recognized on read but never newly chosen on write).
func writeBoxHeader(w io.Writer, fourcc FourCC, payloadSize uint64, extended bool) error {
	if extended {
		var buf [16]byte
		binary.BigEndian.PutUint32(buf[0:4], 1)
		copy(buf[4:8], fourcc[:])
		binary.BigEndian.PutUint64(buf[8:16], payloadSize+16)
		_, err := w.Write(buf[:])
		return err
	}
	var buf [8]byte
	binary.BigEndian.PutUint32(buf[0:4], uint32(payloadSize+8))
	copy(buf[4:8], fourcc[:])
	_, err := w.Write(buf[:])
	return err
}

// writeBox writes a complete box: header (sized from payload) followed
// by the payload bytes verbatim.
func writeBox(w io.Writer, fourcc FourCC, extended bool, payload []byte) error {
	if err := writeBoxHeader(w, fourcc, uint64(len(payload)), extended); err != nil {
		return err
	}
	_, err := w.Write(payload)
	return err
}

// readPayload reads exactly n bytes — a box's full payload — into a
// buffer so its fields can be parsed with simple byte-offset logic
// instead of streaming I/O, the same "read then parse" shape
// DescriptorReader uses for NALU payloads.
func readPayload(r io.Reader, n uint64) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, errs.Wrapf(errs.ErrEndOfStream, "mp4: short read on box payload (%d bytes): %v", n, err)
	}
	return buf, nil
}
