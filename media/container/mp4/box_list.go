package mp4

import (
	"bytes"
	"io"
)

// BoxList is a length-bounded sequence of boxes, read recursively: the
// payload of moov/trak/mdia/minf/stbl is itself a BoxList over a nested
// byte range.
type BoxList struct {
	Boxes []Box
}

// ReadBoxList reads boxes from r until it has consumed len bytes (len==0
// means "read until EOF"), dispatching each box's FourCC to the matching
// variant's reader; anything not in the fully-modeled set becomes an
// UnknownBox holding its raw payload.
func ReadBoxList(r io.Reader, length uint64) (*BoxList, error) {
	list := &BoxList{}
	var consumed uint64
	for {
		if length != 0 && consumed >= length {
			break
		}
		header, ok, err := readBoxHeader(r)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		payload, err := readPayload(r, header.PayloadSize)
		if err != nil {
			return nil, err
		}
		box, err := dispatchBox(header, payload)
		if err != nil {
			return nil, err
		}
		list.Boxes = append(list.Boxes, box)
		consumed += headerSize(header) + header.PayloadSize
	}
	return list, nil
}

func headerSize(h boxHeader) uint64 {
	if h.UsesExtended {
		return 16
	}
	return 8
}

// dispatchBox parses a box's already-buffered payload according to its
// FourCC, per spec.md §4.5's dispatch table.
func dispatchBox(h boxHeader, payload []byte) (Box, error) {
	switch h.FourCC.String() {
	case "ftyp":
		return readFtyp(payload, h.UsesExtended)
	case "mvhd":
		return readMvhd(payload, h.UsesExtended)
	case "moov":
		return readMoov(payload, h.UsesExtended)
	case "trak":
		return readTrak(payload, h.UsesExtended)
	case "mdia":
		return readMdia(payload, h.UsesExtended)
	case "minf":
		return readMinf(payload, h.UsesExtended)
	case "stbl":
		return readStbl(payload, h.UsesExtended)
	case "stsd":
		return readStsd(payload, h.UsesExtended)
	case "avc1":
		return readAvc1(payload, h.UsesExtended)
	case "avcC":
		return readAvcc(payload, h.UsesExtended)
	case "stsz":
		return readStsz(payload, h.UsesExtended)
	case "mdat":
		return readMdat(payload, h.UsesExtended)
	default:
		return readUnknown(h.FourCC, payload, h.UsesExtended)
	}
}

// Write serializes every child box in order.
func (l *BoxList) Write(w io.Writer) error {
	for _, box := range l.Boxes {
		if err := box.Write(w); err != nil {
			return err
		}
	}
	return nil
}

// bytes serializes every child box into a single buffer, so a container
// box can measure its own payload size (per spec.md §9: recompute from
// children, never trust a stored size) before writing its own header.
func (l *BoxList) bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := l.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
