package mp4

import (
	"io"

	"github.com/bugVanisher/avcbox/media/codec/h264"
)

// ReadTree parses a full ISOBMFF file (or in-memory buffer) into a
// top-level BoxList, reading boxes until EOF.
func ReadTree(src io.Reader) (*BoxList, error) {
	return ReadBoxList(src, 0)
}

// WriteTree serializes a box tree back to sink, depth-first, left to
// right, the exact inverse of ReadTree when nothing in the tree was
// mutated.
func WriteTree(tree *BoxList, sink io.Writer) error {
	return tree.Write(sink)
}

// walk invokes visit for every box in the tree, recursing into any box
// that exposes nested children.
func walk(list *BoxList, visit func(Box)) {
	if list == nil {
		return
	}
	for _, box := range list.Boxes {
		visit(box)
		switch b := box.(type) {
		case *MoovBox:
			walk(b.Children, visit)
		case *TrakBox:
			walk(b.Children, visit)
		case *MdiaBox:
			walk(b.Children, visit)
		case *MinfBox:
			walk(b.Children, visit)
		case *StblBox:
			walk(b.Children, visit)
		case *StsdBox:
			walk(b.Children, visit)
		case *Avc1Box:
			walk(b.Children, visit)
		}
	}
}

// Mdats returns every mdat box anywhere in the tree, in document order.
func Mdats(tree *BoxList) []*MdatBox {
	var out []*MdatBox
	walk(tree, func(b Box) {
		if m, ok := b.(*MdatBox); ok {
			out = append(out, m)
		}
	})
	return out
}

// AvcCs returns every avcC box anywhere in the tree, in document order.
func AvcCs(tree *BoxList) []*AvccBox {
	var out []*AvccBox
	walk(tree, func(b Box) {
		if a, ok := b.(*AvccBox); ok {
			out = append(out, a)
		}
	})
	return out
}

// AllSPS returns every SPS unit reachable from the tree: those inside any
// avcC's decoder configuration record and those appearing directly as
// NALUs inside any mdat.
func AllSPS(tree *BoxList) []*h264.SPS {
	var out []*h264.SPS
	for _, avcc := range AvcCs(tree) {
		out = append(out, avcc.Record.SPSUnits...)
	}
	for _, mdat := range Mdats(tree) {
		out = append(out, mdat.Nalus.AllSPS()...)
	}
	return out
}

// AllPPS returns every PPS unit reachable from the tree, by the same rule
// AllSPS uses.
func AllPPS(tree *BoxList) []*h264.PPS {
	var out []*h264.PPS
	for _, avcc := range AvcCs(tree) {
		out = append(out, avcc.Record.PPSUnits...)
	}
	for _, mdat := range Mdats(tree) {
		out = append(out, mdat.Nalus.AllPPS()...)
	}
	return out
}
