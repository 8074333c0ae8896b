// Package h264 implements the H.264/AVC NALU model: a tagged family of
// units (SPS, PPS, SEI, IDR, NonIDR, Delim, Unknown) parsed and
// serialized against a DescriptorReader/DescriptorWriter, with slice
// units resolving their SPS/PPS through an SpsPpsProvider.
package h264

import (
	"encoding/binary"
	"io"

	"github.com/bugVanisher/avcbox/common/errs"
	"github.com/bugVanisher/avcbox/media/bits"
)

const (
	nalUnitTypeNonIDR = 1
	nalUnitTypeIDR    = 5
	nalUnitTypeSEI    = 6
	nalUnitTypeSPS    = 7
	nalUnitTypePPS    = 8
	nalUnitTypeDelim  = 9
)

// Nalu is the common capability set every NALU variant implements:
// write its RBSP payload given a writer and a parameter-set context, and
// report the header byte to prepend.
type Nalu interface {
	HeaderByte() byte
	Write(w *bits.DescriptorWriter, ctx SpsPpsProvider) error
}

// NaluList is an ordered, AVCC-framed sequence of NALUs. It is itself an
// SpsPpsProvider: get_sps/get_pps scan the list, first match wins, so a
// slice NALU can resolve parameter sets that appeared earlier in the same
// list while it is still being built.
type NaluList struct {
	Units []Nalu
}

// ReadNaluList reads AVCC-framed NALUs from r until consumed >= totalLen
// bytes (totalLen == 0 means read until EOF).
func ReadNaluList(r io.Reader, totalLen int) (*NaluList, error) {
	list := &NaluList{}
	consumed := 0
	for {
		if totalLen != 0 && consumed >= totalLen {
			break
		}
		var sizeBuf [4]byte
		_, err := io.ReadFull(r, sizeBuf[:])
		if err != nil {
			if totalLen == 0 && err == io.EOF {
				break
			}
			return nil, errs.Wrapf(errs.ErrEndOfStream, "h264: short read on nalu size prefix: %v", err)
		}
		size := binary.BigEndian.Uint32(sizeBuf[:])
		if size < 1 {
			return nil, errs.Wrapf(errs.ErrMalformedHeader, "h264: nalu size %d smaller than header byte", size)
		}
		payloadReader, err := bits.NewDescriptorReaderFromIOReader(r, int(size))
		if err != nil {
			return nil, err
		}
		header, err := payloadReader.ReadU8()
		if err != nil {
			return nil, err
		}
		nalUnitType := header & 0b00011111

		unit, err := list.readUnit(payloadReader, header, nalUnitType)
		if err != nil {
			return nil, err
		}
		list.Units = append(list.Units, unit)
		consumed += 4 + int(size)
	}
	return list, nil
}

func (l *NaluList) readUnit(r *bits.DescriptorReader, header byte, nalUnitType uint8) (Nalu, error) {
	switch nalUnitType {
	case nalUnitTypeNonIDR:
		return ReadNonIDR(r, header, l)
	case nalUnitTypeIDR:
		return ReadIDR(r, l)
	case nalUnitTypeSEI:
		return ReadSEI(r)
	case nalUnitTypeSPS:
		return ReadSPS(r)
	case nalUnitTypePPS:
		return ReadPPS(r)
	case nalUnitTypeDelim:
		return ReadDelim(r)
	default:
		return ReadUnknown(r, header)
	}
}

// Write serializes every unit in order, AVCC length-prefixed, and returns
// the byte offset (relative to the start of this list) at which each
// coded video sample begins: the first VCL NALU (IDR or non-IDR) in the
// list, and the first VCL NALU after each access-unit delimiter. Without
// delimiters, later VCL NALUs do not start new samples.
func (l *NaluList) Write(sink io.Writer) ([]int, error) {
	var offsets []int
	offset := 0
	pendingSampleStart := true
	for _, unit := range l.Units {
		w := bits.NewDescriptorWriter()
		if err := unit.Write(w, l); err != nil {
			return nil, err
		}
		payloadLen := w.Len()

		switch unit.(type) {
		case *Delim:
			pendingSampleStart = true
		case *IDR, *NonIDR:
			if pendingSampleStart {
				offsets = append(offsets, offset)
				pendingSampleStart = false
			}
		}

		if err := w.WriteAvccLengthPrefixed(sink, unit.HeaderByte()); err != nil {
			return nil, err
		}
		offset += 4 + 1 + payloadLen
	}
	return offsets, nil
}

// RemoveEmulationPrevention strips 0x000003 emulation-prevention
// sequences from Annex-B-framed RBSP bytes (0x03 following two zero
// bytes, when the following byte is 0x00..0x03). AVCC framing (the only
// framing this package's read/write path uses) carries RBSP bytes
// directly, so this is not invoked by NaluList; it is provided for
// Annex-B interop and exercised directly by tests.
func RemoveEmulationPrevention(src []byte) []byte {
	out := make([]byte, 0, len(src))
	zeroRun := 0
	for i := 0; i < len(src); i++ {
		b := src[i]
		if zeroRun >= 2 && b == 0x03 && i+1 < len(src) && src[i+1] <= 0x03 {
			zeroRun = 0
			continue
		}
		out = append(out, b)
		if b == 0 {
			zeroRun++
		} else {
			zeroRun = 0
		}
	}
	return out
}

// InsertEmulationPrevention inserts 0x03 emulation-prevention bytes into
// src wherever two zero bytes are immediately followed by a byte <= 0x03,
// the inverse of RemoveEmulationPrevention.
func InsertEmulationPrevention(src []byte) []byte {
	out := make([]byte, 0, len(src)+len(src)/3+1)
	zeroRun := 0
	for i := 0; i < len(src); i++ {
		b := src[i]
		if zeroRun >= 2 && b <= 0x03 {
			out = append(out, 0x03)
			zeroRun = 0
		}
		out = append(out, b)
		if b == 0 {
			zeroRun++
		} else {
			zeroRun = 0
		}
	}
	return out
}

// GetSPS implements SpsPpsProvider: linear scan, first matching id wins.
func (l *NaluList) GetSPS(id uint64) (*SPS, bool) {
	for _, unit := range l.Units {
		if sps, ok := unit.(*SPS); ok && sps.SeqParameterSetID == id {
			return sps, true
		}
	}
	return nil, false
}

// GetPPS implements SpsPpsProvider: linear scan, first matching id wins.
func (l *NaluList) GetPPS(id uint64) (*PPS, bool) {
	for _, unit := range l.Units {
		if pps, ok := unit.(*PPS); ok && pps.PicParameterSetID == id {
			return pps, true
		}
	}
	return nil, false
}

// AllSPS returns every SPS unit in the list, in order.
func (l *NaluList) AllSPS() []*SPS {
	var out []*SPS
	for _, unit := range l.Units {
		if sps, ok := unit.(*SPS); ok {
			out = append(out, sps)
		}
	}
	return out
}

// AllPPS returns every PPS unit in the list, in order.
func (l *NaluList) AllPPS() []*PPS {
	var out []*PPS
	for _, unit := range l.Units {
		if pps, ok := unit.(*PPS); ok {
			out = append(out, pps)
		}
	}
	return out
}
