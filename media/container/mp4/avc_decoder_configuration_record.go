package mp4

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/bugVanisher/avcbox/common/errs"
	"github.com/bugVanisher/avcbox/media/bits"
	"github.com/bugVanisher/avcbox/media/codec/h264"
)

// extendedAvcProfiles are avc_profile_indication values that select the
// high-profile extension layout (chroma_format/bit-depth/SPS extension
// fields); this implementation does not model that layout.
var extendedAvcProfiles = map[uint8]bool{100: true, 110: true, 122: true, 144: true}

// AvcDecoderConfigurationRecord is the avcC payload: codec identification
// fields plus ordered SPS/PPS NAL unit lists, each parsed with the same
// h264 NALU model used for mdat. It implements h264.SpsPpsProvider over
// its own lists, so a slice header resolved through this record (rather
// than through a NaluList) sees the same SPS/PPS.
type AvcDecoderConfigurationRecord struct {
	ConfigurationVersion uint8
	AvcProfileIndication uint8
	ProfileCompatibility uint8
	AvcLevelIndication   uint8
	LengthSizeMinusOne   uint8
	SPSUnits             []*h264.SPS
	PPSUnits             []*h264.PPS
}

// ReadAvcDecoderConfigurationRecord parses the avcC body per spec.md
// §4.4's byte-exact layout.
func ReadAvcDecoderConfigurationRecord(r io.Reader) (*AvcDecoderConfigurationRecord, error) {
	rec := &AvcDecoderConfigurationRecord{}
	var hdr [6]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, errs.Wrapf(errs.ErrEndOfStream, "mp4: short read on avcC fixed header: %v", err)
	}
	rec.ConfigurationVersion = hdr[0]
	rec.AvcProfileIndication = hdr[1]
	rec.ProfileCompatibility = hdr[2]
	rec.AvcLevelIndication = hdr[3]
	rec.LengthSizeMinusOne = hdr[4] & 0b00000011
	numSPS := hdr[5] & 0b00011111

	for i := uint8(0); i < numSPS; i++ {
		sps, err := rec.readParameterSet(r, h264.HeaderByteSPS)
		if err != nil {
			return nil, err
		}
		parsed, err := h264.ReadSPS(bits.NewDescriptorReader(sps))
		if err != nil {
			return nil, err
		}
		rec.SPSUnits = append(rec.SPSUnits, parsed)
	}

	var numPPSBuf [1]byte
	if _, err := io.ReadFull(r, numPPSBuf[:]); err != nil {
		return nil, errs.Wrapf(errs.ErrEndOfStream, "mp4: short read on avcC num_of_picture_parameter_sets: %v", err)
	}
	numPPS := numPPSBuf[0]
	for i := uint8(0); i < numPPS; i++ {
		pps, err := rec.readParameterSet(r, h264.HeaderBytePPS)
		if err != nil {
			return nil, err
		}
		parsed, err := h264.ReadPPS(bits.NewDescriptorReader(pps))
		if err != nil {
			return nil, err
		}
		rec.PPSUnits = append(rec.PPSUnits, parsed)
	}

	if extendedAvcProfiles[rec.AvcProfileIndication] {
		return nil, errs.Wrapf(errs.ErrUnsupportedSyntax, "mp4: avcC avc_profile_indication %d selects the high-profile extension layout, not modeled", rec.AvcProfileIndication)
	}

	return rec, nil
}

// readParameterSet reads a u16 length (including the 1-byte NALU
// header), the header byte itself, and returns the RBSP bytes that
// follow (length-1 bytes).
func (rec *AvcDecoderConfigurationRecord) readParameterSet(r io.Reader, wantHeader byte) ([]byte, error) {
	var lenBuf [2]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return nil, errs.Wrapf(errs.ErrEndOfStream, "mp4: short read on avcC parameter set length: %v", err)
	}
	length := binary.BigEndian.Uint16(lenBuf[:])
	if length < 1 {
		return nil, errs.Wrapf(errs.ErrMalformedHeader, "mp4: avcC parameter set length %d smaller than header byte", length)
	}
	var headerBuf [1]byte
	if _, err := io.ReadFull(r, headerBuf[:]); err != nil {
		return nil, errs.Wrapf(errs.ErrEndOfStream, "mp4: short read on avcC parameter set header: %v", err)
	}
	_ = wantHeader // the original header byte is not re-validated; SPS/PPS.HeaderByte() regenerates it on write
	rbsp := make([]byte, length-1)
	if _, err := io.ReadFull(r, rbsp); err != nil {
		return nil, errs.Wrapf(errs.ErrEndOfStream, "mp4: short read on avcC parameter set payload: %v", err)
	}
	return rbsp, nil
}

// naluBytes serializes a NALU (header byte + RBSP) via the shared
// DescriptorWriter, for both size computation and write.
func naluBytes(unit h264.Nalu) ([]byte, error) {
	w := bits.NewDescriptorWriter()
	if err := unit.Write(w, nil); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := w.WriteWithHeader(&buf, unit.HeaderByte()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Size reports the record's total serialized length, recomputed from its
// current SPS/PPS lists rather than any stored value (spec.md §9).
func (rec *AvcDecoderConfigurationRecord) Size() (uint64, error) {
	total := uint64(7)
	for _, sps := range rec.SPSUnits {
		b, err := naluBytes(sps)
		if err != nil {
			return 0, err
		}
		total += 2 + uint64(len(b))
	}
	for _, pps := range rec.PPSUnits {
		b, err := naluBytes(pps)
		if err != nil {
			return 0, err
		}
		total += 2 + uint64(len(b))
	}
	return total, nil
}

// Write serializes the record: the fixed identification fields as stored,
// and the SPS and PPS counts recomputed from the current lists. The
// reserved high bits of the length-size and SPS-count bytes are always
// written as 1s per spec.md §6.
func (rec *AvcDecoderConfigurationRecord) Write(w io.Writer) error {
	if len(rec.SPSUnits) > 31 {
		return errs.Wrapf(errs.ErrSizeMismatchOnWrite, "mp4: avcC sps count %d exceeds the 5-bit count field", len(rec.SPSUnits))
	}
	var hdr [6]byte
	hdr[0] = rec.ConfigurationVersion
	hdr[1] = rec.AvcProfileIndication
	hdr[2] = rec.ProfileCompatibility
	hdr[3] = rec.AvcLevelIndication
	hdr[4] = 0b11111100 | (rec.LengthSizeMinusOne & 0b11)
	hdr[5] = 0b11100000 | uint8(len(rec.SPSUnits))
	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}

	for _, sps := range rec.SPSUnits {
		if err := writeParameterSet(w, sps); err != nil {
			return err
		}
	}

	if _, err := w.Write([]byte{uint8(len(rec.PPSUnits))}); err != nil {
		return err
	}
	for _, pps := range rec.PPSUnits {
		if err := writeParameterSet(w, pps); err != nil {
			return err
		}
	}
	return nil
}

func writeParameterSet(w io.Writer, unit h264.Nalu) error {
	b, err := naluBytes(unit)
	if err != nil {
		return err
	}
	var lenBuf [2]byte
	binary.BigEndian.PutUint16(lenBuf[:], uint16(len(b)))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// GetSPS implements h264.SpsPpsProvider: linear scan, first match wins.
func (rec *AvcDecoderConfigurationRecord) GetSPS(id uint64) (*h264.SPS, bool) {
	for _, sps := range rec.SPSUnits {
		if sps.SeqParameterSetID == id {
			return sps, true
		}
	}
	return nil, false
}

// GetPPS implements h264.SpsPpsProvider: linear scan, first match wins.
func (rec *AvcDecoderConfigurationRecord) GetPPS(id uint64) (*h264.PPS, bool) {
	for _, pps := range rec.PPSUnits {
		if pps.PicParameterSetID == id {
			return pps, true
		}
	}
	return nil, false
}
