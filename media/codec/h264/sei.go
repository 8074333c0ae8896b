package h264

import "github.com/bugVanisher/avcbox/media/bits"

// HeaderByteSEI is the NALU header for a Supplemental Enhancement
// Information message (forbidden_zero_bit=0, nal_ref_idc=0,
// nal_unit_type=6).
const HeaderByteSEI = 0x06

// SEI keeps its payload opaque; this implementation does not decode any
// SEI message type.
type SEI struct {
	Payload bits.OpaqueData
}

// ReadSEI parses an SEI NALU payload as opaque data.
func ReadSEI(r *bits.DescriptorReader) (*SEI, error) {
	payload, err := r.ReadToEnd()
	if err != nil {
		return nil, err
	}
	return &SEI{Payload: payload}, nil
}

// HeaderByte returns the NALU header byte for this SEI message.
func (u *SEI) HeaderByte() byte { return HeaderByteSEI }

// Write serializes the SEI NALU payload. ctx is unused but present for
// Nalu interface conformity.
func (u *SEI) Write(w *bits.DescriptorWriter, ctx SpsPpsProvider) error {
	w.AppendAll(u.Payload)
	return nil
}
