package h264

import "github.com/bugVanisher/avcbox/media/bits"

// Unknown is any NALU type this implementation does not model
// structurally; the original nal_unit_type (and nal_ref_idc, via the full
// header byte) is preserved verbatim for write-back.
type Unknown struct {
	Header  byte
	Payload bits.OpaqueData
}

// ReadUnknown parses an unrecognized NALU type's payload as opaque data.
func ReadUnknown(r *bits.DescriptorReader, header byte) (*Unknown, error) {
	payload, err := r.ReadToEnd()
	if err != nil {
		return nil, err
	}
	return &Unknown{Header: header, Payload: payload}, nil
}

// HeaderByte returns the original NALU header byte.
func (u *Unknown) HeaderByte() byte { return u.Header }

// Write serializes the opaque NALU payload. ctx is unused but present for
// Nalu interface conformity.
func (u *Unknown) Write(w *bits.DescriptorWriter, ctx SpsPpsProvider) error {
	w.AppendAll(u.Payload)
	return nil
}
