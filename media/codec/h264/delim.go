package h264

import "github.com/bugVanisher/avcbox/media/bits"

// HeaderByteDelim is the NALU header for an access unit delimiter
// (forbidden_zero_bit=0, nal_ref_idc=0, nal_unit_type=9).
const HeaderByteDelim = 0x09

// Delim is an access unit delimiter NALU (type 9); its whole payload is
// opaque.
type Delim struct {
	Payload bits.OpaqueData
}

// ReadDelim parses an access unit delimiter NALU payload as opaque data.
func ReadDelim(r *bits.DescriptorReader) (*Delim, error) {
	payload, err := r.ReadToEnd()
	if err != nil {
		return nil, err
	}
	return &Delim{Payload: payload}, nil
}

// HeaderByte returns the NALU header byte for this delimiter.
func (u *Delim) HeaderByte() byte { return HeaderByteDelim }

// Write serializes the delimiter NALU payload. ctx is unused but present
// for Nalu interface conformity.
func (u *Delim) Write(w *bits.DescriptorWriter, ctx SpsPpsProvider) error {
	w.AppendAll(u.Payload)
	return nil
}
