package h264

import "github.com/bugVanisher/avcbox/media/bits"

// HeaderByteIDR is the NALU header for an IDR slice with nal_ref_idc=3
// (forbidden_zero_bit=0, nal_unit_type=5).
const HeaderByteIDR = 0x65

// IDR is an Instantaneous Decoding Refresh slice NALU (type 5).
type IDR struct {
	Slice *SliceHeader
	Tail  bits.OpaqueData
}

// ReadIDR parses an IDR slice NALU payload.
func ReadIDR(r *bits.DescriptorReader, ctx SpsPpsProvider) (*IDR, error) {
	slice, err := ReadSliceHeader(r, true, ctx)
	if err != nil {
		return nil, err
	}
	tail, err := r.ReadToEnd()
	if err != nil {
		return nil, err
	}
	return &IDR{Slice: slice, Tail: tail}, nil
}

// HeaderByte returns the NALU header byte for this IDR slice.
func (u *IDR) HeaderByte() byte { return HeaderByteIDR }

// Write serializes the IDR slice NALU payload.
func (u *IDR) Write(w *bits.DescriptorWriter, ctx SpsPpsProvider) error {
	if err := u.Slice.Write(w, ctx); err != nil {
		return err
	}
	w.AppendAll(u.Tail)
	return nil
}
