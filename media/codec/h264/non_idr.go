package h264

import "github.com/bugVanisher/avcbox/media/bits"

// NonIDR is a non-IDR coded slice NALU (type 1). Its header byte keeps
// whatever nal_ref_idc the input carried.
type NonIDR struct {
	Header byte
	Slice  *SliceHeader
	Tail   bits.OpaqueData
}

// ReadNonIDR parses a non-IDR slice NALU payload.
func ReadNonIDR(r *bits.DescriptorReader, header byte, ctx SpsPpsProvider) (*NonIDR, error) {
	slice, err := ReadSliceHeader(r, false, ctx)
	if err != nil {
		return nil, err
	}
	tail, err := r.ReadToEnd()
	if err != nil {
		return nil, err
	}
	return &NonIDR{Header: header, Slice: slice, Tail: tail}, nil
}

// HeaderByte returns the original NALU header byte (preserving
// nal_ref_idc).
func (u *NonIDR) HeaderByte() byte { return u.Header }

// Write serializes the non-IDR slice NALU payload.
func (u *NonIDR) Write(w *bits.DescriptorWriter, ctx SpsPpsProvider) error {
	if err := u.Slice.Write(w, ctx); err != nil {
		return err
	}
	w.AppendAll(u.Tail)
	return nil
}
