package h264

import (
	"github.com/bugVanisher/avcbox/common/errs"
	"github.com/bugVanisher/avcbox/media/bits"
)

// SliceHeader is the parsed prefix of an IDR or non-IDR slice NALU; its
// field widths depend on the SPS reachable through pic_parameter_set_id.
type SliceHeader struct {
	IdrPicFlag        bool
	FirstMbInSlice    uint64
	RawSliceType      uint64
	PicParameterSetID uint64
	ColourPlaneID     uint8
	FrameNum          uint64
	FieldPicFlag      bool
	BottomFieldFlag   bool
	IdrPicID          uint64
	PicOrderCntLsb    uint64
}

// SliceType classifies RawSliceType.
func (h *SliceHeader) SliceType() SliceType { return Classify(h.RawSliceType) }

func resolveSpsPps(ctx SpsPpsProvider, picParameterSetID uint64) (*SPS, *PPS, error) {
	pps, ok := ctx.GetPPS(picParameterSetID)
	if !ok {
		return nil, nil, errs.Wrapf(errs.ErrMissingParameterSet, "h264: no pps with id %d", picParameterSetID)
	}
	sps, ok := ctx.GetSPS(pps.SeqParameterSetID)
	if !ok {
		return nil, nil, errs.Wrapf(errs.ErrMissingParameterSet, "h264: no sps with id %d (referenced by pps %d)", pps.SeqParameterSetID, picParameterSetID)
	}
	return sps, pps, nil
}

// ReadSliceHeader parses a slice header given idrPicFlag and a parameter
// set provider able to resolve the PPS/SPS it references.
func ReadSliceHeader(r *bits.DescriptorReader, idrPicFlag bool, ctx SpsPpsProvider) (*SliceHeader, error) {
	var h SliceHeader
	h.IdrPicFlag = idrPicFlag
	var err error

	if h.FirstMbInSlice, err = r.ReadUE(); err != nil {
		return nil, err
	}
	if h.RawSliceType, err = r.ReadUE(); err != nil {
		return nil, err
	}
	if h.PicParameterSetID, err = r.ReadUE(); err != nil {
		return nil, err
	}

	sps, _, err := resolveSpsPps(ctx, h.PicParameterSetID)
	if err != nil {
		return nil, err
	}

	if sps.SeparateColourPlaneFlag {
		v, err := r.ReadU(2)
		if err != nil {
			return nil, err
		}
		h.ColourPlaneID = uint8(v)
	}

	frameNumBits := uint8(sps.Log2MaxFrameNumMinus4 + 4)
	if h.FrameNum, err = r.ReadU(frameNumBits); err != nil {
		return nil, err
	}

	if !sps.FrameMbsOnlyFlag {
		if h.FieldPicFlag, err = readFlag(r); err != nil {
			return nil, err
		}
		if h.FieldPicFlag {
			if h.BottomFieldFlag, err = readFlag(r); err != nil {
				return nil, err
			}
		}
	}

	if idrPicFlag {
		if h.IdrPicID, err = r.ReadUE(); err != nil {
			return nil, err
		}
	}

	if sps.PicOrderCntType == 0 {
		picOrderCntLsbBits := uint8(sps.Log2MaxPicOrderCntLsbMinus4 + 4)
		if h.PicOrderCntLsb, err = r.ReadU(picOrderCntLsbBits); err != nil {
			return nil, err
		}
	}

	return &h, nil
}

// Write is the exact inverse of ReadSliceHeader, resolving field widths
// from the same provider.
func (h *SliceHeader) Write(w *bits.DescriptorWriter, ctx SpsPpsProvider) error {
	sps, _, err := resolveSpsPps(ctx, h.PicParameterSetID)
	if err != nil {
		return err
	}

	w.AppendUE(h.FirstMbInSlice)
	w.AppendUE(h.RawSliceType)
	w.AppendUE(h.PicParameterSetID)

	if sps.SeparateColourPlaneFlag {
		w.AppendU(2, uint64(h.ColourPlaneID))
	}

	frameNumBits := uint8(sps.Log2MaxFrameNumMinus4 + 4)
	w.AppendU(frameNumBits, h.FrameNum)

	if !sps.FrameMbsOnlyFlag {
		w.AppendU1(h.FieldPicFlag)
		if h.FieldPicFlag {
			w.AppendU1(h.BottomFieldFlag)
		}
	}

	if h.IdrPicFlag {
		w.AppendUE(h.IdrPicID)
	}

	if sps.PicOrderCntType == 0 {
		picOrderCntLsbBits := uint8(sps.Log2MaxPicOrderCntLsbMinus4 + 4)
		w.AppendU(picOrderCntLsbBits, h.PicOrderCntLsb)
	}

	return nil
}
