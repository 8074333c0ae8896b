package h264

import (
	"github.com/bugVanisher/avcbox/common/errs"
	"github.com/bugVanisher/avcbox/media/bits"
)

// HeaderByteSPS is the NALU header for a sequence parameter set
// (forbidden_zero_bit=0, nal_ref_idc=3, nal_unit_type=7).
const HeaderByteSPS = 0x67

// extendedProfileIdcs are the profile_idc values that carry the
// chroma_format_idc/bit-depth/scaling-matrix block (Rec. ITU-T H.264
// §7.3.2.1.1).
var extendedProfileIdcs = map[uint64]bool{
	44: true, 83: true, 86: true, 100: true, 110: true,
	118: true, 122: true, 128: true, 244: true,
}

// SPS is a parsed sequence parameter set (NALU type 7).
type SPS struct {
	ProfileIdc          uint64
	ConstraintSetFlags  [6]bool
	LevelIdc            uint64
	SeqParameterSetID   uint64

	ChromaFormatIdc                uint64
	SeparateColourPlaneFlag        bool
	BitDepthLumaMinus8              uint64
	BitDepthChromaMinus8            uint64
	QpprimeYZeroTransformBypassFlag bool
	SeqScalingMatrixPresentFlag     bool

	Log2MaxFrameNumMinus4        uint64
	PicOrderCntType              uint64
	Log2MaxPicOrderCntLsbMinus4  uint64
	MaxNumRefFrames              uint64
	GapsInFrameNumValueAllowed   bool

	PicWidthInMbsMinus1         uint64
	PicHeightInMapUnitsMinus1   uint64
	FrameMbsOnlyFlag            bool
	MbAdaptiveFrameFieldFlag    bool
	Direct8x8InferenceFlag      bool

	FrameCroppingFlag bool
	CropLeft          uint64
	CropRight         uint64
	CropTop           uint64
	CropBottom        uint64

	VuiParametersPresentFlag bool
	Vui                      *VuiParameters

	Tail bits.OpaqueData
}

// ReadSPS parses an SPS RBSP (payload after the NALU header byte).
func ReadSPS(r *bits.DescriptorReader) (*SPS, error) {
	var s SPS
	var err error

	if s.ProfileIdc, err = r.ReadU(8); err != nil {
		return nil, err
	}
	for i := range s.ConstraintSetFlags {
		if s.ConstraintSetFlags[i], err = readFlag(r); err != nil {
			return nil, err
		}
	}
	if _, err = r.ReadU(2); err != nil { // reserved_zero_2bits
		return nil, err
	}
	if s.LevelIdc, err = r.ReadU(8); err != nil {
		return nil, err
	}
	if s.SeqParameterSetID, err = r.ReadUE(); err != nil {
		return nil, err
	}

	if extendedProfileIdcs[s.ProfileIdc] {
		if s.ChromaFormatIdc, err = r.ReadUE(); err != nil {
			return nil, err
		}
		if s.ChromaFormatIdc == 3 {
			if s.SeparateColourPlaneFlag, err = readFlag(r); err != nil {
				return nil, err
			}
		}
		if s.BitDepthLumaMinus8, err = r.ReadUE(); err != nil {
			return nil, err
		}
		if s.BitDepthChromaMinus8, err = r.ReadUE(); err != nil {
			return nil, err
		}
		if s.QpprimeYZeroTransformBypassFlag, err = readFlag(r); err != nil {
			return nil, err
		}
		if s.SeqScalingMatrixPresentFlag, err = readFlag(r); err != nil {
			return nil, err
		}
		if s.SeqScalingMatrixPresentFlag {
			scalingListCount := 8
			if s.ChromaFormatIdc == 3 {
				scalingListCount = 12
			}
			for i := 0; i < scalingListCount; i++ {
				present, err := readFlag(r)
				if err != nil {
					return nil, err
				}
				if present {
					return nil, errs.Wrapf(errs.ErrUnsupportedSyntax, "h264: sps seq_scaling_list_present_flag[%d] set, scaling lists are not modeled", i)
				}
			}
		}
	}

	if s.Log2MaxFrameNumMinus4, err = r.ReadUE(); err != nil {
		return nil, err
	}
	if s.PicOrderCntType, err = r.ReadUE(); err != nil {
		return nil, err
	}
	if s.PicOrderCntType == 1 {
		return nil, errs.Wrapf(errs.ErrUnsupportedSyntax, "h264: sps pic_order_cnt_type == 1 is not modeled")
	}
	if s.PicOrderCntType == 0 {
		if s.Log2MaxPicOrderCntLsbMinus4, err = r.ReadUE(); err != nil {
			return nil, err
		}
	}

	if s.MaxNumRefFrames, err = r.ReadUE(); err != nil {
		return nil, err
	}
	if s.GapsInFrameNumValueAllowed, err = readFlag(r); err != nil {
		return nil, err
	}
	if s.PicWidthInMbsMinus1, err = r.ReadUE(); err != nil {
		return nil, err
	}
	if s.PicHeightInMapUnitsMinus1, err = r.ReadUE(); err != nil {
		return nil, err
	}
	if s.FrameMbsOnlyFlag, err = readFlag(r); err != nil {
		return nil, err
	}
	if !s.FrameMbsOnlyFlag {
		if s.MbAdaptiveFrameFieldFlag, err = readFlag(r); err != nil {
			return nil, err
		}
	}
	if s.Direct8x8InferenceFlag, err = readFlag(r); err != nil {
		return nil, err
	}
	if s.FrameCroppingFlag, err = readFlag(r); err != nil {
		return nil, err
	}
	if s.FrameCroppingFlag {
		if s.CropLeft, err = r.ReadUE(); err != nil {
			return nil, err
		}
		if s.CropRight, err = r.ReadUE(); err != nil {
			return nil, err
		}
		if s.CropTop, err = r.ReadUE(); err != nil {
			return nil, err
		}
		if s.CropBottom, err = r.ReadUE(); err != nil {
			return nil, err
		}
	}

	if s.VuiParametersPresentFlag, err = readFlag(r); err != nil {
		return nil, err
	}
	if s.VuiParametersPresentFlag {
		if s.Vui, err = readVuiParameters(r); err != nil {
			return nil, err
		}
	}

	if err := r.ReadRbspTrailingBits(); err != nil {
		return nil, err
	}
	s.Tail, err = r.ReadToEnd()
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// HeaderByte returns the NALU header byte for this SPS.
func (s *SPS) HeaderByte() byte { return HeaderByteSPS }

// Write serializes the SPS RBSP (without the NALU header byte). ctx is
// unused but present for Nalu interface conformity.
func (s *SPS) Write(w *bits.DescriptorWriter, ctx SpsPpsProvider) error {
	w.AppendU(8, s.ProfileIdc)
	for _, f := range s.ConstraintSetFlags {
		w.AppendU1(f)
	}
	w.AppendU(2, 0)
	w.AppendU(8, s.LevelIdc)
	w.AppendUE(s.SeqParameterSetID)

	if extendedProfileIdcs[s.ProfileIdc] {
		w.AppendUE(s.ChromaFormatIdc)
		if s.ChromaFormatIdc == 3 {
			w.AppendU1(s.SeparateColourPlaneFlag)
		}
		w.AppendUE(s.BitDepthLumaMinus8)
		w.AppendUE(s.BitDepthChromaMinus8)
		w.AppendU1(s.QpprimeYZeroTransformBypassFlag)
		w.AppendU1(s.SeqScalingMatrixPresentFlag)
		if s.SeqScalingMatrixPresentFlag {
			scalingListCount := 8
			if s.ChromaFormatIdc == 3 {
				scalingListCount = 12
			}
			for i := 0; i < scalingListCount; i++ {
				w.AppendU1(false) // seq_scaling_list_present_flag[i]
			}
		}
	}

	w.AppendUE(s.Log2MaxFrameNumMinus4)
	w.AppendUE(s.PicOrderCntType)
	if s.PicOrderCntType == 0 {
		w.AppendUE(s.Log2MaxPicOrderCntLsbMinus4)
	}

	w.AppendUE(s.MaxNumRefFrames)
	w.AppendU1(s.GapsInFrameNumValueAllowed)
	w.AppendUE(s.PicWidthInMbsMinus1)
	w.AppendUE(s.PicHeightInMapUnitsMinus1)
	w.AppendU1(s.FrameMbsOnlyFlag)
	if !s.FrameMbsOnlyFlag {
		w.AppendU1(s.MbAdaptiveFrameFieldFlag)
	}
	w.AppendU1(s.Direct8x8InferenceFlag)
	w.AppendU1(s.FrameCroppingFlag)
	if s.FrameCroppingFlag {
		w.AppendUE(s.CropLeft)
		w.AppendUE(s.CropRight)
		w.AppendUE(s.CropTop)
		w.AppendUE(s.CropBottom)
	}

	w.AppendU1(s.VuiParametersPresentFlag)
	if s.VuiParametersPresentFlag {
		s.Vui.write(w)
	}

	w.AppendRbspTrailingBits()
	w.AppendAll(s.Tail)
	return nil
}

// Width reports the decoded picture width in pixels.
func (s *SPS) Width() uint64 {
	return (s.PicWidthInMbsMinus1 + 1) * 16
}

// Height reports the decoded picture height in pixels: map-unit height
// times 16, doubled when frame_mbs_only_flag is false. Frame cropping is
// not applied.
func (s *SPS) Height() uint64 {
	frameMbsFactor := uint64(2)
	if s.FrameMbsOnlyFlag {
		frameMbsFactor = 1
	}
	return frameMbsFactor * (s.PicHeightInMapUnitsMinus1 + 1) * 16
}
