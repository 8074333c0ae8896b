package h264

import (
	"github.com/bugVanisher/avcbox/common/errs"
	"github.com/bugVanisher/avcbox/media/bits"
)

// VuiParameters is the Video Usability Information block optionally
// present at the end of an SPS.
type VuiParameters struct {
	AspectRatioInfoPresentFlag bool
	AspectRatioIdc             uint8
	SarWidth                   uint16
	SarHeight                  uint16

	OverscanInfoPresentFlag    bool
	OverscanAppropriateFlag    bool

	VideoSignalTypePresentFlag   bool
	VideoFormat                  uint64
	VideoFullRangeFlag           bool
	ColourDescriptionPresentFlag bool
	ColourPrimaries              uint8
	TransferCharacteristics      uint8
	MatrixCoefficients           uint8

	ChromaLocInfoPresentFlag bool

	TimingInfoPresentFlag bool
	NumUnitsInTick        uint32
	TimeScale             uint32
	FixedFrameRateFlag    bool

	NalHrdParametersPresentFlag bool
	NalHrdParameters            *HrdParameters
	VclHrdParametersPresentFlag bool
	VclHrdParameters            *HrdParameters
	LowDelayHrdFlag             bool

	PicStructPresentFlag bool

	BitstreamRestrictionFlag               bool
	MotionVectorsOverPicBoundariesFlag     bool
	MaxBytesPerPicDenom                    uint64
	MaxBitsPerMbDenom                      uint64
	Log2MaxMvLengthHorizontal              uint64
	Log2MaxMvLengthVertical                uint64
	MaxNumReorderFrames                    uint64
	MaxDecFrameBuffering                   uint64
}

func readVuiParameters(r *bits.DescriptorReader) (*VuiParameters, error) {
	var v VuiParameters
	var err error

	if v.AspectRatioInfoPresentFlag, err = readFlag(r); err != nil {
		return nil, err
	}
	if v.AspectRatioInfoPresentFlag {
		u8, err := r.ReadU8()
		if err != nil {
			return nil, err
		}
		v.AspectRatioIdc = u8
		if v.AspectRatioIdc == 255 {
			if v.SarWidth, err = r.ReadU16(); err != nil {
				return nil, err
			}
			if v.SarHeight, err = r.ReadU16(); err != nil {
				return nil, err
			}
		}
	}

	if v.OverscanInfoPresentFlag, err = readFlag(r); err != nil {
		return nil, err
	}
	if v.OverscanInfoPresentFlag {
		if v.OverscanAppropriateFlag, err = readFlag(r); err != nil {
			return nil, err
		}
	}

	if v.VideoSignalTypePresentFlag, err = readFlag(r); err != nil {
		return nil, err
	}
	if v.VideoSignalTypePresentFlag {
		if v.VideoFormat, err = r.ReadU(3); err != nil {
			return nil, err
		}
		if v.VideoFullRangeFlag, err = readFlag(r); err != nil {
			return nil, err
		}
		if v.ColourDescriptionPresentFlag, err = readFlag(r); err != nil {
			return nil, err
		}
		if v.ColourDescriptionPresentFlag {
			if v.ColourPrimaries, err = r.ReadU8(); err != nil {
				return nil, err
			}
			if v.TransferCharacteristics, err = r.ReadU8(); err != nil {
				return nil, err
			}
			if v.MatrixCoefficients, err = r.ReadU8(); err != nil {
				return nil, err
			}
		}
	}

	if v.ChromaLocInfoPresentFlag, err = readFlag(r); err != nil {
		return nil, err
	}
	if v.ChromaLocInfoPresentFlag {
		return nil, errs.Wrapf(errs.ErrUnsupportedSyntax, "h264: vui chroma_loc_info_present_flag is not modeled")
	}

	if v.TimingInfoPresentFlag, err = readFlag(r); err != nil {
		return nil, err
	}
	if v.TimingInfoPresentFlag {
		if v.NumUnitsInTick, err = r.ReadU32(); err != nil {
			return nil, err
		}
		if v.TimeScale, err = r.ReadU32(); err != nil {
			return nil, err
		}
		if v.FixedFrameRateFlag, err = readFlag(r); err != nil {
			return nil, err
		}
	}

	if v.NalHrdParametersPresentFlag, err = readFlag(r); err != nil {
		return nil, err
	}
	if v.NalHrdParametersPresentFlag {
		if v.NalHrdParameters, err = readHrdParameters(r); err != nil {
			return nil, err
		}
	}
	if v.VclHrdParametersPresentFlag, err = readFlag(r); err != nil {
		return nil, err
	}
	if v.VclHrdParametersPresentFlag {
		if v.VclHrdParameters, err = readHrdParameters(r); err != nil {
			return nil, err
		}
	}
	if v.NalHrdParametersPresentFlag || v.VclHrdParametersPresentFlag {
		if v.LowDelayHrdFlag, err = readFlag(r); err != nil {
			return nil, err
		}
	}

	if v.PicStructPresentFlag, err = readFlag(r); err != nil {
		return nil, err
	}

	if v.BitstreamRestrictionFlag, err = readFlag(r); err != nil {
		return nil, err
	}
	if v.BitstreamRestrictionFlag {
		if v.MotionVectorsOverPicBoundariesFlag, err = readFlag(r); err != nil {
			return nil, err
		}
		if v.MaxBytesPerPicDenom, err = r.ReadUE(); err != nil {
			return nil, err
		}
		if v.MaxBitsPerMbDenom, err = r.ReadUE(); err != nil {
			return nil, err
		}
		if v.Log2MaxMvLengthHorizontal, err = r.ReadUE(); err != nil {
			return nil, err
		}
		if v.Log2MaxMvLengthVertical, err = r.ReadUE(); err != nil {
			return nil, err
		}
		if v.MaxNumReorderFrames, err = r.ReadUE(); err != nil {
			return nil, err
		}
		if v.MaxDecFrameBuffering, err = r.ReadUE(); err != nil {
			return nil, err
		}
	}

	return &v, nil
}

func (v *VuiParameters) write(w *bits.DescriptorWriter) {
	w.AppendU1(v.AspectRatioInfoPresentFlag)
	if v.AspectRatioInfoPresentFlag {
		w.AppendU8(v.AspectRatioIdc)
		if v.AspectRatioIdc == 255 {
			w.AppendU16(v.SarWidth)
			w.AppendU16(v.SarHeight)
		}
	}

	w.AppendU1(v.OverscanInfoPresentFlag)
	if v.OverscanInfoPresentFlag {
		w.AppendU1(v.OverscanAppropriateFlag)
	}

	w.AppendU1(v.VideoSignalTypePresentFlag)
	if v.VideoSignalTypePresentFlag {
		w.AppendU(3, v.VideoFormat)
		w.AppendU1(v.VideoFullRangeFlag)
		w.AppendU1(v.ColourDescriptionPresentFlag)
		if v.ColourDescriptionPresentFlag {
			w.AppendU8(v.ColourPrimaries)
			w.AppendU8(v.TransferCharacteristics)
			w.AppendU8(v.MatrixCoefficients)
		}
	}

	w.AppendU1(v.ChromaLocInfoPresentFlag)

	w.AppendU1(v.TimingInfoPresentFlag)
	if v.TimingInfoPresentFlag {
		w.AppendU32(v.NumUnitsInTick)
		w.AppendU32(v.TimeScale)
		w.AppendU1(v.FixedFrameRateFlag)
	}

	w.AppendU1(v.NalHrdParametersPresentFlag)
	if v.NalHrdParametersPresentFlag {
		v.NalHrdParameters.write(w)
	}
	w.AppendU1(v.VclHrdParametersPresentFlag)
	if v.VclHrdParametersPresentFlag {
		v.VclHrdParameters.write(w)
	}
	if v.NalHrdParametersPresentFlag || v.VclHrdParametersPresentFlag {
		w.AppendU1(v.LowDelayHrdFlag)
	}

	w.AppendU1(v.PicStructPresentFlag)

	w.AppendU1(v.BitstreamRestrictionFlag)
	if v.BitstreamRestrictionFlag {
		w.AppendU1(v.MotionVectorsOverPicBoundariesFlag)
		w.AppendUE(v.MaxBytesPerPicDenom)
		w.AppendUE(v.MaxBitsPerMbDenom)
		w.AppendUE(v.Log2MaxMvLengthHorizontal)
		w.AppendUE(v.Log2MaxMvLengthVertical)
		w.AppendUE(v.MaxNumReorderFrames)
		w.AppendUE(v.MaxDecFrameBuffering)
	}
}

// readFlag reads a single bit as a bool, the shape every *_flag field in
// this package shares.
func readFlag(r *bits.DescriptorReader) (bool, error) {
	v, err := r.ReadU1()
	if err != nil {
		return false, err
	}
	return v != 0, nil
}
