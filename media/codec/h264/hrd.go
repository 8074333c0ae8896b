package h264

import "github.com/bugVanisher/avcbox/media/bits"

// HrdParameters is the Hypothetical Reference Decoder parameter block
// nested inside a VuiParameters block.
type HrdParameters struct {
	CpbCntMinus1                       uint64
	BitRateScale                       uint8
	CpbSizeScale                       uint8
	BitRateValueMinus1                 []uint64
	CpbSizeValueMinus1                 []uint64
	CbrFlag                            []bool
	InitialCpbRemovalDelayLengthMinus1 uint8
	CpbRemovalDelayLengthMinus1        uint8
	DpbOutputDelayLengthMinus1         uint8
	TimeOffsetLength                   uint8
}

func readHrdParameters(r *bits.DescriptorReader) (*HrdParameters, error) {
	var h HrdParameters
	var err error
	if h.CpbCntMinus1, err = r.ReadUE(); err != nil {
		return nil, err
	}
	v, err := r.ReadU(4)
	if err != nil {
		return nil, err
	}
	h.BitRateScale = uint8(v)
	if v, err = r.ReadU(4); err != nil {
		return nil, err
	}
	h.CpbSizeScale = uint8(v)

	count := int(h.CpbCntMinus1) + 1
	h.BitRateValueMinus1 = make([]uint64, count)
	h.CpbSizeValueMinus1 = make([]uint64, count)
	h.CbrFlag = make([]bool, count)
	for i := 0; i < count; i++ {
		if h.BitRateValueMinus1[i], err = r.ReadUE(); err != nil {
			return nil, err
		}
		if h.CpbSizeValueMinus1[i], err = r.ReadUE(); err != nil {
			return nil, err
		}
		bit, err := r.ReadU1()
		if err != nil {
			return nil, err
		}
		h.CbrFlag[i] = bit != 0
	}

	for _, dst := range []*uint8{
		&h.InitialCpbRemovalDelayLengthMinus1,
		&h.CpbRemovalDelayLengthMinus1,
		&h.DpbOutputDelayLengthMinus1,
		&h.TimeOffsetLength,
	} {
		v, err := r.ReadU(5)
		if err != nil {
			return nil, err
		}
		*dst = uint8(v)
	}
	return &h, nil
}

func (h *HrdParameters) write(w *bits.DescriptorWriter) {
	w.AppendUE(h.CpbCntMinus1)
	w.AppendU(4, uint64(h.BitRateScale))
	w.AppendU(4, uint64(h.CpbSizeScale))
	for i := 0; i <= int(h.CpbCntMinus1); i++ {
		w.AppendUE(h.BitRateValueMinus1[i])
		w.AppendUE(h.CpbSizeValueMinus1[i])
		w.AppendU1(h.CbrFlag[i])
	}
	w.AppendU(5, uint64(h.InitialCpbRemovalDelayLengthMinus1))
	w.AppendU(5, uint64(h.CpbRemovalDelayLengthMinus1))
	w.AppendU(5, uint64(h.DpbOutputDelayLengthMinus1))
	w.AppendU(5, uint64(h.TimeOffsetLength))
}
