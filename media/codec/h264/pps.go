package h264

import (
	"github.com/bugVanisher/avcbox/common/errs"
	"github.com/bugVanisher/avcbox/media/bits"
)

// HeaderBytePPS is the NALU header for a picture parameter set
// (forbidden_zero_bit=0, nal_ref_idc=3, nal_unit_type=8).
const HeaderBytePPS = 0x68

// PPS is a parsed picture parameter set (NALU type 8).
type PPS struct {
	PicParameterSetID                         uint64
	SeqParameterSetID                         uint64
	EntropyCodingModeFlag                     bool
	BottomFieldPicOrderInFramePresentFlag      bool
	NumSliceGroupsMinus1                       uint64
	NumRefIdxL0DefaultActiveMinus1             uint64
	NumRefIdxL1DefaultActiveMinus1             uint64
	WeightedPredFlag                          bool
	WeightedBipredIdc                         uint64
	PicInitQpMinus26                          int64
	PicInitQsMinus26                          int64
	ChromaQpIndexOffset                       int64
	DeblockingFilterControlPresentFlag        bool
	ConstrainedIntraPredFlag                  bool
	RedundantPicCntPresentFlag                bool

	Tail bits.OpaqueData
}

// ReadPPS parses a PPS RBSP (payload after the NALU header byte).
func ReadPPS(r *bits.DescriptorReader) (*PPS, error) {
	var p PPS
	var err error

	if p.PicParameterSetID, err = r.ReadUE(); err != nil {
		return nil, err
	}
	if p.SeqParameterSetID, err = r.ReadUE(); err != nil {
		return nil, err
	}
	if p.EntropyCodingModeFlag, err = readFlag(r); err != nil {
		return nil, err
	}
	if p.BottomFieldPicOrderInFramePresentFlag, err = readFlag(r); err != nil {
		return nil, err
	}
	if p.NumSliceGroupsMinus1, err = r.ReadUE(); err != nil {
		return nil, err
	}
	if p.NumSliceGroupsMinus1 > 0 {
		return nil, errs.Wrapf(errs.ErrUnsupportedSyntax, "h264: pps num_slice_groups_minus1 (%d) > 0 is not modeled", p.NumSliceGroupsMinus1)
	}

	if p.NumRefIdxL0DefaultActiveMinus1, err = r.ReadUE(); err != nil {
		return nil, err
	}
	if p.NumRefIdxL1DefaultActiveMinus1, err = r.ReadUE(); err != nil {
		return nil, err
	}
	if p.WeightedPredFlag, err = readFlag(r); err != nil {
		return nil, err
	}
	if p.WeightedBipredIdc, err = r.ReadU(2); err != nil {
		return nil, err
	}
	if p.PicInitQpMinus26, err = r.ReadSE(); err != nil {
		return nil, err
	}
	if p.PicInitQsMinus26, err = r.ReadSE(); err != nil {
		return nil, err
	}
	if p.ChromaQpIndexOffset, err = r.ReadSE(); err != nil {
		return nil, err
	}
	if p.DeblockingFilterControlPresentFlag, err = readFlag(r); err != nil {
		return nil, err
	}
	if p.ConstrainedIntraPredFlag, err = readFlag(r); err != nil {
		return nil, err
	}
	if p.RedundantPicCntPresentFlag, err = readFlag(r); err != nil {
		return nil, err
	}

	if r.MoreRbspData() {
		return nil, errs.Wrapf(errs.ErrUnsupportedSyntax, "h264: pps has extension syntax before rbsp_trailing_bits, not modeled")
	}
	if err := r.ReadRbspTrailingBits(); err != nil {
		return nil, err
	}
	p.Tail, err = r.ReadToEnd()
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// HeaderByte returns the NALU header byte for this PPS.
func (p *PPS) HeaderByte() byte { return HeaderBytePPS }

// Write serializes the PPS RBSP (without the NALU header byte). ctx is
// unused but present for Nalu interface conformity.
func (p *PPS) Write(w *bits.DescriptorWriter, ctx SpsPpsProvider) error {
	w.AppendUE(p.PicParameterSetID)
	w.AppendUE(p.SeqParameterSetID)
	w.AppendU1(p.EntropyCodingModeFlag)
	w.AppendU1(p.BottomFieldPicOrderInFramePresentFlag)
	w.AppendUE(p.NumSliceGroupsMinus1)
	w.AppendUE(p.NumRefIdxL0DefaultActiveMinus1)
	w.AppendUE(p.NumRefIdxL1DefaultActiveMinus1)
	w.AppendU1(p.WeightedPredFlag)
	w.AppendU(2, p.WeightedBipredIdc)
	w.AppendSE(p.PicInitQpMinus26)
	w.AppendSE(p.PicInitQsMinus26)
	w.AppendSE(p.ChromaQpIndexOffset)
	w.AppendU1(p.DeblockingFilterControlPresentFlag)
	w.AppendU1(p.ConstrainedIntraPredFlag)
	w.AppendU1(p.RedundantPicCntPresentFlag)
	w.AppendRbspTrailingBits()
	w.AppendAll(p.Tail)
	return nil
}
