package h264

// SpsPpsProvider resolves parameter sets by id for slice-header parsing.
// NaluList and mp4's AvcDecoderConfigurationRecord both implement it: a
// linear scan over their parameter-set units, first match wins.
type SpsPpsProvider interface {
	GetSPS(id uint64) (*SPS, bool)
	GetPPS(id uint64) (*PPS, bool)
}
