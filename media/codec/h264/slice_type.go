package h264

// SliceType classifies a slice header's slice_type field (mod 5, since
// values 5-9 mean "all slices in this picture share this type").
type SliceType uint8

const (
	SliceTypeP SliceType = iota
	SliceTypeB
	SliceTypeI
	SliceTypeSP
	SliceTypeSI
	SliceTypeUnknown
)

// Classify maps a raw slice_type Exp-Golomb value to its SliceType.
func Classify(sliceType uint64) SliceType {
	switch sliceType % 5 {
	case 0:
		return SliceTypeP
	case 1:
		return SliceTypeB
	case 2:
		return SliceTypeI
	case 3:
		return SliceTypeSP
	case 4:
		return SliceTypeSI
	default:
		return SliceTypeUnknown
	}
}

func (t SliceType) String() string {
	switch t {
	case SliceTypeP:
		return "P"
	case SliceTypeB:
		return "B"
	case SliceTypeI:
		return "I"
	case SliceTypeSP:
		return "SP"
	case SliceTypeSI:
		return "SI"
	default:
		return "unknown"
	}
}
