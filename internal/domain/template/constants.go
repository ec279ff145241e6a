package template

const (
	TypeQuantitative = "quantitative"
	TypePercentage   = "percentage"
	TypeBinary       = "binary"
	TypeQualitative  = "qualitative"
	TypeScore        = "score"
)

var ItemTypes = []string{
	TypeQuantitative,
	TypePercentage,
	TypeBinary,
	TypeQualitative,
	TypeScore,
}

func ValidItemType(kpiType string) bool {
	for _, candidate := range ItemTypes {
		if kpiType == candidate {
			return true
		}
	}
	return false
}
