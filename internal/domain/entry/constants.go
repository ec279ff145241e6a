package entry

const (
	StatusCreated   = "created"
	StatusInitiated = "initiated"
	StatusGenerated = "generated"
)

var Statuses = []string{StatusCreated, StatusInitiated, StatusGenerated}

func ValidStatus(status string) bool {
	for _, candidate := range Statuses {
		if status == candidate {
			return true
		}
	}
	return false
}
