package identity

// Ref is a scorable-unit reference attached to a member, e.g.
// {label: "court", value: "tehsil-court-dharsiwa"}.
type Ref struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type Member struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Refs   []Ref  `json:"kpiRef"`
}

// Ref returns the member reference with the given label and value, if any.
func (m Member) Ref(label, value string) (Ref, bool) {
	for _, ref := range m.Refs {
		if ref.Label == label && ref.Value == value {
			return ref, true
		}
	}
	return Ref{}, false
}
