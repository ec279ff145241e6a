package template

import "time"

// Rule maps a raw value to a point score. Which fields are consulted depends
// on the owning item's kpiType: percentage items use Value as a threshold,
// numeric items use Value for exact equality or Min/Max for a range, and
// string items compare against Match.
type Rule struct {
	Value *float64 `json:"value,omitempty"`
	Min   *float64 `json:"min,omitempty"`
	Max   *float64 `json:"max,omitempty"`
	Match string   `json:"match,omitempty"`
	Score float64  `json:"score"`
}

type Item struct {
	Name     string  `json:"name"`
	MaxMarks float64 `json:"maxMarks"`
	KpiType  string  `json:"kpiType"`
	Rules    []Rule  `json:"scoringRules,omitempty"`
}

type Template struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	DepartmentSlug string    `json:"departmentSlug"`
	Role           string    `json:"role"`
	Items          []Item    `json:"items"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (t Template) Item(name string) (Item, bool) {
	for _, item := range t.Items {
		if item.Name == name {
			return item, true
		}
	}
	return Item{}, false
}

// MaxTotal is the highest total score an entry against this template can reach.
func (t Template) MaxTotal() float64 {
	var total float64
	for _, item := range t.Items {
		total += item.MaxMarks
	}
	return total
}
