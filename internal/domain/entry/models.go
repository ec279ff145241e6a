package entry

import (
	"time"

	"kpm/internal/domain/template"
)

// KpiRef identifies the scorable sub-unit an entry belongs to, e.g. a court
// or an area, for employees holding more than one unit.
type KpiRef struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type Entry struct {
	ID         string                 `json:"id"`
	Month      int                    `json:"month"`
	Year       int                    `json:"year"`
	TemplateID string                 `json:"templateId"`
	KpiRef     KpiRef                 `json:"kpiRef"`
	CreatedFor string                 `json:"createdFor"`
	CreatedBy  string                 `json:"createdBy"`
	Status     string                 `json:"status"`
	Values     []template.ScoredValue `json:"values"`
	TotalScore float64                `json:"totalScore"`
	CreatedAt  time.Time              `json:"createdAt"`
	UpdatedAt  time.Time              `json:"updatedAt"`
}

type Filter struct {
	Month      int
	Year       int
	TemplateID string
	CreatedFor string
	Status     string
}
