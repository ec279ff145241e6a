package migration

import "fmt"

const (
	CalcDirect     = "direct"
	CalcPercentage = "percentage"
)

// KpiMapping binds a canonical KPI name to the header search terms used to
// locate its column and the way its value is derived from the row.
type KpiMapping struct {
	Name        string
	SearchTerms []string
	Calculation string
}

// ParserConfig describes one supported CSV layout. The KPI list order
// matters: percentage KPIs are read from a fixed 3-column block at
// 2 + ordinal*3, matching how the historical sheets lay out their
// registered/disposed/pending triplets after the officer and court columns.
type ParserConfig struct {
	OfficerNameColumn string
	Kpis              []KpiMapping
}

// KpiOrdinal is the KPI's position in the configured list, or -1.
func (c ParserConfig) KpiOrdinal(name string) int {
	for i, kpi := range c.Kpis {
		if kpi.Name == name {
			return i
		}
	}
	return -1
}

// configs is the hand-authored registry of supported historical CSV layouts,
// keyed "<departmentSlug>-<role>". Loaded once, never mutated at runtime.
var configs = map[string]ParserConfig{
	"revenue-department-tehsildar": {
		OfficerNameColumn: "पीठासीन अधिकारी",
		Kpis: []KpiMapping{
			{
				Name:        "court_case_disposal",
				SearchTerms: []string{"न्यायालयीन प्रकरण", "राजस्व न्यायालय", "court cases"},
				Calculation: CalcPercentage,
			},
			{
				Name:        "namantaran_disposal",
				SearchTerms: []string{"नामांतरण", "mutation"},
				Calculation: CalcPercentage,
			},
			{
				Name:        "batwara_disposal",
				SearchTerms: []string{"बटवारा", "partition"},
				Calculation: CalcPercentage,
			},
			{
				Name:        "revenue_recovery",
				SearchTerms: []string{"वसूली", "भू-राजस्व वसूली", "recovery"},
				Calculation: CalcDirect,
			},
		},
	},
	"revenue-department-nayab-tehsildar": {
		OfficerNameColumn: "पीठासीन अधिकारी",
		Kpis: []KpiMapping{
			{
				Name:        "court_case_disposal",
				SearchTerms: []string{"न्यायालयीन प्रकरण", "court cases"},
				Calculation: CalcPercentage,
			},
			{
				Name:        "namantaran_disposal",
				SearchTerms: []string{"नामांतरण", "mutation"},
				Calculation: CalcPercentage,
			},
			{
				Name:        "revenue_recovery",
				SearchTerms: []string{"वसूली", "recovery"},
				Calculation: CalcDirect,
			},
		},
	},
	"revenue-department-ri": {
		OfficerNameColumn: "अधिकारी का नाम",
		Kpis: []KpiMapping{
			{
				Name:        "demarcation_disposal",
				SearchTerms: []string{"सीमांकन", "demarcation"},
				Calculation: CalcPercentage,
			},
			{
				Name:        "field_inspections",
				SearchTerms: []string{"निरीक्षण", "inspection"},
				Calculation: CalcDirect,
			},
		},
	},
}

// ConfigFor resolves the parser configuration for a department/role pair.
func ConfigFor(departmentSlug, role string) (ParserConfig, error) {
	key := departmentSlug + "-" + role
	cfg, ok := configs[key]
	if !ok {
		return ParserConfig{}, fmt.Errorf("%q: %w", key, ErrConfigNotFound)
	}
	return cfg, nil
}
