package stats

type Ranking struct {
	EmployeeID     string  `json:"employeeId"`
	EmployeeName   string  `json:"employeeName,omitempty"`
	DepartmentSlug string  `json:"departmentSlug"`
	Role           string  `json:"role"`
	EntryCount     int     `json:"entryCount"`
	TotalScore     float64 `json:"totalScore"`
	MaxPossible    float64 `json:"maxPossible"`
	Percentage     float64 `json:"percentage"`
	Rank           int     `json:"rank"`
}

type Distribution struct {
	Excellent int `json:"excellent"`
	Good      int `json:"good"`
	Average   int `json:"average"`
	Poor      int `json:"poor"`
}

// Cohort is a percentile-bounded slice of the ranking: the top or bottom 5%.
type Cohort struct {
	Size    int       `json:"size"`
	Cutoff  float64   `json:"cutoff"`
	Average float64   `json:"average"`
	Members []Ranking `json:"members"`
}

type Statistics struct {
	EmployeeCount     int          `json:"employeeCount"`
	AveragePercentage float64      `json:"averagePercentage"`
	Distribution      Distribution `json:"scoreDistribution"`
	Top               Cohort       `json:"top5Percent"`
	Bottom            Cohort       `json:"bottom5Percent"`
}

type RoleStatistics struct {
	Role string `json:"role"`
	Statistics
}

type DepartmentStatistics struct {
	DepartmentSlug string `json:"departmentSlug"`
	Statistics
	Roles []RoleStatistics `json:"roles"`
}

type OverallStatistics struct {
	Statistics
	Departments []DepartmentStatistics `json:"departments"`
}

// Filter narrows statistics to a period and to department/role cohorts.
// Departments defaults to the standard set when empty; exclusions subtract
// afterward. Role filters match by prefix.
type Filter struct {
	Month              int
	Year               int
	Departments        []string
	ExcludeDepartments []string
	Roles              []string
	ExcludeRoles       []string
}
