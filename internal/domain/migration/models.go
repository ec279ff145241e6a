package migration

// Detail is the per-officer outcome of a migration run.
type Detail struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	EntryID string `json:"entryId,omitempty"`
}

type Result struct {
	RunID             string            `json:"runId"`
	TotalRecords      int               `json:"totalRecords"`
	SuccessfulEntries int               `json:"successfulEntries"`
	FailedEntries     int               `json:"failedEntries"`
	SkippedEntries    int               `json:"skippedEntries"`
	Errors            []string          `json:"errors"`
	Details           map[string]Detail `json:"details"`
	HeaderMappings    []HeaderMapping   `json:"headerMappings"`
}

type Params struct {
	CSVText        string
	Month          int
	Year           int
	TemplateID     string
	DepartmentSlug string
	Role           string
	CreatedBy      string
}
