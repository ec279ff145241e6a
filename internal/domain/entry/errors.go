package entry

import "errors"

var (
	ErrEntryNotFound = errors.New("kpi entry not found")
	ErrEntryExists   = errors.New("kpi entry already exists for this period")
	ErrInvalidEntry  = errors.New("invalid kpi entry")
)
