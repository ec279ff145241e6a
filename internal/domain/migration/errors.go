package migration

import "errors"

var (
	ErrConfigNotFound = errors.New("no parser configuration for department and role")
	ErrMalformedCSV   = errors.New("csv must contain header, sub-header and data rows")
)
