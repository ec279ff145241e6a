package template

import "errors"

var (
	ErrTemplateNotFound = errors.New("kpi template not found")
	ErrUnknownKpiType   = errors.New("unknown kpi item type")
	ErrUnknownItem      = errors.New("unknown kpi item")
	ErrMissingItem      = errors.New("missing kpi item")
	ErrInvalidValue     = errors.New("invalid kpi value")
	ErrInvalidTemplate  = errors.New("invalid kpi template")
)
