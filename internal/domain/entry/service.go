package entry

import (
	"context"
	"fmt"

	"kpm/internal/domain/template"
)

type TemplateAPI interface {
	GetByID(ctx context.Context, id string) (template.Template, error)
}

type Service struct {
	Store     StoreAPI
	Templates TemplateAPI
}

func NewService(store StoreAPI, templates TemplateAPI) *Service {
	return &Service{Store: store, Templates: templates}
}

type CreateParams struct {
	Month      int
	Year       int
	TemplateID string
	KpiRef     KpiRef
	CreatedFor string
	CreatedBy  string
	Status     string
	Values     []template.RawValue
}

func (s *Service) Create(ctx context.Context, params CreateParams) (Entry, error) {
	if err := validatePeriod(params.Month, params.Year); err != nil {
		return Entry{}, err
	}
	if params.CreatedFor == "" {
		return Entry{}, fmt.Errorf("createdFor is required: %w", ErrInvalidEntry)
	}
	if params.Status == "" {
		params.Status = StatusCreated
	}
	if !ValidStatus(params.Status) {
		return Entry{}, fmt.Errorf("status %q: %w", params.Status, ErrInvalidEntry)
	}

	tmpl, err := s.Templates.GetByID(ctx, params.TemplateID)
	if err != nil {
		return Entry{}, err
	}
	scored, err := template.ValidateAndScore(tmpl, params.Values)
	if err != nil {
		return Entry{}, err
	}

	exists, err := s.Store.Exists(ctx, params.CreatedFor, params.Month, params.Year, params.TemplateID, params.KpiRef.Value)
	if err != nil {
		return Entry{}, err
	}
	if exists {
		return Entry{}, ErrEntryExists
	}

	e := Entry{
		Month:      params.Month,
		Year:       params.Year,
		TemplateID: params.TemplateID,
		KpiRef:     params.KpiRef,
		CreatedFor: params.CreatedFor,
		CreatedBy:  params.CreatedBy,
		Status:     params.Status,
		Values:     scored,
		TotalScore: template.TotalScore(scored),
	}
	id, err := s.Store.Insert(ctx, e)
	if err != nil {
		return Entry{}, err
	}
	e.ID = id
	return e, nil
}

func (s *Service) Get(ctx context.Context, id string) (Entry, error) {
	return s.Store.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, filter Filter, limit, offset int) ([]Entry, int, error) {
	if filter.Status != "" && !ValidStatus(filter.Status) {
		return nil, 0, fmt.Errorf("status %q: %w", filter.Status, ErrInvalidEntry)
	}
	entries, err := s.Store.List(ctx, filter, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	count, err := s.Store.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return entries, count, nil
}

type UpdateParams struct {
	Values []template.RawValue
	Status string
}

// Update merges the submitted values into the stored entry by item name:
// submitted names overwrite, everything else is preserved. All scores and the
// total are recomputed against the entry's template.
func (s *Service) Update(ctx context.Context, id string, params UpdateParams) (Entry, error) {
	current, err := s.Store.GetByID(ctx, id)
	if err != nil {
		return Entry{}, err
	}

	if params.Status != "" {
		if !ValidStatus(params.Status) {
			return Entry{}, fmt.Errorf("status %q: %w", params.Status, ErrInvalidEntry)
		}
		current.Status = params.Status
	}

	if len(params.Values) > 0 {
		tmpl, err := s.Templates.GetByID(ctx, current.TemplateID)
		if err != nil {
			return Entry{}, err
		}
		if err := template.ValidateItems(tmpl, params.Values); err != nil {
			return Entry{}, err
		}

		merged := make([]template.RawValue, 0, len(current.Values)+len(params.Values))
		replaced := make(map[string]bool, len(params.Values))
		for _, nv := range params.Values {
			replaced[nv.Name] = true
		}
		for _, existing := range current.Values {
			if !replaced[existing.Name] {
				merged = append(merged, template.RawValue{Name: existing.Name, Value: existing.Value})
			}
		}
		merged = append(merged, params.Values...)

		scored, err := template.ValidateAndScore(tmpl, merged)
		if err != nil {
			return Entry{}, err
		}
		current.Values = scored
		current.TotalScore = template.TotalScore(scored)
	}

	if err := s.Store.Update(ctx, current); err != nil {
		return Entry{}, err
	}
	return current, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.Store.DeleteByID(ctx, id)
}

func (s *Service) UpdateStatusBulk(ctx context.Context, ids []string, status string) (int, error) {
	if !ValidStatus(status) {
		return 0, fmt.Errorf("status %q: %w", status, ErrInvalidEntry)
	}
	if len(ids) == 0 {
		return 0, fmt.Errorf("at least one entry id is required: %w", ErrInvalidEntry)
	}
	return s.Store.UpdateStatusBulk(ctx, ids, status)
}

func (s *Service) StatusSummary(ctx context.Context) (map[string]int, error) {
	counts, err := s.Store.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	for _, status := range Statuses {
		if _, ok := counts[status]; !ok {
			counts[status] = 0
		}
	}
	return counts, nil
}

func validatePeriod(month, year int) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("month must be between 1 and 12: %w", ErrInvalidEntry)
	}
	if year < 2020 {
		return fmt.Errorf("year must be 2020 or later: %w", ErrInvalidEntry)
	}
	return nil
}
