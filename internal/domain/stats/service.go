package stats

import (
	"context"
	"log/slog"

	"kpm/internal/domain/entry"
	"kpm/internal/domain/template"
	"kpm/internal/identity"
)

type EntrySource interface {
	ListByStatus(ctx context.Context, status string, month, year int) ([]entry.Entry, error)
}

type TemplateAPI interface {
	GetByID(ctx context.Context, id string) (template.Template, error)
}

type Service struct {
	Entries   EntrySource
	Templates TemplateAPI
	Identity  identity.API
}

func NewService(entries EntrySource, templates TemplateAPI, ident identity.API) *Service {
	return &Service{Entries: entries, Templates: templates, Identity: ident}
}

type RankingsPage struct {
	Rankings    []Ranking `json:"rankings"`
	Total       int       `json:"total"`
	HasNextPage bool      `json:"hasNextPage"`
}

// Rankings returns one page of the full ranking over generated entries
// matching the filter.
func (s *Service) Rankings(ctx context.Context, filter Filter, limit, offset int) (RankingsPage, error) {
	rows, err := s.load(ctx, filter)
	if err != nil {
		return RankingsPage{}, err
	}
	full := BuildRankings(rows)
	page, hasNext := Paginate(full, limit, offset)
	s.resolveNames(ctx, page)
	return RankingsPage{Rankings: page, Total: len(full), HasNextPage: hasNext}, nil
}

// Overall computes global statistics over the filtered set together with the
// per-department breakdown (each department nesting its role breakdown).
func (s *Service) Overall(ctx context.Context, filter Filter) (OverallStatistics, error) {
	rows, err := s.load(ctx, filter)
	if err != nil {
		return OverallStatistics{}, err
	}
	return OverallStatistics{
		Statistics:  ComputeStatistics(BuildRankings(rows)),
		Departments: GroupByDepartment(rows),
	}, nil
}

// ShapeOverall adapts the overall statistics to the department filter: no
// filter returns the global statistics with the full breakdown, exactly one
// department returns that department's statistics directly, and several
// departments return the list of their statistics.
func ShapeOverall(overall OverallStatistics, filter Filter) any {
	switch len(filter.Departments) {
	case 0:
		return overall
	case 1:
		for _, dept := range overall.Departments {
			if dept.DepartmentSlug == filter.Departments[0] {
				return dept
			}
		}
		return DepartmentStatistics{DepartmentSlug: filter.Departments[0]}
	default:
		return overall.Departments
	}
}

func (s *Service) Roles(ctx context.Context, filter Filter) ([]RoleStatistics, error) {
	rows, err := s.load(ctx, filter)
	if err != nil {
		return nil, err
	}
	return GroupByRole(rows), nil
}

func (s *Service) TopPerformers(ctx context.Context, filter Filter) (Cohort, error) {
	rows, err := s.load(ctx, filter)
	if err != nil {
		return Cohort{}, err
	}
	stats := ComputeStatistics(BuildRankings(rows))
	s.resolveNames(ctx, stats.Top.Members)
	return stats.Top, nil
}

func (s *Service) BottomPerformers(ctx context.Context, filter Filter) (Cohort, error) {
	rows, err := s.load(ctx, filter)
	if err != nil {
		return Cohort{}, err
	}
	stats := ComputeStatistics(BuildRankings(rows))
	s.resolveNames(ctx, stats.Bottom.Members)
	return stats.Bottom, nil
}

// load fetches generated entries for the period, annotates each with its
// template's department/role/max marks, and applies the filter.
func (s *Service) load(ctx context.Context, filter Filter) ([]EmployeeEntry, error) {
	entries, err := s.Entries.ListByStatus(ctx, entry.StatusGenerated, filter.Month, filter.Year)
	if err != nil {
		return nil, err
	}

	templates := make(map[string]template.Template)
	rows := make([]EmployeeEntry, 0, len(entries))
	for _, e := range entries {
		tmpl, ok := templates[e.TemplateID]
		if !ok {
			tmpl, err = s.Templates.GetByID(ctx, e.TemplateID)
			if err != nil {
				slog.Warn("stats template lookup failed", "templateId", e.TemplateID, "err", err)
				continue
			}
			templates[e.TemplateID] = tmpl
		}
		rows = append(rows, EmployeeEntry{
			EmployeeID:     e.CreatedFor,
			DepartmentSlug: tmpl.DepartmentSlug,
			Role:           tmpl.Role,
			TotalScore:     e.TotalScore,
			MaxPossible:    tmpl.MaxTotal(),
		})
	}
	return FilterEntries(rows, filter), nil
}

// resolveNames decorates rankings with member names, best effort: an
// unreachable identity service degrades the report, never fails it.
func (s *Service) resolveNames(ctx context.Context, rankings []Ranking) {
	if s.Identity == nil {
		return
	}
	for i := range rankings {
		member, err := s.Identity.MemberByID(ctx, rankings[i].EmployeeID)
		if err != nil {
			slog.Warn("ranking name lookup failed", "employeeId", rankings[i].EmployeeID, "err", err)
			continue
		}
		rankings[i].EmployeeName = member.Name
	}
}
