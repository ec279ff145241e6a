package stats

import (
	"math"
	"sort"
	"strings"
)

// EmployeeEntry is the slice of a stored entry the statistics engine needs:
// one row per generated entry, annotated with its template's department, role
// and maximum reachable score.
type EmployeeEntry struct {
	EmployeeID     string
	DepartmentSlug string
	Role           string
	TotalScore     float64
	MaxPossible    float64
}

// defaultDepartments is the inclusion set applied when a filter names none.
var defaultDepartments = []string{"revenue-department"}

// BuildRankings aggregates entries per employee and ranks them by descending
// percentage. Employees tie-break by first appearance in the input, and ranks
// are consecutive, never shared.
func BuildRankings(rows []EmployeeEntry) []Ranking {
	index := make(map[string]int, len(rows))
	rankings := make([]Ranking, 0, len(rows))
	for _, row := range rows {
		i, ok := index[row.EmployeeID]
		if !ok {
			i = len(rankings)
			index[row.EmployeeID] = i
			rankings = append(rankings, Ranking{
				EmployeeID:     row.EmployeeID,
				DepartmentSlug: row.DepartmentSlug,
				Role:           row.Role,
			})
		}
		rankings[i].EntryCount++
		rankings[i].TotalScore += row.TotalScore
		rankings[i].MaxPossible += row.MaxPossible
	}

	for i := range rankings {
		if rankings[i].MaxPossible > 0 {
			rankings[i].Percentage = round2(rankings[i].TotalScore / rankings[i].MaxPossible * 100)
		}
	}

	sort.SliceStable(rankings, func(i, j int) bool {
		return rankings[i].Percentage > rankings[j].Percentage
	})
	for i := range rankings {
		rankings[i].Rank = i + 1
	}
	return rankings
}

// FilterEntries applies department inclusion/exclusion and prefix-based role
// filters.
func FilterEntries(rows []EmployeeEntry, filter Filter) []EmployeeEntry {
	include := filter.Departments
	if len(include) == 0 {
		include = defaultDepartments
	}

	var out []EmployeeEntry
	for _, row := range rows {
		if !containsString(include, row.DepartmentSlug) {
			continue
		}
		if containsString(filter.ExcludeDepartments, row.DepartmentSlug) {
			continue
		}
		if len(filter.Roles) > 0 && !matchesRolePrefix(filter.Roles, row.Role) {
			continue
		}
		if matchesRolePrefix(filter.ExcludeRoles, row.Role) {
			continue
		}
		out = append(out, row)
	}
	return out
}

// Paginate slices the full ranking; the second return reports whether more
// pages follow.
func Paginate(rankings []Ranking, limit, offset int) ([]Ranking, bool) {
	if offset >= len(rankings) {
		return nil, false
	}
	end := len(rankings)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return rankings[offset:end], end < len(rankings)
}

// ComputeStatistics summarizes a ranked set: mean percentage, the 4-bucket
// score distribution, and the 5% cohorts at both ends.
func ComputeStatistics(rankings []Ranking) Statistics {
	stats := Statistics{EmployeeCount: len(rankings)}
	if len(rankings) == 0 {
		return stats
	}

	var sum float64
	for _, r := range rankings {
		sum += r.Percentage
		switch {
		case r.Percentage >= 90:
			stats.Distribution.Excellent++
		case r.Percentage >= 70:
			stats.Distribution.Good++
		case r.Percentage >= 50:
			stats.Distribution.Average++
		default:
			stats.Distribution.Poor++
		}
	}
	stats.AveragePercentage = round2(sum / float64(len(rankings)))

	size := cohortSize(len(rankings))
	stats.Top = buildCohort(rankings[:size], rankings[size-1].Percentage)
	bottom := rankings[len(rankings)-size:]
	stats.Bottom = buildCohort(bottom, bottom[0].Percentage)
	return stats
}

// GroupByDepartment recomputes rankings and statistics per department, each
// annotated with its nested per-role breakdown.
func GroupByDepartment(rows []EmployeeEntry) []DepartmentStatistics {
	groups, order := groupRows(rows, func(row EmployeeEntry) string { return row.DepartmentSlug })
	out := make([]DepartmentStatistics, 0, len(order))
	for _, slug := range order {
		out = append(out, DepartmentStatistics{
			DepartmentSlug: slug,
			Statistics:     ComputeStatistics(BuildRankings(groups[slug])),
			Roles:          GroupByRole(groups[slug]),
		})
	}
	return out
}

func GroupByRole(rows []EmployeeEntry) []RoleStatistics {
	groups, order := groupRows(rows, func(row EmployeeEntry) string { return row.Role })
	out := make([]RoleStatistics, 0, len(order))
	for _, role := range order {
		out = append(out, RoleStatistics{
			Role:       role,
			Statistics: ComputeStatistics(BuildRankings(groups[role])),
		})
	}
	return out
}

func groupRows(rows []EmployeeEntry, key func(EmployeeEntry) string) (map[string][]EmployeeEntry, []string) {
	groups := make(map[string][]EmployeeEntry)
	var order []string
	for _, row := range rows {
		k := key(row)
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], row)
	}
	return groups, order
}

func buildCohort(members []Ranking, cutoff float64) Cohort {
	var sum float64
	for _, m := range members {
		sum += m.Percentage
	}
	out := make([]Ranking, len(members))
	copy(out, members)
	return Cohort{
		Size:    len(members),
		Cutoff:  cutoff,
		Average: round2(sum / float64(len(members))),
		Members: out,
	}
}

func cohortSize(total int) int {
	return int(math.Ceil(float64(total) * 0.05))
}

func matchesRolePrefix(prefixes []string, role string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(role, prefix) {
			return true
		}
	}
	return false
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
