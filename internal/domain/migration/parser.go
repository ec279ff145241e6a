package migration

import (
	"math"
	"strconv"
	"strings"
)

// RoleTehsildar officers preside over several courts, so the same name can
// recur with a different court in column 1.
const RoleTehsildar = "tehsildar"

// Record is one officer's raw KPI values extracted from a CSV data row.
type Record struct {
	OfficerName string
	CourtName   string
	Values      map[string]float64
}

// ParseCSV splits the raw text into a primary header row, a sub-header row and
// data rows, builds a header map through the fuzzy matcher, and extracts KPI
// values per row. Rows without an officer name or without a single extractable
// KPI value are dropped silently.
//
// Percentage KPIs are not read from the fuzzy-matched column. The supported
// layouts place a registered/disposed/pending triplet per KPI after the
// officer and court columns, so the block starts at 2 + ordinal*3. This is a
// structural contract of the historical sheets, not a header lookup.
func ParseCSV(text string, cfg ParserConfig, role string) ([]Record, []HeaderMapping, error) {
	lines := splitLines(text)
	if len(lines) < 2 {
		return nil, nil, ErrMalformedCSV
	}

	headers := strings.Split(lines[0], ",")

	var mappings []HeaderMapping
	officerColumn := 0
	if mapping := FindBestHeaderMatch(cfg.OfficerNameColumn, headers); mapping != nil {
		officerColumn = columnIndex(headers, mapping.OriginalHeader)
		mappings = append(mappings, *mapping)
	}

	kpiColumns := make(map[string]int, len(cfg.Kpis))
	for _, kpi := range cfg.Kpis {
		for _, term := range kpi.SearchTerms {
			if mapping := FindBestHeaderMatch(term, headers); mapping != nil {
				mapping.NormalizedHeader = kpi.Name
				kpiColumns[kpi.Name] = columnIndex(headers, mapping.OriginalHeader)
				mappings = append(mappings, *mapping)
				break
			}
		}
	}

	var records []Record
	for _, line := range lines[2:] {
		columns := strings.Split(line, ",")
		if len(columns) < 2 || officerColumn >= len(columns) {
			continue
		}
		officerName := strings.TrimSpace(columns[officerColumn])
		if officerName == "" {
			continue
		}

		values := make(map[string]float64, len(cfg.Kpis))
		for ordinal, kpi := range cfg.Kpis {
			switch kpi.Calculation {
			case CalcPercentage:
				if pct, ok := percentageFromBlock(columns, 2+ordinal*3); ok {
					values[kpi.Name] = pct
				}
			case CalcDirect:
				column, mapped := kpiColumns[kpi.Name]
				if !mapped || column >= len(columns) {
					continue
				}
				if v, err := strconv.ParseFloat(strings.TrimSpace(columns[column]), 64); err == nil {
					values[kpi.Name] = v
				}
			}
		}
		if len(values) == 0 {
			continue
		}

		record := Record{OfficerName: officerName, Values: values}
		if role == RoleTehsildar && len(columns) > 1 {
			record.CourtName = strings.TrimSpace(columns[1])
		}
		records = append(records, record)
	}

	return records, mappings, nil
}

// percentageFromBlock reads the registered/disposed pair at baseIndex and
// derives min(disposed/registered*100, 100) rounded to 2 decimals. A zero or
// missing registered count yields no value rather than a division error.
func percentageFromBlock(columns []string, baseIndex int) (float64, bool) {
	if baseIndex+1 >= len(columns) {
		return 0, false
	}
	registered, err := strconv.Atoi(strings.TrimSpace(columns[baseIndex]))
	if err != nil || registered <= 0 {
		return 0, false
	}
	disposed, err := strconv.Atoi(strings.TrimSpace(columns[baseIndex+1]))
	if err != nil {
		return 0, false
	}
	pct := float64(disposed) / float64(registered) * 100
	if pct > 100 {
		pct = 100
	}
	return math.Round(pct*100) / 100, true
}

func splitLines(text string) []string {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	raw := strings.Split(normalized, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

func columnIndex(headers []string, original string) int {
	for i, header := range headers {
		if header == original {
			return i
		}
	}
	return 0
}
