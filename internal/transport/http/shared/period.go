package shared

import (
	"net/http"
	"strconv"
	"strings"
)

// ParsePeriod reads month and year query parameters. Zero means the caller
// did not filter on that component.
func ParsePeriod(r *http.Request) (month, year int) {
	if raw := r.URL.Query().Get("month"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			month = v
		}
	}
	if raw := r.URL.Query().Get("year"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			year = v
		}
	}
	return month, year
}

// ParseList splits a comma-separated query parameter, dropping empty parts.
func ParseList(r *http.Request, name string) []string {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
