package shared

import (
	"strings"
	"testing"
)

func TestValidatorPeriod(t *testing.T) {
	v := NewValidator()
	v.Period(3, 2025)
	if v.HasIssues() {
		t.Fatalf("valid period must pass, got %+v", v.Issues())
	}

	v = NewValidator()
	v.Period(13, 2019)
	issues := v.Issues()
	if len(issues) != 2 {
		t.Fatalf("expected month and year issues, got %+v", issues)
	}
}

func TestValidatorMaxLen(t *testing.T) {
	v := NewValidator()
	v.MaxLen("name", strings.Repeat("x", 200), 200, "too long")
	if v.HasIssues() {
		t.Fatalf("boundary length must pass, got %+v", v.Issues())
	}

	v = NewValidator()
	v.MaxLen("name", strings.Repeat("x", 201), 200, "too long")
	if !v.HasIssues() {
		t.Fatal("over-limit value must be rejected")
	}
}

func TestValidatorIssuesAreSorted(t *testing.T) {
	v := NewValidator()
	v.Add("zeta", "last")
	v.Add("alpha", "first")
	issues := v.Issues()
	if issues[0].Field != "alpha" || issues[1].Field != "zeta" {
		t.Fatalf("issues must sort by field, got %+v", issues)
	}
}
