package template

import (
	"errors"
	"testing"
)

func f(v float64) *float64 { return &v }

func disposalTemplate() Template {
	return Template{
		Name:           "Monthly Disposal",
		DepartmentSlug: "revenue-department",
		Role:           "tehsildar",
		Items: []Item{
			{
				Name:     "case_disposal_rate",
				MaxMarks: 10,
				KpiType:  TypePercentage,
				Rules: []Rule{
					{Value: f(90), Score: 10},
					{Value: f(70), Score: 7},
					{Value: f(50), Score: 5},
				},
			},
			{
				Name:     "field_visits",
				MaxMarks: 5,
				KpiType:  TypeQuantitative,
				Rules: []Rule{
					{Min: f(10), Max: f(1000), Score: 5},
					{Min: f(5), Max: f(9), Score: 3},
				},
			},
			{
				Name:     "record_updated",
				MaxMarks: 5,
				KpiType:  TypeBinary,
				Rules: []Rule{
					{Match: "yes", Score: 5},
					{Match: "no", Score: 0},
				},
			},
			{Name: "inspection_marks", MaxMarks: 20, KpiType: TypeScore},
		},
	}
}

func TestPercentageScoringTakesHighestSatisfiedThreshold(t *testing.T) {
	tmpl := disposalTemplate()
	cases := []struct {
		input float64
		want  float64
	}{
		{96, 10},
		{90, 10},
		{75, 7},
		{50, 5},
		{40, 0},
	}
	for _, tc := range cases {
		scored, err := ValidateAndScore(tmpl, []RawValue{{Name: "case_disposal_rate", Value: tc.input}})
		if err != nil {
			t.Fatalf("input %v: unexpected error %v", tc.input, err)
		}
		if scored[0].Score != tc.want {
			t.Fatalf("input %v: expected score %v, got %v", tc.input, tc.want, scored[0].Score)
		}
	}
}

func TestScoreTypeClampsAtMaxMarks(t *testing.T) {
	tmpl := disposalTemplate()
	scored, err := ValidateAndScore(tmpl, []RawValue{{Name: "inspection_marks", Value: float64(25)}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if scored[0].Score != 20 {
		t.Fatalf("expected clamped score 20, got %v", scored[0].Score)
	}

	scored, err = ValidateAndScore(tmpl, []RawValue{{Name: "inspection_marks", Value: float64(15)}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if scored[0].Score != 15 {
		t.Fatalf("expected score 15, got %v", scored[0].Score)
	}
}

func TestQuantitativeRangeAndExactRules(t *testing.T) {
	tmpl := disposalTemplate()
	scored, err := ValidateAndScore(tmpl, []RawValue{{Name: "field_visits", Value: float64(12)}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if scored[0].Score != 5 {
		t.Fatalf("expected range score 5, got %v", scored[0].Score)
	}

	scored, err = ValidateAndScore(tmpl, []RawValue{{Name: "field_visits", Value: float64(2)}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if scored[0].Score != 0 {
		t.Fatalf("expected no matching rule to score 0, got %v", scored[0].Score)
	}
}

func TestBinaryExactMatch(t *testing.T) {
	tmpl := disposalTemplate()
	scored, err := ValidateAndScore(tmpl, []RawValue{{Name: "record_updated", Value: "yes"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if scored[0].Score != 5 {
		t.Fatalf("expected score 5, got %v", scored[0].Score)
	}
}

func TestValidateAndScoreRejectsOutOfDomainValues(t *testing.T) {
	tmpl := disposalTemplate()
	cases := []RawValue{
		{Name: "case_disposal_rate", Value: float64(120)},
		{Name: "case_disposal_rate", Value: float64(-5)},
		{Name: "case_disposal_rate", Value: "high"},
		{Name: "field_visits", Value: float64(-1)},
		{Name: "record_updated", Value: float64(1)},
		{Name: "inspection_marks", Value: float64(-2)},
	}
	for _, rv := range cases {
		if _, err := ValidateAndScore(tmpl, []RawValue{rv}); !errors.Is(err, ErrInvalidValue) {
			t.Fatalf("%s=%v: expected ErrInvalidValue, got %v", rv.Name, rv.Value, err)
		}
	}
}

func TestValidateAndScoreRejectsUnknownItem(t *testing.T) {
	tmpl := disposalTemplate()
	if _, err := ValidateAndScore(tmpl, []RawValue{{Name: "mystery", Value: float64(1)}}); !errors.Is(err, ErrUnknownItem) {
		t.Fatalf("expected ErrUnknownItem, got %v", err)
	}
}

func TestValidateItemsListsAllUnknownNames(t *testing.T) {
	tmpl := disposalTemplate()
	err := ValidateItems(tmpl, []RawValue{
		{Name: "field_visits", Value: float64(3)},
		{Name: "bogus_one", Value: float64(1)},
		{Name: "bogus_two", Value: float64(2)},
	})
	if !errors.Is(err, ErrUnknownItem) {
		t.Fatalf("expected ErrUnknownItem, got %v", err)
	}
}

func TestValidateCompletenessRequiresEveryItem(t *testing.T) {
	tmpl := disposalTemplate()
	err := ValidateCompleteness(tmpl, []RawValue{{Name: "field_visits", Value: float64(3)}})
	if !errors.Is(err, ErrMissingItem) {
		t.Fatalf("expected ErrMissingItem, got %v", err)
	}

	full := []RawValue{
		{Name: "case_disposal_rate", Value: float64(80)},
		{Name: "field_visits", Value: float64(11)},
		{Name: "record_updated", Value: "yes"},
		{Name: "inspection_marks", Value: float64(18)},
	}
	if err := ValidateCompleteness(tmpl, full); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTotalScoreSumsItemScores(t *testing.T) {
	tmpl := disposalTemplate()
	scored, err := ValidateAndScore(tmpl, []RawValue{
		{Name: "case_disposal_rate", Value: float64(96)},
		{Name: "field_visits", Value: float64(11)},
		{Name: "record_updated", Value: "yes"},
		{Name: "inspection_marks", Value: float64(18)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total := TotalScore(scored); total != 38 {
		t.Fatalf("expected total 38, got %v", total)
	}
	if max := tmpl.MaxTotal(); max != 40 {
		t.Fatalf("expected max total 40, got %v", max)
	}
}
