package template

import (
	"fmt"
	"math"
	"sort"
)

type RawValue struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

type ScoredValue struct {
	Name  string  `json:"name"`
	Value any     `json:"value"`
	Score float64 `json:"score"`
}

// ValidateAndScore checks every raw value against its template item's domain
// and returns the scored values. Values are scored independently; the first
// violation aborts the whole call.
func ValidateAndScore(t Template, raw []RawValue) ([]ScoredValue, error) {
	scored := make([]ScoredValue, 0, len(raw))
	for _, rv := range raw {
		item, ok := t.Item(rv.Name)
		if !ok {
			return nil, fmt.Errorf("%q: %w", rv.Name, ErrUnknownItem)
		}
		value, score, err := scoreItem(item, rv.Value)
		if err != nil {
			return nil, err
		}
		scored = append(scored, ScoredValue{Name: rv.Name, Value: value, Score: score})
	}
	return scored, nil
}

// ValidateItems rejects raw values whose names have no matching template item,
// listing every offending name. Missing items are allowed; partial updates use
// this check.
func ValidateItems(t Template, raw []RawValue) error {
	var unknown []string
	for _, rv := range raw {
		if _, ok := t.Item(rv.Name); !ok {
			unknown = append(unknown, rv.Name)
		}
	}
	if len(unknown) > 0 {
		return fmt.Errorf("%v: %w", unknown, ErrUnknownItem)
	}
	return nil
}

// ValidateCompleteness additionally requires a value for every template item.
func ValidateCompleteness(t Template, raw []RawValue) error {
	if err := ValidateItems(t, raw); err != nil {
		return err
	}
	provided := make(map[string]bool, len(raw))
	for _, rv := range raw {
		provided[rv.Name] = true
	}
	var missing []string
	for _, item := range t.Items {
		if !provided[item.Name] {
			missing = append(missing, item.Name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%v: %w", missing, ErrMissingItem)
	}
	return nil
}

func TotalScore(values []ScoredValue) float64 {
	var total float64
	for _, v := range values {
		total += v.Score
	}
	return total
}

func scoreItem(item Item, value any) (any, float64, error) {
	switch item.KpiType {
	case TypeScore:
		number, ok := asNumber(value)
		if !ok {
			return nil, 0, fmt.Errorf("%q must be a number: %w", item.Name, ErrInvalidValue)
		}
		if number < 0 {
			return nil, 0, fmt.Errorf("%q must not be negative: %w", item.Name, ErrInvalidValue)
		}
		return number, math.Min(number, item.MaxMarks), nil
	case TypePercentage:
		number, ok := asNumber(value)
		if !ok {
			return nil, 0, fmt.Errorf("%q must be a number: %w", item.Name, ErrInvalidValue)
		}
		if number < 0 || number > 100 {
			return nil, 0, fmt.Errorf("%q must be between 0 and 100: %w", item.Name, ErrInvalidValue)
		}
		return number, scoreThreshold(item.Rules, number), nil
	case TypeQuantitative:
		number, ok := asNumber(value)
		if !ok {
			return nil, 0, fmt.Errorf("%q must be a number: %w", item.Name, ErrInvalidValue)
		}
		if number < 0 {
			return nil, 0, fmt.Errorf("%q must not be negative: %w", item.Name, ErrInvalidValue)
		}
		return number, scoreNumeric(item.Rules, number), nil
	case TypeBinary, TypeQualitative:
		text, ok := value.(string)
		if !ok {
			return nil, 0, fmt.Errorf("%q must be a string: %w", item.Name, ErrInvalidValue)
		}
		return text, scoreExact(item.Rules, text), nil
	default:
		return nil, 0, fmt.Errorf("%q has type %q: %w", item.Name, item.KpiType, ErrUnknownKpiType)
	}
}

// scoreThreshold awards the score of the greatest rule threshold satisfied by
// the input. Rule sets are authored as ascending score thresholds, e.g.
// {value:90 score:10} {value:70 score:7}; an input of 96 takes the 90 bucket.
func scoreThreshold(rules []Rule, value float64) float64 {
	sorted := make([]Rule, 0, len(rules))
	for _, rule := range rules {
		if rule.Value != nil {
			sorted = append(sorted, rule)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return *sorted[i].Value > *sorted[j].Value
	})
	for _, rule := range sorted {
		if value >= *rule.Value {
			return rule.Score
		}
	}
	return 0
}

func scoreNumeric(rules []Rule, value float64) float64 {
	for _, rule := range rules {
		if rule.Min != nil && rule.Max != nil {
			if value >= *rule.Min && value <= *rule.Max {
				return rule.Score
			}
			continue
		}
		if rule.Value != nil && value == *rule.Value {
			return rule.Score
		}
	}
	return 0
}

func scoreExact(rules []Rule, value string) float64 {
	for _, rule := range rules {
		if rule.Match == value {
			return rule.Score
		}
	}
	return 0
}

func asNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}
