package template

import (
	"fmt"
	"sort"
	"strings"
)

// ValidateDefinition checks a template as authored: item types from the closed
// set, unique item names, and well-formed percentage rule sets. Percentage
// thresholds must carry distinct values and award higher scores for higher
// thresholds, otherwise the greatest-satisfied-threshold scorer silently
// produces wrong results.
func ValidateDefinition(t Template) error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("name is required: %w", ErrInvalidTemplate)
	}
	if strings.TrimSpace(t.DepartmentSlug) == "" {
		return fmt.Errorf("departmentSlug is required: %w", ErrInvalidTemplate)
	}
	if strings.TrimSpace(t.Role) == "" {
		return fmt.Errorf("role is required: %w", ErrInvalidTemplate)
	}

	seen := make(map[string]bool, len(t.Items))
	for _, item := range t.Items {
		if strings.TrimSpace(item.Name) == "" {
			return fmt.Errorf("item name is required: %w", ErrInvalidTemplate)
		}
		if seen[item.Name] {
			return fmt.Errorf("duplicate item %q: %w", item.Name, ErrInvalidTemplate)
		}
		seen[item.Name] = true
		if !ValidItemType(item.KpiType) {
			return fmt.Errorf("item %q has type %q: %w", item.Name, item.KpiType, ErrUnknownKpiType)
		}
		if item.MaxMarks < 0 {
			return fmt.Errorf("item %q maxMarks must not be negative: %w", item.Name, ErrInvalidTemplate)
		}
		if item.KpiType == TypePercentage {
			if err := validateThresholds(item); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateThresholds(item Item) error {
	rules := make([]Rule, 0, len(item.Rules))
	for _, rule := range item.Rules {
		if rule.Value == nil {
			return fmt.Errorf("item %q percentage rules require a value threshold: %w", item.Name, ErrInvalidTemplate)
		}
		rules = append(rules, rule)
	}
	sort.SliceStable(rules, func(i, j int) bool {
		return *rules[i].Value > *rules[j].Value
	})
	for i := 1; i < len(rules); i++ {
		if *rules[i].Value == *rules[i-1].Value {
			return fmt.Errorf("item %q has duplicate threshold %v: %w", item.Name, *rules[i].Value, ErrInvalidTemplate)
		}
		if rules[i].Score > rules[i-1].Score {
			return fmt.Errorf("item %q thresholds must award non-decreasing scores: %w", item.Name, ErrInvalidTemplate)
		}
	}
	return nil
}
