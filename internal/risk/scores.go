package risk

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/joescharf/changeflow/internal/models"
)

// ScoresFromMap orders keyed dimension scores into a slice in display order.
// Every dimension must be present; unknown keys are rejected.
func ScoresFromMap(m map[string]int) ([]int, error) {
	known := make(map[string]bool, len(dimensions))
	scores := make([]int, 0, len(dimensions))
	for _, d := range dimensions {
		known[d.Key] = true
		v, ok := m[d.Key]
		if !ok {
			return nil, fmt.Errorf("missing score for %s: %w", d.Label, models.ErrIncompleteInput)
		}
		scores = append(scores, v)
	}
	for k := range m {
		if !known[k] {
			return nil, fmt.Errorf("unknown risk dimension %q: %w", k, models.ErrPrecondition)
		}
	}
	return scores, nil
}

// ParseScores parses a comma-separated score list such as "1,2,3,4,5,1,2".
// Blank input yields no scores; a blank entry inside a list is rejected.
func ParseScores(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	scores := make([]int, 0, len(parts))
	for i, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, fmt.Errorf("score %d is empty: %w", i+1, models.ErrIncompleteInput)
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid score %q: %w", part, models.ErrPrecondition)
		}
		scores = append(scores, n)
	}
	return scores, nil
}

// CheckComplete requires one score per risk dimension, the way ScoresFromMap
// does for keyed input.
func CheckComplete(scores []int) error {
	if len(scores) != len(dimensions) {
		return fmt.Errorf("expected %d scores, one per risk dimension, got %d: %w",
			len(dimensions), len(scores), models.ErrIncompleteInput)
	}
	return nil
}

// ParseTier resolves a tier name, case-insensitively. Empty input is TierUnset.
func ParseTier(s string) (models.RiskTier, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return models.TierUnset, nil
	}
	for _, t := range []models.RiskTier{models.TierLow, models.TierMedium, models.TierHigh} {
		if strings.EqualFold(s, string(t)) {
			return t, nil
		}
	}
	return models.TierUnset, fmt.Errorf("unknown risk tier %q: %w", s, models.ErrPrecondition)
}
