package risk

import (
	"fmt"
	"strconv"

	"github.com/joescharf/changeflow/internal/models"
)

// Tier upper bounds, inclusive.
const (
	LowMax    = 2.0
	MediumMax = 3.5
)

var dimensions = []models.Dimension{
	{Key: "impact_scope", Label: "Impact scope", Hint: "1 = single component, 5 = organization-wide"},
	{Key: "complexity", Label: "Complexity", Hint: "1 = trivial config, 5 = multi-system redesign"},
	{Key: "reversibility", Label: "Reversibility", Hint: "1 = instant rollback, 5 = irreversible"},
	{Key: "testing_confidence", Label: "Testing confidence", Hint: "1 = fully tested in prod-like env, 5 = untested"},
	{Key: "deployment_history", Label: "Deployment history", Hint: "1 = routine, done many times, 5 = first time"},
	{Key: "timing_sensitivity", Label: "Timing sensitivity", Hint: "1 = off-peak, no events, 5 = peak or freeze window"},
	{Key: "dependency_count", Label: "Dependency count", Hint: "1 = no dependents, 5 = many downstream systems"},
}

// Dimensions returns the seven risk dimensions in display order.
func Dimensions() []models.Dimension {
	out := make([]models.Dimension, len(dimensions))
	copy(out, dimensions)
	return out
}

// Assess computes the composite score (arithmetic mean over however many scores
// are given) and the tier it falls into.
func Assess(scores []int) (models.RiskAssessment, error) {
	if len(scores) == 0 {
		return models.RiskAssessment{}, fmt.Errorf("at least one score is required: %w", models.ErrPrecondition)
	}

	total := 0
	for i, s := range scores {
		if s < models.MinScore || s > models.MaxScore {
			return models.RiskAssessment{}, fmt.Errorf("score %d is %d, must be between %d and %d: %w",
				i+1, s, models.MinScore, models.MaxScore, models.ErrPrecondition)
		}
		total += s
	}

	composite := float64(total) / float64(len(scores))
	return models.RiskAssessment{
		CompositeScore: composite,
		Tier:           TierFor(composite),
	}, nil
}

// TierFor buckets an unrounded composite score.
func TierFor(composite float64) models.RiskTier {
	switch {
	case composite <= LowMax:
		return models.TierLow
	case composite <= MediumMax:
		return models.TierMedium
	default:
		return models.TierHigh
	}
}

// FormatScore renders a composite score with two decimals, for display only.
func FormatScore(composite float64) string {
	return strconv.FormatFloat(composite, 'f', 2, 64)
}

// TierBadgeClass returns the display class for a tier.
func TierBadgeClass(t models.RiskTier) string {
	switch t {
	case models.TierLow:
		return "badge-low"
	case models.TierMedium:
		return "badge-medium"
	case models.TierHigh:
		return "badge-high"
	default:
		return ""
	}
}
