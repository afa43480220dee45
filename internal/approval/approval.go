package approval

import (
	"fmt"

	"github.com/joescharf/changeflow/internal/models"
)

// RequiresRiskAssessment reports whether a category needs a risk tier before
// its approval path can be resolved. Only Normal changes do.
func RequiresRiskAssessment(c models.Category) bool {
	return c == models.CategoryNormal
}

// Resolve returns the approval path for a category and risk tier.
//
// Standard and Emergency ignore the tier. A Normal change without a known tier
// resolves to an empty path, meaning the path is not yet determined. An unknown
// category is a caller error.
func Resolve(c models.Category, tier models.RiskTier) (models.ApprovalPath, error) {
	switch c {
	case models.CategoryStandard:
		return clonePath(standardFlow), nil
	case models.CategoryEmergency:
		return clonePath(emergencyFlow), nil
	case models.CategoryNormal:
		return resolveNormal(tier), nil
	default:
		return models.NoPath(), fmt.Errorf("unknown change category %q: %w", c, models.ErrPrecondition)
	}
}

func resolveNormal(tier models.RiskTier) models.ApprovalPath {
	switch tier {
	case models.TierLow:
		return clonePath(normalLowFlow)
	case models.TierMedium:
		return clonePath(normalMediumFlow)
	case models.TierHigh:
		return clonePath(normalHighFlow)
	default:
		// TierUnset or any other combination: not yet determined.
		return models.NoPath()
	}
}
