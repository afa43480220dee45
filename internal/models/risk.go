package models

// Score bounds for a single risk dimension.
const (
	MinScore = 1
	MaxScore = 5
)

// RiskTier is the coarse bucket derived from a composite risk score.
type RiskTier string

const (
	// TierUnset means no risk assessment has been made yet.
	TierUnset  RiskTier = ""
	TierLow    RiskTier = "Low"
	TierMedium RiskTier = "Medium"
	TierHigh   RiskTier = "High"
)

// Valid reports whether t is Low, Medium, or High.
func (t RiskTier) Valid() bool {
	switch t {
	case TierLow, TierMedium, TierHigh:
		return true
	}
	return false
}

// Dimension is one of the fixed axes a change is scored on.
type Dimension struct {
	Key   string `json:"key" yaml:"key"`
	Label string `json:"label" yaml:"label"`
	Hint  string `json:"hint" yaml:"hint"`
}

// RiskAssessment is the composite score and tier for one set of dimension scores.
type RiskAssessment struct {
	CompositeScore float64  `json:"composite_score" yaml:"composite_score"`
	Tier           RiskTier `json:"risk_tier" yaml:"risk_tier"`
}
