package advisor

import (
	"fmt"

	"github.com/joescharf/changeflow/internal/approval"
	"github.com/joescharf/changeflow/internal/classify"
	"github.com/joescharf/changeflow/internal/models"
	"github.com/joescharf/changeflow/internal/risk"
)

// Session is the view state of one assessment. Each transition returns a new
// Session; derived fields are recomputed from the latest inputs only.
type Session struct {
	Category         models.Category              `json:"category,omitempty"`
	Details          models.ClassificationDetails `json:"details"`
	Assessment       *models.RiskAssessment       `json:"assessment,omitempty"`
	Path             models.ApprovalPath          `json:"path"`
	RiskPanelVisible bool                         `json:"risk_panel_visible"`
	ChecklistVisible bool                         `json:"checklist_visible"`
}

// New returns the initial, pre-submission state.
func New() Session {
	return Session{Path: models.NoPath()}
}

// Reset clears every derived value.
func (s Session) Reset() Session {
	return New()
}

// Submit classifies the answers. Earlier scores, tiers, and paths are dropped.
// A Normal change opens the risk panel and hides the path until it is scored;
// Standard and Emergency changes resolve their path immediately.
func (s Session) Submit(a classify.Answers) (Session, error) {
	category, err := classify.ClassifyAnswers(a)
	if err != nil {
		return s, err
	}

	next := Session{
		Category: category,
		Details:  classify.Describe(category),
		Path:     models.NoPath(),
	}

	if approval.RequiresRiskAssessment(category) {
		next.RiskPanelVisible = true
		return next, nil
	}

	path, err := approval.Resolve(category, models.TierUnset)
	if err != nil {
		return s, err
	}
	next.Path = path
	next.ChecklistVisible = true
	return next, nil
}

// Score runs the risk assessment for a Normal change and resolves its path.
func (s Session) Score(scores []int) (Session, error) {
	if !approval.RequiresRiskAssessment(s.Category) {
		return s, fmt.Errorf("risk scoring applies only to Normal changes (current: %q): %w",
			s.Category, models.ErrPrecondition)
	}

	assessment, err := risk.Assess(scores)
	if err != nil {
		return s, err
	}

	path, err := approval.Resolve(s.Category, assessment.Tier)
	if err != nil {
		return s, err
	}

	next := s
	next.Assessment = &assessment
	next.Path = path
	next.ChecklistVisible = true
	return next, nil
}

// Tier returns the assessed tier, or TierUnset before scoring.
func (s Session) Tier() models.RiskTier {
	if s.Assessment == nil {
		return models.TierUnset
	}
	return s.Assessment.Tier
}
