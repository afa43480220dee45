package advisor

import (
	"math/rand"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/joescharf/changeflow/internal/classify"
	"github.com/joescharf/changeflow/internal/models"
	"github.com/joescharf/changeflow/internal/risk"
)

// Request is a complete set of inputs for a one-shot recommendation.
// Scores are only used for Normal changes.
type Request struct {
	Answers classify.Answers `json:"answers"`
	Scores  []int            `json:"scores,omitempty"`
}

// Recommendation is the full result of classifying and routing a change.
type Recommendation struct {
	ID                  string                       `json:"id" yaml:"id"`
	Category            models.Category              `json:"category" yaml:"category"`
	Details             models.ClassificationDetails `json:"details" yaml:"details"`
	Assessment          *models.RiskAssessment       `json:"assessment,omitempty" yaml:"assessment,omitempty"`
	DisplayScore        string                       `json:"display_score,omitempty" yaml:"display_score,omitempty"`
	NeedsRiskAssessment bool                         `json:"needs_risk_assessment" yaml:"needs_risk_assessment"`
	Path                models.ApprovalPath          `json:"path" yaml:"path"`
	Checklist           []models.ChecklistItem       `json:"checklist,omitempty" yaml:"checklist,omitempty"`
	CreatedAt           time.Time                    `json:"created_at" yaml:"created_at"`
}

// Recommend runs the whole decision chain for one request.
// A Normal change without scores comes back with an empty path and
// NeedsRiskAssessment set.
func Recommend(req Request) (*Recommendation, error) {
	s, err := New().Submit(req.Answers)
	if err != nil {
		return nil, err
	}

	if s.RiskPanelVisible && len(req.Scores) > 0 {
		s, err = s.Score(req.Scores)
		if err != nil {
			return nil, err
		}
	}

	return fromSession(s), nil
}

func fromSession(s Session) *Recommendation {
	rec := &Recommendation{
		ID:                  newULID(),
		Category:            s.Category,
		Details:             s.Details,
		Assessment:          s.Assessment,
		NeedsRiskAssessment: s.RiskPanelVisible && s.Assessment == nil,
		Path:                s.Path,
		CreatedAt:           time.Now().UTC(),
	}
	if s.Assessment != nil {
		rec.DisplayScore = risk.FormatScore(s.Assessment.CompositeScore)
	}
	if s.ChecklistVisible {
		rec.Checklist = Checklist()
	}
	return rec
}

// newULID generates a new ULID string.
func newULID() string {
	entropy := rand.New(rand.NewSource(time.Now().UnixNano()))
	return ulid.MustNew(ulid.Timestamp(time.Now()), ulid.Monotonic(entropy, 0)).String()
}
