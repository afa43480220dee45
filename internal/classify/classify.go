package classify

import (
	"fmt"
	"strings"

	"github.com/joescharf/changeflow/internal/models"
)

// Answers holds the two raw single-choice answers from the request form.
// Empty strings mean the question has not been answered.
type Answers struct {
	ServiceDown string `json:"service_down" yaml:"service_down"`
	PreApproved string `json:"pre_approved" yaml:"pre_approved"`
}

// Classify maps the two decision-tree answers to a change category.
// Evaluated top-down: a service outage always wins over a pre-approved model.
func Classify(serviceDown, preApproved bool) models.Category {
	if serviceDown {
		return models.CategoryEmergency
	}
	if preApproved {
		return models.CategoryStandard
	}
	return models.CategoryNormal
}

// ClassifyAnswers parses both answers and classifies them.
// Both answers are required; a missing or unrecognized one returns ErrIncompleteInput.
func ClassifyAnswers(a Answers) (models.Category, error) {
	serviceDown, err := ParseAnswer(a.ServiceDown)
	if err != nil {
		return "", fmt.Errorf("service down: %w", err)
	}
	preApproved, err := ParseAnswer(a.PreApproved)
	if err != nil {
		return "", fmt.Errorf("pre-approved: %w", err)
	}
	return Classify(serviceDown, preApproved), nil
}

// ParseAnswer resolves a yes/no answer. Matching is case-insensitive.
func ParseAnswer(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "true":
		return true, nil
	case "no", "n", "false":
		return false, nil
	case "":
		return false, fmt.Errorf("answer required: %w", models.ErrIncompleteInput)
	default:
		return false, fmt.Errorf("unrecognized answer %q (use yes or no): %w", s, models.ErrIncompleteInput)
	}
}

// ParseCategory resolves a category name, case-insensitively.
func ParseCategory(s string) (models.Category, error) {
	for _, c := range models.Categories() {
		if strings.EqualFold(strings.TrimSpace(s), string(c)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q: %w", s, models.ErrPrecondition)
}
