package cmd

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joescharf/changeflow/internal/classify"
	"github.com/joescharf/changeflow/internal/models"
	"github.com/joescharf/changeflow/internal/output"
)

func TestClassifyRun_Table(t *testing.T) {
	tests := []struct {
		name       string
		answers    classify.Answers
		wantOut    string
		wantAssess bool
	}{
		{"emergency", classify.Answers{ServiceDown: "yes", PreApproved: "no"}, "Category: Emergency", false},
		{"emergency wins over pre-approved", classify.Answers{ServiceDown: "yes", PreApproved: "yes"}, "Category: Emergency", false},
		{"standard", classify.Answers{ServiceDown: "no", PreApproved: "yes"}, "Category: Standard", false},
		{"normal", classify.Answers{ServiceDown: "no", PreApproved: "no"}, "Category: Normal", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testEnv(t)

			require.NoError(t, classifyRun(tt.answers))

			out := stdout(t)
			assert.Contains(t, out, tt.wantOut)
			if tt.wantAssess {
				assert.Contains(t, out, "changeflow assess")
			} else {
				assert.NotContains(t, out, "changeflow assess")
			}
		})
	}
}

func TestClassifyRun_JSON(t *testing.T) {
	testEnv(t)
	outputFormat = output.FormatJSON

	require.NoError(t, classifyRun(classify.Answers{ServiceDown: "no", PreApproved: "no"}))

	var got classifyResult
	require.NoError(t, json.Unmarshal([]byte(stdout(t)), &got))
	assert.Equal(t, models.CategoryNormal, got.Category)
	assert.Equal(t, "badge-normal", got.Details.DisplayClass)
	assert.True(t, got.NeedsRiskAssessment)
}

func TestClassifyRun_Markdown(t *testing.T) {
	testEnv(t)
	outputFormat = output.FormatMarkdown

	require.NoError(t, classifyRun(classify.Answers{ServiceDown: "yes", PreApproved: "no"}))
	assert.Contains(t, stdout(t), "## Emergency Change")
}

func TestClassifyRun_IncompleteAnswers(t *testing.T) {
	testEnv(t)

	err := classifyRun(classify.Answers{ServiceDown: "no"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrIncompleteInput))
	assert.Empty(t, stdout(t))
}
