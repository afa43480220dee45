package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joescharf/changeflow/internal/advisor"
	"github.com/joescharf/changeflow/internal/approval"
	"github.com/joescharf/changeflow/internal/llm"
	"github.com/joescharf/changeflow/internal/models"
)

type fakeSuggester struct {
	suggestion *llm.Suggestion
	err        error
	gotDesc    string
}

func (f *fakeSuggester) SuggestScores(_ context.Context, description string, _ []models.Dimension) (*llm.Suggestion, error) {
	f.gotDesc = description
	return f.suggestion, f.err
}

func setupTestServer(t *testing.T, sg Suggester) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewServer(sg, logger).Router()
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, r)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var out map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out["error"]
}

func TestClassify_API(t *testing.T) {
	h := setupTestServer(t, nil)

	tests := []struct {
		body     string
		category models.Category
		needs    bool
	}{
		{`{"service_down":"yes","pre_approved":"yes"}`, models.CategoryEmergency, false},
		{`{"service_down":"no","pre_approved":"yes"}`, models.CategoryStandard, false},
		{`{"service_down":"no","pre_approved":"no"}`, models.CategoryNormal, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			w := do(t, h, "POST", "/api/v1/classify", tt.body)
			require.Equal(t, http.StatusOK, w.Code)

			var out classifyResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
			assert.Equal(t, tt.category, out.Category)
			assert.Equal(t, tt.needs, out.RequiresRiskAssessment)
			assert.NotEmpty(t, out.Details.Description)
		})
	}
}

func TestClassify_API_Incomplete(t *testing.T) {
	h := setupTestServer(t, nil)

	w := do(t, h, "POST", "/api/v1/classify", `{"service_down":"no"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeError(t, w), "incomplete input")

	w = do(t, h, "POST", "/api/v1/classify", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid JSON", decodeError(t, w))
}

func TestAssess_API(t *testing.T) {
	h := setupTestServer(t, nil)

	w := do(t, h, "POST", "/api/v1/assess", `{"scores":[3,3,3,4,4,4,3]}`)
	require.Equal(t, http.StatusOK, w.Code)

	var out assessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.InDelta(t, 24.0/7.0, out.CompositeScore, 1e-9)
	assert.Equal(t, models.TierMedium, out.Tier)
	assert.Equal(t, "3.43", out.DisplayScore)
	assert.Equal(t, "badge-medium", out.BadgeClass)
}

func TestAssess_API_Dimensions(t *testing.T) {
	h := setupTestServer(t, nil)

	body := `{"dimensions":{"impact_scope":5,"complexity":5,"reversibility":5,"testing_confidence":5,
		"deployment_history":5,"timing_sensitivity":5,"dependency_count":5}}`
	w := do(t, h, "POST", "/api/v1/assess", body)
	require.Equal(t, http.StatusOK, w.Code)

	var out assessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, models.TierHigh, out.Tier)

	w = do(t, h, "POST", "/api/v1/assess", `{"dimensions":{"impact_scope":5}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAssess_API_Invalid(t *testing.T) {
	h := setupTestServer(t, nil)

	w := do(t, h, "POST", "/api/v1/assess", `{"scores":[]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeError(t, w), "precondition")

	w = do(t, h, "POST", "/api/v1/assess", `{"scores":[1,1,1,7,1,1,1]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeError(t, w), "precondition")
}

func TestAssess_API_WrongScoreCount(t *testing.T) {
	h := setupTestServer(t, nil)

	for _, body := range []string{`{"scores":[4]}`, `{"scores":[5,5,5,1,1,1]}`, `{"scores":[1,1,1,1,1,1,1,1]}`} {
		w := do(t, h, "POST", "/api/v1/assess", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.Contains(t, decodeError(t, w), "expected 7 scores", body)
	}

	w := do(t, h, "POST", "/api/v1/recommend", `{"service_down":"no","pre_approved":"no","scores":[5,5,5,1,1,1]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAssess_API_ScoresAndDimensions(t *testing.T) {
	h := setupTestServer(t, nil)

	body := `{"scores":[1,1,1,1,1,1,1],"dimensions":{"impact_scope":5,"complexity":5,"reversibility":5,
		"testing_confidence":5,"deployment_history":5,"timing_sensitivity":5,"dependency_count":5}}`
	w := do(t, h, "POST", "/api/v1/assess", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeError(t, w), "not both")
}

func TestApprovalPath_API(t *testing.T) {
	h := setupTestServer(t, nil)

	w := do(t, h, "GET", "/api/v1/approval-path?category=Standard&tier=High", "")
	require.Equal(t, http.StatusOK, w.Code)
	var p models.ApprovalPath
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	assert.Len(t, p.Steps, 6)

	w = do(t, h, "GET", "/api/v1/approval-path?category=normal", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"steps":[]`)
	p = models.ApprovalPath{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	assert.True(t, p.IsEmpty())

	w = do(t, h, "GET", "/api/v1/approval-path?category=Major", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, "GET", "/api/v1/approval-path?category=Normal&tier=Severe", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecommend_API(t *testing.T) {
	h := setupTestServer(t, nil)

	w := do(t, h, "POST", "/api/v1/recommend", `{"service_down":"no","pre_approved":"no","scores":[5,5,5,5,5,5,5]}`)
	require.Equal(t, http.StatusOK, w.Code)

	var rec advisor.Recommendation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rec))
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, models.CategoryNormal, rec.Category)
	require.NotNil(t, rec.Assessment)
	assert.Equal(t, models.TierHigh, rec.Assessment.Tier)
	assert.Equal(t, "5.00", rec.DisplayScore)
	assert.Len(t, rec.Path.Steps, 10)
	assert.NotEmpty(t, rec.Checklist)
}

func TestRecommend_API_NormalWithoutScores(t *testing.T) {
	h := setupTestServer(t, nil)

	w := do(t, h, "POST", "/api/v1/recommend", `{"service_down":"no","pre_approved":"no"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"steps":[]`)
	assert.Contains(t, w.Body.String(), `"needs_risk_assessment":true`)
}

func TestRecommend_API_Emergency(t *testing.T) {
	h := setupTestServer(t, nil)

	w := do(t, h, "POST", "/api/v1/recommend", `{"service_down":"yes","pre_approved":"no"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var rec advisor.Recommendation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rec))
	assert.Equal(t, "Incident declared", rec.Path.Steps[0])
	assert.False(t, rec.NeedsRiskAssessment)
}

func TestRecommend_API_Incomplete(t *testing.T) {
	h := setupTestServer(t, nil)

	w := do(t, h, "POST", "/api/v1/recommend", `{"pre_approved":"no"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSuggest_API_NoLLM(t *testing.T) {
	h := setupTestServer(t, nil)

	w := do(t, h, "POST", "/api/v1/suggest", `{"description":"rotate TLS certs"}`)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestSuggest_API(t *testing.T) {
	sg := &fakeSuggester{suggestion: &llm.Suggestion{
		Scores: map[string]int{
			"impact_scope": 2, "complexity": 2, "reversibility": 1, "testing_confidence": 2,
			"deployment_history": 1, "timing_sensitivity": 2, "dependency_count": 1,
		},
		Rationale: "routine",
	}}
	h := setupTestServer(t, sg)

	w := do(t, h, "POST", "/api/v1/suggest", `{"description":"rotate TLS certs"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "rotate TLS certs", sg.gotDesc)

	var out suggestResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, models.TierLow, out.Assessment.Tier)
	assert.Equal(t, "1.57", out.Assessment.DisplayScore)
	assert.Len(t, out.Path.Steps, 7)
}

func TestSuggest_API_Errors(t *testing.T) {
	h := setupTestServer(t, &fakeSuggester{err: errors.New("boom")})

	w := do(t, h, "POST", "/api/v1/suggest", `{"description":"x"}`)
	assert.Equal(t, http.StatusBadGateway, w.Code)

	w = do(t, h, "POST", "/api/v1/suggest", `{"description":"  "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	bad := &fakeSuggester{suggestion: &llm.Suggestion{Scores: map[string]int{"complexity": 9}}}
	h = setupTestServer(t, bad)
	w = do(t, h, "POST", "/api/v1/suggest", `{"description":"x"}`)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestReferenceData_API(t *testing.T) {
	h := setupTestServer(t, nil)

	w := do(t, h, "GET", "/api/v1/dimensions", "")
	require.Equal(t, http.StatusOK, w.Code)
	var dims []models.Dimension
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dims))
	assert.Len(t, dims, 7)

	w = do(t, h, "GET", "/api/v1/workflows", "")
	require.Equal(t, http.StatusOK, w.Code)
	var wfs []approval.Workflow
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &wfs))
	assert.Len(t, wfs, 5)

	w = do(t, h, "GET", "/api/v1/categories", "")
	require.Equal(t, http.StatusOK, w.Code)
	var cats []categoryOut
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cats))
	assert.Len(t, cats, 3)

	w = do(t, h, "GET", "/api/v1/checklist", "")
	require.Equal(t, http.StatusOK, w.Code)
	var items []models.ChecklistItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	assert.NotEmpty(t, items)
}

func TestCORSPreflight(t *testing.T) {
	h := setupTestServer(t, nil)

	w := do(t, h, "OPTIONS", "/api/v1/classify", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
