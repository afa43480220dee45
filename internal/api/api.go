package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/joescharf/changeflow/internal/advisor"
	"github.com/joescharf/changeflow/internal/approval"
	"github.com/joescharf/changeflow/internal/classify"
	"github.com/joescharf/changeflow/internal/llm"
	"github.com/joescharf/changeflow/internal/models"
	"github.com/joescharf/changeflow/internal/risk"
)

// Suggester proposes risk dimension scores from a free-text change description.
type Suggester interface {
	SuggestScores(ctx context.Context, description string, dims []models.Dimension) (*llm.Suggestion, error)
}

// Server provides the REST API handlers.
type Server struct {
	suggester Suggester
	logger    *slog.Logger
}

// NewServer creates a new API server.
// The suggester may be nil if no LLM is configured.
func NewServer(suggester Suggester, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		suggester: suggester,
		logger:    logger,
	}
}

// Router returns an http.Handler for the API routes.
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/v1/classify", s.classify)
	mux.HandleFunc("POST /api/v1/assess", s.assess)
	mux.HandleFunc("GET /api/v1/approval-path", s.approvalPath)
	mux.HandleFunc("POST /api/v1/recommend", s.recommend)
	mux.HandleFunc("POST /api/v1/suggest", s.suggest)

	mux.HandleFunc("GET /api/v1/categories", s.listCategories)
	mux.HandleFunc("GET /api/v1/dimensions", s.listDimensions)
	mux.HandleFunc("GET /api/v1/workflows", s.listWorkflows)
	mux.HandleFunc("GET /api/v1/checklist", s.checklist)

	return s.logRequests(corsMiddleware(mux))
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeDecisionError maps caller-contract violations to 400 and anything else to 500.
func writeDecisionError(w http.ResponseWriter, err error) {
	if errors.Is(err, models.ErrIncompleteInput) || errors.Is(err, models.ErrPrecondition) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

// scoreInput accepts scores either as an ordered list or keyed by dimension.
// A non-empty list must cover all seven dimensions.
type scoreInput struct {
	Scores     []int          `json:"scores,omitempty"`
	Dimensions map[string]int `json:"dimensions,omitempty"`
}

func (in scoreInput) resolve() ([]int, error) {
	switch {
	case len(in.Dimensions) > 0 && len(in.Scores) > 0:
		return nil, fmt.Errorf("send either scores or dimensions, not both: %w", models.ErrPrecondition)
	case len(in.Dimensions) > 0:
		return risk.ScoresFromMap(in.Dimensions)
	case len(in.Scores) > 0:
		if err := risk.CheckComplete(in.Scores); err != nil {
			return nil, err
		}
	}
	return in.Scores, nil
}

// --- Decisions ---

type classifyResponse struct {
	Category               models.Category              `json:"category"`
	Details                models.ClassificationDetails `json:"details"`
	RequiresRiskAssessment bool                         `json:"requires_risk_assessment"`
}

func (s *Server) classify(w http.ResponseWriter, r *http.Request) {
	var in classify.Answers
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	c, err := classify.ClassifyAnswers(in)
	if err != nil {
		writeDecisionError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, classifyResponse{
		Category:               c,
		Details:                classify.Describe(c),
		RequiresRiskAssessment: approval.RequiresRiskAssessment(c),
	})
}

type assessResponse struct {
	models.RiskAssessment
	DisplayScore string `json:"display_score"`
	BadgeClass   string `json:"badge_class"`
}

func newAssessResponse(a models.RiskAssessment) assessResponse {
	return assessResponse{
		RiskAssessment: a,
		DisplayScore:   risk.FormatScore(a.CompositeScore),
		BadgeClass:     risk.TierBadgeClass(a.Tier),
	}
}

func (s *Server) assess(w http.ResponseWriter, r *http.Request) {
	var in scoreInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	scores, err := in.resolve()
	if err != nil {
		writeDecisionError(w, err)
		return
	}

	a, err := risk.Assess(scores)
	if err != nil {
		writeDecisionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newAssessResponse(a))
}

func (s *Server) approvalPath(w http.ResponseWriter, r *http.Request) {
	c, err := classify.ParseCategory(r.URL.Query().Get("category"))
	if err != nil {
		writeDecisionError(w, err)
		return
	}
	tier, err := risk.ParseTier(r.URL.Query().Get("tier"))
	if err != nil {
		writeDecisionError(w, err)
		return
	}

	p, err := approval.Resolve(c, tier)
	if err != nil {
		writeDecisionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

type recommendRequest struct {
	classify.Answers
	scoreInput
}

func (s *Server) recommend(w http.ResponseWriter, r *http.Request) {
	var in recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	scores, err := in.resolve()
	if err != nil {
		writeDecisionError(w, err)
		return
	}

	rec, err := advisor.Recommend(advisor.Request{Answers: in.Answers, Scores: scores})
	if err != nil {
		writeDecisionError(w, err)
		return
	}
	s.logger.Info("recommendation", "id", rec.ID, "category", rec.Category, "tier", tierOf(rec))
	writeJSON(w, http.StatusOK, rec)
}

func tierOf(rec *advisor.Recommendation) models.RiskTier {
	if rec.Assessment == nil {
		return models.TierUnset
	}
	return rec.Assessment.Tier
}

type suggestRequest struct {
	Description string `json:"description"`
}

type suggestResponse struct {
	Suggestion *llm.Suggestion     `json:"suggestion"`
	Assessment assessResponse      `json:"assessment"`
	Path       models.ApprovalPath `json:"path"`
}

func (s *Server) suggest(w http.ResponseWriter, r *http.Request) {
	if s.suggester == nil {
		writeError(w, http.StatusServiceUnavailable, "no LLM configured (set anthropic.api_key or ANTHROPIC_API_KEY)")
		return
	}

	var in suggestRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if strings.TrimSpace(in.Description) == "" {
		writeError(w, http.StatusBadRequest, "description is required")
		return
	}

	sg, err := s.suggester.SuggestScores(r.Context(), in.Description, risk.Dimensions())
	if err != nil {
		s.logger.Warn("score suggestion failed", "error", err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	scores, err := risk.ScoresFromMap(sg.Scores)
	if err != nil {
		writeError(w, http.StatusBadGateway, "LLM returned unusable scores: "+err.Error())
		return
	}
	a, err := risk.Assess(scores)
	if err != nil {
		writeError(w, http.StatusBadGateway, "LLM returned unusable scores: "+err.Error())
		return
	}
	p, err := approval.Resolve(models.CategoryNormal, a.Tier)
	if err != nil {
		writeDecisionError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, suggestResponse{
		Suggestion: sg,
		Assessment: newAssessResponse(a),
		Path:       p,
	})
}

// --- Reference data ---

type categoryOut struct {
	Category models.Category              `json:"category"`
	Details  models.ClassificationDetails `json:"details"`
}

func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	var out []categoryOut
	for _, c := range models.Categories() {
		out = append(out, categoryOut{Category: c, Details: classify.Describe(c)})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) listDimensions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, risk.Dimensions())
}

func (s *Server) listWorkflows(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, approval.Workflows())
}

func (s *Server) checklist(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, advisor.Checklist())
}
