package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/joescharf/changeflow/internal/advisor"
	"github.com/joescharf/changeflow/internal/approval"
	"github.com/joescharf/changeflow/internal/classify"
	"github.com/joescharf/changeflow/internal/risk"
)

// Server exposes the change decision functions as MCP tools.
type Server struct {
	version string
}

// NewServer creates the MCP server wrapper.
func NewServer(version string) *Server {
	return &Server{version: version}
}

// MCPServer returns a configured mcp-go server with all tools registered.
func (s *Server) MCPServer() *server.MCPServer {
	srv := server.NewMCPServer("changeflow", s.version, server.WithToolCapabilities(true))

	srv.AddTool(s.classifyTool())
	srv.AddTool(s.assessRiskTool())
	srv.AddTool(s.approvalPathTool())
	srv.AddTool(s.recommendTool())
	srv.AddTool(s.listWorkflowsTool())

	return srv
}

// ServeStdio starts the stdio transport, blocking until ctx is cancelled.
func (s *Server) ServeStdio(ctx context.Context) error {
	srv := s.MCPServer()
	stdioServer := server.NewStdioServer(srv)
	return stdioServer.Listen(ctx, os.Stdin, os.Stdout)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// ---------------------------------------------------------------------------
// Tool definitions and handlers
// ---------------------------------------------------------------------------

// change_classify
func (s *Server) classifyTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("change_classify",
		mcp.WithDescription("Classify an IT change request as Standard, Normal, or Emergency. A service outage always makes it Emergency; otherwise a pre-approved change model makes it Standard; everything else is Normal."),
		mcp.WithString("service_down", mcp.Required(), mcp.Enum("yes", "no"), mcp.Description("Is the service currently down or critically degraded?")),
		mcp.WithString("pre_approved", mcp.Required(), mcp.Enum("yes", "no"), mcp.Description("Does the change match a pre-approved change model?")),
	)
	return tool, s.handleClassify
}

func (s *Server) handleClassify(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	answers := classify.Answers{
		ServiceDown: request.GetString("service_down", ""),
		PreApproved: request.GetString("pre_approved", ""),
	}
	c, err := classify.ClassifyAnswers(answers)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(map[string]any{
		"category":                 c,
		"details":                  classify.Describe(c),
		"requires_risk_assessment": approval.RequiresRiskAssessment(c),
	})
}

// change_assess_risk
func (s *Server) assessRiskTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("change_assess_risk",
		mcp.WithDescription("Compute the composite risk score (mean of the dimension scores) and risk tier (Low <= 2.0, Medium <= 3.5, High above). Scores are given in dimension order: impact scope, complexity, reversibility, testing confidence, deployment history, timing sensitivity, dependency count."),
		mcp.WithString("scores", mcp.Required(), mcp.Description("Comma-separated integers 1-5, e.g. \"2,3,1,4,2,2,3\"")),
	)
	return tool, s.handleAssessRisk
}

func (s *Server) handleAssessRisk(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := request.RequireString("scores")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: scores"), nil
	}
	scores, err := risk.ParseScores(raw)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := risk.CheckComplete(scores); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	a, err := risk.Assess(scores)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(map[string]any{
		"composite_score": a.CompositeScore,
		"display_score":   risk.FormatScore(a.CompositeScore),
		"risk_tier":       a.Tier,
	})
}

// change_approval_path
func (s *Server) approvalPathTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("change_approval_path",
		mcp.WithDescription("Get the approval workflow for a change category and risk tier. Standard and Emergency ignore the tier. Normal without a tier returns an empty path."),
		mcp.WithString("category", mcp.Required(), mcp.Enum("Standard", "Normal", "Emergency"), mcp.Description("Change category")),
		mcp.WithString("tier", mcp.Enum("Low", "Medium", "High"), mcp.Description("Risk tier (Normal changes only)")),
	)
	return tool, s.handleApprovalPath
}

func (s *Server) handleApprovalPath(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	c, err := classify.ParseCategory(request.GetString("category", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	tier, err := risk.ParseTier(request.GetString("tier", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	p, err := approval.Resolve(c, tier)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(p)
}

// change_recommend
func (s *Server) recommendTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("change_recommend",
		mcp.WithDescription("Classify a change, score its risk when it is a Normal change, and return the approval workflow and mitigation checklist in one call."),
		mcp.WithString("service_down", mcp.Required(), mcp.Enum("yes", "no"), mcp.Description("Is the service currently down or critically degraded?")),
		mcp.WithString("pre_approved", mcp.Required(), mcp.Enum("yes", "no"), mcp.Description("Does the change match a pre-approved change model?")),
		mcp.WithString("scores", mcp.Description("Comma-separated risk scores 1-5 in dimension order (used for Normal changes)")),
	)
	return tool, s.handleRecommend
}

func (s *Server) handleRecommend(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	scores, err := risk.ParseScores(request.GetString("scores", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(scores) > 0 {
		if err := risk.CheckComplete(scores); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}

	rec, err := advisor.Recommend(advisor.Request{
		Answers: classify.Answers{
			ServiceDown: request.GetString("service_down", ""),
			PreApproved: request.GetString("pre_approved", ""),
		},
		Scores: scores,
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(rec)
}

// change_list_workflows
func (s *Server) listWorkflowsTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("change_list_workflows",
		mcp.WithDescription("List all five approval workflows with the category and risk tier that select each."),
	)
	return tool, s.handleListWorkflows
}

func (s *Server) handleListWorkflows(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(approval.Workflows())
}
