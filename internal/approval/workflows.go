package approval

import "github.com/joescharf/changeflow/internal/models"

var (
	standardFlow = models.ApprovalPath{
		Title: "Standard Change Flow (Section 4.1)",
		Steps: []string{
			"Requester triggers pipeline",
			"Automated pre-checks (lint, test, scan)",
			"Auto-approved (change model match verified)",
			"Deploy",
			"Automated validation",
			"Change record logged automatically",
		},
	}

	normalLowFlow = models.ApprovalPath{
		Title: "Normal Change Flow — Low Risk (Section 4.2)",
		Steps: []string{
			"Requester submits RFC",
			"Automated risk scoring",
			"Peer review (1 reviewer, async)",
			"Approved → Scheduled in change calendar",
			"Deploy in approved window",
			"Validation",
			"Close RFC",
		},
	}

	normalMediumFlow = models.ApprovalPath{
		Title: "Normal Change Flow — Medium Risk (Section 4.3)",
		Steps: []string{
			"Requester submits RFC",
			"Automated risk scoring",
			"Technical review (architect or senior engineer)",
			"Change authority approval",
			"Scheduled in change calendar (with conflict check)",
			"Deploy with monitoring",
			"Validation + brief PIR",
			"Close RFC",
		},
	}

	normalHighFlow = models.ApprovalPath{
		Title: "Normal Change Flow — High Risk (Section 4.4)",
		Steps: []string{
			"Requester submits RFC",
			"Automated risk scoring",
			"Technical review + security review",
			"Pre-CAB: documentation completeness check",
			"CAB review (weekly cadence or ad-hoc)",
			"Senior management sign-off",
			"Scheduled with communication plan",
			"Deploy with war-room / bridge call",
			"Validation + full PIR",
			"Close RFC",
		},
	}

	emergencyFlow = models.ApprovalPath{
		Title: "Emergency Change Flow (Section 4.5)",
		Steps: []string{
			"Incident declared",
			"Emergency RFC created (minimal fields)",
			"ECAB approval (phone/chat, 2 approvers minimum)",
			"Implement immediately",
			"Validate service restored",
			"Retrospective RFC completion (within 48h)",
			"Mandatory PIR",
		},
	}
)

// Workflow is one entry of the approval table with the key that selects it.
type Workflow struct {
	Category models.Category     `json:"category" yaml:"category"`
	Tier     models.RiskTier     `json:"risk_tier,omitempty" yaml:"risk_tier,omitempty"`
	Path     models.ApprovalPath `json:"path" yaml:"path"`
}

// Workflows returns every defined workflow in section order.
func Workflows() []Workflow {
	return []Workflow{
		{Category: models.CategoryStandard, Path: clonePath(standardFlow)},
		{Category: models.CategoryNormal, Tier: models.TierLow, Path: clonePath(normalLowFlow)},
		{Category: models.CategoryNormal, Tier: models.TierMedium, Path: clonePath(normalMediumFlow)},
		{Category: models.CategoryNormal, Tier: models.TierHigh, Path: clonePath(normalHighFlow)},
		{Category: models.CategoryEmergency, Path: clonePath(emergencyFlow)},
	}
}

func clonePath(p models.ApprovalPath) models.ApprovalPath {
	steps := make([]string, len(p.Steps))
	copy(steps, p.Steps)
	return models.ApprovalPath{Title: p.Title, Steps: steps}
}
