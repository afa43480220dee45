package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joescharf/changeflow/internal/models"
)

func newTestUI() (*UI, *bytes.Buffer, *bytes.Buffer) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &UI{Out: out, ErrOut: errOut}, out, errOut
}

func TestInfo(t *testing.T) {
	u, out, _ := newTestUI()
	u.Info("hello %s", "world")
	assert.Contains(t, out.String(), "hello world")
}

func TestSuccess(t *testing.T) {
	u, out, _ := newTestUI()
	u.Success("done %d", 42)
	assert.Contains(t, out.String(), "done 42")
}

func TestWarning(t *testing.T) {
	u, _, errOut := newTestUI()
	u.Warning("careful %s", "now")
	assert.Contains(t, errOut.String(), "careful now")
}

func TestError(t *testing.T) {
	u, _, errOut := newTestUI()
	u.Error("failed %s", "badly")
	assert.Contains(t, errOut.String(), "failed badly")
}

func TestVerboseLog_Enabled(t *testing.T) {
	u, out, _ := newTestUI()
	u.Verbose = true
	u.VerboseLog("detail %d", 1)
	assert.Contains(t, out.String(), "detail 1")
}

func TestVerboseLog_Disabled(t *testing.T) {
	u, out, _ := newTestUI()
	u.Verbose = false
	u.VerboseLog("detail %d", 1)
	assert.Empty(t, out.String())
}

func TestDryRunMsg_Enabled(t *testing.T) {
	u, _, errOut := newTestUI()
	u.DryRun = true
	u.DryRunMsg("would create %s", "file")
	assert.Contains(t, errOut.String(), "[DRY-RUN]")
	assert.Contains(t, errOut.String(), "would create file")
}

func TestCategoryColor(t *testing.T) {
	assert.Contains(t, CategoryColor(models.CategoryStandard), "Standard")
	assert.Contains(t, CategoryColor(models.CategoryNormal), "Normal")
	assert.Contains(t, CategoryColor(models.CategoryEmergency), "Emergency")
	assert.Equal(t, "Other", CategoryColor("Other"))
}

func TestTierColor(t *testing.T) {
	assert.Contains(t, TierColor(models.TierLow), "Low")
	assert.Contains(t, TierColor(models.TierMedium), "Medium")
	assert.Contains(t, TierColor(models.TierHigh), "High")
	assert.Equal(t, "", TierColor(models.TierUnset))
}

func TestFlow(t *testing.T) {
	u, out, _ := newTestUI()
	u.Flow(models.ApprovalPath{Title: "Flow", Steps: []string{"one", "two", "three"}})

	result := out.String()
	assert.Contains(t, result, "Flow")
	assert.Contains(t, result, "one")
	assert.Contains(t, result, "three")
	// Arrows only between steps.
	assert.Equal(t, 2, strings.Count(result, "↓"))
}

func TestFlow_Empty(t *testing.T) {
	u, out, _ := newTestUI()
	u.Flow(models.ApprovalPath{})
	assert.Empty(t, out.String())
}

func TestMarkdownFlow(t *testing.T) {
	md := MarkdownFlow(models.ApprovalPath{Title: "Flow", Steps: []string{"a", "b"}})
	assert.Contains(t, md, "### Flow")
	assert.Contains(t, md, "1. a\n2. b\n")
	assert.Empty(t, MarkdownFlow(models.ApprovalPath{}))
}

func TestEncode(t *testing.T) {
	u, out, _ := newTestUI()
	require.NoError(t, u.Encode(FormatJSON, models.RiskAssessment{CompositeScore: 2, Tier: models.TierLow}))
	assert.Contains(t, out.String(), `"risk_tier": "Low"`)

	out.Reset()
	require.NoError(t, u.Encode(FormatYAML, models.RiskAssessment{CompositeScore: 4, Tier: models.TierHigh}))
	assert.Contains(t, out.String(), "risk_tier: High")

	assert.Error(t, u.Encode("xml", nil))
}

func TestValidFormat(t *testing.T) {
	assert.True(t, ValidFormat("table"))
	assert.True(t, ValidFormat("json"))
	assert.True(t, ValidFormat("yaml"))
	assert.True(t, ValidFormat("markdown"))
	assert.False(t, ValidFormat("csv"))
}

func TestTable(t *testing.T) {
	u, out, _ := newTestUI()
	table := u.Table([]string{"Dimension", "Score"})
	require.NotNil(t, table)

	table.Append([]string{"complexity", "3"})
	table.Append([]string{"reversibility", "1"})
	err := table.Render()
	require.NoError(t, err)

	result := out.String()
	assert.True(t, strings.Contains(result, "complexity") || strings.Contains(result, "COMPLEXITY"))
	assert.True(t, strings.Contains(result, "reversibility") || strings.Contains(result, "REVERSIBILITY"))
}
