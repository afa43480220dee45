package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/joescharf/changeflow/internal/approval"
	"github.com/joescharf/changeflow/internal/models"
	"github.com/joescharf/changeflow/internal/output"
	"github.com/joescharf/changeflow/internal/risk"
)

var assessScores *scoreFlags

var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Score a Normal change on the seven risk dimensions",
	Long: `Compute the composite risk score of a Normal change.

Each dimension is scored from 1 (lowest risk) to 5 (highest risk). The
composite is the mean of all scores: up to 2.0 is Low, up to 3.5 is
Medium, anything higher is High. Dimensions left unset score 1.`,
	Example: `  changeflow assess --scores 3,3,3,3,3,3,3
  changeflow assess --impact-scope 4 --reversibility 5 -o yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		scores, err := assessScores.resolve(cmd, true)
		if err != nil {
			return err
		}
		return assessRun(scores)
	},
}

func init() {
	assessScores = addScoreFlags(assessCmd)
	rootCmd.AddCommand(assessCmd)
}

type assessResult struct {
	Scores         []int               `json:"scores" yaml:"scores"`
	CompositeScore float64             `json:"composite_score" yaml:"composite_score"`
	DisplayScore   string              `json:"display_score" yaml:"display_score"`
	Tier           models.RiskTier     `json:"risk_tier" yaml:"risk_tier"`
	Path           models.ApprovalPath `json:"path" yaml:"path"`
}

func assessRun(scores []int) error {
	a, err := risk.Assess(scores)
	if err != nil {
		return err
	}
	if err := risk.CheckComplete(scores); err != nil {
		return err
	}
	p, err := approval.Resolve(models.CategoryNormal, a.Tier)
	if err != nil {
		return err
	}
	res := assessResult{
		Scores:         scores,
		CompositeScore: a.CompositeScore,
		DisplayScore:   risk.FormatScore(a.CompositeScore),
		Tier:           a.Tier,
		Path:           p,
	}

	switch outputFormat {
	case output.FormatJSON, output.FormatYAML:
		return ui.Encode(outputFormat, res)
	case output.FormatMarkdown:
		fmt.Fprintf(ui.Out, "**Composite score:** %s (%s risk)\n\n", res.DisplayScore, res.Tier)
		fmt.Fprint(ui.Out, output.MarkdownFlow(res.Path))
		return nil
	}

	printScoreTable(scores)
	fmt.Fprintln(ui.Out)
	fmt.Fprintf(ui.Out, "Composite score: %s  %s\n", res.DisplayScore, output.TierColor(res.Tier))
	fmt.Fprintln(ui.Out)
	ui.Flow(res.Path)
	return nil
}

// printScoreTable lists each dimension next to its score. scores holds one
// entry per dimension in display order.
func printScoreTable(scores []int) {
	table := ui.Table([]string{"DIMENSION", "SCORE"})
	for i, d := range risk.Dimensions() {
		_ = table.Append([]string{d.Label, strconv.Itoa(scores[i])})
	}
	_ = table.Render()
}
