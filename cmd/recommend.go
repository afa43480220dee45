package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joescharf/changeflow/internal/advisor"
	"github.com/joescharf/changeflow/internal/classify"
	"github.com/joescharf/changeflow/internal/output"
)

var (
	recommendServiceDown string
	recommendPreApproved string
	recommendScores      *scoreFlags
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Classify a change, assess its risk, and print the full recommendation",
	Long: `Run the whole decision chain for one change request.

The answers pick the category. Normal changes also need risk scores,
given with --scores or the per-dimension flags; without them the
recommendation stops at the risk assessment step.`,
	Example: `  changeflow recommend --service-down no --pre-approved no --scores 4,4,4,4,4,4,4
  changeflow recommend --service-down yes --pre-approved no -o json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		scores, err := recommendScores.resolve(cmd, false)
		if err != nil {
			return err
		}
		return recommendRun(advisor.Request{
			Answers: classify.Answers{
				ServiceDown: recommendServiceDown,
				PreApproved: recommendPreApproved,
			},
			Scores: scores,
		})
	},
}

func init() {
	recommendCmd.Flags().StringVar(&recommendServiceDown, "service-down", "", "Is a production service down or degraded? (yes/no)")
	recommendCmd.Flags().StringVar(&recommendPreApproved, "pre-approved", "", "Is this a pre-approved, repeatable change? (yes/no)")
	recommendScores = addScoreFlags(recommendCmd)
	rootCmd.AddCommand(recommendCmd)
}

func recommendRun(req advisor.Request) error {
	rec, err := advisor.Recommend(req)
	if err != nil {
		return err
	}
	ui.VerboseLog("Recommendation %s", rec.ID)

	switch outputFormat {
	case output.FormatJSON, output.FormatYAML:
		return ui.Encode(outputFormat, rec)
	case output.FormatMarkdown:
		fmt.Fprint(ui.Out, markdownRecommendation(rec))
		return nil
	}

	fmt.Fprintf(ui.Out, "Category: %s\n", output.CategoryColor(rec.Category))
	fmt.Fprintf(ui.Out, "%s\n", rec.Details.Description)

	if rec.Assessment != nil {
		fmt.Fprintln(ui.Out)
		fmt.Fprintf(ui.Out, "Composite score: %s  %s\n", rec.DisplayScore, output.TierColor(rec.Assessment.Tier))
	}
	if rec.NeedsRiskAssessment {
		fmt.Fprintln(ui.Out)
		ui.Warning("Risk assessment required: pass --scores or per-dimension flags to resolve the approval path")
		return nil
	}

	fmt.Fprintln(ui.Out)
	ui.Flow(rec.Path)

	if len(rec.Checklist) > 0 {
		fmt.Fprintln(ui.Out)
		fmt.Fprintln(ui.Out, "Pre-implementation checklist:")
		for _, item := range rec.Checklist {
			fmt.Fprintf(ui.Out, "  [ ] %s\n", item.Label)
		}
	}
	return nil
}

func markdownRecommendation(rec *advisor.Recommendation) string {
	s := fmt.Sprintf("## %s Change\n\n%s\n\n", rec.Category, rec.Details.Description)
	if rec.Assessment != nil {
		s += fmt.Sprintf("**Composite score:** %s (%s risk)\n\n", rec.DisplayScore, rec.Assessment.Tier)
	}
	if rec.NeedsRiskAssessment {
		return s + "_Risk assessment required before an approval path can be determined._\n"
	}
	s += output.MarkdownFlow(rec.Path)
	if len(rec.Checklist) > 0 {
		s += "\n### Pre-implementation checklist\n\n"
		for _, item := range rec.Checklist {
			s += fmt.Sprintf("- [ ] %s\n", item.Label)
		}
	}
	return s
}
