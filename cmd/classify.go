package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joescharf/changeflow/internal/approval"
	"github.com/joescharf/changeflow/internal/classify"
	"github.com/joescharf/changeflow/internal/models"
	"github.com/joescharf/changeflow/internal/output"
)

var (
	classifyServiceDown string
	classifyPreApproved string
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify a change as Standard, Normal, or Emergency",
	Long: `Classify a change request from two yes/no answers.

  --service-down   Is a production service currently down or degraded?
  --pre-approved   Is this a pre-approved, low-risk, repeatable change?

A service outage always makes the change an Emergency. Otherwise a
pre-approved change is Standard, and anything else is Normal.`,
	Example: `  changeflow classify --service-down no --pre-approved yes
  changeflow classify --service-down yes --pre-approved no -o json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return classifyRun(classify.Answers{
			ServiceDown: classifyServiceDown,
			PreApproved: classifyPreApproved,
		})
	},
}

func init() {
	classifyCmd.Flags().StringVar(&classifyServiceDown, "service-down", "", "Is a production service down or degraded? (yes/no)")
	classifyCmd.Flags().StringVar(&classifyPreApproved, "pre-approved", "", "Is this a pre-approved, repeatable change? (yes/no)")
	rootCmd.AddCommand(classifyCmd)
}

type classifyResult struct {
	Category            models.Category              `json:"category" yaml:"category"`
	Details             models.ClassificationDetails `json:"details" yaml:"details"`
	NeedsRiskAssessment bool                         `json:"needs_risk_assessment" yaml:"needs_risk_assessment"`
}

func classifyRun(a classify.Answers) error {
	c, err := classify.ClassifyAnswers(a)
	if err != nil {
		return err
	}
	res := classifyResult{
		Category:            c,
		Details:             classify.Describe(c),
		NeedsRiskAssessment: approval.RequiresRiskAssessment(c),
	}

	switch outputFormat {
	case output.FormatJSON, output.FormatYAML:
		return ui.Encode(outputFormat, res)
	case output.FormatMarkdown:
		fmt.Fprintf(ui.Out, "## %s Change\n\n%s\n", res.Category, res.Details.Description)
		return nil
	}

	fmt.Fprintf(ui.Out, "Category: %s\n", output.CategoryColor(res.Category))
	fmt.Fprintf(ui.Out, "%s\n", res.Details.Description)
	if res.NeedsRiskAssessment {
		fmt.Fprintln(ui.Out)
		ui.Info("Normal changes need a risk assessment: run 'changeflow assess' or 'changeflow recommend --scores ...'")
	}
	return nil
}
