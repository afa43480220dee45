package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joescharf/changeflow/internal/approval"
	"github.com/joescharf/changeflow/internal/classify"
	"github.com/joescharf/changeflow/internal/output"
	"github.com/joescharf/changeflow/internal/risk"
)

var (
	pathCategory string
	pathTier     string
)

var pathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the approval workflow for a category and risk tier",
	Long: `Show the approval workflow that applies to a change.

Standard and Emergency changes have a single workflow and ignore --tier.
Normal changes need --tier Low, Medium, or High; without one no workflow
is determined yet.`,
	Example: `  changeflow path --category Standard
  changeflow path --category Normal --tier High -o markdown`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return pathRun(pathCategory, pathTier)
	},
}

func init() {
	pathCmd.Flags().StringVarP(&pathCategory, "category", "c", "", "Change category: Standard, Normal, Emergency")
	pathCmd.Flags().StringVarP(&pathTier, "tier", "t", "", "Risk tier for Normal changes: Low, Medium, High")
	_ = pathCmd.MarkFlagRequired("category")
	rootCmd.AddCommand(pathCmd)
}

func pathRun(category, tier string) error {
	c, err := classify.ParseCategory(category)
	if err != nil {
		return err
	}
	t, err := risk.ParseTier(tier)
	if err != nil {
		return err
	}
	p, err := approval.Resolve(c, t)
	if err != nil {
		return err
	}

	switch outputFormat {
	case output.FormatJSON, output.FormatYAML:
		return ui.Encode(outputFormat, p)
	case output.FormatMarkdown:
		fmt.Fprint(ui.Out, output.MarkdownFlow(p))
		return nil
	}

	if p.IsEmpty() {
		ui.Warning("No approval path determined yet: Normal changes need --tier Low, Medium, or High")
		return nil
	}
	ui.Flow(p)
	return nil
}
