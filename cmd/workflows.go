package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/joescharf/changeflow/internal/approval"
	"github.com/joescharf/changeflow/internal/output"
)

var workflowsCmd = &cobra.Command{
	Use:     "workflows",
	Aliases: []string{"wf"},
	Short:   "List every approval workflow",
	RunE: func(cmd *cobra.Command, args []string) error {
		return workflowsRun()
	},
}

func init() {
	rootCmd.AddCommand(workflowsCmd)
}

func workflowsRun() error {
	wfs := approval.Workflows()

	switch outputFormat {
	case output.FormatJSON, output.FormatYAML:
		return ui.Encode(outputFormat, wfs)
	case output.FormatMarkdown:
		for i, wf := range wfs {
			if i > 0 {
				fmt.Fprintln(ui.Out)
			}
			fmt.Fprint(ui.Out, output.MarkdownFlow(wf.Path))
		}
		return nil
	}

	if !verbose {
		table := ui.Table([]string{"CATEGORY", "TIER", "WORKFLOW", "STEPS"})
		for _, wf := range wfs {
			tier := "-"
			if wf.Tier != "" {
				tier = output.TierColor(wf.Tier)
			}
			_ = table.Append([]string{
				output.CategoryColor(wf.Category),
				tier,
				wf.Path.Title,
				strconv.Itoa(len(wf.Path.Steps)),
			})
		}
		_ = table.Render()
		return nil
	}

	for i, wf := range wfs {
		if i > 0 {
			fmt.Fprintln(ui.Out)
		}
		ui.Flow(wf.Path)
	}
	return nil
}
