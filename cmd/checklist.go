package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joescharf/changeflow/internal/advisor"
	"github.com/joescharf/changeflow/internal/output"
)

var checklistCmd = &cobra.Command{
	Use:   "checklist",
	Short: "Print the pre-implementation checklist",
	RunE: func(cmd *cobra.Command, args []string) error {
		return checklistRun()
	},
}

func init() {
	rootCmd.AddCommand(checklistCmd)
}

func checklistRun() error {
	items := advisor.Checklist()

	switch outputFormat {
	case output.FormatJSON, output.FormatYAML:
		return ui.Encode(outputFormat, items)
	case output.FormatMarkdown:
		for _, item := range items {
			fmt.Fprintf(ui.Out, "- [ ] %s\n", item.Label)
		}
		return nil
	}

	for _, item := range items {
		fmt.Fprintf(ui.Out, "  [ ] %s\n", item.Label)
	}
	return nil
}
