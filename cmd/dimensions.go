package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joescharf/changeflow/internal/output"
	"github.com/joescharf/changeflow/internal/risk"
)

var dimensionsCmd = &cobra.Command{
	Use:   "dimensions",
	Short: "List the seven risk dimensions and their scoring hints",
	RunE: func(cmd *cobra.Command, args []string) error {
		return dimensionsRun()
	},
}

func init() {
	rootCmd.AddCommand(dimensionsCmd)
}

func dimensionsRun() error {
	dims := risk.Dimensions()

	switch outputFormat {
	case output.FormatJSON, output.FormatYAML:
		return ui.Encode(outputFormat, dims)
	case output.FormatMarkdown:
		fmt.Fprintln(ui.Out, "| Dimension | Flag | Scoring (1-5) |")
		fmt.Fprintln(ui.Out, "|---|---|---|")
		for _, d := range dims {
			fmt.Fprintf(ui.Out, "| %s | `--%s` | %s |\n", d.Label, dimensionFlagName(d.Key), d.Hint)
		}
		return nil
	}

	table := ui.Table([]string{"#", "DIMENSION", "FLAG", "SCORING (1-5)"})
	for i, d := range dims {
		_ = table.Append([]string{
			fmt.Sprintf("%d", i+1),
			d.Label,
			"--" + dimensionFlagName(d.Key),
			d.Hint,
		})
	}
	_ = table.Render()
	return nil
}
