package cmd

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/joescharf/changeflow/internal/api"
	"github.com/joescharf/changeflow/internal/approval"
	"github.com/joescharf/changeflow/internal/llm"
	"github.com/joescharf/changeflow/internal/models"
	"github.com/joescharf/changeflow/internal/output"
	"github.com/joescharf/changeflow/internal/risk"
)

var suggestDescription string

var suggestCmd = &cobra.Command{
	Use:   "suggest [description]",
	Short: "Ask an LLM to propose risk scores for a Normal change",
	Long: `Describe a Normal change in plain language and let Claude propose a
score for each risk dimension. The proposed scores then go through the
same deterministic assessment as 'changeflow assess'.

Requires anthropic.api_key in config or ANTHROPIC_API_KEY in the environment.`,
	Example: `  changeflow suggest "Upgrade the primary Postgres cluster from 14 to 16"
  changeflow suggest --description "Rotate TLS certs on the edge proxies" -o json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		desc := suggestDescription
		if len(args) == 1 {
			desc = args[0]
		}
		return suggestRun(cmd.Context(), newSuggester(), desc)
	},
}

func init() {
	suggestCmd.Flags().StringVarP(&suggestDescription, "description", "d", "", "Description of the change")
	rootCmd.AddCommand(suggestCmd)
}

type suggestResult struct {
	Suggestion *llm.Suggestion `json:"suggestion" yaml:"suggestion"`
	Assessment assessResult    `json:"assessment" yaml:"assessment"`
}

func suggestRun(ctx context.Context, sg api.Suggester, description string) error {
	if sg == nil {
		return errors.New("no LLM configured: set anthropic.api_key in config or ANTHROPIC_API_KEY")
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return fmt.Errorf("a change description is required: %w", models.ErrIncompleteInput)
	}

	ui.VerboseLog("Requesting score suggestion (model %s)", viper.GetString("anthropic.model"))
	s, err := sg.SuggestScores(ctx, description, risk.Dimensions())
	if err != nil {
		return fmt.Errorf("suggest scores: %w", err)
	}
	scores, err := risk.ScoresFromMap(s.Scores)
	if err != nil {
		return fmt.Errorf("LLM returned unusable scores: %w", err)
	}
	a, err := risk.Assess(scores)
	if err != nil {
		return fmt.Errorf("LLM returned unusable scores: %w", err)
	}
	p, err := approval.Resolve(models.CategoryNormal, a.Tier)
	if err != nil {
		return err
	}

	res := suggestResult{
		Suggestion: s,
		Assessment: assessResult{
			Scores:         scores,
			CompositeScore: a.CompositeScore,
			DisplayScore:   risk.FormatScore(a.CompositeScore),
			Tier:           a.Tier,
			Path:           p,
		},
	}

	switch outputFormat {
	case output.FormatJSON, output.FormatYAML:
		return ui.Encode(outputFormat, res)
	case output.FormatMarkdown:
		fmt.Fprintln(ui.Out, "| Dimension | Score |")
		fmt.Fprintln(ui.Out, "|---|---|")
		for i, d := range risk.Dimensions() {
			fmt.Fprintf(ui.Out, "| %s | %s |\n", d.Label, strconv.Itoa(scores[i]))
		}
		if s.Rationale != "" {
			fmt.Fprintf(ui.Out, "\n> %s\n", s.Rationale)
		}
		fmt.Fprintf(ui.Out, "\n**Composite score:** %s (%s risk)\n\n", res.Assessment.DisplayScore, res.Assessment.Tier)
		fmt.Fprint(ui.Out, output.MarkdownFlow(p))
		return nil
	}

	printScoreTable(scores)
	if s.Rationale != "" {
		fmt.Fprintln(ui.Out)
		fmt.Fprintln(ui.Out, s.Rationale)
	}
	fmt.Fprintln(ui.Out)
	fmt.Fprintf(ui.Out, "Composite score: %s  %s\n", res.Assessment.DisplayScore, output.TierColor(res.Assessment.Tier))
	fmt.Fprintln(ui.Out)
	ui.Flow(p)
	return nil
}
