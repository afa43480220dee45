package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"gopkg.in/yaml.v3"

	"github.com/joescharf/changeflow/internal/models"
)

// Output formats accepted by Encode.
const (
	FormatTable    = "table"
	FormatJSON     = "json"
	FormatYAML     = "yaml"
	FormatMarkdown = "markdown"
)

// UI provides colored output and respects verbose mode.
type UI struct {
	Verbose bool
	DryRun  bool
	Out     io.Writer
	ErrOut  io.Writer
}

// New creates a UI with default stdout/stderr writers.
func New() *UI {
	return &UI{
		Out:    os.Stdout,
		ErrOut: os.Stderr,
	}
}

var (
	infoPrefix    = color.New(color.FgHiBlue).Sprint("i")
	successPrefix = color.New(color.FgHiGreen).Sprint("✓")
	warningPrefix = color.New(color.FgHiYellow).Sprint("⚠")
	errorPrefix   = color.New(color.FgHiRed).Sprint("✗")
	verbosePrefix = color.New(color.FgHiBlue).Sprint("  →")
	stepPrefix    = color.New(color.FgHiCyan).Sprint("▶")
	bold          = color.New(color.Bold).SprintFunc()
	green         = color.New(color.FgHiGreen).SprintFunc()
	yellow        = color.New(color.FgHiYellow).SprintFunc()
	red           = color.New(color.FgHiRed).SprintFunc()
)

// CategoryColor returns the category name colored like its badge.
func CategoryColor(c models.Category) string {
	switch c {
	case models.CategoryStandard:
		return green(string(c))
	case models.CategoryNormal:
		return yellow(string(c))
	case models.CategoryEmergency:
		return red(string(c))
	default:
		return string(c)
	}
}

// TierColor returns the tier name colored by severity.
func TierColor(t models.RiskTier) string {
	switch t {
	case models.TierLow:
		return green(string(t))
	case models.TierMedium:
		return yellow(string(t))
	case models.TierHigh:
		return red(string(t))
	default:
		return string(t)
	}
}

func (u *UI) Info(format string, a ...any) {
	fmt.Fprintf(u.Out, "%s %s\n", infoPrefix, fmt.Sprintf(format, a...))
}

func (u *UI) Success(format string, a ...any) {
	fmt.Fprintf(u.Out, "%s %s\n", successPrefix, fmt.Sprintf(format, a...))
}

func (u *UI) Warning(format string, a ...any) {
	fmt.Fprintf(u.ErrOut, "%s %s\n", warningPrefix, fmt.Sprintf(format, a...))
}

func (u *UI) Error(format string, a ...any) {
	fmt.Fprintf(u.ErrOut, "%s %s\n", errorPrefix, fmt.Sprintf(format, a...))
}

func (u *UI) VerboseLog(format string, a ...any) {
	if u.Verbose {
		fmt.Fprintf(u.Out, "%s %s\n", verbosePrefix, fmt.Sprintf(format, a...))
	}
}

func (u *UI) DryRunMsg(format string, a ...any) {
	if u.DryRun {
		u.Warning("[DRY-RUN] "+format, a...)
	}
}

// Table creates a new tablewriter configured with consistent styling.
func (u *UI) Table(headers []string) *tablewriter.Table {
	table := tablewriter.NewTable(u.Out,
		tablewriter.WithHeaderAlignment(tw.AlignLeft),
		tablewriter.WithRowAlignment(tw.AlignLeft),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Lines:      tw.LinesNone,
				Separators: tw.SeparatorsNone,
			},
		}),
		tablewriter.WithPadding(tw.Padding{Left: "", Right: "  "}),
	)
	table.Header(headers)
	return table
}

// Flow prints an approval path as a vertical list of steps joined by arrows.
// An empty path prints nothing.
func (u *UI) Flow(p models.ApprovalPath) {
	if p.Title != "" {
		fmt.Fprintln(u.Out, bold(p.Title))
	}
	for i, step := range p.Steps {
		fmt.Fprintf(u.Out, "  %s %s\n", stepPrefix, step)
		if i < len(p.Steps)-1 {
			fmt.Fprintln(u.Out, "    ↓")
		}
	}
}

// MarkdownFlow renders an approval path as a numbered markdown list.
func MarkdownFlow(p models.ApprovalPath) string {
	if p.IsEmpty() {
		return ""
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "### %s\n\n", p.Title)
	for i, step := range p.Steps {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, step)
	}
	return sb.String()
}

// Encode writes v as JSON or YAML.
func (u *UI) Encode(format string, v any) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(u.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(u.Out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format: %s (use: table, json, yaml, markdown)", format)
	}
}

// ValidFormat reports whether f is a supported output format.
func ValidFormat(f string) bool {
	switch f {
	case FormatTable, FormatJSON, FormatYAML, FormatMarkdown:
		return true
	}
	return false
}
