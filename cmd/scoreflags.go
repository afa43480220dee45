package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joescharf/changeflow/internal/models"
	"github.com/joescharf/changeflow/internal/risk"
)

// scoreFlags holds the two ways of entering dimension scores on the command
// line: a --scores list in display order, or one flag per dimension.
type scoreFlags struct {
	list string
	dims map[string]*int
}

// dimensionFlagName turns a dimension key such as impact_scope into impact-scope.
func dimensionFlagName(key string) string {
	return strings.ReplaceAll(key, "_", "-")
}

func addScoreFlags(c *cobra.Command) *scoreFlags {
	f := &scoreFlags{dims: make(map[string]*int)}
	c.Flags().StringVar(&f.list, "scores", "", "Comma-separated scores (1-5) for all seven dimensions in display order")
	for _, d := range risk.Dimensions() {
		v := new(int)
		c.Flags().IntVar(v, dimensionFlagName(d.Key), models.MinScore, fmt.Sprintf("%s score (1-5): %s", d.Label, d.Hint))
		f.dims[d.Key] = v
	}
	return f
}

// resolve returns the scores entered on c. When neither --scores nor any
// dimension flag was set it returns nil unless useDefaults is true, in which
// case every dimension takes its flag default.
func (f *scoreFlags) resolve(c *cobra.Command, useDefaults bool) ([]int, error) {
	anyDim := false
	for key := range f.dims {
		if c.Flags().Changed(dimensionFlagName(key)) {
			anyDim = true
			break
		}
	}

	if c.Flags().Changed("scores") {
		if anyDim {
			return nil, fmt.Errorf("use either --scores or per-dimension flags, not both: %w", models.ErrPrecondition)
		}
		scores, err := risk.ParseScores(f.list)
		if err != nil {
			return nil, err
		}
		if err := risk.CheckComplete(scores); err != nil {
			return nil, err
		}
		return scores, nil
	}
	if !anyDim && !useDefaults {
		return nil, nil
	}

	m := make(map[string]int, len(f.dims))
	for key, v := range f.dims {
		m[key] = *v
	}
	return risk.ScoresFromMap(m)
}
