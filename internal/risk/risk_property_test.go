package risk

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/joescharf/changeflow/internal/models"
)

func scoreGen() gopter.Gen {
	return gen.SliceOfN(7, gen.IntRange(models.MinScore, models.MaxScore))
}

// TestAssess_MeanProperty verifies the composite is the arithmetic mean of the scores.
func TestAssess_MeanProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	properties := gopter.NewProperties(parameters)

	properties.Property("composite score is the mean", prop.ForAll(
		func(scores []int) bool {
			got, err := Assess(scores)
			if err != nil {
				return false
			}
			sum := 0
			for _, s := range scores {
				sum += s
			}
			return math.Abs(got.CompositeScore-float64(sum)/7.0) < 1e-12
		},
		scoreGen(),
	))

	properties.Property("composite score stays within score bounds", prop.ForAll(
		func(scores []int) bool {
			got, err := Assess(scores)
			return err == nil && got.CompositeScore >= models.MinScore && got.CompositeScore <= models.MaxScore
		},
		scoreGen(),
	))

	properties.TestingRun(t)
}

// TestAssess_Idempotent verifies the same input always yields the same assessment.
func TestAssess_Idempotent(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("Assess is deterministic", prop.ForAll(
		func(scores []int) bool {
			a, errA := Assess(scores)
			b, errB := Assess(scores)
			return errA == nil && errB == nil && a == b
		},
		scoreGen(),
	))

	properties.Property("tier matches TierFor of the composite", prop.ForAll(
		func(scores []int) bool {
			got, err := Assess(scores)
			return err == nil && got.Tier == TierFor(got.CompositeScore)
		},
		scoreGen(),
	))

	properties.TestingRun(t)
}
