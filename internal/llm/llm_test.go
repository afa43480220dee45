package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joescharf/changeflow/internal/risk"
)

func TestBuildSuggestPrompt(t *testing.T) {
	system, user := buildSuggestPrompt("Upgrade the primary Postgres cluster to v17", risk.Dimensions())

	for _, d := range risk.Dimensions() {
		assert.Contains(t, system, `"`+d.Key+`"`)
		assert.Contains(t, system, d.Label)
	}
	assert.Contains(t, system, "JSON object")
	assert.Contains(t, system, `"scores"`)
	assert.Contains(t, system, `"rationale"`)
	assert.Contains(t, user, "Upgrade the primary Postgres cluster to v17")
}

func TestParseSuggestion(t *testing.T) {
	t.Run("plain json", func(t *testing.T) {
		s, err := parseSuggestion(`{"scores":{"complexity":4,"reversibility":2},"rationale":"big"}`)
		require.NoError(t, err)
		assert.Equal(t, 4, s.Scores["complexity"])
		assert.Equal(t, "big", s.Rationale)
	})

	t.Run("fenced json", func(t *testing.T) {
		s, err := parseSuggestion("```json\n{\"scores\":{\"complexity\":1}}\n```")
		require.NoError(t, err)
		assert.Equal(t, 1, s.Scores["complexity"])
	})

	t.Run("not json", func(t *testing.T) {
		_, err := parseSuggestion("I think this is risky")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse LLM response")
	})

	t.Run("no scores", func(t *testing.T) {
		_, err := parseSuggestion(`{"rationale":"n/a"}`)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no scores")
	})
}
