package cmd

import (
	"os"

	"github.com/spf13/viper"

	"github.com/joescharf/changeflow/internal/api"
	"github.com/joescharf/changeflow/internal/llm"
)

// newLLMClient creates an LLM client from config/env, or returns nil if no API key is configured.
func newLLMClient() *llm.Client {
	apiKey := viper.GetString("anthropic.api_key")
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if apiKey == "" {
		return nil
	}
	return llm.NewClient(apiKey, viper.GetString("anthropic.model"))
}

// newSuggester returns the configured LLM as an api.Suggester. The result is
// a true nil interface when no key is set so callers can compare against nil.
func newSuggester() api.Suggester {
	if c := newLLMClient(); c != nil {
		return c
	}
	return nil
}
