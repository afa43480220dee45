package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/joescharf/changeflow/internal/models"
)

// Suggestion holds LLM-proposed risk dimension scores for a change description.
// Scores are keyed by dimension key and have not been range-checked.
type Suggestion struct {
	Scores    map[string]int `json:"scores"`
	Rationale string         `json:"rationale"`
}

// Client wraps the Anthropic API for risk score suggestions.
type Client struct {
	api   *anthropic.Client
	model anthropic.Model
}

// NewClient creates an LLM client with the given API key and model.
func NewClient(apiKey, model string) *Client {
	opts := []option.RequestOption{}
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}
	client := anthropic.NewClient(opts...)
	return &Client{
		api:   &client,
		model: anthropic.Model(model),
	}
}

// buildSuggestPrompt constructs the system and user prompts for score suggestion.
func buildSuggestPrompt(description string, dims []models.Dimension) (system string, user string) {
	var sb strings.Builder
	sb.WriteString(`You assess the risk of IT change requests using ITIL 4 Change Enablement.
Score the change on each risk dimension below with an integer from 1 (lowest risk) to 5 (highest risk).

Dimensions:
`)
	for _, d := range dims {
		fmt.Fprintf(&sb, "- %q (%s): %s\n", d.Key, d.Label, d.Hint)
	}
	sb.WriteString(`
Return ONLY a JSON object with these fields:
- "scores": an object mapping every dimension key above to an integer 1-5
- "rationale": 1-3 sentences explaining the highest scores

Rules:
- Include every dimension key exactly once, and no other keys
- When the description gives no information about a dimension, score it 3
- Return valid JSON only, no markdown fencing or explanation`)
	system = sb.String()

	user = "Change description:\n\n" + description
	return
}

// SuggestScores asks the LLM to score a change description on the given dimensions.
func (c *Client) SuggestScores(ctx context.Context, description string, dims []models.Dimension) (*Suggestion, error) {
	systemPrompt, userPrompt := buildSuggestPrompt(description, dims)

	msg, err := c.api.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("anthropic API call: %w", err)
	}

	var text string
	for _, block := range msg.Content {
		if block.Type == "text" {
			text = block.Text
			break
		}
	}

	if text == "" {
		return nil, fmt.Errorf("no text content in API response")
	}

	return parseSuggestion(text)
}

// parseSuggestion decodes the model's JSON reply, tolerating markdown fences.
func parseSuggestion(text string) (*Suggestion, error) {
	text = stripFence(text)

	var s Suggestion
	if err := json.Unmarshal([]byte(text), &s); err != nil {
		return nil, fmt.Errorf("parse LLM response as JSON: %w\nraw response: %s", err, text)
	}
	if len(s.Scores) == 0 {
		return nil, fmt.Errorf("LLM response has no scores\nraw response: %s", text)
	}
	return &s, nil
}

func stripFence(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		lines := strings.SplitN(text, "\n", 2)
		if len(lines) > 1 {
			text = lines[1]
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}
	return text
}
