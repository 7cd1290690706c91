// Package assist calls the Anthropic API to produce a structured
// assessment of a support ticket.
package assist

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/prodhub/workbench/internal/models"
)

// Client wraps the Anthropic API for ticket analysis.
type Client struct {
	api   *anthropic.Client
	model anthropic.Model
}

// NewClient creates an assist client with the given API key and model.
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

// buildPrompt constructs the system and user prompts for ticket analysis.
func buildPrompt(t *models.Ticket) (system string, user string) {
	system = `You are an expert IT Service Management (ITSM) assistant. Analyze the ticket details and return ONLY a JSON object with these fields:
- "suggestedPriority": one of "LOW", "MEDIUM", "HIGH", "CRITICAL"
- "suggestedType": a refined fault type (category) if applicable
- "summary": a concise one-sentence summary
- "rootCauseHypothesis": a hypothesis for the root cause based on common IT patterns
- "suggestedRootCauseCategory": a category for the root cause (e.g., Code Error, Configuration, Hardware, User Error, Network), may be omitted
- "sentiment": one of "POSITIVE", "NEUTRAL", "NEGATIVE" for the reporter's tone
- "draftResponse": a polite, professional draft response to the user acknowledging the issue and suggesting next steps

Rules:
- Return valid JSON only, no markdown fencing or explanation`

	var sb strings.Builder
	sb.WriteString("Analyze this ticket:\n\n")
	fmt.Fprintf(&sb, "Ticket Title: %s\n", t.Title)
	fmt.Fprintf(&sb, "Ticket Description: %s\n", t.Description)
	fmt.Fprintf(&sb, "Current Type: %s\n", t.Type)
	fmt.Fprintf(&sb, "Product ID: %s\n", t.ProductID)
	user = sb.String()
	return
}

// Analyze sends a ticket to the model and returns its structured
// assessment. Errors cover transport failures and unparseable
// responses; callers treat either as "no analysis".
func (c *Client) Analyze(ctx context.Context, t *models.Ticket) (*models.Analysis, error) {
	systemPrompt, userPrompt := buildPrompt(t)

	msg, err := c.api.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: 2048,
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

	analysis, err := parseAnalysis(text)
	if err != nil {
		return nil, err
	}
	return analysis, nil
}

// parseAnalysis decodes the model's JSON, stripping markdown fencing
// if present and normalizing the enum fields.
func parseAnalysis(text string) (*models.Analysis, error) {
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

	var analysis models.Analysis
	if err := json.Unmarshal([]byte(text), &analysis); err != nil {
		return nil, fmt.Errorf("parse analysis response as JSON: %w\nraw response: %s", err, text)
	}

	// Unrecognized values fall back to a neutral middle ground rather
	// than failing the whole analysis.
	switch analysis.SuggestedPriority {
	case models.TicketPriorityLow, models.TicketPriorityHigh, models.TicketPriorityCritical:
	default:
		analysis.SuggestedPriority = models.TicketPriorityMedium
	}
	switch analysis.Sentiment {
	case models.SentimentPositive, models.SentimentNegative:
	default:
		analysis.Sentiment = models.SentimentNeutral
	}

	return &analysis, nil
}

// Apply merges an analysis into its ticket: the full result is
// attached, and the root cause category is backfilled only when the
// ticket does not already have one.
func Apply(t *models.Ticket, a *models.Analysis) {
	t.AIAnalysis = a
	if t.RootCauseCategory == "" && a.SuggestedRootCauseCategory != "" {
		t.RootCauseCategory = a.SuggestedRootCauseCategory
	}
}
