package assist

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prodhub/workbench/internal/models"
)

func TestBuildPrompt(t *testing.T) {
	tk := &models.Ticket{
		ID:          "T-1024",
		Title:       "ERP login extremely slow",
		Description: "Login takes over 30 seconds at peak.",
		Type:        "Performance",
		ProductID:   "p1",
	}

	system, user := buildPrompt(tk)

	assert.Contains(t, system, "suggestedPriority")
	assert.Contains(t, system, "draftResponse")
	assert.Contains(t, system, "valid JSON only")

	assert.Contains(t, user, "ERP login extremely slow")
	assert.Contains(t, user, "Login takes over 30 seconds at peak.")
	assert.Contains(t, user, "Performance")
	assert.Contains(t, user, "p1")
}

func TestParseAnalysis(t *testing.T) {
	raw := `{
		"suggestedPriority": "HIGH",
		"suggestedType": "Performance",
		"summary": "ERP logins degrade under morning peak load.",
		"rootCauseHypothesis": "Connection pool saturation against the auth database.",
		"suggestedRootCauseCategory": "Configuration",
		"sentiment": "NEGATIVE",
		"draftResponse": "Thank you for reporting this. We are investigating the slow logins."
	}`

	a, err := parseAnalysis(raw)
	require.NoError(t, err)
	assert.Equal(t, models.TicketPriorityHigh, a.SuggestedPriority)
	assert.Equal(t, "Configuration", a.SuggestedRootCauseCategory)
	assert.Equal(t, models.SentimentNegative, a.Sentiment)
}

func TestParseAnalysis_StripsFencing(t *testing.T) {
	raw := "```json\n" + `{"suggestedPriority":"CRITICAL","suggestedType":"Bug","summary":"s","rootCauseHypothesis":"h","sentiment":"NEUTRAL","draftResponse":"d"}` + "\n```"

	a, err := parseAnalysis(raw)
	require.NoError(t, err)
	assert.Equal(t, models.TicketPriorityCritical, a.SuggestedPriority)
}

func TestParseAnalysis_NormalizesUnknownEnums(t *testing.T) {
	raw := `{"suggestedPriority":"URGENT","suggestedType":"Bug","summary":"s","rootCauseHypothesis":"h","sentiment":"ANGRY","draftResponse":"d"}`

	a, err := parseAnalysis(raw)
	require.NoError(t, err)
	assert.Equal(t, models.TicketPriorityMedium, a.SuggestedPriority)
	assert.Equal(t, models.SentimentNeutral, a.Sentiment)
}

func TestParseAnalysis_RejectsNonJSON(t *testing.T) {
	_, err := parseAnalysis("Sorry, I cannot help with that.")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "parse analysis response"))
}

func TestApply_BackfillsRootCauseOnlyWhenEmpty(t *testing.T) {
	a := &models.Analysis{
		SuggestedPriority:          models.TicketPriorityHigh,
		SuggestedRootCauseCategory: "Network",
	}

	fresh := &models.Ticket{Title: "x"}
	Apply(fresh, a)
	assert.Equal(t, "Network", fresh.RootCauseCategory)
	assert.Same(t, a, fresh.AIAnalysis)

	categorized := &models.Ticket{Title: "x", RootCauseCategory: "Code Logic"}
	Apply(categorized, a)
	assert.Equal(t, "Code Logic", categorized.RootCauseCategory, "existing category is kept")
	assert.Same(t, a, categorized.AIAnalysis)
}
