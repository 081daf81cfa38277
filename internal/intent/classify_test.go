package intent

import (
	"testing"

	"github.com/jonathan/hr-insights/internal/catalog"
	"github.com/jonathan/hr-insights/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	c := NewClassifier(catalog.Default())

	tests := []struct {
		name       string
		query      string
		category   string
		confidence float64
	}{
		{
			name:       "leave request above threshold",
			query:      "Can I take sick leave or vacation during the holiday?",
			category:   "leave_request",
			confidence: 4.0 / 6.0,
		},
		{
			name:       "multi-word keyword",
			query:      "I need time off for a sick day, is that leave?",
			category:   "leave_request",
			confidence: 3.0 / 6.0,
		},
		{
			name:       "performance inquiry",
			query:      "When is my performance review and what rating did I get?",
			category:   "performance_inquiry",
			confidence: 3.0 / 5.0,
		},
		{
			name:       "single keyword stays below threshold",
			query:      "I have a question about payroll",
			category:   types.IntentUnknown,
			confidence: 0,
		},
		{
			name:       "two keywords clear the threshold",
			query:      "HR question: how are benefits handled?",
			category:   "general_hr",
			confidence: 2.0 / 5.0,
		},
		{
			name:       "no keywords",
			query:      "What's the weather like?",
			category:   types.IntentUnknown,
			confidence: 0,
		},
		{
			name:       "empty query",
			query:      "",
			category:   types.IntentUnknown,
			confidence: 0,
		},
		{
			name:       "whole words only",
			query:      "three rules ruled the leaves",
			category:   types.IntentUnknown,
			confidence: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.query)
			assert.Equal(t, tt.category, got.Category)
			assert.InDelta(t, tt.confidence, got.Confidence, 1e-9)
		})
	}
}

func TestClassify_TieGoesToFirstDeclared(t *testing.T) {
	cat := catalog.Default()
	cat.Intents = []catalog.IntentCategory{
		{Category: "alpha", Keywords: []string{"one", "two"}},
		{Category: "beta", Keywords: []string{"three", "four"}},
	}
	c := NewClassifier(cat)

	got := c.Classify("one three")
	assert.Equal(t, "alpha", got.Category)
	assert.Equal(t, 0.5, got.Confidence)
}

func TestClassify_ConfidenceMatchesHighestScore(t *testing.T) {
	c := NewClassifier(catalog.Default())
	query := "Where is the policy handbook and the leave procedure guideline?"

	got := c.Classify(query)
	require.Equal(t, "policy_question", got.Category)

	for _, s := range c.Scores(query) {
		assert.LessOrEqual(t, s.Confidence, got.Confidence)
	}
}

func TestScores(t *testing.T) {
	c := NewClassifier(catalog.Default())
	scores := c.Scores("salary and payroll")
	require.Len(t, scores, 4)
	assert.Equal(t, []string{"leave_request", "performance_inquiry", "policy_question", "general_hr"}, c.Categories())
	assert.Equal(t, "general_hr", scores[3].Category)
	assert.Equal(t, []string{"payroll", "salary"}, scores[3].Matched)
	assert.InDelta(t, 0.4, scores[3].Confidence, 1e-9)
	assert.Empty(t, scores[0].Matched)
}

func TestClassify_AtThresholdIsUnknown(t *testing.T) {
	cat := catalog.Default()
	cat.Intents = []catalog.IntentCategory{
		{Category: "travel", Keywords: []string{"a1", "a2", "a3", "a4", "a5", "a6", "a7", "a8", "a9", "a10"}},
	}
	c := NewClassifier(cat)

	assert.Equal(t, types.IntentUnknown, c.Classify("a1 a2 a3").Category)
	assert.Equal(t, "travel", c.Classify("a1 a2 a3 a4").Category)
}
