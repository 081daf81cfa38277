package conversation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractEntities(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		dates   []string
		numbers []string
	}{
		{
			name:    "iso date and count",
			query:   "Can I take leave on 2025-12-24 for 3 days?",
			dates:   []string{"2025-12-24"},
			numbers: []string{"3"},
		},
		{
			name:  "month names",
			query: "I'm off from December 31st until 2 January 2026",
			dates: []string{"December 31st", "2 January 2026"},
		},
		{
			name:  "slash date and relative day",
			query: "Is 12/05/2025 a holiday? What about next friday and tomorrow?",
			dates: []string{"12/05/2025", "next friday", "tomorrow"},
		},
		{
			name:    "numbers only",
			query:   "I worked 42.5 hours and need 2 more days",
			numbers: []string{"42.5", "2"},
		},
		{
			name:  "nothing",
			query: "What is the dress code?",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractEntities(tt.query)
			assert.Equal(t, tt.dates, got.Dates)
			assert.Equal(t, tt.numbers, got.Numbers)
		})
	}
}
