// Package intent classifies conversational HR queries into intent categories by
// keyword overlap.
package intent

import (
	"strings"

	"github.com/jonathan/hr-insights/internal/catalog"
	"github.com/jonathan/hr-insights/internal/parsing"
	"github.com/jonathan/hr-insights/internal/types"
)

// Classifier assigns intents. It is read-only after construction and safe for concurrent use.
type Classifier struct {
	categories []catalog.IntentCategory
	threshold  float64
}

// NewClassifier creates a Classifier from the catalog's intent table.
func NewClassifier(c *catalog.Catalog) *Classifier {
	if c == nil {
		c = catalog.Default()
	}
	return &Classifier{
		categories: c.Intents,
		threshold:  c.IntentThreshold,
	}
}

// Score is the confidence of one category for a query
type Score struct {
	Category   string   `json:"category"`
	Confidence float64  `json:"confidence"`
	Matched    []string `json:"matched"`
}

// Classify returns the best-scoring category. A confidence at or below the
// threshold, or an empty query, yields the unknown intent with confidence 0.
// Equal confidences resolve to the category declared first.
func (c *Classifier) Classify(query string) types.Intent {
	unknown := types.Intent{Category: types.IntentUnknown, Confidence: 0}
	if strings.TrimSpace(query) == "" {
		return unknown
	}

	best := Score{}
	for _, s := range c.Scores(query) {
		if s.Confidence > best.Confidence {
			best = s
		}
	}
	if best.Confidence <= c.threshold {
		return unknown
	}
	return types.Intent{Category: best.Category, Confidence: best.Confidence}
}

// Scores returns the confidence of every category in declaration order.
func (c *Classifier) Scores(query string) []Score {
	scores := make([]Score, 0, len(c.categories))
	for _, category := range c.categories {
		s := Score{Category: category.Category, Matched: []string{}}
		for _, kw := range category.Keywords {
			if parsing.ContainsPhrase(query, kw) {
				s.Matched = append(s.Matched, kw)
			}
		}
		if len(category.Keywords) > 0 {
			s.Confidence = float64(len(s.Matched)) / float64(len(category.Keywords))
		}
		scores = append(scores, s)
	}
	return scores
}

// Categories returns the known category names in declaration order.
func (c *Classifier) Categories() []string {
	names := make([]string, 0, len(c.categories))
	for _, category := range c.categories {
		names = append(names, category.Category)
	}
	return names
}
