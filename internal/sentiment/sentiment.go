// Package sentiment scores the polarity of short texts with positive and negative word lists.
package sentiment

import (
	"math"

	"github.com/jonathan/hr-insights/internal/catalog"
	"github.com/jonathan/hr-insights/internal/parsing"
	"github.com/jonathan/hr-insights/internal/types"
)

// Labels
const (
	Positive = "positive"
	Negative = "negative"
	Neutral  = "neutral"
)

// Analyzer scores sentiment. It is safe for concurrent use.
type Analyzer struct {
	positive    map[string]bool
	negative    map[string]bool
	scale       float64
	neutralBand float64
}

// NewAnalyzer builds an Analyzer from the catalog word lists.
func NewAnalyzer(c *catalog.Catalog) *Analyzer {
	if c == nil {
		c = catalog.Default()
	}
	a := &Analyzer{
		positive:    make(map[string]bool, len(c.Sentiment.Positive)),
		negative:    make(map[string]bool, len(c.Sentiment.Negative)),
		scale:       c.Sentiment.Scale,
		neutralBand: c.Sentiment.NeutralBand,
	}
	for _, w := range c.Sentiment.Positive {
		a.positive[w] = true
	}
	for _, w := range c.Sentiment.Negative {
		a.negative[w] = true
	}
	return a
}

// Analyze returns score = clamp(scale * (positive - negative) / tokens, -1, 1),
// labelled positive above the neutral band and negative below it.
func (a *Analyzer) Analyze(text string) types.Sentiment {
	tokens := parsing.Tokenize(text)
	result := types.Sentiment{Label: Neutral}
	if len(tokens) == 0 {
		return result
	}

	for _, tok := range tokens {
		switch {
		case a.positive[tok]:
			result.Positive++
		case a.negative[tok]:
			result.Negative++
		}
	}

	score := a.scale * float64(result.Positive-result.Negative) / float64(len(tokens))
	score = math.Max(-1, math.Min(1, score))
	result.Score = math.Round(score*1000) / 1000
	result.Confidence = math.Abs(result.Score)

	switch {
	case result.Score > a.neutralBand:
		result.Label = Positive
	case result.Score < -a.neutralBand:
		result.Label = Negative
	}
	return result
}
