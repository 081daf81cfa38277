package conversation

import (
	"regexp"

	"github.com/jonathan/hr-insights/internal/types"
)

const monthNames = `(?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)`

var (
	datePattern = regexp.MustCompile(`(?i)\b(?:` +
		`\d{4}-\d{2}-\d{2}` +
		`|\d{1,2}/\d{1,2}/\d{2,4}` +
		`|` + monthNames + `\.?\s+\d{1,2}(?:st|nd|rd|th)?(?:,?\s+\d{4})?` +
		`|\d{1,2}(?:st|nd|rd|th)?\s+(?:of\s+)?` + monthNames + `(?:,?\s+\d{4})?` +
		`|today|tomorrow|yesterday` +
		`|(?:next|this|last)\s+(?:week|month|year|monday|tuesday|wednesday|thursday|friday|saturday|sunday)` +
		`)\b`)
	numberPattern = regexp.MustCompile(`\b\d+(?:\.\d+)?\b`)
)

// ExtractEntities pulls dates and standalone numbers out of a query.
// Digits that belong to a date are not reported as numbers.
func ExtractEntities(query string) types.Entities {
	var entities types.Entities
	dateSpans := datePattern.FindAllStringIndex(query, -1)
	for _, span := range dateSpans {
		entities.Dates = append(entities.Dates, query[span[0]:span[1]])
	}
	for _, span := range numberPattern.FindAllStringIndex(query, -1) {
		if !overlaps(span, dateSpans) {
			entities.Numbers = append(entities.Numbers, query[span[0]:span[1]])
		}
	}
	return entities
}

func overlaps(span []int, others [][]int) bool {
	for _, o := range others {
		if span[0] < o[1] && o[0] < span[1] {
			return true
		}
	}
	return false
}
