package ranking

import (
	"math"
	"strings"

	"github.com/jonathan/hr-insights/internal/parsing"
	"github.com/jonathan/hr-insights/internal/types"
)

// Degree and field parts of the education component
const (
	degreeWeight = 0.6
	fieldWeight  = 0.4
)

// Partial credit for degrees below the minimum
const (
	oneRankBelowScore = 0.5
	anyEducationScore = 0.25
)

// relatedFieldScore is the credit for a field adjacent to a preferred one.
const relatedFieldScore = 0.7

// relatedFields lists fields that count as adjacent to a preferred field
var relatedFields = map[string][]string{
	"computer science":        {"software engineering", "computer engineering", "information technology"},
	"software engineering":    {"computer science", "computer engineering"},
	"data science":            {"statistics", "mathematics", "computer science", "machine learning"},
	"statistics":              {"mathematics", "data science", "economics"},
	"mathematics":             {"statistics", "physics", "computer science"},
	"electrical engineering":  {"computer engineering", "electronics"},
	"human resources":         {"psychology", "business administration", "organizational behavior"},
	"business administration": {"management", "economics", "finance"},
}

// computeEducationMatch scores education statements. Without a requirement it
// rewards any education found; otherwise it combines the degree part (60%) and
// the field part (40%) over the parts the requirement names.
func (s *Scorer) computeEducationMatch(features types.FeatureSet, req *types.EducationRequirement) float64 {
	statements := features.Education
	if req == nil || (req.MinDegree == "" && len(req.PreferredFields) == 0) {
		return math.Min(1, float64(len(statements))/s.catalog.Scoring.EducationTarget)
	}

	score, weights := 0.0, 0.0
	if req.MinDegree != "" {
		weights += degreeWeight
		score += degreeWeight * s.degreeScore(statements, req.MinDegree)
	}
	if len(req.PreferredFields) > 0 {
		weights += fieldWeight
		score += fieldWeight * fieldScore(statements, req.PreferredFields)
	}
	return score / weights
}

// degreeScore compares the best degree found with the minimum degree.
func (s *Scorer) degreeScore(statements []types.EducationStatement, minDegree string) float64 {
	if len(statements) == 0 {
		return 0
	}
	required := s.catalog.DegreeRank(minDegree)
	if required == 0 {
		// Unknown degree names are satisfied by any education.
		return 1.0
	}

	best := 0
	for _, stmt := range statements {
		if rank := s.catalog.DegreeRank(stmt.Degree); rank > best {
			best = rank
		}
	}

	switch {
	case best >= required:
		return 1.0
	case best > 0 && best == required-1:
		return oneRankBelowScore
	default:
		return anyEducationScore
	}
}

// fieldScore is 1 when a statement names a preferred field, 0.7 when it names a
// related one and 0 otherwise.
func fieldScore(statements []types.EducationStatement, preferred []string) float64 {
	best := 0.0
	for _, stmt := range statements {
		for _, field := range preferred {
			field = strings.ToLower(strings.TrimSpace(field))
			if field == "" {
				continue
			}
			if parsing.ContainsPhrase(stmt.Description, field) {
				return 1.0
			}
			for _, related := range relatedFields[field] {
				if parsing.ContainsPhrase(stmt.Description, related) {
					best = relatedFieldScore
				}
			}
		}
	}
	return best
}
