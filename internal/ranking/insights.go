package ranking

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/hr-insights/internal/types"
)

// importanceWeight maps skill importance to its priority factor
var importanceWeight = map[string]int{
	types.ImportanceHigh:   3,
	types.ImportanceMedium: 2,
	types.ImportanceLow:    1,
}

// SkillPriority is importance weight (high 3, medium 2, low 1) doubled for mandatory skills.
func SkillPriority(skill types.RequiredSkill) int {
	priority := importanceWeight[skill.ImportanceOrDefault()]
	if skill.Mandatory {
		priority *= 2
	}
	return priority
}

// generateInsights labels each component as a strength or a weakness against
// the insight threshold. The keyword component is skipped when no keywords were asked for.
func (s *Scorer) generateInsights(c components, features types.FeatureSet, matched, missing []string, hasKeywords bool) ([]string, []string) {
	threshold := s.catalog.Scoring.InsightThreshold
	strengths := []string{}
	weaknesses := []string{}

	if c.skills >= threshold {
		if len(matched) > 0 {
			strengths = append(strengths, fmt.Sprintf("Strong skill match (%s)", strings.Join(matched, ", ")))
		} else {
			strengths = append(strengths, "Meets the skill requirements")
		}
	} else if len(missing) > 0 {
		weaknesses = append(weaknesses, fmt.Sprintf("Missing required skills (%s)", strings.Join(missing, ", ")))
	} else {
		weaknesses = append(weaknesses, "Skill levels below requirements")
	}

	if c.experience >= threshold {
		strengths = append(strengths, fmt.Sprintf("Relevant work experience (%s)", describeExperience(features.Experience)))
	} else {
		weaknesses = append(weaknesses, "Limited relevant work experience")
	}

	if c.education >= threshold {
		strengths = append(strengths, "Education meets requirements")
	} else {
		weaknesses = append(weaknesses, "Education below requirements")
	}

	if hasKeywords {
		if c.keywords >= threshold {
			strengths = append(strengths, "Good keyword coverage")
		} else {
			weaknesses = append(weaknesses, "Few role keywords present")
		}
	}

	return strengths, weaknesses
}

func describeExperience(statements []types.ExperienceStatement) string {
	total := 0.0
	for _, stmt := range statements {
		total += stmt.Years
	}
	noun := "entries"
	if len(statements) == 1 {
		noun = "entry"
	}
	if total == 0 {
		return fmt.Sprintf("%d %s", len(statements), noun)
	}
	return fmt.Sprintf("%d %s, %.1f years", len(statements), noun, total)
}

// generateRecommendations lists skill improvements by priority (highest first,
// ties in declaration order), then improvements for weak components, capped at
// the catalog maximum.
func (s *Scorer) generateRecommendations(c components, matches []skillMatch, req *types.RequirementSet, missingKeywords []string) []string {
	type ranked struct {
		priority int
		text     string
	}
	var gaps []ranked
	for _, m := range matches {
		switch {
		case m.candidate == nil:
			gaps = append(gaps, ranked{SkillPriority(m.required), fmt.Sprintf("Develop proficiency in %s", m.required.Name)})
		case m.levelMatch < 1 && (m.candidate.Level == "" || m.required.Level == ""):
			gaps = append(gaps, ranked{SkillPriority(m.required), fmt.Sprintf("Demonstrate hands-on use of %s", m.required.Name)})
		case m.levelMatch < 1:
			gaps = append(gaps, ranked{SkillPriority(m.required), fmt.Sprintf("Advance %s from %s to %s", m.required.Name, m.candidate.Level, m.required.Level)})
		}
	}
	sort.SliceStable(gaps, func(i, j int) bool {
		return gaps[i].priority > gaps[j].priority
	})

	recs := make([]string, 0, len(gaps)+3)
	for _, g := range gaps {
		recs = append(recs, g.text)
	}

	threshold := s.catalog.Scoring.InsightThreshold
	if c.experience < threshold {
		if years, ok := s.requiredYears(req.Experience); ok && years > 0 {
			recs = append(recs, fmt.Sprintf("Gain more hands-on experience (at least %g years expected)", years))
		} else {
			recs = append(recs, "Gain more hands-on experience and describe past roles in detail")
		}
	}
	if c.education < threshold {
		if req.Education != nil && len(req.Education.PreferredFields) > 0 {
			recs = append(recs, fmt.Sprintf("Consider education or certification in %s", strings.Join(req.Education.PreferredFields, ", ")))
		} else {
			recs = append(recs, "Consider further education or certification")
		}
	}
	if len(missingKeywords) > 0 && c.keywords < threshold {
		recs = append(recs, fmt.Sprintf("Highlight experience with %s", strings.Join(missingKeywords, ", ")))
	}

	if limit := s.catalog.Scoring.MaxRecommendations; len(recs) > limit {
		recs = recs[:limit]
	}
	return recs
}
