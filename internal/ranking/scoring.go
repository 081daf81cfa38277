// Package ranking scores extracted candidate features against role requirements.
package ranking

import (
	"math"
	"strings"

	"github.com/jonathan/hr-insights/internal/catalog"
	"github.com/jonathan/hr-insights/internal/parsing"
	"github.com/jonathan/hr-insights/internal/types"
)

// Weights of a required skill in the skills component
const (
	mandatorySkillWeight = 2.0
	optionalSkillWeight  = 1.0
)

// Scorer computes ScoreResults. It holds only read-only catalog data and is safe
// for concurrent use.
type Scorer struct {
	catalog *catalog.Catalog
}

// NewScorer creates a Scorer over the given catalog.
func NewScorer(c *catalog.Catalog) *Scorer {
	if c == nil {
		c = catalog.Default()
	}
	return &Scorer{catalog: c}
}

// components holds the four normalized component scores.
type components struct {
	skills     float64
	experience float64
	education  float64
	keywords   float64
}

// skillMatch is the outcome of matching one required skill.
type skillMatch struct {
	required   types.RequiredSkill
	candidate  *types.ExtractedSkill
	levelMatch float64
}

// computeSkillsMatch returns the weighted skill score and the per-skill matches in
// declaration order. With no required skills the score is 1.
func (s *Scorer) computeSkillsMatch(features types.FeatureSet, required []types.RequiredSkill) (float64, []skillMatch) {
	if len(required) == 0 {
		return 1.0, nil
	}

	held := make(map[string]types.ExtractedSkill, len(features.Skills))
	for _, skill := range features.Skills {
		name := parsing.NormalizeSkillName(skill.Name)
		if _, seen := held[name]; !seen {
			held[name] = skill
		}
	}

	matches := make([]skillMatch, 0, len(required))
	totalWeight, matchedWeight := 0.0, 0.0
	for _, req := range required {
		weight := optionalSkillWeight
		if req.Mandatory {
			weight = mandatorySkillWeight
		}
		totalWeight += weight

		m := skillMatch{required: req}
		if candidate, ok := held[req.Name]; ok {
			m.candidate = &candidate
			m.levelMatch = s.levelMatch(candidate.Level, req.Level)
			matchedWeight += weight * m.levelMatch
		}
		matches = append(matches, m)
	}

	return matchedWeight / totalWeight, matches
}

// levelMatch is 1 when the candidate meets the required level, otherwise the
// ratio of the two ranks. An unknown candidate level ranks 0; an unknown
// required level ranks 1.
func (s *Scorer) levelMatch(candidateLevel, requiredLevel string) float64 {
	candidate := s.catalog.LevelRank(candidateLevel)
	required := s.catalog.LevelRank(requiredLevel)
	if required == 0 {
		required = 1
	}
	if candidate >= required {
		return 1.0
	}
	return float64(candidate) / float64(required)
}

// computeExperienceMatch blends how much work history was found with how many
// years it covers relative to the requirement.
func (s *Scorer) computeExperienceMatch(features types.FeatureSet, req *types.ExperienceRequirement) float64 {
	evidence := math.Min(1, float64(len(features.Experience))/s.catalog.Scoring.ExperienceTarget)

	minYears, ok := s.requiredYears(req)
	if !ok {
		return evidence
	}

	yearsScore := 1.0
	if minYears > 0 {
		total := 0.0
		for _, stmt := range features.Experience {
			total += stmt.Years
		}
		yearsScore = math.Min(1, total/minYears)
	}
	return 0.5*evidence + 0.5*yearsScore
}

// requiredYears resolves the minimum years from explicit years or a seniority level.
func (s *Scorer) requiredYears(req *types.ExperienceRequirement) (float64, bool) {
	if req == nil {
		return 0, false
	}
	if req.MinYears > 0 {
		return req.MinYears, true
	}
	if req.Level != "" {
		return s.catalog.MinYearsForLevel(req.Level)
	}
	return 0, false
}

// computeKeywordMatch is the fraction of distinct keywords present in text.
func computeKeywordMatch(text string, keywords []string) (float64, []string) {
	distinct := distinctKeywords(keywords)
	if len(distinct) == 0 {
		return 0.0, nil
	}

	var missing []string
	found := 0
	for _, kw := range distinct {
		if parsing.ContainsPhrase(text, kw) {
			found++
		} else {
			missing = append(missing, kw)
		}
	}
	return float64(found) / float64(len(distinct)), missing
}

func distinctKeywords(keywords []string) []string {
	seen := make(map[string]bool, len(keywords))
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		k := strings.ToLower(strings.Join(strings.Fields(kw), " "))
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}

// overall combines the components with the catalog weights into a 0-100 score.
func (s *Scorer) overall(c components) int {
	w := s.catalog.Scoring.Weights
	raw := w.Skills*c.skills + w.Experience*c.experience + w.Education*c.education + w.Keywords*c.keywords
	score := int(math.Round(100 * raw))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func clampUnit(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
