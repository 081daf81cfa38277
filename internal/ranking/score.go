package ranking

import (
	"math"

	"github.com/jonathan/hr-insights/internal/parsing"
	"github.com/jonathan/hr-insights/internal/types"
)

// Score evaluates a FeatureSet against a RequirementSet. It is pure and
// deterministic; a nil RequirementSet places no constraints.
func (s *Scorer) Score(features types.FeatureSet, req *types.RequirementSet) types.ScoreResult {
	if req == nil {
		req = &types.RequirementSet{}
	}

	required := parsing.NormalizeRequirements(req.Skills)
	skillsScore, matches := s.computeSkillsMatch(features, required)
	keywordScore, missingKeywords := computeKeywordMatch(features.Text, req.Keywords)

	c := components{
		skills:     clampUnit(skillsScore),
		experience: clampUnit(s.computeExperienceMatch(features, req.Experience)),
		education:  clampUnit(s.computeEducationMatch(features, req.Education)),
		keywords:   clampUnit(keywordScore),
	}

	result := types.ScoreResult{
		OverallScore:    s.overall(c),
		SkillsMatch:     c.skills,
		ExperienceMatch: c.experience,
		EducationMatch:  c.education,
		KeywordMatch:    c.keywords,
		MatchedSkills:   []string{},
		MissingSkills:   []string{},
	}
	for _, m := range matches {
		if m.candidate != nil {
			result.MatchedSkills = append(result.MatchedSkills, m.required.Name)
		} else {
			result.MissingSkills = append(result.MissingSkills, m.required.Name)
		}
	}

	hasKeywords := len(distinctKeywords(req.Keywords)) > 0
	result.Strengths, result.Weaknesses = s.generateInsights(c, features, result.MatchedSkills, result.MissingSkills, hasKeywords)
	result.Recommendations = s.generateRecommendations(c, matches, req, missingKeywords)
	result.Confidence = s.computeConfidence(features, matches)
	return result
}

// NoDataResult is the result for input that carries nothing to score.
func NoDataResult() types.ScoreResult {
	return types.ScoreResult{
		Strengths:       []string{},
		Weaknesses:      []string{},
		Recommendations: []string{},
		MatchedSkills:   []string{},
		MissingSkills:   []string{},
		NoData:          true,
	}
}

// computeConfidence grows with the evidence behind the score: half from skill
// coverage, a quarter each from finding any experience and any education.
func (s *Scorer) computeConfidence(features types.FeatureSet, matches []skillMatch) float64 {
	coverage := 0.0
	if len(matches) == 0 {
		coverage = math.Min(1, float64(len(features.Skills))/mentionsForCoverage)
	} else {
		found := 0
		for _, m := range matches {
			if m.candidate != nil {
				found++
			}
		}
		coverage = float64(found) / float64(len(matches))
	}

	confidence := 0.5 * coverage
	if len(features.Experience) > 0 {
		confidence += 0.25
	}
	if len(features.Education) > 0 {
		confidence += 0.25
	}
	return math.Round(clampUnit(confidence)*100) / 100
}

// mentionsForCoverage is how many extracted skills give full coverage when the
// requirement set names none.
const mentionsForCoverage = 3.0
