package ranking

import (
	"fmt"
	"sort"

	"github.com/jonathan/hr-insights/internal/parsing"
	"github.com/jonathan/hr-insights/internal/types"
)

// levelNone marks a required skill the candidate does not hold at all.
const levelNone = "none"

// maxLearningSteps caps the development plan.
const maxLearningSteps = 5

// AnalyzeSkillGaps compares a candidate's claimed skills with a target requirement
// set. Gaps are ordered by priority, highest first; the plan covers the top gaps.
func (s *Scorer) AnalyzeSkillGaps(candidate []types.CandidateSkill, target *types.RequirementSet) types.SkillGapReport {
	report := types.SkillGapReport{
		Gaps:            []types.SkillGap{},
		Strengths:       []types.SkillStrength{},
		Recommendations: []types.LearningStep{},
	}
	if target == nil {
		return report
	}

	held := make(map[string]types.CandidateSkill, len(candidate))
	for _, c := range candidate {
		name := parsing.NormalizeSkillName(c.Name)
		if name == "" {
			continue
		}
		if _, exists := held[name]; !exists {
			held[name] = types.CandidateSkill{Name: name, Level: parsing.NormalizeLevel(c.Level)}
		}
	}

	for _, req := range parsing.NormalizeRequirements(target.Skills) {
		current, ok := held[req.Name]
		switch {
		case !ok:
			report.Gaps = append(report.Gaps, s.newGap(req, levelNone))
		case s.catalog.LevelRank(current.Level) < s.catalog.LevelRank(req.Level):
			report.Gaps = append(report.Gaps, s.newGap(req, current.Level))
		default:
			report.Strengths = append(report.Strengths, types.SkillStrength{
				Skill:     req.Name,
				Level:     current.Level,
				Advantage: s.catalog.LevelRank(current.Level) - s.catalog.LevelRank(req.Level),
			})
		}
	}

	sort.SliceStable(report.Gaps, func(i, j int) bool {
		return report.Gaps[i].Priority > report.Gaps[j].Priority
	})

	for i, gap := range report.Gaps {
		if i == maxLearningSteps {
			break
		}
		step := types.LearningStep{
			Skill:          gap.Skill,
			Action:         recommendedAction(gap),
			Priority:       gap.Priority,
			EstimatedWeeks: s.estimateWeeks(gap),
		}
		report.Recommendations = append(report.Recommendations, step)
		report.TimelineWeeks += step.EstimatedWeeks
	}
	return report
}

func (s *Scorer) newGap(req types.RequiredSkill, current string) types.SkillGap {
	return types.SkillGap{
		Skill:        req.Name,
		Importance:   req.ImportanceOrDefault(),
		CurrentLevel: current,
		TargetLevel:  req.Level,
		Priority:     SkillPriority(req),
		Mandatory:    req.Mandatory,
	}
}

func recommendedAction(gap types.SkillGap) string {
	if gap.CurrentLevel == levelNone {
		return fmt.Sprintf("Start learning %s fundamentals", gap.Skill)
	}
	return fmt.Sprintf("Advance %s from %s to %s", gap.Skill, gap.CurrentLevel, gap.TargetLevel)
}

// estimateWeeks allows a fixed number of weeks per level step, at least one step.
func (s *Scorer) estimateWeeks(gap types.SkillGap) int {
	steps := s.catalog.LevelRank(gap.TargetLevel) - s.catalog.LevelRank(gap.CurrentLevel)
	if steps < 1 {
		steps = 1
	}
	return steps * s.catalog.Scoring.WeeksPerLevel
}
