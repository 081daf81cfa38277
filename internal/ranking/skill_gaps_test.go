package ranking

import (
	"testing"

	"github.com/jonathan/hr-insights/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeSkillGaps(t *testing.T) {
	candidate := []types.CandidateSkill{
		{Name: "Python", Level: "advanced"},
		{Name: "React", Level: "beginner"},
		{Name: "AWS", Level: "Expert"},
	}
	target := &types.RequirementSet{Skills: []types.RequiredSkill{
		{Name: "python", Level: "expert", Importance: "high", Mandatory: true},
		{Name: "react", Level: "intermediate", Importance: "low"},
		{Name: "aws", Level: "advanced", Importance: "medium"},
		{Name: "docker", Level: "intermediate", Mandatory: true},
	}}

	report := newTestScorer().AnalyzeSkillGaps(candidate, target)

	require.Len(t, report.Gaps, 3)
	assert.Equal(t, types.SkillGap{
		Skill: "python", Importance: "high", CurrentLevel: "advanced", TargetLevel: "expert", Priority: 6, Mandatory: true,
	}, report.Gaps[0])
	assert.Equal(t, types.SkillGap{
		Skill: "docker", Importance: "medium", CurrentLevel: "none", TargetLevel: "intermediate", Priority: 4, Mandatory: true,
	}, report.Gaps[1])
	assert.Equal(t, "react", report.Gaps[2].Skill)
	assert.Equal(t, 1, report.Gaps[2].Priority)

	assert.Equal(t, []types.SkillStrength{{Skill: "aws", Level: "expert", Advantage: 1}}, report.Strengths)

	assert.Equal(t, []types.LearningStep{
		{Skill: "python", Action: "Advance python from advanced to expert", Priority: 6, EstimatedWeeks: 4},
		{Skill: "docker", Action: "Start learning docker fundamentals", Priority: 4, EstimatedWeeks: 8},
		{Skill: "react", Action: "Advance react from beginner to intermediate", Priority: 1, EstimatedWeeks: 4},
	}, report.Recommendations)
	assert.Equal(t, 16, report.TimelineWeeks)
}

func TestAnalyzeSkillGaps_PlanCappedAtFive(t *testing.T) {
	var skills []types.RequiredSkill
	for _, name := range []string{"java", "vue", "mysql", "redis", "azure", "gcp", "figma"} {
		skills = append(skills, types.RequiredSkill{Name: name, Level: "beginner"})
	}

	report := newTestScorer().AnalyzeSkillGaps(nil, &types.RequirementSet{Skills: skills})
	assert.Len(t, report.Gaps, 7)
	assert.Len(t, report.Recommendations, 5)
	assert.Equal(t, "java", report.Recommendations[0].Skill)
	assert.Equal(t, 20, report.TimelineWeeks)
}

func TestAnalyzeSkillGaps_NilTarget(t *testing.T) {
	report := newTestScorer().AnalyzeSkillGaps([]types.CandidateSkill{{Name: "go"}}, nil)
	assert.Empty(t, report.Gaps)
	assert.Empty(t, report.Strengths)
	assert.Empty(t, report.Recommendations)
	assert.Equal(t, 0, report.TimelineWeeks)
}

func TestAnalyzeSkillGaps_UnleveledRequirementIsMetByPresence(t *testing.T) {
	report := newTestScorer().AnalyzeSkillGaps(
		[]types.CandidateSkill{{Name: "scrum"}},
		&types.RequirementSet{Skills: []types.RequiredSkill{{Name: "Scrum"}}},
	)
	assert.Empty(t, report.Gaps)
	assert.Equal(t, []types.SkillStrength{{Skill: "scrum", Level: "", Advantage: 0}}, report.Strengths)
}
