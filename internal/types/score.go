//nolint:revive // types is a standard Go package name pattern
package types

// ScoreResult is the outcome of scoring a FeatureSet against a RequirementSet
type ScoreResult struct {
	OverallScore    int      `json:"overall_score"`
	SkillsMatch     float64  `json:"skills_match"`
	ExperienceMatch float64  `json:"experience_match"`
	EducationMatch  float64  `json:"education_match"`
	KeywordMatch    float64  `json:"keyword_match"`
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	Recommendations []string `json:"recommendations"`
	Confidence      float64  `json:"confidence"`
	MatchedSkills   []string `json:"matched_skills"`
	MissingSkills   []string `json:"missing_skills"`
	NoData          bool     `json:"no_data,omitempty"`
}

// Screening recommendations
const (
	RecommendShortlist    = "shortlist"
	RecommendReview       = "review"
	RecommendManualReview = "manual_review"
)

// Application is one candidate document submitted for screening
type Application struct {
	ID            string `json:"id" validate:"required"`
	CandidateName string `json:"candidate_name,omitempty"`
	Text          string `json:"text"`
}

// ScreeningResult is the verdict for a single Application
type ScreeningResult struct {
	ApplicationID  string       `json:"application_id"`
	CandidateName  string       `json:"candidate_name,omitempty"`
	Score          *ScoreResult `json:"score,omitempty"`
	Recommendation string       `json:"recommendation"`
	Error          string       `json:"error,omitempty"`
}

// ScreeningSummary aggregates a batch of screening results
type ScreeningSummary struct {
	Total       int               `json:"total"`
	Shortlisted int               `json:"shortlisted"`
	Review      int               `json:"review"`
	Manual      int               `json:"manual_review"`
	Results     []ScreeningResult `json:"results"`
}

// SkillGap is a required skill the candidate lacks or holds below the target level
type SkillGap struct {
	Skill        string `json:"skill"`
	Importance   string `json:"importance"`
	CurrentLevel string `json:"current_level"`
	TargetLevel  string `json:"target_level"`
	Priority     int    `json:"priority"`
	Mandatory    bool   `json:"mandatory"`
}

// SkillStrength is a required skill the candidate meets or exceeds
type SkillStrength struct {
	Skill     string `json:"skill"`
	Level     string `json:"level"`
	Advantage int    `json:"advantage"`
}

// LearningStep is one entry of a development plan
type LearningStep struct {
	Skill          string `json:"skill"`
	Action         string `json:"action"`
	Priority       int    `json:"priority"`
	EstimatedWeeks int    `json:"estimated_weeks"`
}

// SkillGapReport is the outcome of comparing a skill list with a target role
type SkillGapReport struct {
	Gaps            []SkillGap      `json:"gaps"`
	Strengths       []SkillStrength `json:"strengths"`
	Recommendations []LearningStep  `json:"recommendations"`
	TimelineWeeks   int             `json:"timeline_weeks"`
}

// Sentiment is the polarity of a piece of text
type Sentiment struct {
	Label      string  `json:"sentiment"`
	Score      float64 `json:"score"`
	Confidence float64 `json:"confidence"`
	Positive   int     `json:"positive_words"`
	Negative   int     `json:"negative_words"`
}
