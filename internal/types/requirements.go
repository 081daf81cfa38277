// Package types provides type definitions for structured data used throughout the hr-insights system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// DefaultMinimumScore is the screening cutoff used when a requirement set does not name one.
const DefaultMinimumScore = 60

// Importance levels for required skills
const (
	ImportanceHigh   = "high"
	ImportanceMedium = "medium"
	ImportanceLow    = "low"
)

// RequirementSet describes what a role asks of a candidate
type RequirementSet struct {
	ID           string                 `json:"id"`
	Title        string                 `json:"title,omitempty"`
	Skills       []RequiredSkill        `json:"skills"`
	Keywords     []string               `json:"keywords,omitempty"`
	Experience   *ExperienceRequirement `json:"experience,omitempty"`
	Education    *EducationRequirement  `json:"education,omitempty"`
	MinimumScore int                    `json:"minimum_score,omitempty"`
	UpdatedAt    time.Time              `json:"updated_at,omitempty"`
}

// RequiredSkill is a single named skill requirement
type RequiredSkill struct {
	Name       string `json:"name" validate:"required"`
	Level      string `json:"level,omitempty"`
	Mandatory  bool   `json:"mandatory,omitempty"`
	Importance string `json:"importance,omitempty" validate:"omitempty,oneof=high medium low"`
}

// ExperienceRequirement names a seniority level and/or a minimum number of years
type ExperienceRequirement struct {
	Level    string  `json:"level,omitempty"` // entry, junior, mid, senior, lead, executive
	MinYears float64 `json:"min_years,omitempty"`
}

// EducationRequirement names a minimum degree and preferred fields of study
type EducationRequirement struct {
	MinDegree       string   `json:"min_degree,omitempty"`
	PreferredFields []string `json:"preferred_fields,omitempty"`
}

// Threshold returns the minimum acceptable overall score, falling back to DefaultMinimumScore.
func (r *RequirementSet) Threshold() int {
	if r == nil || r.MinimumScore <= 0 {
		return DefaultMinimumScore
	}
	return r.MinimumScore
}

// ImportanceOrDefault returns the declared importance, or medium when unset.
func (s RequiredSkill) ImportanceOrDefault() string {
	switch s.Importance {
	case ImportanceHigh, ImportanceMedium, ImportanceLow:
		return s.Importance
	default:
		return ImportanceMedium
	}
}
