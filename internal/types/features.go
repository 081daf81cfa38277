//nolint:revive // types is a standard Go package name pattern
package types

// FeatureSet is the structured information extracted from a free-text document
type FeatureSet struct {
	Skills     []ExtractedSkill      `json:"skills"`
	Experience []ExperienceStatement `json:"experience"`
	Education  []EducationStatement  `json:"education"`
	Contact    Contact               `json:"contact"`
	Summary    string                `json:"summary,omitempty"`
	// Text is the source document, kept for keyword matching.
	Text string `json:"-"`
}

// ExtractedSkill is a catalog skill found in the source text
type ExtractedSkill struct {
	Name       string  `json:"name"`
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
	Level      string  `json:"level"`
}

// ExperienceStatement is a sentence that describes work history
type ExperienceStatement struct {
	Description string  `json:"description"`
	Years       float64 `json:"duration_years"`
	Company     string  `json:"company,omitempty"`
}

// EducationStatement is a sentence that describes schooling
type EducationStatement struct {
	Description string `json:"description"`
	Degree      string `json:"degree,omitempty"`
	Institution string `json:"institution,omitempty"`
	Year        int    `json:"year,omitempty"`
}

// Contact holds contact details found in the source text
type Contact struct {
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// IsEmpty reports whether nothing was extracted.
func (f FeatureSet) IsEmpty() bool {
	return len(f.Skills) == 0 && len(f.Experience) == 0 && len(f.Education) == 0
}

// SkillByName returns the extracted skill with the given lowercase name.
func (f FeatureSet) SkillByName(name string) (ExtractedSkill, bool) {
	for _, s := range f.Skills {
		if s.Name == name {
			return s, true
		}
	}
	return ExtractedSkill{}, false
}
