// Package catalog holds the keyword tables, weights and thresholds that drive extraction,
// scoring, intent classification and suggestions. A default catalog is embedded; a file
// can replace it at startup.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/jonathan/hr-insights/internal/schemas"
)

//go:embed default_catalog.json
var defaultCatalog []byte

//go:embed catalog.schema.json
var catalogSchema []byte

// weightTolerance is how far the scoring weights may drift from summing to 1.
const weightTolerance = 0.001

// Catalog is the complete set of process-level lookup tables
type Catalog struct {
	Version          string            `json:"version,omitempty"`
	SkillCategories  []SkillCategory   `json:"skill_categories"`
	Levels           []Ranked          `json:"levels"`
	DefaultLevel     string            `json:"default_level"`
	ExperienceLevels []ExperienceLevel `json:"experience_levels"`
	Degrees          []Ranked          `json:"degrees"`
	InstitutionCues  []string          `json:"institution_cues"`
	ExperienceCues   ExperienceCues    `json:"experience_cues"`
	Intents          []IntentCategory  `json:"intents"`
	IntentThreshold  float64           `json:"intent_threshold"`
	Scoring          Scoring           `json:"scoring"`
	Sentiment        SentimentWords    `json:"sentiment"`
	Suggestions      Suggestions       `json:"suggestions"`
}

// SkillCategory is a named, ordered group of skills
type SkillCategory struct {
	Name   string   `json:"name"`
	Skills []string `json:"skills"`
}

// Ranked is an ordinal entry such as a proficiency level or a degree
type Ranked struct {
	Name    string   `json:"name"`
	Rank    int      `json:"rank"`
	Cues    []string `json:"cues,omitempty"`
	Aliases []string `json:"aliases,omitempty"`
}

// ExperienceLevel maps a seniority name to a minimum number of years
type ExperienceLevel struct {
	Name     string  `json:"name"`
	MinYears float64 `json:"min_years"`
}

// ExperienceCues are the words that mark a sentence as work history
type ExperienceCues struct {
	Verbs          []string `json:"verbs"`
	CompanyMarkers []string `json:"company_markers"`
}

// IntentCategory is a conversational intent and its keywords
type IntentCategory struct {
	Category string   `json:"category"`
	Keywords []string `json:"keywords"`
}

// Weights are the component weights of the overall score
type Weights struct {
	Skills     float64 `json:"skills"`
	Experience float64 `json:"experience"`
	Education  float64 `json:"education"`
	Keywords   float64 `json:"keywords"`
}

// Sum returns the total of all component weights.
func (w Weights) Sum() float64 {
	return w.Skills + w.Experience + w.Education + w.Keywords
}

// Scoring holds the scorer's weights and thresholds
type Scoring struct {
	Weights            Weights `json:"weights"`
	InsightThreshold   float64 `json:"insight_threshold"`
	MaxRecommendations int     `json:"max_recommendations"`
	ExperienceTarget   float64 `json:"experience_target"`
	EducationTarget    float64 `json:"education_target"`
	WeeksPerLevel      int     `json:"weeks_per_level"`
}

// SentimentWords are the polarity word lists
type SentimentWords struct {
	Positive    []string `json:"positive"`
	Negative    []string `json:"negative"`
	Scale       float64  `json:"scale"`
	NeutralBand float64  `json:"neutral_band"`
}

// SuggestionGroup is a titled list of suggested prompts
type SuggestionGroup struct {
	Category string   `json:"category"`
	Items    []string `json:"items"`
}

// Suggestions are the follow-up prompts offered by the assistant
type Suggestions struct {
	Max        int                          `json:"max"`
	Base       []string                     `json:"base"`
	Roles      map[string][]string          `json:"roles"`
	Intents    map[string][]string          `json:"intents"`
	Categories map[string][]SuggestionGroup `json:"categories"`
}

// Default returns a fresh copy of the embedded catalog.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog is invalid: %v", err))
	}
	return c
}

// Load reads, validates and parses a catalog file. An empty path returns the default.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse validates data against the catalog schema and decodes it.
func Parse(data []byte) (*Catalog, error) {
	if err := schemas.ValidateDocument("catalog.schema.json", catalogSchema, data); err != nil {
		return nil, err
	}

	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	c.normalize()
	return &c, nil
}

// Schema returns the embedded catalog JSON Schema.
func Schema() []byte {
	return catalogSchema
}

// Validate checks the rules the schema cannot express.
func (c *Catalog) Validate() error {
	if sum := c.Scoring.Weights.Sum(); math.Abs(sum-1) > weightTolerance {
		return fmt.Errorf("scoring weights must sum to 1, got %.3f", sum)
	}
	seen := make(map[string]bool, len(c.Intents))
	for _, in := range c.Intents {
		if seen[in.Category] {
			return fmt.Errorf("duplicate intent category %q", in.Category)
		}
		seen[in.Category] = true
	}
	if c.DefaultLevel != "" && c.LevelRank(c.DefaultLevel) == 0 {
		return fmt.Errorf("default_level %q is not a declared level", c.DefaultLevel)
	}
	return nil
}

func (c *Catalog) applyDefaults() {
	if c.IntentThreshold == 0 {
		c.IntentThreshold = 0.3
	}
	if c.Scoring.InsightThreshold == 0 {
		c.Scoring.InsightThreshold = 0.6
	}
	if c.Scoring.MaxRecommendations == 0 {
		c.Scoring.MaxRecommendations = 5
	}
	if c.Scoring.ExperienceTarget == 0 {
		c.Scoring.ExperienceTarget = 3
	}
	if c.Scoring.EducationTarget == 0 {
		c.Scoring.EducationTarget = 1
	}
	if c.Scoring.WeeksPerLevel == 0 {
		c.Scoring.WeeksPerLevel = 4
	}
	if c.Sentiment.Scale == 0 {
		c.Sentiment.Scale = 10
	}
	if c.Sentiment.NeutralBand == 0 {
		c.Sentiment.NeutralBand = 0.1
	}
	if c.Suggestions.Max == 0 {
		c.Suggestions.Max = 6
	}
}

// normalize lowercases every keyword so lookups can compare directly.
func (c *Catalog) normalize() {
	for i := range c.SkillCategories {
		lowerAll(c.SkillCategories[i].Skills)
	}
	for i := range c.Levels {
		c.Levels[i].Name = strings.ToLower(c.Levels[i].Name)
		lowerAll(c.Levels[i].Cues)
	}
	for i := range c.Degrees {
		c.Degrees[i].Name = strings.ToLower(c.Degrees[i].Name)
		lowerAll(c.Degrees[i].Aliases)
	}
	for i := range c.Intents {
		lowerAll(c.Intents[i].Keywords)
	}
	lowerAll(c.InstitutionCues)
	lowerAll(c.ExperienceCues.Verbs)
	lowerAll(c.ExperienceCues.CompanyMarkers)
	lowerAll(c.Sentiment.Positive)
	lowerAll(c.Sentiment.Negative)
	c.DefaultLevel = strings.ToLower(c.DefaultLevel)
}

func lowerAll(words []string) {
	for i, w := range words {
		words[i] = strings.ToLower(strings.TrimSpace(w))
	}
}

// LevelRank returns the ordinal of a proficiency level, or 0 when unknown.
func (c *Catalog) LevelRank(level string) int {
	level = strings.ToLower(strings.TrimSpace(level))
	for _, l := range c.Levels {
		if l.Name == level {
			return l.Rank
		}
	}
	return 0
}

// DegreeRank returns the ordinal of a degree name or alias, or 0 when unknown.
func (c *Catalog) DegreeRank(degree string) int {
	degree = strings.ToLower(strings.TrimSpace(degree))
	if degree == "" {
		return 0
	}
	for _, d := range c.Degrees {
		if d.Name == degree {
			return d.Rank
		}
		for _, a := range d.Aliases {
			if a == degree {
				return d.Rank
			}
		}
	}
	return 0
}

// MinYearsForLevel returns the minimum years for a seniority name.
func (c *Catalog) MinYearsForLevel(level string) (float64, bool) {
	level = strings.ToLower(strings.TrimSpace(level))
	for _, l := range c.ExperienceLevels {
		if strings.EqualFold(l.Name, level) {
			return l.MinYears, true
		}
	}
	return 0, false
}

// CategoryOf returns the category of a catalog skill.
func (c *Catalog) CategoryOf(skill string) (string, bool) {
	skill = strings.ToLower(strings.TrimSpace(skill))
	for _, cat := range c.SkillCategories {
		for _, s := range cat.Skills {
			if s == skill {
				return cat.Name, true
			}
		}
	}
	return "", false
}
