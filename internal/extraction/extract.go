// Package extraction turns free-text documents into structured feature sets using
// catalog keyword tables and lexical patterns.
package extraction

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/hr-insights/internal/catalog"
	"github.com/jonathan/hr-insights/internal/parsing"
	"github.com/jonathan/hr-insights/internal/types"
)

// mentionsForFullConfidence is the number of mentions at which a skill's confidence reaches 1.0.
const mentionsForFullConfidence = 3

// maxSummaryLength caps the summary line in runes.
const maxSummaryLength = 200

var (
	yearsPattern     = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*\+?\s*(?:years?|yrs?)\b`)
	monthsPattern    = regexp.MustCompile(`(?i)(\d+)\s*(?:months?|mos?)\b`)
	yearRangePattern = regexp.MustCompile(`(?i)\b((?:19|20)\d{2})\s*(?:-|–|—|to|until)\s*((?:19|20)\d{2}|present|current|now|today)\b`)
	yearPattern      = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
	emailPattern     = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	phonePattern     = regexp.MustCompile(`\+?\d[\d\s().\-]{7,}\d`)
)

// Extractor extracts FeatureSets. It is safe for concurrent use.
type Extractor struct {
	catalog        *catalog.Catalog
	referenceYear  int
	companyPattern *regexp.Regexp
}

// Option configures an Extractor
type Option func(*Extractor)

// WithReferenceYear sets the year used for open-ended ranges such as "2019 - present".
func WithReferenceYear(year int) Option {
	return func(e *Extractor) {
		e.referenceYear = year
	}
}

// New creates an Extractor over the given catalog.
func New(c *catalog.Catalog, opts ...Option) *Extractor {
	if c == nil {
		c = catalog.Default()
	}
	e := &Extractor{
		catalog:       c,
		referenceYear: time.Now().Year(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.companyPattern = buildCompanyPattern(c.ExperienceCues.CompanyMarkers)
	return e
}

// buildCompanyPattern matches "<marker> Capitalized Words" with a case-insensitive marker.
func buildCompanyPattern(markers []string) *regexp.Regexp {
	if len(markers) == 0 {
		markers = []string{"at"}
	}
	quoted := make([]string, len(markers))
	for i, m := range markers {
		quoted[i] = regexp.QuoteMeta(m)
	}
	return regexp.MustCompile(`\b(?i:` + strings.Join(quoted, "|") + `)\s+([A-Z][\w&.\-]*(?:\s+(?:[A-Z][\w&.\-]*|&))*)`)
}

// Extract builds a FeatureSet from text. Empty or unrecognizable input yields an
// empty FeatureSet; the extractor never fails.
func (e *Extractor) Extract(text string) types.FeatureSet {
	return e.ExtractFor(text, nil)
}

// ExtractFor is Extract that also looks for the named skills when the catalog
// does not know them. Such skills are reported under the "other" category.
func (e *Extractor) ExtractFor(text string, extraSkills []string) types.FeatureSet {
	fs := types.FeatureSet{
		Skills:     []types.ExtractedSkill{},
		Experience: []types.ExperienceStatement{},
		Education:  []types.EducationStatement{},
		Text:       text,
	}
	if strings.TrimSpace(text) == "" {
		return fs
	}

	sentences := parsing.SplitSentences(text)
	fs.Skills = e.ExtractSkills(text, sentences)
	fs.Skills = append(fs.Skills, e.extractExtraSkills(text, sentences, extraSkills)...)
	fs.Experience = e.ExtractExperience(sentences)
	fs.Education = e.ExtractEducation(sentences)
	fs.Contact = extractContact(text)
	fs.Summary = summarize(sentences)
	return fs
}

// ExtractSkills finds every catalog skill in text, in catalog order.
func (e *Extractor) ExtractSkills(text string, sentences []string) []types.ExtractedSkill {
	skills := []types.ExtractedSkill{}
	for _, category := range e.catalog.SkillCategories {
		for _, skill := range category.Skills {
			count := countMentions(text, skill)
			if count == 0 {
				continue
			}
			skills = append(skills, types.ExtractedSkill{
				Name:       skill,
				Category:   category.Name,
				Confidence: math.Min(1, float64(count)/mentionsForFullConfidence),
				Level:      e.inferLevel(skill, sentences),
			})
		}
	}
	return skills
}

// OtherCategory is the category of skills found outside the catalog.
const OtherCategory = "other"

func (e *Extractor) extractExtraSkills(text string, sentences []string, names []string) []types.ExtractedSkill {
	var skills []types.ExtractedSkill
	seen := make(map[string]bool)
	for _, raw := range names {
		name := parsing.NormalizeSkillName(raw)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		if _, known := e.catalog.CategoryOf(name); known {
			continue
		}
		count := countMentions(text, name)
		if count == 0 {
			continue
		}
		skills = append(skills, types.ExtractedSkill{
			Name:       name,
			Category:   OtherCategory,
			Confidence: math.Min(1, float64(count)/mentionsForFullConfidence),
			Level:      e.inferLevel(name, sentences),
		})
	}
	return skills
}

// countMentions counts a skill under its best-represented spelling, so that
// overlapping spellings ("react" inside "react.js") are not counted twice.
func countMentions(text, skill string) int {
	best := parsing.CountPhrase(text, skill)
	for _, alias := range parsing.AliasesFor(skill) {
		if n := parsing.CountPhrase(text, alias); n > best {
			best = n
		}
	}
	return best
}

func mentions(sentence, skill string) bool {
	return countMentions(sentence, skill) > 0
}

// inferLevel picks the strongest proficiency cue in any sentence naming the skill.
func (e *Extractor) inferLevel(skill string, sentences []string) string {
	best, bestRank := "", 0
	for _, sentence := range sentences {
		if !mentions(sentence, skill) {
			continue
		}
		for _, level := range e.catalog.Levels {
			if level.Rank <= bestRank {
				continue
			}
			for _, cue := range level.Cues {
				if parsing.ContainsPhrase(sentence, cue) {
					best, bestRank = level.Name, level.Rank
					break
				}
			}
		}
	}
	if best == "" {
		return e.catalog.DefaultLevel
	}
	return best
}

// ExtractExperience keeps sentences that carry a duration, a year range, or a
// work verb together with a company marker.
func (e *Extractor) ExtractExperience(sentences []string) []types.ExperienceStatement {
	statements := []types.ExperienceStatement{}
	for _, sentence := range sentences {
		years, hasDuration := e.duration(sentence)
		company := e.company(sentence)
		if !hasDuration && !(company != "" && e.hasWorkVerb(sentence)) {
			continue
		}
		statements = append(statements, types.ExperienceStatement{
			Description: sentence,
			Years:       years,
			Company:     company,
		})
	}
	return statements
}

func (e *Extractor) hasWorkVerb(sentence string) bool {
	for _, verb := range e.catalog.ExperienceCues.Verbs {
		if parsing.ContainsPhrase(sentence, verb) {
			return true
		}
	}
	return false
}

// duration returns the years a sentence describes. Year ranges take precedence
// over explicit "N years" and "N months" phrases.
func (e *Extractor) duration(sentence string) (float64, bool) {
	if ranges := yearRangePattern.FindAllStringSubmatch(sentence, -1); len(ranges) > 0 {
		total := 0.0
		for _, m := range ranges {
			start, _ := strconv.Atoi(m[1])
			end := e.referenceYear
			if n, err := strconv.Atoi(m[2]); err == nil {
				end = n
			}
			if end > start {
				total += float64(end - start)
			}
		}
		return total, true
	}

	total, found := 0.0, false
	for _, m := range yearsPattern.FindAllStringSubmatch(sentence, -1) {
		if n, err := strconv.ParseFloat(m[1], 64); err == nil {
			total += n
			found = true
		}
	}
	for _, m := range monthsPattern.FindAllStringSubmatch(sentence, -1) {
		if n, err := strconv.Atoi(m[1]); err == nil {
			total += float64(n) / 12
			found = true
		}
	}
	return math.Round(total*100) / 100, found
}

func (e *Extractor) company(sentence string) string {
	m := e.companyPattern.FindStringSubmatch(sentence)
	if m == nil {
		return ""
	}
	return strings.TrimRight(m[1], ".,;:&- ")
}

// ExtractEducation keeps sentences that name a degree or an institution.
func (e *Extractor) ExtractEducation(sentences []string) []types.EducationStatement {
	statements := []types.EducationStatement{}
	for _, sentence := range sentences {
		degree := e.degree(sentence)
		institution := e.institution(sentence)
		if degree == "" && institution == "" {
			continue
		}
		statements = append(statements, types.EducationStatement{
			Description: sentence,
			Degree:      degree,
			Institution: institution,
			Year:        lastYear(sentence),
		})
	}
	return statements
}

// degree returns the highest-ranked degree named in the sentence.
func (e *Extractor) degree(sentence string) string {
	best, bestRank := "", 0
	for _, d := range e.catalog.Degrees {
		if d.Rank <= bestRank {
			continue
		}
		names := append([]string{d.Name}, d.Aliases...)
		for _, name := range names {
			if parsing.ContainsPhrase(sentence, name) {
				best, bestRank = d.Name, d.Rank
				break
			}
		}
	}
	return best
}

// institution expands around an institution cue word over capitalized words,
// e.g. "Stanford University" or "University of Texas at Austin".
func (e *Extractor) institution(sentence string) string {
	words := strings.Fields(sentence)
	for i, w := range words {
		if !e.isInstitutionCue(w) {
			continue
		}
		start := i
		for start > 0 && isCapitalized(words[start-1]) && !endsClause(words[start-1]) {
			start--
		}
		end := i
		for !endsClause(words[end]) && end+1 < len(words) {
			next := words[end+1]
			if !isCapitalized(next) && !isConnector(next) {
				break
			}
			end++
		}
		for end > i && isConnector(words[end]) {
			end--
		}
		return strings.TrimRight(strings.Join(words[start:end+1], " "), ".,;:")
	}
	return ""
}

func (e *Extractor) isInstitutionCue(word string) bool {
	w := strings.ToLower(strings.Trim(word, ".,;:()"))
	for _, cue := range e.catalog.InstitutionCues {
		if w == cue {
			return true
		}
	}
	return false
}

func isCapitalized(word string) bool {
	return word != "" && word[0] >= 'A' && word[0] <= 'Z'
}

func isConnector(word string) bool {
	switch strings.ToLower(word) {
	case "of", "the", "and", "&", "at":
		return true
	}
	return false
}

func endsClause(word string) bool {
	return strings.HasSuffix(word, ",") || strings.HasSuffix(word, ";") || strings.HasSuffix(word, ".")
}

func lastYear(sentence string) int {
	years := yearPattern.FindAllString(sentence, -1)
	if len(years) == 0 {
		return 0
	}
	y, _ := strconv.Atoi(years[len(years)-1])
	return y
}

func extractContact(text string) types.Contact {
	return types.Contact{
		Email: emailPattern.FindString(text),
		Phone: findPhone(text),
	}
}

// findPhone returns the first phone-like run with 10 to 15 digits, which skips year ranges.
func findPhone(text string) string {
	for _, candidate := range phonePattern.FindAllString(text, -1) {
		digits := 0
		for _, r := range candidate {
			if r >= '0' && r <= '9' {
				digits++
			}
		}
		if digits >= 10 && digits <= 15 {
			return strings.TrimSpace(candidate)
		}
	}
	return ""
}

// summarize returns the first prose sentence with at least four words, capped in length.
// Contact lines are skipped.
func summarize(sentences []string) string {
	for _, s := range sentences {
		if len(strings.Fields(s)) < 4 || emailPattern.MatchString(s) || findPhone(s) != "" {
			continue
		}
		runes := []rune(s)
		if len(runes) > maxSummaryLength {
			return strings.TrimSpace(string(runes[:maxSummaryLength])) + "..."
		}
		return s
	}
	return ""
}
