// Package skills builds target requirement sets for a role from the
// requirement sets already on file.
package skills

import (
	"errors"
	"regexp"
	"sort"
	"strings"

	"github.com/jonathan/hr-insights/internal/catalog"
	"github.com/jonathan/hr-insights/internal/parsing"
	"github.com/jonathan/hr-insights/internal/types"
)

const (
	// MaxSimilarSets caps how many matching requirement sets feed a target
	MaxSimilarSets = 5
	// MinMentions is how many sets must name a skill before it is kept
	MinMentions = 2
)

// ErrNoSimilarSets is returned when no stored requirement set matches the role.
var ErrNoSimilarSets = errors.New("no requirement sets found for the target role")

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Aggregator builds role targets
type Aggregator struct {
	catalog *catalog.Catalog
}

// NewAggregator creates an Aggregator. A nil catalog uses the default.
func NewAggregator(c *catalog.Catalog) *Aggregator {
	if c == nil {
		c = catalog.Default()
	}
	return &Aggregator{catalog: c}
}

// FindSimilar returns up to MaxSimilarSets sets whose title contains role,
// compared case-insensitively, in the order given.
func FindSimilar(sets []types.RequirementSet, role string) []types.RequirementSet {
	role = strings.ToLower(strings.TrimSpace(role))
	if role == "" {
		return nil
	}
	var similar []types.RequirementSet
	for _, set := range sets {
		if strings.Contains(strings.ToLower(set.Title), role) {
			similar = append(similar, set)
			if len(similar) == MaxSimilarSets {
				break
			}
		}
	}
	return similar
}

// skillInfo accumulates one skill across sets
type skillInfo struct {
	name      string
	level     string
	mandatory bool
	mentions  int
	order     int
}

// BuildRoleTarget aggregates the sets similar to role into one requirement set.
// Skills named by at least MinMentions sets are kept, at the highest level any
// set asks for; importance is high when any set marks the skill mandatory and
// medium otherwise. Skills are ordered by mentions, then first appearance.
func (a *Aggregator) BuildRoleTarget(role string, sets []types.RequirementSet) (*types.RequirementSet, error) {
	similar := FindSimilar(sets, role)
	if len(similar) == 0 {
		return nil, ErrNoSimilarSets
	}

	skillMap := make(map[string]*skillInfo)
	keywordCounts := make(map[string]int)
	var keywordOrder []string
	for _, set := range similar {
		for _, req := range parsing.NormalizeRequirements(set.Skills) {
			a.addOrUpdateSkill(skillMap, req)
		}
		seen := make(map[string]bool)
		for _, kw := range set.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw == "" || seen[kw] {
				continue
			}
			seen[kw] = true
			if keywordCounts[kw] == 0 {
				keywordOrder = append(keywordOrder, kw)
			}
			keywordCounts[kw]++
		}
	}

	kept := make([]*skillInfo, 0, len(skillMap))
	for _, info := range skillMap {
		if info.mentions >= MinMentions {
			kept = append(kept, info)
		}
	}
	sort.Slice(kept, func(i, j int) bool {
		if kept[i].mentions != kept[j].mentions {
			return kept[i].mentions > kept[j].mentions
		}
		return kept[i].order < kept[j].order
	})

	target := &types.RequirementSet{
		ID:     "role:" + strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(role), "-"), "-"),
		Title:  strings.TrimSpace(role),
		Skills: make([]types.RequiredSkill, 0, len(kept)),
	}
	for _, info := range kept {
		importance := types.ImportanceMedium
		if info.mandatory {
			importance = types.ImportanceHigh
		}
		target.Skills = append(target.Skills, types.RequiredSkill{
			Name:       info.name,
			Level:      info.level,
			Importance: importance,
		})
	}
	for _, kw := range keywordOrder {
		if keywordCounts[kw] >= MinMentions {
			target.Keywords = append(target.Keywords, kw)
		}
	}
	return target, nil
}

// addOrUpdateSkill counts a mention, keeping the highest level and any mandatory flag.
func (a *Aggregator) addOrUpdateSkill(skillMap map[string]*skillInfo, req types.RequiredSkill) {
	if existing, exists := skillMap[req.Name]; exists {
		existing.mentions++
		existing.mandatory = existing.mandatory || req.Mandatory
		if a.catalog.LevelRank(req.Level) > a.catalog.LevelRank(existing.level) {
			existing.level = req.Level
		}
		return
	}
	skillMap[req.Name] = &skillInfo{
		name:      req.Name,
		level:     req.Level,
		mandatory: req.Mandatory,
		mentions:  1,
		order:     len(skillMap),
	}
}
