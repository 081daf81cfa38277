// Package parsing provides the text primitives shared by extraction, scoring and classification.
package parsing

import (
	"sort"
	"strings"

	"github.com/jonathan/hr-insights/internal/types"
)

// skillAliases maps common skill name variants to the catalog spelling
var skillAliases = map[string]string{
	"js":                  "javascript",
	"ecmascript":          "javascript",
	"react.js":            "react",
	"reactjs":             "react",
	"vue.js":              "vue",
	"vuejs":               "vue",
	"nodejs":              "node.js",
	"node":                "node.js",
	"angularjs":           "angular",
	"cpp":                 "c++",
	"golang":              "go",
	"postgres":            "postgresql",
	"psql":                "postgresql",
	"mongo":               "mongodb",
	"k8s":                 "kubernetes",
	"amazon web services": "aws",
	"google cloud":        "gcp",
	"ux":                  "ui/ux",
	"ui":                  "ui/ux",
	"ux design":           "ui/ux",
}

// NormalizeSkillName returns the lowercase canonical key for a skill name.
// Whitespace runs collapse to one space; known aliases resolve to the catalog spelling.
func NormalizeSkillName(skillName string) string {
	normalized := strings.ToLower(strings.Join(strings.Fields(skillName), " "))
	if normalized == "" {
		return ""
	}
	if canonical, ok := skillAliases[normalized]; ok {
		return canonical
	}
	return normalized
}

// AliasesFor returns the known alternate spellings of a canonical skill name, sorted.
func AliasesFor(canonical string) []string {
	var aliases []string
	for alias, name := range skillAliases {
		if name == canonical {
			aliases = append(aliases, alias)
		}
	}
	sort.Strings(aliases)
	return aliases
}

// NormalizeLevel returns a lowercase, trimmed proficiency level.
func NormalizeLevel(level string) string {
	return strings.ToLower(strings.TrimSpace(level))
}

// NormalizeRequirements canonicalizes skill names and drops duplicates.
// The first declaration of a skill wins; a later duplicate only fills in a
// missing level and upgrades the mandatory flag.
func NormalizeRequirements(reqs []types.RequiredSkill) []types.RequiredSkill {
	if len(reqs) == 0 {
		return reqs
	}

	normalized := make([]types.RequiredSkill, 0, len(reqs))
	seen := make(map[string]int) // normalized skill name -> index in normalized slice

	for _, req := range reqs {
		name := NormalizeSkillName(req.Name)
		if name == "" {
			continue
		}

		if idx, exists := seen[name]; exists {
			if normalized[idx].Level == "" && req.Level != "" {
				normalized[idx].Level = NormalizeLevel(req.Level)
			}
			normalized[idx].Mandatory = normalized[idx].Mandatory || req.Mandatory
			continue
		}

		normalized = append(normalized, types.RequiredSkill{
			Name:       name,
			Level:      NormalizeLevel(req.Level),
			Mandatory:  req.Mandatory,
			Importance: strings.ToLower(strings.TrimSpace(req.Importance)),
		})
		seen[name] = len(normalized) - 1
	}

	return normalized
}
