package catalog

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/hr-insights/internal/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()

	require.Len(t, c.SkillCategories, 5)
	assert.Equal(t, "programming", c.SkillCategories[0].Name)
	assert.Equal(t, "management", c.SkillCategories[4].Name)

	assert.InDelta(t, 1.0, c.Scoring.Weights.Sum(), 1e-9)
	assert.Equal(t, 0.4, c.Scoring.Weights.Skills)
	assert.Equal(t, 0.3, c.IntentThreshold)
	assert.Equal(t, 0.6, c.Scoring.InsightThreshold)
	assert.Equal(t, 5, c.Scoring.MaxRecommendations)
	assert.Equal(t, 6, c.Suggestions.Max)

	require.Len(t, c.Intents, 4)
	assert.Equal(t, "leave_request", c.Intents[0].Category)
	assert.Equal(t, "general_hr", c.Intents[3].Category)
}

func TestDefault_ReturnsIndependentCopies(t *testing.T) {
	a := Default()
	b := Default()
	a.SkillCategories[0].Skills[0] = "cobol"
	assert.Equal(t, "javascript", b.SkillCategories[0].Skills[0])
}

func TestLevelRank(t *testing.T) {
	c := Default()
	tests := []struct {
		level string
		want  int
	}{
		{"beginner", 1},
		{"Intermediate", 2},
		{" advanced ", 3},
		{"EXPERT", 4},
		{"wizard", 0},
		{"", 0},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.want, c.LevelRank(tt.level))
		})
	}
}

func TestDegreeRank(t *testing.T) {
	c := Default()
	assert.Equal(t, 2, c.DegreeRank("bachelor"))
	assert.Equal(t, 2, c.DegreeRank("B.S."))
	assert.Equal(t, 3, c.DegreeRank("MBA"))
	assert.Equal(t, 4, c.DegreeRank("doctorate"))
	assert.Equal(t, 0, c.DegreeRank("bootcamp"))
	assert.Equal(t, 0, c.DegreeRank(""))
}

func TestMinYearsForLevel(t *testing.T) {
	c := Default()
	years, ok := c.MinYearsForLevel("Senior")
	require.True(t, ok)
	assert.Equal(t, 5.0, years)

	_, ok = c.MinYearsForLevel("intern")
	assert.False(t, ok)
}

func TestCategoryOf(t *testing.T) {
	c := Default()
	cat, ok := c.CategoryOf("Kubernetes")
	require.True(t, ok)
	assert.Equal(t, "cloud", cat)

	_, ok = c.CategoryOf("haskell")
	assert.False(t, ok)
}

func TestParse_RejectsSchemaViolations(t *testing.T) {
	var raw map[string]any
	require.NoError(t, json.Unmarshal(defaultCatalog, &raw))
	delete(raw, "intents")
	data, err := json.Marshal(raw)
	require.NoError(t, err)

	_, err = Parse(data)
	require.Error(t, err)
	var validationErr *schemas.ValidationError
	assert.True(t, errors.As(err, &validationErr))
}

func TestParse_RejectsUnknownIntentName(t *testing.T) {
	var raw map[string]any
	require.NoError(t, json.Unmarshal(defaultCatalog, &raw))
	raw["intents"] = []any{map[string]any{"category": "unknown", "keywords": []string{"x"}}}
	data, err := json.Marshal(raw)
	require.NoError(t, err)

	_, err = Parse(data)
	assert.Error(t, err)
}

func TestParse_RejectsWeightsNotSummingToOne(t *testing.T) {
	var raw map[string]any
	require.NoError(t, json.Unmarshal(defaultCatalog, &raw))
	raw["scoring"].(map[string]any)["weights"] = map[string]any{
		"skills": 0.5, "experience": 0.3, "education": 0.2, "keywords": 0.1,
	}
	data, err := json.Marshal(raw)
	require.NoError(t, err)

	_, err = Parse(data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sum to 1")
}

func TestParse_RejectsDuplicateIntent(t *testing.T) {
	var raw map[string]any
	require.NoError(t, json.Unmarshal(defaultCatalog, &raw))
	intents := raw["intents"].([]any)
	raw["intents"] = append(intents, intents[0])
	data, err := json.Marshal(raw)
	require.NoError(t, err)

	_, err = Parse(data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate intent")
}

func TestParse_LowercasesKeywords(t *testing.T) {
	var raw map[string]any
	require.NoError(t, json.Unmarshal(defaultCatalog, &raw))
	raw["intents"] = []any{map[string]any{"category": "travel", "keywords": []string{"Flight", " Hotel "}}}
	data, err := json.Marshal(raw)
	require.NoError(t, err)

	c, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"flight", "hotel"}, c.Intents[0].Keywords)
}

func TestLoad(t *testing.T) {
	t.Run("empty path uses default", func(t *testing.T) {
		c, err := Load("")
		require.NoError(t, err)
		assert.Len(t, c.Intents, 4)
	})

	t.Run("file on disk", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.json")
		require.NoError(t, os.WriteFile(path, defaultCatalog, 0644))
		c, err := Load(path)
		require.NoError(t, err)
		assert.Len(t, c.SkillCategories, 5)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read catalog")
	})
}
