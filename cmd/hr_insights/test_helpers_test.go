package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jonathan/hr-insights/internal/types"
)

const sampleResume = `Senior Python developer with advanced Python skills.
Worked 5 years at Acme Corp building services with PostgreSQL and Docker.
Bachelor of Science in Computer Science from State University, 2016.
Contact: jane.doe@example.com`

func backendSet(id, title string) types.RequirementSet {
	return types.RequirementSet{
		ID:    id,
		Title: title,
		Skills: []types.RequiredSkill{
			{Name: "python", Level: "advanced", Mandatory: true, Importance: types.ImportanceHigh},
			{Name: "postgresql", Level: "intermediate"},
			{Name: "kubernetes", Level: "intermediate", Importance: types.ImportanceLow},
		},
		Keywords:   []string{"services"},
		Experience: &types.ExperienceRequirement{Level: "mid"},
		Education:  &types.EducationRequirement{MinDegree: "bachelor"},
	}
}

// writeFile writes content under dir and returns the path
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// writeJSONFixture marshals v into a file under dir and returns the path
func writeJSONFixture(t *testing.T, dir, name string, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return writeFile(t, dir, name, string(data))
}

// decodeOutput unmarshals the JSON printed into buf
func decodeOutput[T any](t *testing.T, buf *bytes.Buffer) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(buf.Bytes(), &v), buf.String())
	return v
}
