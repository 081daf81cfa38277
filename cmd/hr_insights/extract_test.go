package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/hr-insights/internal/types"
)

func TestRunExtract(t *testing.T) {
	dir := t.TempDir()
	resume := writeFile(t, dir, "jane.txt", sampleResume)

	var buf bytes.Buffer
	require.NoError(t, runExtract(&buf, "", resume, true))

	features := decodeOutput[types.FeatureSet](t, &buf)
	_, ok := features.SkillByName("python")
	assert.True(t, ok)
	_, ok = features.SkillByName("docker")
	assert.True(t, ok)
	require.NotEmpty(t, features.Experience)
	assert.InDelta(t, 5.0, features.Experience[0].Years, 0.001)
	require.NotEmpty(t, features.Education)
	assert.Equal(t, "jane.doe@example.com", features.Contact.Email)

	buf.Reset()
	require.NoError(t, runExtract(&buf, "", resume, false))
	assert.Contains(t, buf.String(), "EXTRACTED FEATURES")
	assert.Contains(t, buf.String(), "python")
}

func TestRunExtract_MissingFile(t *testing.T) {
	var buf bytes.Buffer
	err := runExtract(&buf, "", filepath.Join(t.TempDir(), "none.txt"), false)
	assert.Error(t, err)
	assert.Empty(t, buf.String())
}
