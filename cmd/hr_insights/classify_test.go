package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/hr-insights/internal/types"
)

func TestRunClassify_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, runClassify(&buf, "", "Can I take sick leave tomorrow?", true))

	out := decodeOutput[classifyOutput](t, &buf)
	assert.Equal(t, "leave_request", out.Intent.Category)
	assert.Positive(t, out.Intent.Confidence)
	assert.Contains(t, out.Entities.Dates, "tomorrow")
	assert.Len(t, out.Scores, 4)
}

func TestRunClassify_Summary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, runClassify(&buf, "", "Can I take sick leave tomorrow?", false))

	output := buf.String()
	assert.Contains(t, output, "INTENT")
	assert.Contains(t, output, "leave_request")
	assert.Contains(t, output, "tomorrow")
}

func TestRunClassify_Unknown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, runClassify(&buf, "", "the weather is lovely", true))
	assert.Equal(t, types.IntentUnknown, decodeOutput[classifyOutput](t, &buf).Intent.Category)
}
