package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalysisSchema(t *testing.T) {
	data, err := json.Marshal(AnalysisSchema())
	require.NoError(t, err)

	var schema map[string]any
	require.NoError(t, json.Unmarshal(data, &schema))
	assert.Equal(t, "object", schema["type"])

	props, ok := schema["properties"].(map[string]any)
	require.True(t, ok)
	for _, key := range []string{"feasibilityScore", "difficultyLevel", "techStack", "roadmap", "quickWins"} {
		assert.Contains(t, props, key)
	}

	required, ok := schema["required"].([]any)
	require.True(t, ok)
	assert.Contains(t, required, "feasibilityScore")
	assert.NotContains(t, required, "executiveSummary")
}
