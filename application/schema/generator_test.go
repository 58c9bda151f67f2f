package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSchema_SimpleStruct(t *testing.T) {
	type BundleConfig struct {
		RunDir string `json:"run_dir"`
		Script string `json:"script"`
	}

	schema, err := GenerateSchema(BundleConfig{})
	require.NoError(t, err)
	assert.NotEmpty(t, schema)

	// Validate it's valid JSON
	var decoded map[string]interface{}
	err = json.Unmarshal(schema, &decoded)
	require.NoError(t, err)

	assert.Contains(t, string(schema), "run_dir")
	assert.Contains(t, string(schema), "script")
}

func TestManifestSchema(t *testing.T) {
	schema, err := ManifestSchema()
	require.NoError(t, err)
	assert.NotEmpty(t, schema)

	var decoded map[string]interface{}
	err = json.Unmarshal(schema, &decoded)
	require.NoError(t, err)

	// Every manifest field must surface under its json name.
	for _, field := range []string{
		"run_dir", "base_library", "windowing_library",
		"support_dir", "script", "image", "requirements",
	} {
		assert.Contains(t, string(schema), field)
	}
}
