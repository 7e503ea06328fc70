package commands

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptCmd_Use(t *testing.T) {
	assert.Equal(t, "prompt <kind> [repo-url]", promptCmd.Use)
	assert.Equal(t, "Print the assembled prompt for an analysis kind", promptCmd.Short)
}

func TestPromptCmd_PrintsBundle(t *testing.T) {
	dir := writeLab(t, "Prompt Lab")

	out, err := executeCommand(t, "prompt", "summary", "--dir", dir)
	require.NoError(t, err)

	assert.Contains(t, out, "=== System Instructions ===")
	assert.Contains(t, out, "=== User Content ===")
	assert.Contains(t, out, "LAB TITLE: Prompt Lab")
	assert.Contains(t, out, "Provision the cluster and log in.")
}

func TestPromptCmd_JSONBundle(t *testing.T) {
	dir := writeLab(t, "Prompt Lab")

	out, err := executeCommand(t, "prompt", "review", "--dir", dir, "--output", "json")
	require.NoError(t, err)

	var bundle struct {
		System string `json:"system_instructions"`
		User   string `json:"user_content"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &bundle))

	assert.NotEmpty(t, bundle.System)
	assert.Contains(t, bundle.User, "LAB TITLE: Prompt Lab")
}

func TestPromptCmd_UnknownKind(t *testing.T) {
	dir := writeLab(t, "Prompt Lab")

	_, err := executeCommand(t, "prompt", "sentiment", "--dir", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown analysis kind "sentiment"`)
}

func TestPromptCmd_AdocUnsupported(t *testing.T) {
	dir := writeLab(t, "Prompt Lab")

	_, err := executeCommand(t, "prompt", "description", "--dir", dir, "--output", "adoc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not apply to prompts")
}
