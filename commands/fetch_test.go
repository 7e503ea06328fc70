package commands

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rhpds/showroom-tool/source"
)

func TestFetchCmd_Use(t *testing.T) {
	assert.Equal(t, "fetch [repo-url]", fetchCmd.Use)
	assert.Equal(t, "Fetch a lab and report its structure", fetchCmd.Short)
}

func TestFetchCmd_Flags(t *testing.T) {
	ref := fetchCmd.Flags().Lookup("ref")
	require.NotNil(t, ref)
	assert.Equal(t, source.DefaultRef, ref.DefValue)

	format := fetchCmd.Flags().Lookup("output")
	require.NotNil(t, format)
	assert.Equal(t, "text", format.DefValue)
}

func TestFetchCmd_TextReport(t *testing.T) {
	dir := writeLab(t, "Fetch Lab")

	out, err := executeCommand(t, "fetch", "--dir", dir)
	require.NoError(t, err)

	assert.Contains(t, out, "Fetch Lab")
	assert.Contains(t, out, "Getting Started")
	assert.Contains(t, out, source.LocalRevision)
	assert.Contains(t, out, "fetched in")
}

func TestFetchCmd_JSONReport(t *testing.T) {
	dir := writeLab(t, "Fetch Lab")

	out, err := executeCommand(t, "fetch", "--dir", dir, "--output", "json")
	require.NoError(t, err)

	var payload struct {
		Lab struct {
			Name    string `json:"name"`
			Modules []struct {
				Title string `json:"title"`
			} `json:"modules"`
		} `json:"lab"`
		Report struct {
			Revision string `json:"revision"`
		} `json:"report"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &payload))

	assert.Equal(t, "Fetch Lab", payload.Lab.Name)
	require.Len(t, payload.Lab.Modules, 1)
	assert.Equal(t, "Getting Started", payload.Lab.Modules[0].Title)
	assert.Equal(t, source.LocalRevision, payload.Report.Revision)
}

func TestFetchCmd_RequiresSource(t *testing.T) {
	_, err := executeCommand(t, "fetch")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a repository URL or --dir is required")
}

func TestFetchCmd_RejectsBothSources(t *testing.T) {
	dir := writeLab(t, "Fetch Lab")

	_, err := executeCommand(t, "fetch", "https://github.com/rhpds/lab.git", "--dir", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestFetchCmd_UnknownOutputFormat(t *testing.T) {
	dir := writeLab(t, "Fetch Lab")

	_, err := executeCommand(t, "fetch", "--dir", dir, "--output", "yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown output format "yaml"`)
}

func TestFetchCmd_AdocUnsupported(t *testing.T) {
	dir := writeLab(t, "Fetch Lab")

	_, err := executeCommand(t, "fetch", "--dir", dir, "--output", "adoc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not apply to fetch reports")
}
