package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rhpds/showroom-tool/config"
	_ "github.com/rhpds/showroom-tool/llm/providers" // Register providers
	"github.com/rhpds/showroom-tool/output"
	"github.com/rhpds/showroom-tool/showroom"
	"github.com/rhpds/showroom-tool/source"
	"github.com/rhpds/showroom-tool/storage"
)

// executeCommand runs the root command with args, returning what it
// printed. HOME and the settings environment are redirected so host
// configuration cannot leak into assertions.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	t.Setenv("HOME", t.TempDir())
	for _, key := range []string{
		config.EnvProvider, config.EnvModel, config.EnvTemperature,
		config.EnvCacheDir, config.EnvWorkspace,
	} {
		if _, ok := os.LookupEnv(key); ok {
			t.Setenv(key, "")
		}
	}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		resetFlags()
	})

	err := rootCmd.Execute()
	return buf.String(), err
}

// resetFlags restores every shared flag variable to its registered
// default so one test's flags never leak into the next.
func resetFlags() {
	sourceRef = source.DefaultRef
	sourceDir = ""
	cacheDir = ""
	noCache = false
	outputFormat = string(output.FormatText)
	llmProvider = ""
	modelName = ""
	temperature = 0.1
	showPrompt = false
	saveResult = false
	workspaceDir = storage.DefaultWorkspaceDir
	verbose = false
	historyLimit = 0
	watchDebounce = showroom.DefaultDebounce
}

// writeLab builds a minimal local checkout whose site title is name.
func writeLab(t *testing.T, name string) string {
	t.Helper()
	dir := t.TempDir()

	require.NoError(t, os.MkdirAll(filepath.Join(dir, showroom.PagesDir), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git"), 0o755))

	site := fmt.Sprintf("site:\n  title: %s\n  start_page: index.adoc\n", name)
	require.NoError(t, os.WriteFile(filepath.Join(dir, showroom.SiteConfigFile), []byte(site), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, showroom.NavigationPath),
		[]byte("* xref:index.adoc[Getting Started]\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, showroom.PagesDir, "index.adoc"),
		[]byte("= Getting Started\n\nProvision the cluster and log in.\n"), 0o644))

	return dir
}

// newModelServer serves an OpenAI-shaped completion whose assistant
// content is the given string. Tests point the local provider at it
// through LOCAL_OPENAI_BASE_URL.
func newModelServer(t *testing.T, content string) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"model": "test-model",
			"choices": []map[string]any{
				{
					"message":       map[string]string{"role": "assistant", "content": content},
					"finish_reason": "stop",
				},
			},
			"usage": map[string]int{"prompt_tokens": 80, "completion_tokens": 40, "total_tokens": 120},
		})
	}))
	t.Cleanup(server.Close)
	return server
}

const validSummaryJSON = `{
	"products": ["Red Hat OpenShift"],
	"audience": ["Platform Engineers"],
	"learning_objectives": ["Run the lab end to end."],
	"summary": "A short lab that runs end to end."
}`

const validReviewJSON = `{
	"completeness_score": 8,
	"completeness_feedback": "Covers the whole workflow.",
	"clarity_score": 7,
	"clarity_feedback": "Steps are easy to follow.",
	"technical_depth_score": 6,
	"technical_depth_feedback": "Touches operator internals where it matters.",
	"usefulness_score": 9,
	"usefulness_feedback": "Directly applicable to customer demos.",
	"business_value_score": 8,
	"business_value_feedback": "Ties into the platform story.",
	"overall_review": "Ready to publish."
}`

const validDescriptionJSON = `{
	"headline": "Ship faster with OpenShift Pipelines",
	"products": ["Red Hat OpenShift"],
	"audience": ["Platform Engineers"],
	"lab_bullets": ["Build a pipeline", "Trigger it from a webhook"]
}`
