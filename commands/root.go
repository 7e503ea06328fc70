// Package commands wires the showroom-tool CLI: lab fetching, the
// three analysis commands, prompt inspection, watch mode, batch runs,
// and the workspace run history. Commands register themselves on the
// root command via init().
package commands

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/rhpds/showroom-tool/analysis"
	"github.com/rhpds/showroom-tool/output"
)

// Version metadata, overridable at build time via -ldflags.
var (
	Version   = "0.1.0"
	BuildTime = "dev"
)

const appName = "showroom-tool"

// Flags shared by more than one command. Each command registers the
// subset it understands in its init().
var (
	sourceRef    string
	sourceDir    string
	cacheDir     string
	noCache      bool
	outputFormat string
	llmProvider  string
	modelName    string
	temperature  float64
	showPrompt   bool
	saveResult   bool
	workspaceDir string
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "Fetch and analyze Showroom lab content",
	Long: `Showroom-tool fetches a Showroom lab repository, normalizes its
Antora content into ordered modules, and produces structured analyses
of it with an LLM backend.

Labs come from a git URL (cloned through the checkout cache) or a
local directory. Results print as styled text, JSON, or AsciiDoc, and
can be saved into a workspace alongside a run-history index.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		// Credentials often live in a local .env; load it before any
		// provider readiness check. A missing file is not an error.
		_ = godotenv.Load()

		configureLogging(verbose, outputFormat)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the CLI. The context is canceled on SIGINT/SIGTERM so
// long operations (clones, model calls, watch loops) unwind cleanly.
func Execute() error {
	// A field catalog that fails to compile its prompts or schemas is a
	// programming error; refuse to start rather than fail mid-run.
	if err := analysis.VerifyCatalogs(); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return rootCmd.ExecuteContext(ctx)
}

// configureLogging installs the process-wide logger. Logs go to stderr
// so stdout stays clean for rendered results. JSON output drops to
// warnings so piped runs stay parseable without stderr chatter.
func configureLogging(verbose bool, format string) {
	level := slog.LevelInfo
	switch {
	case verbose:
		level = slog.LevelDebug
	case format == string(output.FormatJSON):
		level = slog.LevelWarn
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}
