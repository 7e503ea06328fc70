package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/rhpds/showroom-tool/analysis"
	"github.com/rhpds/showroom-tool/batch"
	"github.com/rhpds/showroom-tool/output"
	"github.com/rhpds/showroom-tool/storage"
)

var batchCmd = &cobra.Command{
	Use:   "batch <manifest>",
	Short: "Run one analysis across many labs",
	Long: `Reads a YAML manifest of lab repositories and runs one analysis kind
across all of them with a bounded worker pool. Every result is saved
into the workspace and recorded in the run history; a summary table
prints at the end.

The manifest lists repos (url plus optional ref) and may set kind and
workers; kind defaults to summary.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	addCacheFlags(batchCmd)
	addOutputFlag(batchCmd)
	addModelFlags(batchCmd)
	addWorkspaceFlag(batchCmd)
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	manifest, err := batch.LoadManifest(args[0])
	if err != nil {
		return err
	}

	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	format, err := output.ParseFormat(settings.Output.Format)
	if err != nil {
		return err
	}
	renderer := output.NewRenderer(format)

	analyzer, err := newAnalyzer(settings.LLM.Provider)
	if err != nil {
		return err
	}

	ws, err := storage.NewWorkspace(settings.Output.Workspace)
	if err != nil {
		return err
	}

	runner, err := batch.NewRunner(batch.RunnerOptions{
		Fetcher:   newFetcher(settings),
		Analyzer:  analyzer,
		Workspace: ws,
		Analysis:  analysisOptions(cmd, settings, analysis.Kind(manifest.Kind)),
		Logger:    slog.Default(),
	})
	if err != nil {
		return err
	}

	results, runErr := runner.Run(cmd.Context(), manifest)

	// Partial failures still get their summary table before the
	// command exits non-zero.
	if len(results) > 0 {
		if err := renderer.BatchSummary(cmd.OutOrStdout(), results); err != nil {
			return err
		}
	}
	return runErr
}
