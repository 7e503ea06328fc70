package commands

import (
	"errors"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/rhpds/showroom-tool/analysis"
	"github.com/rhpds/showroom-tool/output"
	"github.com/rhpds/showroom-tool/showroom"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch [kind]",
	Short: "Re-extract a local checkout when its content changes",
	Long: `Watches the Antora content of a local checkout and re-assembles the
lab whenever pages or navigation change, printing a fresh fetch report.
With an analysis kind, each change also re-runs that analysis.

Runs until interrupted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&sourceDir, "dir", "", "local checkout to watch")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", showroom.DefaultDebounce, "quiet period before a change is processed")
	addOutputFlag(watchCmd)
	addModelFlags(watchCmd)
	addSaveFlags(watchCmd)
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if sourceDir == "" {
		return errors.New("--dir is required")
	}

	var kind analysis.Kind
	rerun := false
	if len(args) == 1 {
		parsed, err := parseKind(args[0])
		if err != nil {
			return err
		}
		kind, rerun = parsed, true
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

	var analyzer *analysis.Analyzer
	var opts analysis.Options
	if rerun {
		opts = analysisOptions(cmd, settings, kind)
		analyzer, err = newAnalyzer(opts.Provider)
		if err != nil {
			return err
		}
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	logger := slog.Default()
	fetcher := newFetcher(settings)

	// Failures inside the loop are logged, not fatal: broken content is
	// exactly what an author is editing towards fixing.
	refresh := func() {
		lab, report, err := fetcher.Fetch(ctx, sourceDir, "")
		if err != nil {
			logger.Error("re-assembly failed", slog.String("error", err.Error()))
			return
		}
		if err := renderer.FetchReport(out, lab, report); err != nil {
			logger.Error("render failed", slog.String("error", err.Error()))
			return
		}
		if !rerun {
			return
		}

		result, meta, err := analyzeAndRender(ctx, out, analyzer, renderer, kind, lab, opts)
		if err != nil {
			logger.Error("analysis failed",
				slog.String("kind", string(kind)),
				slog.String("error", err.Error()))
			return
		}
		if saveResult {
			if err := saveRun(kind, sourceDir, lab, result, meta, settings.Output.Workspace); err != nil {
				logger.Error("save failed", slog.String("error", err.Error()))
			}
		}
	}

	watcher, err := showroom.NewWatcher(sourceDir, showroom.WatchOptions{
		Debounce: watchDebounce,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	// Show the current state before the first change arrives.
	refresh()

	if err := watcher.Start(ctx); err != nil {
		return err
	}
	defer watcher.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case changed, ok := <-watcher.Changes():
			if !ok {
				return nil
			}
			logger.Info("content changed", slog.Int("files", len(changed)))
			refresh()
		}
	}
}
