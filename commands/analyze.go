package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/rhpds/showroom-tool/analysis"
	"github.com/rhpds/showroom-tool/output"
	"github.com/rhpds/showroom-tool/showroom"
	"github.com/rhpds/showroom-tool/storage"
)

var summaryCmd = &cobra.Command{
	Use:   "summary [repo-url]",
	Short: "Generate a structured summary of a lab",
	Long: `Fetches the lab, assembles its modules in navigation order, and asks
the configured model for a structured summary: products used, audience,
learning objectives, and a prose overview.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnalysis(cmd, args, analysis.KindSummary)
	},
}

var reviewCmd = &cobra.Command{
	Use:   "review [repo-url]",
	Short: "Score a lab against quality criteria",
	Long: `Fetches the lab and asks the configured model for a scored review:
completeness, clarity, technical depth, usefulness, and business value,
each with written feedback, plus an overall assessment.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnalysis(cmd, args, analysis.KindReview)
	},
}

var descriptionCmd = &cobra.Command{
	Use:   "description [repo-url]",
	Short: "Write catalog description copy for a lab",
	Long: `Fetches the lab and asks the configured model for catalog copy: a
headline, products, audience, and the bullet list of what participants
will do.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnalysis(cmd, args, analysis.KindDescription)
	},
}

func init() {
	for _, cmd := range []*cobra.Command{summaryCmd, reviewCmd, descriptionCmd} {
		addSourceFlags(cmd)
		addOutputFlag(cmd)
		addModelFlags(cmd)
		addSaveFlags(cmd)
		cmd.Flags().BoolVar(&showPrompt, "show-prompt", false, "print the assembled prompt and exit without calling the model")
		rootCmd.AddCommand(cmd)
	}
}

// runAnalysis drives one fetch-analyze-render cycle for a kind.
func runAnalysis(cmd *cobra.Command, args []string, kind analysis.Kind) error {
	location, err := resolveLocation(args)
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

	opts := analysisOptions(cmd, settings, kind)

	// Catalog and credential problems surface before any clone.
	var analyzer *analysis.Analyzer
	if !showPrompt {
		analyzer, err = newAnalyzer(opts.Provider)
		if err != nil {
			return err
		}
	}

	lab, _, err := newFetcher(settings).Fetch(cmd.Context(), location, sourceRef)
	if err != nil {
		return err
	}

	if showPrompt {
		bundle, err := analysis.Bundle(kind, lab, opts)
		if err != nil {
			return err
		}
		return printBundle(cmd, format, bundle)
	}

	result, meta, err := analyzeAndRender(cmd.Context(), cmd.OutOrStdout(), analyzer, renderer, kind, lab, opts)
	if err != nil {
		return err
	}

	if saveResult {
		return saveRun(kind, location, lab, result, meta, settings.Output.Workspace)
	}
	return nil
}

// analyzeAndRender runs one analysis kind and renders the result,
// returning it for optional saving.
func analyzeAndRender(ctx context.Context, w io.Writer, analyzer *analysis.Analyzer, renderer *output.Renderer, kind analysis.Kind, lab *showroom.Lab, opts analysis.Options) (any, *analysis.RunMeta, error) {
	switch kind {
	case analysis.KindReview:
		result, meta, err := analyzer.Review(ctx, lab, opts)
		if err != nil {
			return nil, nil, err
		}
		return result, meta, renderer.Review(w, lab, result, meta)
	case analysis.KindDescription:
		result, meta, err := analyzer.Description(ctx, lab, opts)
		if err != nil {
			return nil, nil, err
		}
		return result, meta, renderer.Description(w, lab, result, meta)
	default:
		result, meta, err := analyzer.Summary(ctx, lab, opts)
		if err != nil {
			return nil, nil, err
		}
		return result, meta, renderer.Summary(w, lab, result, meta)
	}
}

// saveRun writes the result into the workspace and records the run in
// the history index. The saved path goes to the log, not stdout, so
// JSON output stays parseable.
func saveRun(kind analysis.Kind, location string, lab *showroom.Lab, result any, meta *analysis.RunMeta, dir string) error {
	ws, err := storage.NewWorkspace(dir)
	if err != nil {
		return err
	}

	path, err := ws.SaveResult(string(kind), result)
	if err != nil {
		return err
	}

	hist, err := ws.History()
	if err != nil {
		return err
	}
	defer hist.Close()

	run := storage.Run{
		Kind:     string(kind),
		LabName:  lab.Name,
		Source:   location,
		Revision: lab.Revision,
		Path:     path,
	}
	if meta != nil {
		run.Provider = meta.Provider
		run.Model = meta.Model
		run.Duration = meta.Duration
	}
	if _, err := hist.Record(run); err != nil {
		return fmt.Errorf("record run: %w", err)
	}

	slog.Info("result saved", slog.String("path", path))
	return nil
}
