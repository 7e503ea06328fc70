package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rhpds/showroom-tool/analysis"
	"github.com/rhpds/showroom-tool/config"
	"github.com/rhpds/showroom-tool/llm"
	"github.com/rhpds/showroom-tool/model"
	"github.com/rhpds/showroom-tool/output"
	"github.com/rhpds/showroom-tool/showroom"
	"github.com/rhpds/showroom-tool/source"
	"github.com/rhpds/showroom-tool/storage"
)

// addSourceFlags registers the flags that select and fetch a lab.
func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&sourceRef, "ref", source.DefaultRef, "git ref to fetch (branch, tag, or commit)")
	cmd.Flags().StringVar(&sourceDir, "dir", "", "use a local checkout instead of a repo URL")
	addCacheFlags(cmd)
}

// addCacheFlags registers the checkout cache flags.
func addCacheFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&cacheDir, "cache-dir", "", "checkout cache root (default ~/.showroom-tool/cache)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the checkout cache")
}

// addOutputFlag registers the output format flag.
func addOutputFlag(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&outputFormat, "output", "o", string(output.FormatText), "output format (text, json, adoc)")
}

// addModelFlags registers the model backend flags. The provider default
// comes from configuration, not the flag.
func addModelFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&llmProvider, "llm-provider", "", "model backend (openai, gemini, anthropic, local)")
	cmd.Flags().StringVar(&modelName, "model", "", "model identifier override")
	cmd.Flags().Float64Var(&temperature, "temperature", 0.1, "sampling temperature (0.0-1.0)")
}

// addSaveFlags registers the result persistence flags.
func addSaveFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&saveResult, "save", false, "save the result and record it in the run history")
	addWorkspaceFlag(cmd)
}

// addWorkspaceFlag registers the workspace directory flag.
func addWorkspaceFlag(cmd *cobra.Command) {
	cmd.Flags().StringVar(&workspaceDir, "workspace", storage.DefaultWorkspaceDir, "workspace directory for saved results and history")
}

// resolveLocation picks the lab source from the positional argument or
// --dir. Exactly one must be given.
func resolveLocation(args []string) (string, error) {
	switch {
	case len(args) > 0 && sourceDir != "":
		return "", errors.New("a repository URL and --dir are mutually exclusive")
	case len(args) > 0:
		return args[0], nil
	case sourceDir != "":
		return sourceDir, nil
	}
	return "", errors.New("a repository URL or --dir is required")
}

// loadSettings resolves layered configuration and applies explicit
// flags on top. Flags win over environment, which wins over files.
func loadSettings(cmd *cobra.Command) (*config.Settings, error) {
	settings, err := config.NewLoader(slog.Default()).Load()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if llmProvider != "" {
		settings.LLM.Provider = llmProvider
	}
	if modelName != "" {
		settings.LLM.Model = modelName
	}
	if flags.Changed("temperature") {
		settings.LLM.Temperature = temperature
	}
	if cacheDir != "" {
		settings.Cache.Dir = cacheDir
	}
	if flags.Changed("no-cache") {
		settings.Cache.Disabled = noCache
	}
	if flags.Changed("output") {
		settings.Output.Format = outputFormat
	}
	if flags.Changed("workspace") {
		settings.Output.Workspace = workspaceDir
	}

	return settings, nil
}

// analysisOptions shapes one analysis run from the resolved settings.
// An explicit --temperature beats the per-kind config override.
func analysisOptions(cmd *cobra.Command, settings *config.Settings, kind analysis.Kind) analysis.Options {
	temp := settings.TemperatureFor(string(kind))
	if cmd.Flags().Changed("temperature") {
		temp = temperature
	}

	return analysis.Options{
		Provider:    settings.LLM.Provider,
		Model:       settings.LLM.Model,
		Temperature: &temp,
		BasePrompt:  settings.PromptFor(string(kind)),
	}
}

// parseKind resolves an analysis kind argument.
func parseKind(s string) (analysis.Kind, error) {
	kind := analysis.Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range analysis.Kinds() {
		if kind == known {
			return kind, nil
		}
	}
	return "", fmt.Errorf("unknown analysis kind %q (have: summary, review, description)", s)
}

// newFetcher builds the fetcher for the resolved cache settings.
func newFetcher(settings *config.Settings) *showroom.Fetcher {
	return showroom.NewFetcher(showroom.FetcherOptions{
		CacheDir: settings.Cache.Dir,
		NoCache:  settings.Cache.Disabled,
		Logger:   slog.Default(),
	})
}

// newAnalyzer builds an analyzer for the provider, failing fast when
// the endpoint is unknown or its credential is missing. Retries stay
// off so error kinds surface immediately; backoff policy belongs to
// whoever drives the analyzer.
func newAnalyzer(provider string) (*analysis.Analyzer, error) {
	catalog := model.NewDefaultCatalog()

	endpoint, err := catalog.Endpoint(provider)
	if err != nil {
		return nil, err
	}
	if err := endpoint.Ready(); err != nil {
		return nil, fmt.Errorf("provider %s: %w", provider, err)
	}

	client := llm.NewClient(catalog, llm.WithRetryConfig(llm.NoRetry()))
	return analysis.NewAnalyzer(client), nil
}
