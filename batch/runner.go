package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rhpds/showroom-tool/analysis"
	"github.com/rhpds/showroom-tool/showroom"
	"github.com/rhpds/showroom-tool/storage"
)

// Result is the outcome for one manifest repo.
type Result struct {
	Repo     Repo
	LabName  string
	Revision string
	Path     string
	Duration time.Duration
	Meta     *analysis.RunMeta
	Err      error

	index int
}

// RunnerOptions wires the runner's collaborators. Fetcher, Analyzer,
// and Workspace are required; the fetcher's memo is what keeps repos
// appearing more than once in a manifest from being extracted twice.
type RunnerOptions struct {
	Fetcher   *showroom.Fetcher
	Analyzer  *analysis.Analyzer
	Workspace *storage.Workspace

	// Analysis shapes every per-repo invocation (provider, model,
	// temperature, base-prompt override).
	Analysis analysis.Options

	Logger *slog.Logger
}

// Runner drives one manifest through a worker pool.
type Runner struct {
	fetcher   *showroom.Fetcher
	analyzer  *analysis.Analyzer
	workspace *storage.Workspace
	anopts    analysis.Options
	logger    *slog.Logger
}

// NewRunner creates a runner from its collaborators.
func NewRunner(opts RunnerOptions) (*Runner, error) {
	if opts.Fetcher == nil {
		return nil, errors.New("fetcher is required")
	}
	if opts.Analyzer == nil {
		return nil, errors.New("analyzer is required")
	}
	if opts.Workspace == nil {
		return nil, errors.New("workspace is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Runner{
		fetcher:   opts.Fetcher,
		analyzer:  opts.Analyzer,
		workspace: opts.Workspace,
		anopts:    opts.Analysis,
		logger:    logger,
	}, nil
}

type job struct {
	index int
	repo  Repo
}

// Run fetches and analyzes every manifest repo, saving each successful
// result into the workspace and recording it in the history index.
// Results come back in manifest order. The returned error is non-nil
// when any repo failed; per-repo causes stay in the results.
func (r *Runner) Run(ctx context.Context, m Manifest) ([]Result, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	hist, err := r.workspace.History()
	if err != nil {
		return nil, err
	}
	defer hist.Close()

	r.logger.Info("starting batch run",
		slog.Int("repos", len(m.Repos)),
		slog.String("kind", m.Kind),
		slog.Int("workers", m.Workers))

	jobs := make(chan job, len(m.Repos))
	results := make(chan Result, len(m.Repos))

	var wg sync.WaitGroup
	for w := 1; w <= m.Workers; w++ {
		wg.Add(1)
		go r.worker(ctx, w, analysis.Kind(m.Kind), &wg, jobs, results)
	}

	for i, repo := range m.Repos {
		jobs <- job{index: i, repo: repo}
	}
	close(jobs)

	wg.Wait()
	close(results)

	collected := make([]Result, len(m.Repos))
	failed := 0
	for res := range results {
		collected[res.index] = res
		if res.Err != nil {
			failed++
			continue
		}
		// History writes stay on this goroutine so workers never
		// contend for the sqlite file.
		if _, err := hist.Record(runRow(m.Kind, res)); err != nil {
			r.logger.Warn("history record failed",
				slog.String("url", res.Repo.URL),
				slog.String("error", err.Error()))
		}
	}

	if failed > 0 {
		return collected, fmt.Errorf("%d of %d repos failed", failed, len(m.Repos))
	}
	return collected, nil
}

func (r *Runner) worker(ctx context.Context, id int, kind analysis.Kind, wg *sync.WaitGroup, jobs <-chan job, results chan<- Result) {
	defer wg.Done()
	for j := range jobs {
		r.logger.Info("worker started repo",
			slog.Int("worker", id),
			slog.String("url", j.repo.URL))
		res := r.processRepo(ctx, kind, j)
		if res.Err != nil {
			r.logger.Error("repo failed",
				slog.Int("worker", id),
				slog.String("url", j.repo.URL),
				slog.String("error", res.Err.Error()))
		} else {
			r.logger.Info("repo complete",
				slog.Int("worker", id),
				slog.String("url", j.repo.URL),
				slog.String("saved", res.Path),
				slog.Duration("duration", res.Duration))
		}
		results <- res
	}
}

func (r *Runner) processRepo(ctx context.Context, kind analysis.Kind, j job) Result {
	start := time.Now()
	res := Result{index: j.index, Repo: j.repo}

	lab, _, err := r.fetcher.Fetch(ctx, j.repo.URL, j.repo.Ref)
	if err != nil {
		res.Err = fmt.Errorf("fetch: %w", err)
		res.Duration = time.Since(start)
		return res
	}
	res.LabName = lab.Name
	res.Revision = lab.Revision

	var (
		result any
		meta   *analysis.RunMeta
	)
	switch kind {
	case analysis.KindReview:
		result, meta, err = r.analyzer.Review(ctx, lab, r.anopts)
	case analysis.KindDescription:
		result, meta, err = r.analyzer.Description(ctx, lab, r.anopts)
	default:
		result, meta, err = r.analyzer.Summary(ctx, lab, r.anopts)
	}
	if err != nil {
		res.Err = fmt.Errorf("%s analysis: %w", kind, err)
		res.Duration = time.Since(start)
		return res
	}
	res.Meta = meta

	path, err := r.workspace.SaveResult(string(kind), result)
	if err != nil {
		res.Err = fmt.Errorf("save result: %w", err)
		res.Duration = time.Since(start)
		return res
	}
	res.Path = path

	res.Duration = time.Since(start)
	return res
}

func runRow(kind string, res Result) storage.Run {
	row := storage.Run{
		Kind:     kind,
		LabName:  res.LabName,
		Source:   res.Repo.URL,
		Revision: res.Revision,
		Duration: res.Duration,
		Path:     res.Path,
	}
	if res.Meta != nil {
		row.Provider = res.Meta.Provider
		row.Model = res.Meta.Model
	}
	return row
}
