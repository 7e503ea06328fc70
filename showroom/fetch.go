package showroom

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/hashicorp/golang-lru/v2"
	"github.com/rhpds/showroom-tool/source"
)

// defaultMemoSize bounds the in-process memo of assembled Labs.
const defaultMemoSize = 64

// FetchReport carries per-fetch diagnostics that do not belong on the
// Lab itself.
type FetchReport struct {
	Source   string        `json:"source"`
	Revision string        `json:"revision"`
	Cached   bool          `json:"cached"`
	Memoized bool          `json:"memoized"`
	Duration time.Duration `json:"duration"`

	// Orphans lists pages present on disk that the navigation never
	// references, relative to the pages directory.
	Orphans []string `json:"orphans,omitempty"`
}

// FetcherOptions configures a Fetcher.
type FetcherOptions struct {
	// CacheDir overrides the checkout cache root; empty means the
	// resolver default.
	CacheDir string

	// NoCache forces volatile checkouts that are discarded after
	// assembly.
	NoCache bool

	// MemoSize bounds the in-process Lab memo; 0 means the default.
	MemoSize int

	Logger *slog.Logger
}

// Fetcher resolves a source location into an assembled Lab. Remote
// checkouts go through the on-disk cache, and assembled Labs are
// memoized in-process so one run never re-extracts the same repo+ref.
type Fetcher struct {
	resolver *source.Resolver
	memo     *lru.Cache[string, *Lab]
	logger   *slog.Logger
	cacheDir string
	noCache  bool
}

// NewFetcher creates a Fetcher.
func NewFetcher(opts FetcherOptions) *Fetcher {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	size := opts.MemoSize
	if size <= 0 {
		size = defaultMemoSize
	}
	memo, _ := lru.New[string, *Lab](size) // positive size never fails

	return &Fetcher{
		resolver: source.NewResolver(source.WithLogger(logger)),
		memo:     memo,
		logger:   logger,
		cacheDir: opts.CacheDir,
		noCache:  opts.NoCache,
	}
}

// Fetch materializes a checkout for the location, assembles it into a
// Lab, and reports fetch diagnostics. Local directories are read in
// place and never memoized, so watch-style callers always see the
// current tree.
func (f *Fetcher) Fetch(ctx context.Context, location, revision string) (*Lab, *FetchReport, error) {
	start := time.Now()

	ref := revision
	if ref == "" {
		ref = source.DefaultRef
	}

	remote := source.IsRemote(location)
	key := source.CacheKey(location, ref)
	if remote {
		if memoized, ok := f.memo.Get(key); ok {
			f.logger.Debug("serving lab from memo",
				slog.String("location", location),
				slog.String("revision", memoized.Revision))
			return detached(memoized), &FetchReport{
				Source:   location,
				Revision: memoized.Revision,
				Cached:   true,
				Memoized: true,
				Duration: time.Since(start),
			}, nil
		}
	}

	checkout, err := f.resolver.Resolve(ctx, source.Request{
		Location: location,
		Revision: revision,
		CacheDir: f.cacheDir,
		NoCache:  f.noCache,
	})
	if err != nil {
		return nil, nil, err
	}
	defer checkout.Cleanup()

	lab, err := Assemble(checkout.Dir, AssembleOptions{
		Source:              location,
		Revision:            checkout.Revision,
		RequireSiteMetadata: remote,
		Logger:              f.logger,
	})
	if err != nil {
		return nil, nil, err
	}

	report := &FetchReport{
		Source:   location,
		Revision: checkout.Revision,
		Cached:   checkout.Cached,
		Duration: time.Since(start),
	}

	// Orphans compare the on-disk pages against navigation membership,
	// not against assembled modules: a referenced page that failed to
	// read is skipped, not orphaned.
	if refs, err := ParseNavigation(filepath.Join(checkout.Dir, NavigationPath)); err == nil {
		orphans, err := OrphanPages(checkout.Dir, refs)
		if err != nil {
			f.logger.Warn("orphan scan failed", slog.String("error", err.Error()))
		} else {
			report.Orphans = orphans
		}
	}

	if remote {
		f.memo.Add(key, detached(lab))
	}

	return lab, report, nil
}

// detached returns a copy of the lab without its analysis results, so
// memo entries and callers never share attached analyses. The module
// slice is shared; modules are immutable after assembly.
func detached(lab *Lab) *Lab {
	clone := *lab
	clone.Summary = nil
	clone.Review = nil
	clone.Description = nil
	return &clone
}
