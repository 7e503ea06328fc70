// Package source materializes lab content trees: it clones git remotes
// through an invalidating per-key cache, or points at local working
// copies as-is.
package source

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// LocalRevision is the revision reported for local-directory checkouts,
// which are consumed exactly as found on disk.
const LocalRevision = "(local)"

// DefaultRef is the ref resolved when a request names none.
const DefaultRef = "main"

// Request identifies one content tree to resolve.
type Request struct {
	// Location is a git URL (https, ssh, git@host:path, file) or a
	// local directory path.
	Location string

	// Revision is a branch or tag name; empty means DefaultRef. It is
	// ignored for local directories.
	Revision string

	// CacheDir overrides the cache root; empty means DefaultCacheDir.
	CacheDir string

	// NoCache fetches into a volatile directory that Cleanup removes.
	NoCache bool
}

// Checkout is a readable local tree at the requested revision. Cleanup
// is never nil; it is a no-op for cached and local checkouts.
type Checkout struct {
	Dir      string
	Revision string
	Cached   bool
	Cleanup  func()
}

// Resolver fetches and caches lab content trees.
type Resolver struct {
	logger *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the resolver's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) { r.logger = logger }
}

// NewResolver creates a Resolver with the given options.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{logger: slog.Default()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve produces a local directory tree for the request. Remote
// locations go through the cache unless the request disables it; local
// paths are validated and used in place.
func (r *Resolver) Resolve(ctx context.Context, req Request) (*Checkout, error) {
	if IsRemote(req.Location) {
		return r.resolveRemote(ctx, req)
	}
	return r.resolveLocal(req)
}

func (r *Resolver) resolveLocal(req Request) (*Checkout, error) {
	info, err := os.Stat(req.Location)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, req.Location, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrSourceUnavailable, req.Location)
	}
	// .git may be a directory or, for worktrees, a file.
	if _, err := os.Stat(filepath.Join(req.Location, ".git")); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotACheckout, req.Location)
	}

	r.logger.Debug("using local checkout", slog.String("dir", req.Location))
	return &Checkout{
		Dir:      req.Location,
		Revision: LocalRevision,
		Cleanup:  func() {},
	}, nil
}

func (r *Resolver) resolveRemote(ctx context.Context, req Request) (*Checkout, error) {
	ref := req.Revision
	if ref == "" {
		ref = DefaultRef
	}

	if req.NoCache {
		return r.resolveVolatile(ctx, req.Location, ref)
	}

	cacheRoot := req.CacheDir
	if cacheRoot == "" {
		var err error
		if cacheRoot, err = DefaultCacheDir(); err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(cacheRoot, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache root: %w", err)
	}

	key := CacheKey(req.Location, ref)
	release, err := acquireLock(ctx, cacheRoot, key)
	if err != nil {
		return nil, err
	}
	defer release()

	remote, err := remoteHead(ctx, req.Location, ref)
	if err != nil {
		return nil, err
	}

	entryDir := filepath.Join(cacheRoot, key)
	if marker, ok := readMarker(entryDir); ok && marker == remote {
		if commit, err := head(ctx, entryDir); err == nil {
			r.logger.Debug("cache hit",
				slog.String("key", key),
				slog.String("commit", commit))
			return &Checkout{Dir: entryDir, Revision: commit, Cached: true, Cleanup: func() {}}, nil
		}
		// Unreadable entry: fall through and fetch fresh.
	}

	r.logger.Info("fetching source",
		slog.String("location", req.Location),
		slog.String("ref", ref),
		slog.String("key", key))

	// Clone into a sibling, then rename into the slot. A failed fetch
	// never touches a previously valid tree.
	tmpDir := entryDir + ".tmp-" + uuid.NewString()[:8]
	if err := clone(ctx, req.Location, ref, tmpDir); err != nil {
		os.RemoveAll(tmpDir)
		return nil, err
	}
	commit, err := head(ctx, tmpDir)
	if err != nil {
		os.RemoveAll(tmpDir)
		return nil, err
	}
	if err := writeMarker(tmpDir, remote); err != nil {
		os.RemoveAll(tmpDir)
		return nil, err
	}
	if err := os.RemoveAll(entryDir); err != nil {
		os.RemoveAll(tmpDir)
		return nil, fmt.Errorf("failed to clear cache entry: %w", err)
	}
	if err := os.Rename(tmpDir, entryDir); err != nil {
		os.RemoveAll(tmpDir)
		return nil, fmt.Errorf("failed to move fetch into cache: %w", err)
	}

	return &Checkout{Dir: entryDir, Revision: commit, Cached: true, Cleanup: func() {}}, nil
}

func (r *Resolver) resolveVolatile(ctx context.Context, location, ref string) (*Checkout, error) {
	tmpDir, err := os.MkdirTemp("", "showroom-tool-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	if err := clone(ctx, location, ref, tmpDir); err != nil {
		os.RemoveAll(tmpDir)
		return nil, err
	}
	commit, err := head(ctx, tmpDir)
	if err != nil {
		os.RemoveAll(tmpDir)
		return nil, err
	}

	r.logger.Debug("fetched volatile checkout",
		slog.String("location", location),
		slog.String("commit", commit))

	return &Checkout{
		Dir:      tmpDir,
		Revision: commit,
		Cleanup:  func() { os.RemoveAll(tmpDir) },
	}, nil
}
