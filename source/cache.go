package source

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	// markerFile records, inside a cache entry, the remote commit id
	// the entry was fetched at. Currency checks compare it against a
	// live ls-remote answer.
	markerFile = ".showroom-head"

	// A lock older than staleLockAge belongs to a dead process and is
	// taken over.
	staleLockAge      = 10 * time.Minute
	lockRetryInterval = 100 * time.Millisecond
)

// DefaultCacheDir is the cache root used when none is configured.
func DefaultCacheDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".showroom-tool", "cache"), nil
}

// CacheKey derives the cache slot identifier for one location+revision
// pair: the first 16 hex characters of sha256 over the normalized
// location, "#", and the revision. Normalization lowercases the
// location and strips a trailing ".git" so equivalent URL spellings
// share a slot.
func CacheKey(location, revision string) string {
	normalized := strings.ToLower(strings.TrimSpace(location))
	normalized = strings.TrimSuffix(normalized, ".git")
	sum := sha256.Sum256([]byte(normalized + "#" + revision))
	return hex.EncodeToString(sum[:])[:16]
}

func readMarker(entryDir string) (string, bool) {
	data, err := os.ReadFile(filepath.Join(entryDir, markerFile))
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(string(data)), true
}

func writeMarker(entryDir, commit string) error {
	path := filepath.Join(entryDir, markerFile)
	if err := os.WriteFile(path, []byte(commit+"\n"), 0o644); err != nil {
		return fmt.Errorf("failed to write cache marker: %w", err)
	}
	return nil
}

// acquireLock serializes writers on one cache key through an advisory
// lock file next to the entry. Unrelated keys proceed independently;
// there is deliberately no lock spanning the whole cache. The returned
// release func is never nil.
func acquireLock(ctx context.Context, cacheRoot, key string) (func(), error) {
	lockPath := filepath.Join(cacheRoot, key+".lock")
	for {
		f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if err == nil {
			fmt.Fprintf(f, "%d\n", os.Getpid())
			f.Close()
			return func() { os.Remove(lockPath) }, nil
		}
		if !os.IsExist(err) {
			return nil, fmt.Errorf("failed to create lock %s: %w", lockPath, err)
		}

		if info, statErr := os.Stat(lockPath); statErr == nil && time.Since(info.ModTime()) > staleLockAge {
			os.Remove(lockPath)
			continue
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("waiting for cache lock %s: %w", key, ctx.Err())
		case <-time.After(lockRetryInterval):
		}
	}
}
