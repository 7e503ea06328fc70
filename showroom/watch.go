package showroom

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period the watcher waits out after a
// change before reporting it.
const DefaultDebounce = 500 * time.Millisecond

// changeChannelBuffer is the size of the change notification channel.
const changeChannelBuffer = 16

// WatchOptions configures a Watcher.
type WatchOptions struct {
	// Debounce is the delay between a change and its notification;
	// 0 means DefaultDebounce.
	Debounce time.Duration

	Logger *slog.Logger
}

// Watcher reports content changes under a checkout's Antora ROOT
// module. Editors write several files in a burst; the watcher coalesces
// a burst into one change set so callers re-assemble once.
type Watcher struct {
	dir      string
	debounce time.Duration
	watcher  *fsnotify.Watcher
	logger   *slog.Logger

	pendingMu sync.Mutex
	pending   map[string]struct{}

	changes chan []string
}

// NewWatcher creates a watcher for the checkout rooted at dir.
func NewWatcher(dir string, opts WatchOptions) (*Watcher, error) {
	root := filepath.Join(dir, ContentRoot)
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("no content module under %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &Watcher{
		dir:      dir,
		debounce: debounce,
		watcher:  fsw,
		logger:   logger,
		pending:  make(map[string]struct{}),
		changes:  make(chan []string, changeChannelBuffer),
	}, nil
}

// Changes returns the channel of coalesced change sets. Each element
// lists changed paths relative to the checkout root, sorted. The
// channel closes when the watcher stops.
func (w *Watcher) Changes() <-chan []string {
	return w.changes
}

// Start begins watching and delivering change sets until ctx is
// canceled or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.addWatchesRecursive(filepath.Join(w.dir, ContentRoot)); err != nil {
		return err
	}

	go w.processEvents(ctx)

	w.logger.Info("watching for content changes",
		slog.String("dir", w.dir),
		slog.Duration("debounce", w.debounce))

	return nil
}

// Stop closes the underlying watcher. The changes channel is closed by
// the event loop as it exits.
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}

// addWatchesRecursive adds watches to root and all directories below it.
func (w *Watcher) addWatchesRecursive(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		if strings.HasPrefix(filepath.Base(path), ".") && path != root {
			return filepath.SkipDir
		}

		if err := w.watcher.Add(path); err != nil {
			w.logger.Warn("failed to watch directory",
				slog.String("path", path),
				slog.String("error", err.Error()))
		} else {
			w.logger.Debug("watching directory", slog.String("path", path))
		}
		return nil
	})
}

// processEvents handles fsnotify events with debouncing.
func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.changes)
	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFSEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("watch error", slog.String("error", err.Error()))

		case <-ticker.C:
			w.flushPending()
		}
	}
}

// handleFSEvent records one fsnotify event for the next flush.
func (w *Watcher) handleFSEvent(event fsnotify.Event) {
	path := event.Name

	// New directories need their own watch before any file inside
	// them can be seen.
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			w.watchNewDirectory(path)
			return
		}
	}

	if strings.ToLower(filepath.Ext(path)) != ".adoc" {
		return
	}

	rel, err := filepath.Rel(w.dir, path)
	if err != nil {
		rel = path
	}

	w.pendingMu.Lock()
	w.pending[filepath.ToSlash(rel)] = struct{}{}
	w.pendingMu.Unlock()

	w.logger.Debug("content change detected",
		slog.String("path", rel),
		slog.String("op", event.Op.String()))
}

// watchNewDirectory starts watching a directory created after Start.
func (w *Watcher) watchNewDirectory(path string) {
	if strings.HasPrefix(filepath.Base(path), ".") {
		return
	}
	if err := w.watcher.Add(path); err != nil {
		w.logger.Warn("failed to watch new directory",
			slog.String("path", path),
			slog.String("error", err.Error()))
		return
	}
	w.logger.Debug("watching new directory", slog.String("path", path))
}

// flushPending emits accumulated changes as one sorted change set.
func (w *Watcher) flushPending() {
	w.pendingMu.Lock()
	if len(w.pending) == 0 {
		w.pendingMu.Unlock()
		return
	}
	paths := make([]string, 0, len(w.pending))
	for path := range w.pending {
		paths = append(paths, path)
	}
	w.pending = make(map[string]struct{})
	w.pendingMu.Unlock()

	sort.Strings(paths)

	select {
	case w.changes <- paths:
		w.logger.Debug("content changed", slog.Int("files", len(paths)))
	default:
		w.logger.Warn("change consumer is behind, dropping notification",
			slog.Int("files", len(paths)))
	}
}
