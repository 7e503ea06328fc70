package showroom

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// waitForChanges receives one change set or fails the test.
func waitForChanges(t *testing.T, w *Watcher) []string {
	t.Helper()
	select {
	case paths, ok := <-w.Changes():
		require.True(t, ok, "changes channel closed unexpectedly")
		return paths
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for change set")
		return nil
	}
}

func startWatcher(t *testing.T, dir string) *Watcher {
	t.Helper()
	w, err := NewWatcher(dir, WatchOptions{Debounce: 50 * time.Millisecond})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	require.NoError(t, w.Start(ctx))
	t.Cleanup(func() { w.Stop() })

	// Give the watcher time to register its directories.
	time.Sleep(100 * time.Millisecond)
	return w
}

func TestNewWatcherRequiresContentModule(t *testing.T) {
	_, err := NewWatcher(t.TempDir(), WatchOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no content module")
}

func TestWatcherReportsPageChange(t *testing.T) {
	f := newLabFixture(t)
	f.writeNav("* xref:index.adoc[Welcome]\n")
	f.writePage("index.adoc", "= Welcome\n")

	w := startWatcher(t, f.dir)

	f.writePage("index.adoc", "= Welcome\n\nNow with content.\n")

	paths := waitForChanges(t, w)
	assert.Equal(t, []string{PagesDir + "/index.adoc"}, paths)
}

func TestWatcherCoalescesBurst(t *testing.T) {
	f := newLabFixture(t)
	f.writeNav("* xref:index.adoc[Welcome]\n")
	f.writePage("index.adoc", "= Welcome\n")

	w := startWatcher(t, f.dir)

	f.writePage("index.adoc", "= Welcome v2\n")
	f.writePage("02-extra.adoc", "= Extra\n")
	f.writeNav("* xref:index.adoc[Welcome]\n* xref:02-extra.adoc[Extra]\n")

	// A debounce tick may split the burst; collect until every write
	// has been reported, checking each set arrives sorted.
	want := []string{
		NavigationPath,
		PagesDir + "/02-extra.adoc",
		PagesDir + "/index.adoc",
	}
	seen := make(map[string]struct{})
	deadline := time.After(2 * time.Second)
	for len(seen) < len(want) {
		select {
		case paths, ok := <-w.Changes():
			require.True(t, ok, "changes channel closed unexpectedly")
			assert.True(t, sort.StringsAreSorted(paths))
			for _, p := range paths {
				seen[p] = struct{}{}
			}
		case <-deadline:
			t.Fatalf("timed out waiting for changes, saw %v", seen)
		}
	}
	for _, p := range want {
		assert.Contains(t, seen, p)
	}
}

func TestWatcherIgnoresUnrelatedFiles(t *testing.T) {
	f := newLabFixture(t)
	f.writeNav("* xref:index.adoc[Welcome]\n")
	f.writePage("index.adoc", "= Welcome\n")

	w := startWatcher(t, f.dir)

	imagePath := filepath.Join(f.dir, ContentRoot, "diagram.png")
	require.NoError(t, os.WriteFile(imagePath, []byte{0x89, 0x50}, 0o644))
	f.writePage("index.adoc", "= Welcome v2\n")

	paths := waitForChanges(t, w)
	assert.Equal(t, []string{PagesDir + "/index.adoc"}, paths)
}

func TestWatcherPicksUpNewDirectory(t *testing.T) {
	f := newLabFixture(t)
	f.writeNav("* xref:index.adoc[Welcome]\n")
	f.writePage("index.adoc", "= Welcome\n")

	w := startWatcher(t, f.dir)

	subDir := filepath.Join(f.dir, PagesDir, "advanced")
	require.NoError(t, os.MkdirAll(subDir, 0o755))
	// Let the new directory's watch land before writing into it.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(subDir, "01-tuning.adoc"), []byte("= Tuning\n"), 0o644))

	paths := waitForChanges(t, w)
	assert.Contains(t, paths, PagesDir+"/advanced/01-tuning.adoc")
}

func TestWatcherStopClosesChannel(t *testing.T) {
	f := newLabFixture(t)
	f.writeNav("* xref:index.adoc[Welcome]\n")
	f.writePage("index.adoc", "= Welcome\n")

	w := startWatcher(t, f.dir)
	require.NoError(t, w.Stop())

	select {
	case _, ok := <-w.Changes():
		assert.False(t, ok, "expected closed channel after Stop")
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for channel close")
	}
}
