package source

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsRemote(t *testing.T) {
	tests := []struct {
		location string
		want     bool
	}{
		{"https://github.com/rhpds/demo-lab.git", true},
		{"http://internal.example.com/lab.git", true},
		{"git@github.com:rhpds/demo-lab.git", true},
		{"ssh://git@github.com/rhpds/demo-lab.git", true},
		{"file:///srv/mirrors/demo-lab", true},
		{"/home/user/labs/demo-lab", false},
		{"./demo-lab", false},
		{"ftp://example.com/lab.git", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.location, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRemote(tt.location))
		})
	}
}

func TestResolveLocal(t *testing.T) {
	r := NewResolver()

	t.Run("valid checkout", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))

		co, err := r.Resolve(context.Background(), Request{Location: dir})
		require.NoError(t, err)
		assert.Equal(t, dir, co.Dir)
		assert.Equal(t, LocalRevision, co.Revision)
		assert.False(t, co.Cached)

		// Cleanup must never remove a local working copy.
		co.Cleanup()
		_, err = os.Stat(dir)
		assert.NoError(t, err)
	})

	t.Run("missing .git marker", func(t *testing.T) {
		_, err := r.Resolve(context.Background(), Request{Location: t.TempDir()})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNotACheckout))
		assert.False(t, errors.Is(err, ErrSourceUnavailable))
	})

	t.Run("nonexistent directory", func(t *testing.T) {
		_, err := r.Resolve(context.Background(), Request{Location: "/does/not/exist"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrSourceUnavailable))
	})
}

// repoFixture is a real local git repository served over file:// so the
// remote flow can run without network access.
type repoFixture struct {
	t   *testing.T
	dir string
	url string
}

func newRepoFixture(t *testing.T) *repoFixture {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	f := &repoFixture{t: t, dir: t.TempDir()}
	f.url = "file://" + f.dir
	f.git("init")
	f.git("checkout", "-b", "main")
	f.commit("README.adoc", "= Demo Lab\n", "initial")
	return f
}

func (f *repoFixture) git(args ...string) {
	f.t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = f.dir
	out, err := cmd.CombinedOutput()
	require.NoError(f.t, err, "git %v: %s", args, out)
}

func (f *repoFixture) commit(file, content, msg string) {
	f.t.Helper()
	require.NoError(f.t, os.WriteFile(filepath.Join(f.dir, file), []byte(content), 0o644))
	f.git("add", ".")
	f.git("-c", "user.name=test", "-c", "user.email=test@example.com", "commit", "-m", msg)
}

func TestResolveRemoteCaching(t *testing.T) {
	f := newRepoFixture(t)
	cacheRoot := t.TempDir()
	r := NewResolver()
	req := Request{Location: f.url, Revision: "main", CacheDir: cacheRoot}

	first, err := r.Resolve(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, first.Cached)
	assert.NotEmpty(t, first.Revision)

	readme := filepath.Join(first.Dir, "README.adoc")
	firstContent, err := os.ReadFile(readme)
	require.NoError(t, err)
	firstStat, err := os.Stat(readme)
	require.NoError(t, err)

	// Second resolution with an unchanged remote reuses the entry
	// without refetching: same tree, untouched files.
	second, err := r.Resolve(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, first.Dir, second.Dir)
	assert.Equal(t, first.Revision, second.Revision)

	secondContent, err := os.ReadFile(readme)
	require.NoError(t, err)
	assert.Equal(t, firstContent, secondContent)
	secondStat, err := os.Stat(readme)
	require.NoError(t, err)
	assert.Equal(t, firstStat.ModTime(), secondStat.ModTime())

	// No temp clone directories left behind.
	entries, err := os.ReadDir(cacheRoot)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp-")
		assert.NotContains(t, e.Name(), ".lock")
	}
}

func TestResolveRemoteRefetchesOnChange(t *testing.T) {
	f := newRepoFixture(t)
	cacheRoot := t.TempDir()
	r := NewResolver()
	req := Request{Location: f.url, Revision: "main", CacheDir: cacheRoot}

	first, err := r.Resolve(context.Background(), req)
	require.NoError(t, err)

	f.commit("extra.adoc", "= Extra\n", "add extra page")

	second, err := r.Resolve(context.Background(), req)
	require.NoError(t, err)
	assert.NotEqual(t, first.Revision, second.Revision)
	assert.FileExists(t, filepath.Join(second.Dir, "extra.adoc"))
}

func TestResolveRemoteInvalidRef(t *testing.T) {
	f := newRepoFixture(t)
	r := NewResolver()

	_, err := r.Resolve(context.Background(), Request{
		Location: f.url,
		Revision: "no-such-branch",
		CacheDir: t.TempDir(),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidRevision))
}

func TestResolveNoCache(t *testing.T) {
	f := newRepoFixture(t)
	cacheRoot := t.TempDir()
	r := NewResolver()

	co, err := r.Resolve(context.Background(), Request{
		Location: f.url,
		Revision: "main",
		CacheDir: cacheRoot,
		NoCache:  true,
	})
	require.NoError(t, err)
	assert.False(t, co.Cached)
	assert.NotContains(t, co.Dir, cacheRoot)
	assert.FileExists(t, filepath.Join(co.Dir, "README.adoc"))

	co.Cleanup()
	_, err = os.Stat(co.Dir)
	assert.True(t, os.IsNotExist(err), "volatile checkout should be removed by Cleanup")

	// The cache root was never populated.
	entries, err := os.ReadDir(cacheRoot)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
