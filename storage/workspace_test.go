package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

func TestNewWorkspace(t *testing.T) {
	t.Run("creates missing directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "workspace")

		ws, err := NewWorkspace(dir)
		if err != nil {
			t.Fatalf("new workspace: %v", err)
		}
		if ws.Dir() != dir {
			t.Errorf("expected dir %s, got %s", dir, ws.Dir())
		}

		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("stat workspace: %v", err)
		}
		if !info.IsDir() {
			t.Error("expected a directory")
		}
	})

	t.Run("accepts existing directory", func(t *testing.T) {
		dir := t.TempDir()

		ws, err := NewWorkspace(dir)
		if err != nil {
			t.Fatalf("new workspace: %v", err)
		}
		if ws.Dir() != dir {
			t.Errorf("expected dir %s, got %s", dir, ws.Dir())
		}
	})
}

func TestSaveResult(t *testing.T) {
	type review struct {
		Score    float64 `json:"score"`
		Feedback string  `json:"feedback"`
	}

	t.Run("writes timestamped JSON", func(t *testing.T) {
		ws, err := NewWorkspace(t.TempDir())
		if err != nil {
			t.Fatalf("new workspace: %v", err)
		}

		path, err := ws.SaveResult("review", review{Score: 8.5, Feedback: "solid flow"})
		if err != nil {
			t.Fatalf("save result: %v", err)
		}

		name := filepath.Base(path)
		pattern := regexp.MustCompile(`^review_\d{8}_\d{6}\.json$`)
		if !pattern.MatchString(name) {
			t.Errorf("unexpected file name: %s", name)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read result: %v", err)
		}
		var got review
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("unmarshal result: %v", err)
		}
		if got.Score != 8.5 {
			t.Errorf("expected score 8.5, got %v", got.Score)
		}
		if !strings.Contains(string(data), "\n  \"score\"") {
			t.Error("expected indented JSON")
		}
		if !strings.HasSuffix(string(data), "\n") {
			t.Error("expected trailing newline")
		}
	})

	t.Run("same-second saves never collide", func(t *testing.T) {
		ws, err := NewWorkspace(t.TempDir())
		if err != nil {
			t.Fatalf("new workspace: %v", err)
		}

		// Three saves inside one second share a timestamp; each must
		// land in its own file.
		paths := make(map[string]bool)
		for i := 0; i < 3; i++ {
			path, err := ws.SaveResult("summary", review{Score: float64(i)})
			if err != nil {
				t.Fatalf("save %d: %v", i, err)
			}
			if paths[path] {
				t.Fatalf("path reused: %s", path)
			}
			paths[path] = true
		}

		entries, err := os.ReadDir(ws.Dir())
		if err != nil {
			t.Fatalf("read workspace: %v", err)
		}
		if len(entries) != 3 {
			t.Errorf("expected 3 files, got %d", len(entries))
		}
	})

	t.Run("rejects unmarshalable results", func(t *testing.T) {
		ws, err := NewWorkspace(t.TempDir())
		if err != nil {
			t.Fatalf("new workspace: %v", err)
		}

		_, err = ws.SaveResult("summary", func() {})
		if err == nil {
			t.Fatal("expected an error for a function value")
		}

		entries, err := os.ReadDir(ws.Dir())
		if err != nil {
			t.Fatalf("read workspace: %v", err)
		}
		if len(entries) != 0 {
			t.Errorf("expected no files after failed save, got %d", len(entries))
		}
	})
}

func TestWorkspaceHistory(t *testing.T) {
	ws, err := NewWorkspace(t.TempDir())
	if err != nil {
		t.Fatalf("new workspace: %v", err)
	}

	hist, err := ws.History()
	if err != nil {
		t.Fatalf("open history: %v", err)
	}
	defer hist.Close()

	if hist.Path() != filepath.Join(ws.Dir(), HistoryFile) {
		t.Errorf("history database outside workspace: %s", hist.Path())
	}
}
