// Package storage persists analysis results and the run-history index
// kept in a workspace directory.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DefaultWorkspaceDir is the workspace location relative to the working
// directory when none is configured.
const DefaultWorkspaceDir = "workspace"

// resultStampFormat names saved results down to the second.
const resultStampFormat = "20060102_150405"

// Workspace is the directory holding saved analysis results and the
// history index.
type Workspace struct {
	dir string
}

// NewWorkspace opens the workspace at dir, creating the directory if
// needed. An empty dir selects DefaultWorkspaceDir.
func NewWorkspace(dir string) (*Workspace, error) {
	if dir == "" {
		dir = DefaultWorkspaceDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}
	return &Workspace{dir: dir}, nil
}

// Dir returns the workspace directory.
func (w *Workspace) Dir() string {
	return w.dir
}

// History opens the run-history index for this workspace. The caller
// owns the returned handle and must close it.
func (w *Workspace) History() (*History, error) {
	return OpenHistory(w.dir)
}

// SaveResult writes one analysis result into the workspace as indented
// JSON named <kind>_<timestamp>.json and returns the written path.
// Results landing in the same second get a numeric suffix instead of
// overwriting each other.
func (w *Workspace) SaveResult(kind string, result any) (string, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal %s result: %w", kind, err)
	}
	data = append(data, '\n')

	stamp := time.Now().Format(resultStampFormat)
	for n := 1; ; n++ {
		name := fmt.Sprintf("%s_%s.json", kind, stamp)
		if n > 1 {
			name = fmt.Sprintf("%s_%s_%d.json", kind, stamp, n)
		}

		path := filepath.Join(w.dir, name)
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("create result file: %w", err)
		}

		if _, err := f.Write(data); err != nil {
			f.Close()
			return "", fmt.Errorf("write result file: %w", err)
		}
		if err := f.Close(); err != nil {
			return "", fmt.Errorf("write result file: %w", err)
		}
		return path, nil
	}
}
