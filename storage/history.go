package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// HistoryFile is the sqlite database name inside the workspace.
const HistoryFile = "history.db"

const historySchema = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	kind TEXT NOT NULL,
	lab_name TEXT NOT NULL,
	source TEXT NOT NULL,
	revision TEXT NOT NULL,
	provider TEXT NOT NULL,
	model TEXT NOT NULL,
	duration_ms INTEGER NOT NULL,
	path TEXT NOT NULL,
	created_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
`

// Run is one recorded analysis invocation.
type Run struct {
	ID        string        `json:"id"`
	Kind      string        `json:"kind"`
	LabName   string        `json:"lab_name"`
	Source    string        `json:"source"`
	Revision  string        `json:"revision"`
	Provider  string        `json:"provider"`
	Model     string        `json:"model"`
	Duration  time.Duration `json:"duration"`
	Path      string        `json:"path,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

// History indexes recorded runs in a sqlite database inside the
// workspace.
type History struct {
	db   *sql.DB
	path string
}

// OpenHistory opens the history database under dir, creating the
// directory and schema as needed. An empty dir selects
// DefaultWorkspaceDir.
func OpenHistory(dir string) (*History, error) {
	if dir == "" {
		dir = DefaultWorkspaceDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}

	path := filepath.Join(dir, HistoryFile)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	if _, err := db.Exec(historySchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize history schema: %w", err)
	}

	return &History{db: db, path: path}, nil
}

// Path returns the database file path.
func (h *History) Path() string {
	return h.path
}

// Close closes the database.
func (h *History) Close() error {
	return h.db.Close()
}

// Record inserts a run and returns the stored row. A missing ID gets a
// fresh UUID and a zero CreatedAt becomes the current time. Durations
// are kept at millisecond precision.
func (h *History) Record(run Run) (Run, error) {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	run.CreatedAt = run.CreatedAt.UTC()
	run.Duration = run.Duration.Truncate(time.Millisecond)

	_, err := h.db.Exec(`
		INSERT INTO runs (id, kind, lab_name, source, revision, provider, model, duration_ms, path, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.Kind, run.LabName, run.Source, run.Revision,
		run.Provider, run.Model, run.Duration.Milliseconds(), run.Path, run.CreatedAt.UnixNano())
	if err != nil {
		return Run{}, fmt.Errorf("insert run: %w", err)
	}

	return run, nil
}

// Get retrieves a run by ID.
func (h *History) Get(id string) (Run, error) {
	row := h.db.QueryRow(`
		SELECT id, kind, lab_name, source, revision, provider, model, duration_ms, path, created_at
		FROM runs
		WHERE id = ?
	`, id)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, ErrNotFound
	}
	if err != nil {
		return Run{}, fmt.Errorf("get run: %w", err)
	}
	return run, nil
}

// List returns recorded runs newest-first. A non-positive limit
// returns every run.
func (h *History) List(limit int) ([]Run, error) {
	query := `
		SELECT id, kind, lab_name, source, revision, provider, model, duration_ms, path, created_at
		FROM runs
		ORDER BY created_at DESC
	`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := h.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}

	return runs, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var (
		run        Run
		durationMS int64
		createdNS  int64
	)
	err := row.Scan(&run.ID, &run.Kind, &run.LabName, &run.Source, &run.Revision,
		&run.Provider, &run.Model, &durationMS, &run.Path, &createdNS)
	if err != nil {
		return Run{}, err
	}
	run.Duration = time.Duration(durationMS) * time.Millisecond
	run.CreatedAt = time.Unix(0, createdNS).UTC()
	return run, nil
}
