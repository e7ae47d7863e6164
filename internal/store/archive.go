// Package store persists verification outcomes to SQLite so theorem
// results survive across CLI runs. The proof core itself owns no
// persistence; this archive is a consumer of its structured results.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"eternalmath/internal/proof"
)

// Archive is a SQLite-backed log of theorem verification outcomes.
type Archive struct {
	mu     sync.RWMutex
	db     *sql.DB
	dbPath string
}

// Record is one archived verification outcome.
type Record struct {
	ID          int64
	SessionID   string
	Name        string
	Goal        string
	State       string
	Success     bool
	FailingStep int
	Reason      string
	Detail      string
	VerifiedAt  time.Time
}

// Open initializes the archive database at the given path, creating the
// parent directory and schema as needed.
func Open(path string) (*Archive, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating archive directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening archive database: %w", err)
	}
	a := &Archive{db: db, dbPath: path}
	if err := a.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return a, nil
}

func (a *Archive) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS theorem_results (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		name TEXT NOT NULL,
		goal TEXT NOT NULL,
		state TEXT NOT NULL,
		success INTEGER NOT NULL,
		failing_step INTEGER NOT NULL,
		reason TEXT NOT NULL,
		detail TEXT NOT NULL DEFAULT '',
		verified_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_theorem_results_name ON theorem_results(name);
	`
	if _, err := a.db.Exec(schema); err != nil {
		return fmt.Errorf("initializing archive schema: %w", err)
	}
	return nil
}

// Close releases the underlying database.
func (a *Archive) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.db.Close()
}

// SaveResult records one verification outcome for a theorem.
func (a *Archive) SaveResult(sessionID string, th *proof.Theorem, res proof.Result) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, err := a.db.Exec(`
		INSERT INTO theorem_results (session_id, name, goal, state, success, failing_step, reason, detail)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		sessionID, th.Name, th.Goal.String(), string(th.State()),
		res.Success, res.FailingStep, string(res.Reason), res.Detail,
	)
	if err != nil {
		return fmt.Errorf("archiving theorem %q: %w", th.Name, err)
	}
	return nil
}

// List returns all archived records, newest first.
func (a *Archive) List() ([]Record, error) {
	return a.query(`SELECT id, session_id, name, goal, state, success, failing_step, reason, detail, verified_at
		FROM theorem_results ORDER BY id DESC`)
}

// Find returns the archived records for a theorem name, newest first.
func (a *Archive) Find(name string) ([]Record, error) {
	return a.query(`SELECT id, session_id, name, goal, state, success, failing_step, reason, detail, verified_at
		FROM theorem_results WHERE name = ? ORDER BY id DESC`, name)
}

func (a *Archive) query(q string, args ...interface{}) ([]Record, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	rows, err := a.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying archive: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.SessionID, &r.Name, &r.Goal, &r.State,
			&r.Success, &r.FailingStep, &r.Reason, &r.Detail, &r.VerifiedAt); err != nil {
			return nil, fmt.Errorf("scanning archive row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
