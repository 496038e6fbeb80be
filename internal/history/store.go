// Package history keeps a SQLite-backed log of continuation outcomes. The
// engine records each decision best-effort; vomgr history and the watch TUI
// read it back.
package history

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Status describes the outcome of one hook invocation.
type Status string

const (
	StatusLaunched Status = "launched"
	StatusSkipped  Status = "skipped"
	StatusFailed   Status = "failed"
)

// Event is a single continuation record.
type Event struct {
	ID        int64
	Tool      string // source tool whose hook fired
	Target    string // tool that was (or would have been) relaunched
	PID       int    // pid of the launched process, 0 unless launched
	Dir       string
	Status    Status
	Detail    string // human-readable context, e.g. the failure message
	CreatedAt time.Time
}

// Store is a SQLite-backed continuation log.
type Store struct {
	db *sql.DB
}

// Open opens or creates a history store at the given path.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable WAL mode for concurrent hook invocations
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating database: %w", err)
	}

	return &Store{db: db}, nil
}

func migrate(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS continuations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		tool TEXT NOT NULL,
		target TEXT NOT NULL,
		pid INTEGER NOT NULL DEFAULT 0,
		dir TEXT,
		status TEXT NOT NULL,
		detail TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_continuations_tool ON continuations(tool, id);
	`
	_, err := db.Exec(schema)
	return err
}

// Record inserts a new event and returns its ID.
func (s *Store) Record(e *Event) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO continuations (tool, target, pid, dir, status, detail) VALUES (?, ?, ?, ?, ?, ?)`,
		e.Tool, e.Target, e.PID, e.Dir, string(e.Status), e.Detail,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting event: %w", err)
	}
	return res.LastInsertId()
}

// Recent returns the newest events, most recent first. A tool filter of ""
// returns events for all tools.
func (s *Store) Recent(tool string, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 20
	}

	var rows *sql.Rows
	var err error
	if tool != "" {
		rows, err = s.db.Query(
			`SELECT id, tool, target, pid, dir, status, detail, created_at
			 FROM continuations WHERE tool = ? ORDER BY id DESC LIMIT ?`,
			tool, limit,
		)
	} else {
		rows, err = s.db.Query(
			`SELECT id, tool, target, pid, dir, status, detail, created_at
			 FROM continuations ORDER BY id DESC LIMIT ?`,
			limit,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

// LastByTool returns the most recent event per source tool.
func (s *Store) LastByTool() (map[string]Event, error) {
	rows, err := s.db.Query(
		`SELECT id, tool, target, pid, dir, status, detail, created_at
		 FROM continuations WHERE id IN (SELECT MAX(id) FROM continuations GROUP BY tool)`,
	)
	if err != nil {
		return nil, fmt.Errorf("querying latest events: %w", err)
	}
	defer rows.Close()

	events, err := scanEvents(rows)
	if err != nil {
		return nil, err
	}
	latest := make(map[string]Event, len(events))
	for _, e := range events {
		latest[e.Tool] = e
	}
	return latest, nil
}

// Close closes the store.
func (s *Store) Close() error {
	return s.db.Close()
}

func scanEvents(rows *sql.Rows) ([]Event, error) {
	var events []Event
	for rows.Next() {
		var e Event
		var status string
		var dir, detail sql.NullString
		if err := rows.Scan(&e.ID, &e.Tool, &e.Target, &e.PID, &dir, &status, &detail, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		e.Status = Status(status)
		e.Dir = dir.String
		e.Detail = detail.String
		events = append(events, e)
	}
	return events, rows.Err()
}
