// Package storage provides SQLite-based persistence for recorded motion
// traces, so sessions can be replayed headlessly.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrTraceNotFound is returned when a trace ID does not exist.
var ErrTraceNotFound = errors.New("storage: trace not found")

// Store manages the SQLite database connection for trace persistence.
type Store struct {
	db *sql.DB
}

// Trace is the header record of one recorded session.
type Trace struct {
	ID         int64
	Source     string // motion source ID
	Seed       int64  // seed used for phase durations
	TickMS     int64
	ConfigYAML string // game config the session ran with
	Ticks      int
	Deaths     int
	Level      int // highest level reached
	Cycle      int // highest cycle reached
	Outcome    string
	CreatedAt  time.Time
}

// Sample is one recorded tick.
type Sample struct {
	Seq      int
	NowMS    int64
	Raw      float64
	Smoothed float64
	State    string
}

// TraceResult summarizes a finished recording.
type TraceResult struct {
	Ticks   int
	Deaths  int
	Level   int
	Cycle   int
	Outcome string // "quit", "completed", "interrupted"
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS traces (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			source TEXT NOT NULL,
			seed INTEGER NOT NULL,
			tick_ms INTEGER NOT NULL,
			config_yaml TEXT NOT NULL DEFAULT '',
			ticks INTEGER NOT NULL DEFAULT 0,
			deaths INTEGER NOT NULL DEFAULT 0,
			level INTEGER NOT NULL DEFAULT 1,
			cycle INTEGER NOT NULL DEFAULT 1,
			outcome TEXT NOT NULL DEFAULT 'recording',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS trace_samples (
			trace_id INTEGER NOT NULL REFERENCES traces(id),
			seq INTEGER NOT NULL,
			now_ms INTEGER NOT NULL,
			raw REAL NOT NULL,
			smoothed REAL NOT NULL,
			state TEXT NOT NULL,
			PRIMARY KEY (trace_id, seq)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// BeginTrace creates a trace header and returns its ID.
func (s *Store) BeginTrace(t Trace) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO traces (source, seed, tick_ms, config_yaml) VALUES (?, ?, ?, ?)",
		t.Source, t.Seed, t.TickMS, t.ConfigYAML,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin trace: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// AppendSamples stores a batch of samples in one transaction.
func (s *Store) AppendSamples(traceID int64, samples []Sample) error {
	if len(samples) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}

	stmt, err := tx.Prepare(
		"INSERT INTO trace_samples (trace_id, seq, now_ms, raw, smoothed, state) VALUES (?, ?, ?, ?, ?, ?)",
	)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("storage: cannot prepare sample insert: %w", err)
	}
	defer stmt.Close()

	for _, smp := range samples {
		if _, err := stmt.Exec(traceID, smp.Seq, smp.NowMS, smp.Raw, smp.Smoothed, smp.State); err != nil {
			tx.Rollback()
			return fmt.Errorf("storage: cannot save sample %d: %w", smp.Seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit samples: %w", err)
	}
	return nil
}

// FinishTrace writes the summary of a recording.
func (s *Store) FinishTrace(traceID int64, r TraceResult) error {
	res, err := s.db.Exec(
		`UPDATE traces SET ticks = ?, deaths = ?, level = ?, cycle = ?, outcome = ?
		 WHERE id = ?`,
		r.Ticks, r.Deaths, r.Level, r.Cycle, r.Outcome, traceID,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot finish trace: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %d", ErrTraceNotFound, traceID)
	}
	return nil
}

// LoadTrace retrieves a trace header and its samples in order.
func (s *Store) LoadTrace(traceID int64) (*Trace, []Sample, error) {
	t, err := s.traceByID(traceID)
	if err != nil {
		return nil, nil, err
	}

	rows, err := s.db.Query(
		`SELECT seq, now_ms, raw, smoothed, state
		 FROM trace_samples
		 WHERE trace_id = ?
		 ORDER BY seq`,
		traceID,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("storage: cannot query samples: %w", err)
	}
	defer rows.Close()

	var samples []Sample
	for rows.Next() {
		var smp Sample
		if err := rows.Scan(&smp.Seq, &smp.NowMS, &smp.Raw, &smp.Smoothed, &smp.State); err != nil {
			return nil, nil, fmt.Errorf("storage: cannot scan sample: %w", err)
		}
		samples = append(samples, smp)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return t, samples, nil
}

const traceColumns = `id, source, seed, tick_ms, config_yaml, ticks, deaths, level, cycle, outcome, created_at`

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrace(r rowScanner) (Trace, error) {
	var t Trace
	var createdAt any
	err := r.Scan(&t.ID, &t.Source, &t.Seed, &t.TickMS, &t.ConfigYAML,
		&t.Ticks, &t.Deaths, &t.Level, &t.Cycle, &t.Outcome, &createdAt)
	if err != nil {
		return t, err
	}
	t.CreatedAt = parseTime(createdAt)
	return t, nil
}

func (s *Store) traceByID(traceID int64) (*Trace, error) {
	row := s.db.QueryRow("SELECT "+traceColumns+" FROM traces WHERE id = ?", traceID)
	t, err := scanTrace(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrTraceNotFound, traceID)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query trace: %w", err)
	}
	return &t, nil
}

// RecentTraces returns the most recent traces, newest first.
func (s *Store) RecentTraces(limit int) ([]Trace, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		"SELECT "+traceColumns+" FROM traces ORDER BY id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query traces: %w", err)
	}
	defer rows.Close()

	var traces []Trace
	for rows.Next() {
		t, err := scanTrace(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		traces = append(traces, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return traces, nil
}

// DeleteTrace removes a trace and its samples.
func (s *Store) DeleteTrace(traceID int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM trace_samples WHERE trace_id = ?", traceID); err != nil {
		tx.Rollback()
		return fmt.Errorf("storage: cannot delete samples: %w", err)
	}
	res, err := tx.Exec("DELETE FROM traces WHERE id = ?", traceID)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("storage: cannot delete trace: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		tx.Rollback()
		return fmt.Errorf("%w: %d", ErrTraceNotFound, traceID)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit delete: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string datetime values.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
