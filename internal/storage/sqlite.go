// Package storage keeps a ledger of finished 2048 runs in SQLite.
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

	"github.com/vovakirdan/tui-2048/internal/config"
)

// Outcome is how a run ended.
type Outcome string

const (
	OutcomeWon  Outcome = "won"
	OutcomeLost Outcome = "lost"
	OutcomeQuit Outcome = "quit"
)

// Valid reports whether o is a known outcome.
func (o Outcome) Valid() bool {
	switch o {
	case OutcomeWon, OutcomeLost, OutcomeQuit:
		return true
	default:
		return false
	}
}

// ErrInvalidResult is returned when a result cannot be recorded as given.
var ErrInvalidResult = errors.New("storage: invalid result")

// Store manages the SQLite database connection for the results ledger.
type Store struct {
	db *sql.DB
}

// Result is one finished run.
type Result struct {
	ID          int64
	Mode        string // "classic" or "endless"
	MaxExponent int    // Highest tile exponent reached
	Moves       int
	Outcome     Outcome
	Seed        int64
	CreatedAt   time.Time
}

// MaxTile returns the displayed value of the best tile.
func (r Result) MaxTile() int {
	if r.MaxExponent <= 0 {
		return 0
	}
	return 1 << r.MaxExponent
}

// ModeStats aggregates every result recorded for a mode.
type ModeStats struct {
	Mode         string
	Runs         int
	Wins         int
	BestExponent int
	AvgMoves     float64
	LastPlayed   time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	dbPath, err := config.ExpandHome(dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
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
		CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			mode TEXT NOT NULL,
			max_exponent INTEGER NOT NULL,
			moves INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			seed INTEGER NOT NULL DEFAULT 0,
			created_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_results_mode ON results(mode);
		CREATE INDEX IF NOT EXISTS idx_results_best ON results(mode, max_exponent DESC, moves ASC);
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

// SaveResult records a finished run. A zero CreatedAt is set to now.
// Returns the ID of the inserted record.
func (s *Store) SaveResult(r Result) (int64, error) {
	if r.Mode == "" {
		return 0, fmt.Errorf("%w: empty mode", ErrInvalidResult)
	}
	if !r.Outcome.Valid() {
		return 0, fmt.Errorf("%w: outcome %q", ErrInvalidResult, r.Outcome)
	}
	if r.MaxExponent < 0 || r.Moves < 0 {
		return 0, fmt.Errorf("%w: negative exponent or move count", ErrInvalidResult)
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}

	res, err := s.db.Exec(
		`INSERT INTO results (mode, max_exponent, moves, outcome, seed, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.Mode, r.MaxExponent, r.Moves, string(r.Outcome), r.Seed, r.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save result: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const resultColumns = `id, mode, max_exponent, moves, outcome, seed, created_at`

// RecentResults returns the latest runs for mode, newest first.
func (s *Store) RecentResults(mode string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryResults(
		`SELECT `+resultColumns+`
		 FROM results
		 WHERE mode = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		mode, limit,
	)
}

// BestResults returns the best runs for mode: highest tile first, then fewest moves.
func (s *Store) BestResults(mode string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryResults(
		`SELECT `+resultColumns+`
		 FROM results
		 WHERE mode = ?
		 ORDER BY max_exponent DESC, moves ASC, id ASC
		 LIMIT ?`,
		mode, limit,
	)
}

func (s *Store) queryResults(query string, args ...any) ([]Result, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		var outcome string
		var createdAt int64
		if err := rows.Scan(&r.ID, &r.Mode, &r.MaxExponent, &r.Moves, &outcome, &r.Seed, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Outcome = Outcome(outcome)
		r.CreatedAt = time.UnixMilli(createdAt)
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// ModeStats retrieves aggregated statistics for mode.
// A mode with no results yields zero counts and a zero LastPlayed.
func (s *Store) ModeStats(mode string) (ModeStats, error) {
	stats := ModeStats{Mode: mode}

	var lastPlayed sql.NullInt64
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END), 0),
		        COALESCE(MAX(max_exponent), 0),
		        COALESCE(AVG(moves), 0),
		        MAX(created_at)
		 FROM results WHERE mode = ?`,
		string(OutcomeWon), mode,
	).Scan(&stats.Runs, &stats.Wins, &stats.BestExponent, &stats.AvgMoves, &lastPlayed)
	if err != nil {
		return stats, fmt.Errorf("storage: cannot get mode stats: %w", err)
	}

	if lastPlayed.Valid {
		stats.LastPlayed = time.UnixMilli(lastPlayed.Int64)
	}
	return stats, nil
}

// ClearResults deletes every result for mode and returns how many were removed.
func (s *Store) ClearResults(mode string) (int64, error) {
	res, err := s.db.Exec("DELETE FROM results WHERE mode = ?", mode)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot clear results: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count cleared results: %w", err)
	}
	return n, nil
}
