// Package storage provides SQLite-based persistence for finished play sessions.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-match3/internal/match3"
)

// Outcome describes how a session ended.
type Outcome string

const (
	OutcomeQuit          Outcome = "quit"
	OutcomeUnshuffleable Outcome = "unshuffleable"
	OutcomeMoveLimit     Outcome = "move_limit"
	OutcomeError         Outcome = "error"
)

// Store manages the SQLite database connection for session history.
type Store struct {
	db *sql.DB
}

// Session is one recorded play session, interactive or simulated.
type Session struct {
	ID       int64
	Variant  string
	Seed     uint64
	Width    int
	Height   int
	Types    int
	Swaps    int // accepted swaps that produced a match
	Reverts  int
	Stats    match3.Stats
	Outcome  Outcome
	Duration time.Duration

	CreatedAt time.Time
}

// VariantStats aggregates sessions played on one variant.
type VariantStats struct {
	Variant       string
	Sessions      int
	TotalSwaps    int64
	TotalRemoved  int64
	BestRemoved   int
	MaxCycles     int
	Unshuffleable int
	LastPlayed    time.Time
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
		CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			variant TEXT NOT NULL,
			seed INTEGER NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			types INTEGER NOT NULL,
			swaps INTEGER NOT NULL DEFAULT 0,
			reverts INTEGER NOT NULL DEFAULT 0,
			cycles INTEGER NOT NULL DEFAULT 0,
			shuffles INTEGER NOT NULL DEFAULT 0,
			created INTEGER NOT NULL DEFAULT 0,
			removed INTEGER NOT NULL DEFAULT 0,
			promoted INTEGER NOT NULL DEFAULT 0,
			outcome TEXT NOT NULL,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_variant ON sessions(variant);
		CREATE INDEX IF NOT EXISTS idx_sessions_recent ON sessions(created_at DESC);
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

// SaveSession records a finished session and returns its row ID.
func (s *Store) SaveSession(sess Session) (int64, error) {
	if sess.Variant == "" {
		return 0, fmt.Errorf("storage: session has no variant")
	}
	if sess.Outcome == "" {
		sess.Outcome = OutcomeQuit
	}

	result, err := s.db.Exec(
		`INSERT INTO sessions
		 (variant, seed, width, height, types, swaps, reverts, cycles, shuffles,
		  created, removed, promoted, outcome, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sess.Variant, int64(sess.Seed), sess.Width, sess.Height, sess.Types,
		sess.Swaps, sess.Reverts, sess.Stats.Cycles, sess.Stats.Shuffles,
		sess.Stats.Created, sess.Stats.Removed, sess.Stats.Promoted,
		string(sess.Outcome), sess.Duration.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save session: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const sessionColumns = `id, variant, seed, width, height, types, swaps, reverts, cycles, shuffles,
	created, removed, promoted, outcome, duration_ms, created_at`

// RecentSessions returns the latest sessions, newest first.
// An empty variant matches every variant.
func (s *Store) RecentSessions(variant string, limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 10
	}

	var (
		rows *sql.Rows
		err  error
	)
	if variant == "" {
		rows, err = s.db.Query(
			`SELECT `+sessionColumns+` FROM sessions ORDER BY created_at DESC, id DESC LIMIT ?`,
			limit,
		)
	} else {
		rows, err = s.db.Query(
			`SELECT `+sessionColumns+` FROM sessions WHERE variant = ? ORDER BY created_at DESC, id DESC LIMIT ?`,
			variant, limit,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return sessions, nil
}

// SessionByID retrieves a single session.
func (s *Store) SessionByID(id int64) (*Session, error) {
	row := s.db.QueryRow(`SELECT `+sessionColumns+` FROM sessions WHERE id = ?`, id)
	sess, err := scanSession(row)
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(r rowScanner) (Session, error) {
	var (
		sess      Session
		seed      int64
		outcome   string
		durMS     int64
		createdAt any
	)
	err := r.Scan(
		&sess.ID, &sess.Variant, &seed, &sess.Width, &sess.Height, &sess.Types,
		&sess.Swaps, &sess.Reverts, &sess.Stats.Cycles, &sess.Stats.Shuffles,
		&sess.Stats.Created, &sess.Stats.Removed, &sess.Stats.Promoted,
		&outcome, &durMS, &createdAt,
	)
	if err != nil {
		return Session{}, fmt.Errorf("storage: cannot scan session: %w", err)
	}

	sess.Seed = uint64(seed)
	sess.Outcome = Outcome(outcome)
	sess.Duration = time.Duration(durMS) * time.Millisecond
	sess.CreatedAt = parseTime(createdAt)
	if sess.Outcome == OutcomeUnshuffleable {
		sess.Stats.Unshuffleable = true
	}
	return sess, nil
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

// StatsByVariant aggregates every recorded session per variant.
func (s *Store) StatsByVariant() (map[string]*VariantStats, error) {
	rows, err := s.db.Query(
		`SELECT variant, COUNT(*), SUM(swaps), SUM(removed), MAX(removed), MAX(cycles),
		        SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END), MAX(created_at)
		 FROM sessions
		 GROUP BY variant`,
		string(OutcomeUnshuffleable),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get variant stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*VariantStats)
	for rows.Next() {
		var vs VariantStats
		var lastPlayed any
		if err := rows.Scan(&vs.Variant, &vs.Sessions, &vs.TotalSwaps, &vs.TotalRemoved,
			&vs.BestRemoved, &vs.MaxCycles, &vs.Unshuffleable, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		vs.LastPlayed = parseTime(lastPlayed)
		stats[vs.Variant] = &vs
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// ClearSessions deletes recorded sessions. An empty variant clears all of them.
func (s *Store) ClearSessions(variant string) error {
	var err error
	if variant == "" {
		_, err = s.db.Exec("DELETE FROM sessions")
	} else {
		_, err = s.db.Exec("DELETE FROM sessions WHERE variant = ?", variant)
	}
	if err != nil {
		return fmt.Errorf("storage: cannot clear sessions: %w", err)
	}
	return nil
}
