package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// schema holds the DDL for all persisted collections. Dates are stored as
// ISO calendar dates (2006-01-02), booleans as 0/1.
const schema = `
CREATE TABLE IF NOT EXISTS profile (
	id                INTEGER PRIMARY KEY CHECK (id = 1),
	total_score       INTEGER NOT NULL,
	level             TEXT    NOT NULL,
	streak            INTEGER NOT NULL,
	rank              INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS checkins (
	date              TEXT    PRIMARY KEY,
	is_checked_in     INTEGER NOT NULL DEFAULT 0,
	score             INTEGER NOT NULL DEFAULT 0,
	questions_correct INTEGER NOT NULL DEFAULT 0,
	questions_total   INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS wrong_questions (
	id                TEXT    PRIMARY KEY,
	question          TEXT    NOT NULL,
	correct_answer    TEXT    NOT NULL,
	user_answer       TEXT    NOT NULL,
	category          TEXT    NOT NULL DEFAULT '',
	level             TEXT    NOT NULL DEFAULT '',
	date              TEXT    NOT NULL,
	reviewed          INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS rankings (
	"rank"            INTEGER PRIMARY KEY,
	name              TEXT    NOT NULL,
	score             INTEGER NOT NULL,
	level             TEXT    NOT NULL,
	streak            INTEGER NOT NULL
);
`

// Store holds the database handle and provides access to repositories.
type Store struct {
	db *sqlx.DB
}

// Open creates a new Store connected to the SQLite database at dsn.
// It applies recommended pragmas and creates missing tables.
func Open(dsn string) (*Store, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	return &Store{db: db}, nil
}

// DB returns the underlying *sqlx.DB for raw queries.
func (s *Store) DB() *sqlx.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ProfileRepo returns a ProfileRepo backed by this store.
func (s *Store) ProfileRepo() ProfileRepo {
	return &profileRepo{db: s.db}
}

// CheckinRepo returns a CheckinRepo backed by this store.
func (s *Store) CheckinRepo() CheckinRepo {
	return &checkinRepo{db: s.db}
}

// WrongQuestionRepo returns a WrongQuestionRepo backed by this store.
func (s *Store) WrongQuestionRepo() WrongQuestionRepo {
	return &wrongQuestionRepo{db: s.db}
}

// RankingRepo returns a RankingRepo backed by this store.
func (s *Store) RankingRepo() RankingRepo {
	return &rankingRepo{db: s.db}
}

// applyPragmas configures SQLite for optimal single-user performance.
func applyPragmas(db *sqlx.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. MATHQUEST_DB environment variable
// 2. $XDG_DATA_HOME/mathquest/mathquest.db
// 3. ~/.local/share/mathquest/mathquest.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("MATHQUEST_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "mathquest", "mathquest.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
