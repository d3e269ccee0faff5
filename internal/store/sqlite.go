package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS attempts (
		seq          INTEGER PRIMARY KEY AUTOINCREMENT,
		scope        TEXT    NOT NULL,
		question_id  INTEGER NOT NULL,
		correct      INTEGER NOT NULL,
		used_seconds INTEGER NOT NULL,
		timestamp    INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_attempts_scope_seq ON attempts (scope, seq)`,
}

// SQLiteBackend stores every user scope in one SQLite database, one row
// per attempt. Row order within a scope is the autoincrement sequence.
type SQLiteBackend struct {
	db *sqlx.DB
}

// OpenSQLite opens (or creates) the database at dsn, applies pragmas and
// ensures the schema exists.
func OpenSQLite(dsn string) (*SQLiteBackend, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One connection keeps in-memory databases coherent and matches the
	// single-writer model.
	db.SetMaxOpenConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("create schema: %w", err)
		}
	}
	return &SQLiteBackend{db: db}, nil
}

// DB returns the underlying handle for raw queries.
func (b *SQLiteBackend) DB() *sqlx.DB {
	return b.db
}

// Scope returns the log for user.
func (b *SQLiteBackend) Scope(user string) (AttemptLog, error) {
	if err := ValidateUserID(user); err != nil {
		return nil, err
	}
	return &sqliteLog{db: b.db, scope: user}, nil
}

// Close closes the database connection.
func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}

// applyPragmas configures SQLite for single-user use.
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

type sqliteLog struct {
	db    *sqlx.DB
	scope string
}

func (l *sqliteLog) Append(ctx context.Context, a Attempt) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO attempts (scope, question_id, correct, used_seconds, timestamp) VALUES (?, ?, ?, ?, ?)`,
		l.scope, a.QuestionID, a.Correct, a.UsedSeconds, a.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert attempt: %w", err)
	}
	return nil
}

func (l *sqliteLog) Load(ctx context.Context) ([]Attempt, error) {
	var rows []Attempt
	err := l.db.SelectContext(ctx, &rows,
		`SELECT question_id, correct, used_seconds, timestamp FROM attempts WHERE scope = ? ORDER BY seq`,
		l.scope,
	)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}

	attempts := rows[:0]
	for _, a := range rows {
		if a.UsedSeconds < 1 {
			continue
		}
		attempts = append(attempts, a)
	}
	return attempts, nil
}
