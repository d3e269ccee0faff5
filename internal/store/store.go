package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

// Attempt is one immutable answer submission.
type Attempt struct {
	QuestionID  int   `db:"question_id"`
	Correct     bool  `db:"correct"`
	UsedSeconds int   `db:"used_seconds"`
	Timestamp   int64 `db:"timestamp"`
}

// AttemptLog is the durable, append-only history of one user scope.
type AttemptLog interface {
	// Append writes one attempt to the end of the log.
	Append(ctx context.Context, a Attempt) error

	// Load returns every well-formed attempt in insertion order.
	// Malformed entries are skipped.
	Load(ctx context.Context) ([]Attempt, error)
}

// Backend hands out the attempt log of a user scope. The empty user id
// selects the default scope.
type Backend interface {
	Scope(user string) (AttemptLog, error)
	Close() error
}

// ErrInvalidUserID is returned for user ids that cannot name a scope.
var ErrInvalidUserID = errors.New("invalid user id")

var userIDPattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// ValidateUserID checks that id is usable as a scope name. The empty id is
// the default scope and is valid.
func ValidateUserID(id string) error {
	if id == "" {
		return nil
	}
	if id == "." || id == ".." || !userIDPattern.MatchString(id) {
		return fmt.Errorf("%w: %q", ErrInvalidUserID, id)
	}
	return nil
}

// DefaultDataDir resolves the data directory in priority order:
// 1. $XDG_DATA_HOME/quizpath
// 2. ~/.local/share/quizpath
func DefaultDataDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "quizpath"), nil
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
