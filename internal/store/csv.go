package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/abhisek/quizpath/internal/diag"
)

// CSVBackend keeps one comma-separated log file per user scope in a
// directory.
type CSVBackend struct {
	dir string
}

// NewCSVBackend returns a backend rooted at dir. The directory is created
// on first append.
func NewCSVBackend(dir string) *CSVBackend {
	return &CSVBackend{dir: dir}
}

// Scope returns the log for user.
func (b *CSVBackend) Scope(user string) (AttemptLog, error) {
	if err := ValidateUserID(user); err != nil {
		return nil, err
	}
	return &CSVLog{path: filepath.Join(b.dir, RecordFileName(user))}, nil
}

// Close is a no-op; CSV logs hold no open handles between calls.
func (b *CSVBackend) Close() error { return nil }

// RecordFileName returns the log file name for a user scope.
func RecordFileName(user string) string {
	if user == "" {
		return "records.csv"
	}
	return "records_" + user + ".csv"
}

// CSVLog is an append-only attempt log file with lines of the form
// questionId,correct(0|1),usedSeconds,timestamp.
type CSVLog struct {
	path string
}

// NewCSVLog returns a log backed by the file at path.
func NewCSVLog(path string) *CSVLog {
	return &CSVLog{path: path}
}

func (l *CSVLog) Append(_ context.Context, a Attempt) error {
	if err := EnsureDir(l.path); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	if _, err := f.WriteString(FormatAttempt(a) + "\n"); err != nil {
		f.Close()
		return fmt.Errorf("write log: %w", err)
	}
	return f.Close()
}

// Load reads the log. A missing file is an empty history.
func (l *CSVLog) Load(_ context.Context) ([]Attempt, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer f.Close()

	var attempts []Attempt
	err = diag.EachLine(f, func(_ int, line string) {
		if a, ok := ParseAttempt(line); ok {
			attempts = append(attempts, a)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}
	return attempts, nil
}

// FormatAttempt renders a in log line format, without the newline.
func FormatAttempt(a Attempt) string {
	correct := "0"
	if a.Correct {
		correct = "1"
	}
	return strconv.Itoa(a.QuestionID) + "," + correct + "," +
		strconv.Itoa(a.UsedSeconds) + "," + strconv.FormatInt(a.Timestamp, 10)
}

// ParseAttempt parses one log line. Fields past the fourth are ignored.
func ParseAttempt(line string) (Attempt, bool) {
	line = strings.TrimRight(line, "\r")
	if line == "" {
		return Attempt{}, false
	}
	fields := strings.Split(line, ",")
	if len(fields) < 4 {
		return Attempt{}, false
	}

	qid, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil {
		return Attempt{}, false
	}
	var correct bool
	switch strings.TrimSpace(fields[1]) {
	case "1":
		correct = true
	case "0":
	default:
		return Attempt{}, false
	}
	used, err := strconv.Atoi(strings.TrimSpace(fields[2]))
	if err != nil || used < 1 {
		return Attempt{}, false
	}
	ts, err := strconv.ParseInt(strings.TrimSpace(fields[3]), 10, 64)
	if err != nil {
		return Attempt{}, false
	}

	return Attempt{QuestionID: qid, Correct: correct, UsedSeconds: used, Timestamp: ts}, true
}
