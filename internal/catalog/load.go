package catalog

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/abhisek/quizpath/internal/diag"
)

// FieldCount is the number of comma-separated fields in a catalog line.
const FieldCount = 9

// ErrEmptyCatalog is returned when a catalog source yields no valid questions.
var ErrEmptyCatalog = errors.New("catalog contains no valid questions")

// Load reads a catalog file. Malformed rows are skipped and reported as
// diagnostics; the returned error is non-nil only when the file cannot be
// read or no valid question remains.
func Load(path string) (*Catalog, []diag.Diagnostic, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads catalog lines from r.
func Parse(r io.Reader) (*Catalog, []diag.Diagnostic, error) {
	var (
		questions []Question
		diags     []diag.Diagnostic
		seen      = make(map[int]bool)
	)

	err := diag.EachLine(r, func(lineNum int, line string) {
		if line == "" {
			return
		}
		q, err := parseFields(strings.Split(line, ","))
		if err != nil {
			diags = append(diags, diag.At(lineNum, "%v", err))
			return
		}
		if seen[q.ID] {
			diags = append(diags, diag.At(lineNum, "duplicate question id %d", q.ID))
			return
		}
		seen[q.ID] = true
		questions = append(questions, q)
	})
	if err != nil {
		return nil, diags, fmt.Errorf("read catalog: %w", err)
	}
	if len(questions) == 0 {
		return nil, diags, ErrEmptyCatalog
	}
	return New(questions), diags, nil
}

// parseFields validates one row. Fields past the ninth are ignored.
func parseFields(fields []string) (Question, error) {
	if len(fields) < FieldCount {
		return Question{}, fmt.Errorf("expected %d fields, got %d", FieldCount, len(fields))
	}

	id, err := atoi(fields[0])
	if err != nil {
		return Question{}, fmt.Errorf("invalid id %q", fields[0])
	}
	correct, err := atoi(fields[6])
	if err != nil {
		return Question{}, fmt.Errorf("invalid correct index %q", fields[6])
	}
	if correct < 0 || correct >= OptionCount {
		return Question{}, fmt.Errorf("correct index %d out of range 0-%d", correct, OptionCount-1)
	}
	difficulty, err := atoi(fields[8])
	if err != nil {
		return Question{}, fmt.Errorf("invalid difficulty %q", fields[8])
	}
	if difficulty < MinDifficulty || difficulty > MaxDifficulty {
		return Question{}, fmt.Errorf("difficulty %d out of range %d-%d", difficulty, MinDifficulty, MaxDifficulty)
	}

	return Question{
		ID:           id,
		Text:         fields[1],
		Options:      [OptionCount]string{fields[2], fields[3], fields[4], fields[5]},
		CorrectIndex: correct,
		Topic:        fields[7],
		Difficulty:   difficulty,
	}, nil
}

func atoi(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}
