package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/abhisek/quizpath/internal/diag"
	"github.com/xuri/excelize/v2"
)

// DefaultSheet is the sheet read when none is named.
const DefaultSheet = "Sheet1"

// ErrUnencodable is returned when a question cannot be written in the
// comma-separated catalog format.
var ErrUnencodable = errors.New("question not representable in catalog format")

// ImportXLSX reads questions from the named sheet of an Excel workbook.
// Columns A through I follow the catalog field order. A first row whose id
// cell is not numeric is treated as a header.
func ImportXLSX(path, sheet string) ([]Question, []diag.Diagnostic, error) {
	if sheet == "" {
		sheet = DefaultSheet
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	var (
		questions []Question
		diags     []diag.Diagnostic
		seen      = make(map[int]bool)
	)
	for i, row := range rows {
		rowNum := i + 1
		if isBlankRow(row) {
			continue
		}
		if i == 0 && !isNumeric(row[0]) {
			diags = append(diags, diag.At(rowNum, "header row skipped"))
			continue
		}
		q, err := parseFields(row)
		if err != nil {
			diags = append(diags, diag.At(rowNum, "%v", err))
			continue
		}
		if seen[q.ID] {
			diags = append(diags, diag.At(rowNum, "duplicate question id %d", q.ID))
			continue
		}
		seen[q.ID] = true
		questions = append(questions, q)
	}
	return questions, diags, nil
}

// WriteCSV writes questions in catalog line format.
func WriteCSV(w io.Writer, questions []Question) error {
	for _, q := range questions {
		fields := []string{
			strconv.Itoa(q.ID),
			q.Text,
			q.Options[0], q.Options[1], q.Options[2], q.Options[3],
			strconv.Itoa(q.CorrectIndex),
			q.Topic,
			strconv.Itoa(q.Difficulty),
		}
		for _, f := range fields {
			if strings.ContainsAny(f, ",\r\n") {
				return fmt.Errorf("question %d: %w", q.ID, ErrUnencodable)
			}
		}
		if _, err := io.WriteString(w, strings.Join(fields, ",")+"\n"); err != nil {
			return fmt.Errorf("write question %d: %w", q.ID, err)
		}
	}
	return nil
}

// WriteFile replaces the catalog at path with questions. Every question is
// encoded before the file is touched, and the new content is renamed over
// path so a failed write leaves the old catalog in place.
func WriteFile(path string, questions []Question) error {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, questions); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".questions-*.csv")
	if err != nil {
		return fmt.Errorf("create temp catalog: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp catalog: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write temp catalog: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("write temp catalog: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace catalog: %w", err)
	}
	return nil
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func isNumeric(s string) bool {
	_, err := atoi(s)
	return err == nil
}
