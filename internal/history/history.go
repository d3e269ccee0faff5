// Package history is the in-memory record store for one user scope. It
// keeps the attempt list in insertion order, a per-question index and the
// wrong set, and mirrors every append to a durable log.
//
// The wrong set tracks the most recently recorded attempt per question,
// which is not necessarily the most recent by timestamp.
package history

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sort"

	"github.com/abhisek/quizpath/internal/store"
)

// WriteError reports a failed durable append. The in-memory state already
// includes the attempt.
type WriteError struct {
	Attempt store.Attempt
	Err     error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("persist attempt for question %d: %v", e.Attempt.QuestionID, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Store owns the attempt history of one scope.
type Store struct {
	log        store.AttemptLog
	records    []store.Attempt
	byQuestion map[int][]store.Attempt
	wrong      map[int]bool
}

// New returns an empty store that persists to log. Call Reload to populate
// it from existing history.
func New(log store.AttemptLog) *Store {
	return &Store{
		log:        log,
		byQuestion: make(map[int][]store.Attempt),
		wrong:      make(map[int]bool),
	}
}

// Append records a in memory, updates the wrong set, then writes a to the
// durable log. A write failure is returned as *WriteError and does not undo
// the in-memory update.
func (s *Store) Append(ctx context.Context, a store.Attempt) error {
	s.records = append(s.records, a)
	s.byQuestion[a.QuestionID] = append(s.byQuestion[a.QuestionID], a)
	if a.Correct {
		delete(s.wrong, a.QuestionID)
	} else {
		s.wrong[a.QuestionID] = true
	}

	if s.log == nil {
		return nil
	}
	if err := s.log.Append(ctx, a); err != nil {
		return &WriteError{Attempt: a, Err: err}
	}
	return nil
}

// Reload discards all in-memory state and rebuilds it from the durable log.
// On error the store is left empty.
func (s *Store) Reload(ctx context.Context) error {
	s.reset()
	if s.log == nil {
		return nil
	}

	attempts, err := s.log.Load(ctx)
	if err != nil {
		return fmt.Errorf("load attempts: %w", err)
	}
	for _, a := range attempts {
		s.records = append(s.records, a)
		s.byQuestion[a.QuestionID] = append(s.byQuestion[a.QuestionID], a)
	}
	s.wrong = wrongSetOf(s.byQuestion)
	return nil
}

func (s *Store) reset() {
	s.records = nil
	s.byQuestion = make(map[int][]store.Attempt)
	s.wrong = make(map[int]bool)
}

// wrongSetOf derives the wrong set from scratch: a question is wrong when
// its last recorded attempt is incorrect.
func wrongSetOf(byQuestion map[int][]store.Attempt) map[int]bool {
	wrong := make(map[int]bool)
	for qid, attempts := range byQuestion {
		if len(attempts) == 0 {
			continue
		}
		if !attempts[len(attempts)-1].Correct {
			wrong[qid] = true
		}
	}
	return wrong
}

// Records returns every attempt in insertion order.
func (s *Store) Records() []store.Attempt {
	return slices.Clone(s.records)
}

// Since returns the attempts recorded after the first n.
func (s *Store) Since(n int) []store.Attempt {
	if n < 0 {
		n = 0
	}
	if n >= len(s.records) {
		return nil
	}
	return slices.Clone(s.records[n:])
}

// ForQuestion returns the attempts on one question in insertion order.
func (s *Store) ForQuestion(id int) []store.Attempt {
	return slices.Clone(s.byQuestion[id])
}

// Len returns the number of attempts.
func (s *Store) Len() int {
	return len(s.records)
}

// IsWrong reports whether the last attempt on id was incorrect.
func (s *Store) IsWrong(id int) bool {
	return s.wrong[id]
}

// WrongSet returns a copy of the wrong set.
func (s *Store) WrongSet() map[int]bool {
	return maps.Clone(s.wrong)
}

// WrongIDs returns the wrong set as ascending ids.
func (s *Store) WrongIDs() []int {
	ids := make([]int, 0, len(s.wrong))
	for id := range s.wrong {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
