package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/quizpath/internal/history"
	"github.com/abhisek/quizpath/internal/store"
)

// Result is the outcome of one answered question.
type Result struct {
	Correct      bool
	CorrectIndex int
	// Persisted is false when the attempt is only held in memory because
	// the durable write failed.
	Persisted bool
}

// ElapsedSeconds converts a measured answer time to whole seconds, never
// less than 1.
func ElapsedSeconds(elapsed time.Duration) int {
	secs := int(elapsed / time.Second)
	if secs < 1 {
		return 1
	}
	return secs
}

// RecordAttempt grades choice against question qid and appends the attempt
// to the current scope.
func (s *Session) RecordAttempt(ctx context.Context, qid, choice int, elapsed time.Duration) (Result, error) {
	q, ok := s.Question(qid)
	if !ok {
		return Result{}, fmt.Errorf("%w: %d", ErrUnknownQuestion, qid)
	}

	a := store.Attempt{
		QuestionID:  qid,
		Correct:     q.IsCorrect(choice),
		UsedSeconds: ElapsedSeconds(elapsed),
		Timestamp:   s.now().Unix(),
	}
	res := Result{Correct: a.Correct, CorrectIndex: q.CorrectIndex, Persisted: true}

	if err := s.history.Append(ctx, a); err != nil {
		var we *history.WriteError
		if !errors.As(err, &we) {
			return Result{}, err
		}
		s.logger.Warn("attempt kept in memory only", "user", s.user, "question", qid, "error", we.Err)
		res.Persisted = false
	}

	return res, nil
}
