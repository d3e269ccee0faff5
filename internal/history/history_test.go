package history

import (
	"context"
	"errors"
	"math/rand/v2"
	"path/filepath"
	"testing"

	"github.com/abhisek/quizpath/internal/store"
)

// memLog implements store.AttemptLog in memory for testing.
type memLog struct {
	attempts  []store.Attempt
	appendErr error
	loadErr   error
}

func (m *memLog) Append(_ context.Context, a store.Attempt) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.attempts = append(m.attempts, a)
	return nil
}

func (m *memLog) Load(_ context.Context) ([]store.Attempt, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return append([]store.Attempt(nil), m.attempts...), nil
}

func attempt(qid int, correct bool, ts int64) store.Attempt {
	return store.Attempt{QuestionID: qid, Correct: correct, UsedSeconds: 5, Timestamp: ts}
}

func TestAppend_WrongSetFollowsLastAttempt(t *testing.T) {
	ctx := context.Background()
	s := New(&memLog{})

	steps := []struct {
		correct   bool
		wantWrong bool
	}{
		{true, false},
		{false, true},
		{false, true},
		{true, false},
		{false, true},
	}
	for i, step := range steps {
		if err := s.Append(ctx, attempt(1, step.correct, int64(i))); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
		if got := s.IsWrong(1); got != step.wantWrong {
			t.Errorf("after step %d: IsWrong = %v, want %v", i, got, step.wantWrong)
		}
	}
	if s.Len() != len(steps) {
		t.Errorf("Len = %d, want %d", s.Len(), len(steps))
	}
	if n := len(s.ForQuestion(1)); n != len(steps) {
		t.Errorf("ForQuestion(1) has %d attempts, want %d", n, len(steps))
	}
}

func TestWrongSetInvariant_RandomSequences(t *testing.T) {
	ctx := context.Background()
	rng := rand.New(rand.NewPCG(7, 11))

	for trial := 0; trial < 50; trial++ {
		s := New(&memLog{})
		last := make(map[int]bool)
		for i := 0; i < 40; i++ {
			qid := rng.IntN(6)
			correct := rng.IntN(2) == 0
			if err := s.Append(ctx, attempt(qid, correct, int64(i))); err != nil {
				t.Fatal(err)
			}
			last[qid] = correct
		}
		for qid, correct := range last {
			if s.IsWrong(qid) == correct {
				t.Fatalf("trial %d: question %d last correct=%v but IsWrong=%v", trial, qid, correct, s.IsWrong(qid))
			}
		}
		if got := wrongSetOf(s.byQuestion); !equalSets(got, s.WrongSet()) {
			t.Fatalf("trial %d: incremental wrong set %v differs from rebuilt %v", trial, s.WrongSet(), got)
		}
	}
}

func TestAppend_WriteFailureKeepsMemory(t *testing.T) {
	cause := errors.New("disk full")
	s := New(&memLog{appendErr: cause})

	err := s.Append(context.Background(), attempt(3, false, 1))
	var we *WriteError
	if !errors.As(err, &we) {
		t.Fatalf("expected *WriteError, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("WriteError should wrap the cause")
	}
	if s.Len() != 1 || !s.IsWrong(3) {
		t.Errorf("in-memory state should include the attempt: len=%d wrong=%v", s.Len(), s.IsWrong(3))
	}
}

func TestReload_RebuildsFromLog(t *testing.T) {
	ctx := context.Background()
	log := &memLog{attempts: []store.Attempt{
		attempt(1, false, 1),
		attempt(2, false, 2),
		attempt(1, true, 3),
		attempt(3, true, 4),
		attempt(3, false, 5),
	}}
	s := New(log)
	if err := s.Append(ctx, attempt(9, false, 0)); err != nil {
		t.Fatal(err)
	}
	log.attempts = log.attempts[:5]

	if err := s.Reload(ctx); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if s.Len() != 5 {
		t.Errorf("Len = %d, want 5", s.Len())
	}
	if got, want := s.WrongIDs(), []int{2, 3}; !equalInts(got, want) {
		t.Errorf("WrongIDs = %v, want %v", got, want)
	}
	if s.IsWrong(9) {
		t.Error("reload must drop state not present in the log")
	}
}

func TestReload_LoadErrorLeavesEmpty(t *testing.T) {
	ctx := context.Background()
	log := &memLog{}
	s := New(log)
	if err := s.Append(ctx, attempt(1, false, 1)); err != nil {
		t.Fatal(err)
	}

	log.loadErr = errors.New("permission denied")
	if err := s.Reload(ctx); err == nil {
		t.Fatal("expected reload error")
	}
	if s.Len() != 0 || len(s.WrongSet()) != 0 {
		t.Errorf("store should be empty after failed reload")
	}
}

func TestRoundTrip_CSV(t *testing.T) {
	ctx := context.Background()
	log := store.NewCSVLog(filepath.Join(t.TempDir(), "records.csv"))

	s := New(log)
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 30; i++ {
		a := store.Attempt{
			QuestionID:  rng.IntN(5) + 1,
			Correct:     rng.IntN(3) > 0,
			UsedSeconds: rng.IntN(60) + 1,
			Timestamp:   int64(1700000000 + i*60),
		}
		if err := s.Append(ctx, a); err != nil {
			t.Fatal(err)
		}
	}
	before, beforeWrong := s.Records(), s.WrongSet()

	reloaded := New(log)
	if err := reloaded.Reload(ctx); err != nil {
		t.Fatal(err)
	}
	after := reloaded.Records()
	if len(after) != len(before) {
		t.Fatalf("reloaded %d attempts, want %d", len(after), len(before))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("attempt %d: got %+v, want %+v", i, after[i], before[i])
		}
	}
	if !equalSets(beforeWrong, reloaded.WrongSet()) {
		t.Errorf("wrong set changed across reload: %v vs %v", beforeWrong, reloaded.WrongSet())
	}
}

func TestSince(t *testing.T) {
	ctx := context.Background()
	s := New(nil)
	for i := 0; i < 4; i++ {
		if err := s.Append(ctx, attempt(i, true, int64(i))); err != nil {
			t.Fatal(err)
		}
	}
	if got := s.Since(2); len(got) != 2 || got[0].QuestionID != 2 {
		t.Errorf("Since(2) = %+v", got)
	}
	if got := s.Since(10); got != nil {
		t.Errorf("Since past end = %+v, want nil", got)
	}
}

func equalSets(a, b map[int]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
