package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/quizpath/internal/catalog"
	"github.com/abhisek/quizpath/internal/stats"
)

// RandomQuestion picks any catalog question uniformly.
func (s *Session) RandomQuestion() (catalog.Question, error) {
	if s.catalog == nil || s.catalog.Len() == 0 {
		return catalog.Question{}, ErrNoCatalog
	}
	all := s.catalog.All()
	return all[s.rng.IntN(len(all))], nil
}

// WrongBookQuestion picks uniformly among the wrong questions that are
// still in the catalog.
func (s *Session) WrongBookQuestion() (catalog.Question, error) {
	if s.catalog == nil {
		return catalog.Question{}, ErrNoCatalog
	}
	var pool []catalog.Question
	for _, id := range s.history.WrongIDs() {
		if q, ok := s.catalog.Get(id); ok {
			pool = append(pool, q)
		}
	}
	if len(pool) == 0 {
		return catalog.Question{}, ErrNoWrongQuestions
	}
	return pool[s.rng.IntN(len(pool))], nil
}

// Exam is a fixed set of distinct questions answered in order.
type Exam struct {
	ID        string
	User      string
	Questions []catalog.Question
	StartedAt time.Time

	// offset is the history length when the exam began.
	offset int
}

// BeginExam draws n distinct questions in random order. n is clamped to
// [1, catalog size].
func (s *Session) BeginExam(n int) (*Exam, error) {
	if s.catalog == nil || s.catalog.Len() == 0 {
		return nil, ErrNoCatalog
	}
	all := s.catalog.All()
	n = max(1, min(n, len(all)))
	s.rng.Shuffle(len(all), func(i, j int) { all[i], all[j] = all[j], all[i] })

	e := &Exam{
		ID:        uuid.New().String(),
		User:      s.user,
		Questions: all[:n],
		StartedAt: s.now(),
		offset:    s.history.Len(),
	}
	s.logger.Info("exam started", "exam", e.ID, "user", s.user, "questions", n)
	return e, nil
}

// ExamReport summarises an exam.
type ExamReport struct {
	ExamID   string
	Total    int
	Correct  int
	Accuracy float64
	Topics   map[string]stats.TopicStat
	Duration time.Duration
}

// ExamReport folds the attempts recorded since e began. An exam begun under
// another user reports nothing.
func (s *Session) ExamReport(e *Exam) ExamReport {
	r := ExamReport{ExamID: e.ID, Topics: map[string]stats.TopicStat{}, Duration: s.now().Sub(e.StartedAt)}
	if e.User != s.user || s.catalog == nil {
		return r
	}

	records := s.history.Since(e.offset)
	sum := stats.Summarize(records, 0)
	r.Total = sum.Total
	r.Correct = sum.Correct
	r.Accuracy = sum.Accuracy
	r.Topics = stats.BuildTopicStats(records, s.catalog)
	return r
}
