// Package stats folds attempt histories into per-question and per-topic
// statistics. Every function is a pure function of its inputs.
package stats

import (
	"github.com/abhisek/quizpath/internal/store"
)

// QuestionStat aggregates every attempt on one question.
type QuestionStat struct {
	TotalAttempts    int
	CorrectAttempts  int
	TotalTimeSeconds int64
	LastTimestamp    int64
}

// Accuracy returns the percentage of correct attempts, or 0 if none.
func (s QuestionStat) Accuracy() float64 {
	return percent(s.CorrectAttempts, s.TotalAttempts)
}

// AverageSeconds returns the mean time per attempt, or 0 if none.
func (s QuestionStat) AverageSeconds() float64 {
	if s.TotalAttempts == 0 {
		return 0
	}
	return float64(s.TotalTimeSeconds) / float64(s.TotalAttempts)
}

// TopicStat aggregates every attempt on the questions of one topic.
type TopicStat struct {
	Total    int
	Correct  int
	Accuracy float64 // percent, 0 when Total == 0
}

// TopicLookup resolves a question id to its topic.
type TopicLookup interface {
	TopicOf(questionID int) (string, bool)
}

// BuildQuestionStats groups records by question and folds count, correct
// count, time and latest timestamp.
func BuildQuestionStats(records []store.Attempt) map[int]QuestionStat {
	out := make(map[int]QuestionStat)
	for _, r := range records {
		st := out[r.QuestionID]
		st.TotalAttempts++
		if r.Correct {
			st.CorrectAttempts++
		}
		st.TotalTimeSeconds += int64(r.UsedSeconds)
		if r.Timestamp > st.LastTimestamp {
			st.LastTimestamp = r.Timestamp
		}
		out[r.QuestionID] = st
	}
	return out
}

// BuildTopicStats folds records per topic. Records whose question cannot be
// resolved are dropped.
func BuildTopicStats(records []store.Attempt, topics TopicLookup) map[string]TopicStat {
	out := make(map[string]TopicStat)
	for _, r := range records {
		topic, ok := topics.TopicOf(r.QuestionID)
		if !ok {
			continue
		}
		st := out[topic]
		st.Total++
		if r.Correct {
			st.Correct++
		}
		out[topic] = st
	}

	for topic, st := range out {
		st.Accuracy = percent(st.Correct, st.Total)
		out[topic] = st
	}
	return out
}

// Summary is the overall picture of a history.
type Summary struct {
	Total          int
	Correct        int
	Wrong          int
	Accuracy       float64
	WrongQuestions int
}

// Summarize totals records. wrongQuestions is the size of the wrong set.
func Summarize(records []store.Attempt, wrongQuestions int) Summary {
	s := Summary{Total: len(records), WrongQuestions: wrongQuestions}
	for _, r := range records {
		if r.Correct {
			s.Correct++
		}
	}
	s.Wrong = s.Total - s.Correct
	s.Accuracy = percent(s.Correct, s.Total)
	return s
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) * 100.0 / float64(total)
}
