// Package recommend ranks catalog questions for targeted practice.
package recommend

import (
	"time"

	"github.com/abhisek/quizpath/internal/catalog"
	"github.com/abhisek/quizpath/internal/stats"
)

// Score weights. The bonus is added on top of the weighted sum for
// questions that were never attempted.
const (
	ErrorWeight      = 0.6
	TimeWeight       = 0.3
	DifficultyWeight = 0.1
	UnseenBonus      = 0.2

	MaxScore = 2.0

	// UnseenGapDays is the gap assumed for a never-attempted question.
	UnseenGapDays = 7.0
	// SaturationDays is the gap at which the time component reaches 1.
	SaturationDays = 7.0

	secondsPerDay = 86400.0
)

// Components is the breakdown of a score.
type Components struct {
	ErrorRate       float64
	TimeScore       float64
	DifficultyScore float64
	Bonus           float64
}

// Total combines the components into a score clamped to [0, MaxScore].
func (c Components) Total() float64 {
	s := ErrorWeight*c.ErrorRate + TimeWeight*c.TimeScore + DifficultyWeight*c.DifficultyScore + c.Bonus
	return clamp(s, 0, MaxScore)
}

// Breakdown computes the score components of q given its stats at now.
func Breakdown(q catalog.Question, st stats.QuestionStat, now time.Time) Components {
	c := Components{ErrorRate: 1.0}
	if st.TotalAttempts > 0 {
		c.ErrorRate = float64(st.TotalAttempts-st.CorrectAttempts) / float64(st.TotalAttempts)
	}

	days := UnseenGapDays
	if st.LastTimestamp > 0 {
		gap := now.Unix() - st.LastTimestamp
		if gap < 0 {
			gap = 0
		}
		days = float64(gap) / secondsPerDay
	}
	c.TimeScore = min(days/SaturationDays, 1.0)

	c.DifficultyScore = clamp(0.2+float64(q.Difficulty-1)*0.2, 0.2, 1.0)

	if st.TotalAttempts == 0 {
		c.Bonus = UnseenBonus
	}
	return c
}

// Score rates how much q needs practice. Higher is more urgent.
func Score(q catalog.Question, st stats.QuestionStat, now time.Time) float64 {
	return Breakdown(q, st, now).Total()
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
