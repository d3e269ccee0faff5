package recommend

import (
	"container/heap"
	"time"

	"github.com/abhisek/quizpath/internal/catalog"
	"github.com/abhisek/quizpath/internal/stats"
)

// DefaultK is the number of recommendations when the caller asks for none.
const DefaultK = 5

// Candidate is one scored question.
type Candidate struct {
	QuestionID int
	Score      float64
}

// ranksAbove orders candidates: higher score first, then lower id.
func ranksAbove(a, b Candidate) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.QuestionID < b.QuestionID
}

// boundedHeap keeps the best k candidates with the weakest at the root so
// it can be evicted in O(log k).
type boundedHeap []Candidate

func (h boundedHeap) Len() int           { return len(h) }
func (h boundedHeap) Less(i, j int) bool { return ranksAbove(h[j], h[i]) }
func (h boundedHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *boundedHeap) Push(x any)        { *h = append(*h, x.(Candidate)) }
func (h *boundedHeap) Pop() any {
	old := *h
	n := len(old)
	c := old[n-1]
	*h = old[:n-1]
	return c
}

// TopK scores every question against its stats and returns the best
// min(k, len(questions)) in descending score order. Equal scores are
// ordered by ascending question id. k <= 0 selects DefaultK.
func TopK(questions []catalog.Question, qstats map[int]stats.QuestionStat, now time.Time, k int) []Candidate {
	if k <= 0 {
		k = DefaultK
	}
	k = min(k, len(questions))
	if k == 0 {
		return nil
	}

	h := make(boundedHeap, 0, k)
	for _, q := range questions {
		c := Candidate{QuestionID: q.ID, Score: Score(q, qstats[q.ID], now)}
		if h.Len() < k {
			heap.Push(&h, c)
			continue
		}
		if ranksAbove(c, h[0]) {
			h[0] = c
			heap.Fix(&h, 0)
		}
	}

	out := make([]Candidate, h.Len())
	for i := len(out) - 1; i >= 0; i-- {
		out[i] = heap.Pop(&h).(Candidate)
	}
	return out
}
