package session

import (
	"slices"

	"github.com/abhisek/quizpath/internal/recommend"
	"github.com/abhisek/quizpath/internal/review"
	"github.com/abhisek/quizpath/internal/stats"
)

// TopKRecommendations returns up to k questions most worth practising next,
// best first. k <= 0 selects recommend.DefaultK.
func (s *Session) TopKRecommendations(k int) []recommend.Candidate {
	if s.catalog == nil {
		return nil
	}
	return recommend.TopK(s.catalog.All(), s.QuestionStatsSnapshot(), s.now(), k)
}

// ReviewPath returns the prerequisite-first study order for target.
func (s *Session) ReviewPath(target string) ([]review.Step, error) {
	if s.graph == nil {
		return nil, ErrGraphUnavailable
	}
	return review.Path(s.graph, s.TopicStatsSnapshot(), target)
}

// GraphTopics returns every topic of the knowledge graph, or nil if none is
// loaded.
func (s *Session) GraphTopics() []string {
	if s.graph == nil {
		return nil
	}
	return s.graph.Topics()
}

// RankedTopics orders every known topic weakest first: each knowledge
// graph node and each catalog topic, unpracticed ones at 0 accuracy.
func (s *Session) RankedTopics() []review.Standing {
	var topics []string
	if s.graph != nil {
		topics = s.graph.Topics()
	}
	if s.catalog != nil {
		topics = append(topics, s.catalog.Topics()...)
	}
	if len(topics) == 0 {
		return nil
	}
	slices.Sort(topics)
	return review.RankTopics(slices.Compact(topics), s.TopicStatsSnapshot())
}

// TopicStatsSnapshot folds the current history per catalog topic.
// Attempts on questions missing from the catalog are dropped.
func (s *Session) TopicStatsSnapshot() map[string]stats.TopicStat {
	if s.catalog == nil {
		return map[string]stats.TopicStat{}
	}
	return stats.BuildTopicStats(s.history.Records(), s.catalog)
}

// QuestionStatsSnapshot folds the current history per question.
func (s *Session) QuestionStatsSnapshot() map[int]stats.QuestionStat {
	return stats.BuildQuestionStats(s.history.Records())
}

// CurrentWrongSet returns a copy of the ids whose latest attempt was wrong.
func (s *Session) CurrentWrongSet() map[int]bool {
	return s.history.WrongSet()
}

// WrongIDs returns the wrong set sorted ascending.
func (s *Session) WrongIDs() []int {
	return s.history.WrongIDs()
}

// Summary totals the history of the current scope.
func (s *Session) Summary() stats.Summary {
	return stats.Summarize(s.history.Records(), len(s.history.WrongIDs()))
}
