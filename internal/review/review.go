// Package review plans prerequisite-first study orders over the knowledge
// graph and annotates them with mastery labels.
package review

import (
	"sort"

	"github.com/abhisek/quizpath/internal/knowledge"
	"github.com/abhisek/quizpath/internal/mastery"
	"github.com/abhisek/quizpath/internal/stats"
)

// Step is one topic of a review path.
type Step struct {
	Topic     string
	Label     mastery.Label
	Stat      stats.TopicStat
	Practiced bool
}

// Path returns the study order for target, prerequisites first, with each
// topic's mastery label.
func Path(g *knowledge.Graph, topicStats map[string]stats.TopicStat, target string) ([]Step, error) {
	order, err := g.PostOrder(target)
	if err != nil {
		return nil, err
	}

	steps := make([]Step, len(order))
	for i, topic := range order {
		st, ok := topicStats[topic]
		steps[i] = Step{
			Topic:     topic,
			Label:     mastery.LabelFor(st, ok),
			Stat:      st,
			Practiced: ok && st.Total > 0,
		}
	}
	return steps, nil
}

// Standing is a topic with its current stats.
type Standing struct {
	Topic     string
	Stat      stats.TopicStat
	Practiced bool
}

// RankTopics orders topics weakest first: ascending accuracy, with
// unpracticed topics at 0, ties broken by name.
func RankTopics(topics []string, topicStats map[string]stats.TopicStat) []Standing {
	out := make([]Standing, len(topics))
	for i, t := range topics {
		st, ok := topicStats[t]
		out[i] = Standing{Topic: t, Stat: st, Practiced: ok && st.Total > 0}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Stat.Accuracy != out[j].Stat.Accuracy {
			return out[i].Stat.Accuracy < out[j].Stat.Accuracy
		}
		return out[i].Topic < out[j].Topic
	})
	return out
}
