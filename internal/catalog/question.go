package catalog

import (
	"slices"
	"sort"
)

// OptionCount is the fixed number of answer options per question.
const OptionCount = 4

// Difficulty bounds.
const (
	MinDifficulty = 1
	MaxDifficulty = 5
)

// Question is one multiple-choice item.
type Question struct {
	ID           int
	Text         string
	Options      [OptionCount]string
	CorrectIndex int
	Topic        string
	Difficulty   int
}

// IsCorrect reports whether choice is the correct option index.
func (q Question) IsCorrect(choice int) bool {
	return choice == q.CorrectIndex
}

// CorrectOption returns the text of the correct option.
func (q Question) CorrectOption() string {
	return q.Options[q.CorrectIndex]
}

// Catalog is an immutable set of questions keyed by id.
type Catalog struct {
	questions []Question
	byID      map[int]int
	topics    []string
}

// New builds a catalog from questions. The first question with a given id
// wins; later duplicates are ignored.
func New(questions []Question) *Catalog {
	c := &Catalog{
		byID: make(map[int]int, len(questions)),
	}
	seen := make(map[string]bool)
	for _, q := range questions {
		if _, dup := c.byID[q.ID]; dup {
			continue
		}
		c.byID[q.ID] = len(c.questions)
		c.questions = append(c.questions, q)
		if !seen[q.Topic] {
			seen[q.Topic] = true
			c.topics = append(c.topics, q.Topic)
		}
	}
	sort.Strings(c.topics)
	return c
}

// Get returns the question with the given id.
func (c *Catalog) Get(id int) (Question, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Question{}, false
	}
	return c.questions[i], true
}

// All returns every question in load order.
func (c *Catalog) All() []Question {
	return slices.Clone(c.questions)
}

// Len returns the number of questions.
func (c *Catalog) Len() int {
	return len(c.questions)
}

// Topics returns the distinct topics, sorted.
func (c *Catalog) Topics() []string {
	return slices.Clone(c.topics)
}

// TopicOf returns the topic of the question with the given id.
func (c *Catalog) TopicOf(id int) (string, bool) {
	q, ok := c.Get(id)
	if !ok {
		return "", false
	}
	return q.Topic, true
}
