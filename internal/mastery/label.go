// Package mastery maps topic statistics to qualitative mastery labels.
package mastery

import "github.com/abhisek/quizpath/internal/stats"

// Label is a qualitative tag for how well a topic is known.
type Label string

const (
	LabelNone       Label = ""
	LabelNeedsStudy Label = "needs study"
	LabelWeak       Label = "weak"
)

// WeakThreshold is the accuracy percentage below which a practiced topic
// is weak.
const WeakThreshold = 60.0

// LabelFor returns the label of a topic. ok reports whether the topic has
// a stat entry at all.
func LabelFor(st stats.TopicStat, ok bool) Label {
	switch {
	case !ok || st.Total == 0:
		return LabelNeedsStudy
	case st.Accuracy < WeakThreshold:
		return LabelWeak
	default:
		return LabelNone
	}
}

// Warns reports whether the label should be surfaced as a warning.
func (l Label) Warns() bool {
	return l != LabelNone
}
