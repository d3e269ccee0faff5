// Package theme holds the terminal styles used by command output.
package theme

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizpath/internal/mastery"
)

// Color palette
var (
	Primary = lipgloss.Color("#8B5CF6") // Vivid Purple
	Accent  = lipgloss.Color("#F97316") // Orange
	Success = lipgloss.Color("#22C55E") // Green
	Error   = lipgloss.Color("#F43F5E") // Rose
	TextDim = lipgloss.Color("#94A3B8") // Slate
	Border  = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Rule = lipgloss.NewStyle().
		Foreground(Border)
)

// States
var (
	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Warning = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)

	NeedsStudy = lipgloss.NewStyle().
			Foreground(TextDim).
			Italic(true)
)

// Card frames a question.
var Card = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Border).
	Padding(0, 1)

// Verdict renders the outcome of an answer.
func Verdict(correct bool) string {
	if correct {
		return Correct.Render("correct")
	}
	return Incorrect.Render("wrong")
}

// MasteryLabel renders a mastery label, or "" for LabelNone.
func MasteryLabel(l mastery.Label) string {
	switch l {
	case mastery.LabelWeak:
		return Warning.Render(string(l))
	case mastery.LabelNeedsStudy:
		return NeedsStudy.Render(string(l))
	default:
		return ""
	}
}
