package cmd

import (
	"fmt"
	"strings"

	"github.com/abhisek/quizpath/internal/mastery"
	"github.com/abhisek/quizpath/internal/review"
	"github.com/abhisek/quizpath/internal/ui/theme"
	"github.com/spf13/cobra"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List topics weakest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, _, closeFn, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		printRankedTopics(s.RankedTopics())
		return nil
	},
}

// printRankedTopics prints topics weakest first with their mastery labels.
func printRankedTopics(ranked []review.Standing) {
	fmt.Println(theme.Title.Render("Topics"))
	fmt.Printf("%s  %8s  %8s\n", pad("Topic", 20), "Correct", "Accuracy")
	fmt.Println(theme.Rule.Render(strings.Repeat("─", 54)))
	for _, st := range ranked {
		label := theme.MasteryLabel(mastery.LabelFor(st.Stat, st.Practiced))
		fmt.Printf("%s  %3d/%-4d  %7.1f%%  %s\n",
			pad(truncate(st.Topic, 20), 20), st.Stat.Correct, st.Stat.Total, st.Stat.Accuracy, label)
	}
}
