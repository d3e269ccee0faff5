package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/quizpath/internal/knowledge"
	"github.com/abhisek/quizpath/internal/ui/theme"
	"github.com/spf13/cobra"
)

var reviewCmd = &cobra.Command{
	Use:   "review <topic>",
	Short: "Show the prerequisite-first study path for a topic",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, _, closeFn, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		target := strings.TrimSpace(args[0])
		steps, err := s.ReviewPath(target)
		if errors.Is(err, knowledge.ErrUnknownTopic) {
			return fmt.Errorf("%w; known topics: %s", err, strings.Join(s.GraphTopics(), ", "))
		}
		if err != nil {
			return err
		}

		printRankedTopics(s.RankedTopics())
		fmt.Println()
		fmt.Println(theme.Title.Render("Review path for " + target))
		for i, st := range steps {
			line := fmt.Sprintf("%2d. %s", i+1, st.Topic)
			if st.Practiced {
				line += fmt.Sprintf("  (%.1f%% of %d)", st.Stat.Accuracy, st.Stat.Total)
			}
			if l := theme.MasteryLabel(st.Label); l != "" {
				line += "  " + l
			}
			fmt.Println(line)
		}
		return nil
	},
}
