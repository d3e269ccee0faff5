package cmd

import (
	"fmt"
	"strings"

	"github.com/abhisek/quizpath/internal/ui/theme"
	"github.com/spf13/cobra"
)

var wrongCmd = &cobra.Command{
	Use:   "wrong",
	Short: "List questions whose latest answer was wrong",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, _, closeFn, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		ids := s.WrongIDs()
		if len(ids) == 0 {
			fmt.Println("No wrong questions.")
			return nil
		}

		qstats := s.QuestionStatsSnapshot()
		fmt.Println(theme.Title.Render("Wrong book"))
		fmt.Printf("%-6s  %s  %8s  %s\n", "ID", pad("Topic", 14), "Attempts", "Question")
		fmt.Println(theme.Rule.Render(strings.Repeat("─", 60)))
		for _, id := range ids {
			q, ok := s.Question(id)
			if !ok {
				// Attempts on questions since removed from the catalog.
				continue
			}
			fmt.Printf("%-6d  %s  %8d  %s\n", id, pad(truncate(q.Topic, 14), 14), qstats[id].TotalAttempts, truncate(q.Text, 40))
		}
		return nil
	},
}
