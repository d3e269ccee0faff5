package cmd

import (
	"fmt"
	"strings"

	"github.com/abhisek/quizpath/internal/ui/theme"
	"github.com/spf13/cobra"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "List the questions most worth practising next",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, cfg, closeFn, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		k, _ := cmd.Flags().GetInt("count")
		if k <= 0 {
			k = cfg.RecommendCount
		}

		recs := s.TopKRecommendations(k)
		if len(recs) == 0 {
			fmt.Println("No questions to recommend.")
			return nil
		}

		fmt.Println(theme.Title.Render("Recommended questions"))
		fmt.Printf("%-4s  %-6s  %s  %-4s  %s\n", "#", "ID", pad("Topic", 14), "Diff", "Score")
		fmt.Println(theme.Rule.Render(strings.Repeat("─", 40)))
		for i, c := range recs {
			q, _ := s.Question(c.QuestionID)
			fmt.Printf("%-4d  %-6d  %s  %-4d  %.3f\n", i+1, q.ID, pad(truncate(q.Topic, 14), 14), q.Difficulty, c.Score)
		}
		return nil
	},
}

func init() {
	recommendCmd.Flags().IntP("count", "k", 0, "Number of recommendations (default from recommend-count)")
}
