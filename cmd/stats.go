package cmd

import (
	"fmt"

	"github.com/abhisek/quizpath/internal/ui/theme"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, _, closeFn, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		sum := s.Summary()
		user := s.User()
		if user == "" {
			user = "(default)"
		}

		fmt.Println(theme.Title.Render("Statistics"))
		fmt.Printf("User:            %s\n", user)
		fmt.Printf("Questions:       %d\n", s.Catalog().Len())
		fmt.Printf("Attempts:        %d\n", sum.Total)
		fmt.Printf("Correct:         %d\n", sum.Correct)
		fmt.Printf("Wrong:           %d\n", sum.Wrong)
		fmt.Printf("Accuracy:        %.1f%%\n", sum.Accuracy)
		fmt.Printf("Wrong questions: %d\n", sum.WrongQuestions)
		return nil
	},
}
