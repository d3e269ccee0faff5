package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/abhisek/quizpath/internal/catalog"
	"github.com/abhisek/quizpath/internal/session"
	"github.com/abhisek/quizpath/internal/ui/theme"
	"github.com/spf13/cobra"
)

var answerCmd = &cobra.Command{
	Use:   "answer <question-id> <choice>",
	Short: "Record an answer to one question",
	Long:  "Record an answer. choice is the option number 1-4 as shown by practice.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		qid, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("%w: question id %q is not a number", errUsage, args[0])
		}
		choice, err := parseChoice(args[1])
		if err != nil {
			return err
		}
		elapsed, _ := cmd.Flags().GetDuration("elapsed")

		s, _, closeFn, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		q, ok := s.Question(qid)
		if !ok {
			return fmt.Errorf("%w: %d", session.ErrUnknownQuestion, qid)
		}
		res, err := s.RecordAttempt(cmd.Context(), qid, choice, elapsed)
		if err != nil {
			return err
		}
		printResult(q, res)
		return nil
	},
}

func init() {
	answerCmd.Flags().Duration("elapsed", time.Second, "Time spent answering")
}

// parseChoice converts a 1-based option number to a 0-based index.
func parseChoice(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > catalog.OptionCount {
		return 0, fmt.Errorf("%w: choice %q must be 1-%d", errUsage, s, catalog.OptionCount)
	}
	return n - 1, nil
}

func printResult(q catalog.Question, res session.Result) {
	fmt.Println(theme.Verdict(res.Correct))
	if !res.Correct {
		fmt.Printf("Answer: %d) %s\n", res.CorrectIndex+1, q.CorrectOption())
	}
	if !res.Persisted {
		fmt.Println(theme.Hint.Render("(not saved to disk; kept for this session)"))
	}
}
