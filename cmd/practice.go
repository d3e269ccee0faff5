package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/abhisek/quizpath/internal/catalog"
	"github.com/abhisek/quizpath/internal/session"
	"github.com/abhisek/quizpath/internal/ui/theme"
	"github.com/spf13/cobra"
)

const (
	modeRandom    = "random"
	modeWrong     = "wrong"
	modeRecommend = "recommend"
	modeExam      = "exam"
)

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Answer questions interactively",
	Long: `Answer questions read from standard input, one option number per line.

Modes:
  random     any question
  wrong      questions from the wrong book
  recommend  the n top recommendations, best first
  exam       n distinct questions, scored at the end

Enter q to stop early.`,
	RunE: runPractice,
}

func init() {
	practiceCmd.Flags().String("mode", modeRecommend, "Practice mode: random, wrong, recommend or exam")
	practiceCmd.Flags().IntP("count", "n", 5, "Number of questions")
}

// errQuit ends a practice loop on user request.
var errQuit = errors.New("quit")

func runPractice(cmd *cobra.Command, args []string) error {
	mode, _ := cmd.Flags().GetString("mode")
	n, _ := cmd.Flags().GetInt("count")
	if n < 1 {
		return fmt.Errorf("%w: count must be positive", errUsage)
	}

	switch mode {
	case modeRandom, modeWrong, modeRecommend, modeExam:
	default:
		return fmt.Errorf("%w: unknown mode %q", errUsage, mode)
	}

	s, _, closeFn, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer closeFn()

	p, err := newPicker(s, mode, n)
	if err != nil {
		return err
	}
	n = p.count

	in := bufio.NewScanner(os.Stdin)
	var asked, correct int
	for i := 0; i < n; i++ {
		q, err := p.next(i)
		if errors.Is(err, session.ErrNoWrongQuestions) {
			fmt.Println("The wrong book is empty.")
			break
		}
		if err != nil {
			return err
		}

		fmt.Printf("── Question %d/%d ──\n", i+1, n)
		fmt.Println(renderQuestion(q))

		start := time.Now()
		choice, err := readChoice(in)
		if errors.Is(err, errQuit) || errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}

		res, err := s.RecordAttempt(cmd.Context(), q.ID, choice, time.Since(start))
		if err != nil {
			return err
		}
		asked++
		if res.Correct {
			correct++
		}
		printResult(q, res)
		fmt.Println()
	}

	if p.exam != nil {
		printExamReport(s.ExamReport(p.exam))
		return nil
	}
	fmt.Printf("── Summary: %d/%d correct ──\n", correct, asked)
	return nil
}

// picker hands out the questions of one practice run.
type picker struct {
	count int
	next  func(i int) (catalog.Question, error)
	exam  *session.Exam
}

// newPicker prepares up to n questions for mode. Recommend mode ranks the
// catalog once and walks that list; exam mode draws a fixed set.
func newPicker(s *session.Session, mode string, n int) (*picker, error) {
	p := &picker{count: n}
	switch mode {
	case modeRandom:
		p.next = func(int) (catalog.Question, error) { return s.RandomQuestion() }
	case modeWrong:
		p.next = func(int) (catalog.Question, error) { return s.WrongBookQuestion() }
	case modeRecommend:
		recs := s.TopKRecommendations(n)
		if len(recs) == 0 {
			return nil, session.ErrNoCatalog
		}
		p.count = len(recs)
		p.next = func(i int) (catalog.Question, error) {
			q, _ := s.Question(recs[i].QuestionID)
			return q, nil
		}
	case modeExam:
		exam, err := s.BeginExam(n)
		if err != nil {
			return nil, err
		}
		p.exam = exam
		p.count = len(exam.Questions)
		p.next = func(i int) (catalog.Question, error) { return exam.Questions[i], nil }
	default:
		return nil, fmt.Errorf("%w: unknown mode %q", errUsage, mode)
	}
	return p, nil
}

func renderQuestion(q catalog.Question) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", theme.Title.Render(q.Text))
	fmt.Fprintf(&b, "%s\n", theme.Hint.Render(fmt.Sprintf("#%d · %s · difficulty %d", q.ID, q.Topic, q.Difficulty)))
	for j, opt := range q.Options {
		fmt.Fprintf(&b, "\n  %d) %s", j+1, opt)
	}
	return theme.Card.Render(b.String())
}

// readChoice prompts until it reads a valid option number or q.
func readChoice(in *bufio.Scanner) (int, error) {
	for {
		fmt.Print("Your answer: ")
		if !in.Scan() {
			if err := in.Err(); err != nil {
				return 0, err
			}
			fmt.Println("\n(input closed)")
			return 0, io.EOF
		}
		text := strings.TrimSpace(in.Text())
		if strings.EqualFold(text, "q") {
			return 0, errQuit
		}
		choice, err := parseChoice(text)
		if err != nil {
			fmt.Println(theme.Hint.Render(fmt.Sprintf("enter 1-%d, or q to stop", catalog.OptionCount)))
			continue
		}
		return choice, nil
	}
}

func printExamReport(r session.ExamReport) {
	fmt.Println(theme.Title.Render("Exam report"))
	fmt.Printf("Exam:     %s\n", r.ExamID)
	fmt.Printf("Score:    %d/%d (%.1f%%)\n", r.Correct, r.Total, r.Accuracy)
	fmt.Printf("Duration: %s\n", r.Duration.Round(time.Second))

	topics := make([]string, 0, len(r.Topics))
	for t := range r.Topics {
		topics = append(topics, t)
	}
	sort.Strings(topics)
	for _, t := range topics {
		st := r.Topics[t]
		fmt.Printf("  %s %d/%d\n", pad(truncate(t, 20), 20), st.Correct, st.Total)
	}
}
