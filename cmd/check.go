package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/quizmark/quizmark/internal/checker"
	"github.com/quizmark/quizmark/internal/quiz"
	"github.com/quizmark/quizmark/internal/store"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <quiz.json> <answers.json>",
	Short: "Grade a quiz attempt locally",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		quizData, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read quiz file: %w", err)
		}
		answersData, err := os.ReadFile(args[1])
		if err != nil {
			return fmt.Errorf("read answers file: %w", err)
		}

		z, err := quiz.Decode(quizData)
		if err != nil {
			return err
		}
		answers, err := quiz.DecodeAnswers(answersData)
		if err != nil {
			return err
		}

		results, summary := checker.CheckQuiz(z, answers)

		for i := range z.Questions {
			printResult(&z.Questions[i], results[i])
		}

		fmt.Println(strings.Repeat("─", 60))
		fmt.Printf("Score: %d/%d (%d%%)", summary.EarnedPoints, summary.MaxPoints, summary.Percent)
		if summary.Pending > 0 {
			fmt.Printf(", %d awaiting review", summary.Pending)
		}
		fmt.Println()

		if noLog, _ := cmd.Flags().GetBool("no-log"); !noLog {
			logResults(cmd, z, results)
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().Bool("no-log", false, "Skip recording results in the event database")
}

func printResult(q *quiz.Question, r checker.Result) {
	mark := "✗"
	switch {
	case r.Pending:
		mark = "…"
	case r.Correct:
		mark = "✓"
	}

	fmt.Printf("%s  %-12s %s  (%d/%d pts)\n", mark, q.ID, q.Prompt, r.EarnedPoints, r.MaxPoints)

	for _, b := range r.Blanks {
		blankMark := "✗"
		if b.Correct {
			blankMark = "✓"
		}
		fmt.Printf("     blank %d: %s %q\n", b.Index+1, blankMark, b.Given)
	}
	if r.Pending {
		reason := "needs manual review"
		if q.Type == quiz.TypeFreeText && q.AIGradingEnabled {
			reason = "eligible for AI grading (quizmark grade)"
		}
		fmt.Printf("     %s\n", reason)
	}
}

// logResults appends one answer event per question. Logging failures
// are reported but never change the exit status.
func logResults(cmd *cobra.Command, z *quiz.Quiz, results []checker.Result) {
	s, err := openStore(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: event log unavailable: %v\n", err)
		return
	}
	defer s.Close()

	repo := s.EventRepo()
	ctx := context.Background()
	for i := range z.Questions {
		r := results[i]
		err := repo.AppendAnswer(ctx, store.AnswerEventData{
			QuestionID:   z.Questions[i].ID,
			QuestionType: string(z.Questions[i].Type),
			EarnedPoints: r.EarnedPoints,
			MaxPoints:    r.MaxPoints,
			Correct:      r.Correct,
			Pending:      r.Pending,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
			return
		}
	}
}
