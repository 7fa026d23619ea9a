package cmd

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/quizmark/quizmark/internal/checker"
	"github.com/quizmark/quizmark/internal/grader"
	"github.com/quizmark/quizmark/internal/keystore"
	"github.com/quizmark/quizmark/internal/llm"
	"github.com/quizmark/quizmark/internal/quiz"
	"github.com/quizmark/quizmark/internal/ratelimit"
	"github.com/quizmark/quizmark/internal/store"
	"github.com/spf13/cobra"
)

// limiter is shared across grade invocations within one process.
var limiter = ratelimit.New()

var gradeCmd = &cobra.Command{
	Use:   "grade <quiz.json> <question-id> [answer]",
	Short: "Grade a free-text answer with an AI provider",
	Long: `Grades one free-text answer using the configured AI provider.
The answer is taken from the argument, or from stdin when omitted.`,
	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		quizData, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read quiz file: %w", err)
		}
		z, err := quiz.Decode(quizData)
		if err != nil {
			return err
		}

		q := findQuestion(z, args[1])
		if q == nil {
			return fmt.Errorf("question %q not found in quiz", args[1])
		}
		if q.Type != quiz.TypeFreeText {
			return fmt.Errorf("question %s is %s, only free_text answers are AI-graded", q.ID, q.Type)
		}
		if !q.AIGradingEnabled {
			return fmt.Errorf("question %s has AI grading disabled", q.ID)
		}

		answer, err := readAnswer(args)
		if err != nil {
			return err
		}
		if answer == "" {
			fmt.Println("Empty answer: 0 points.")
			return nil
		}

		g, cfg, cleanup, err := buildGrader(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		ctx := cmd.Context()
		if cfg.Timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
			defer cancel()
		}

		resp := g.GradeAnswer(ctx, grader.Request{
			QuestionText:    q.Prompt,
			ReferenceAnswer: q.ReferenceAnswer,
			UserAnswer:      answer,
			Points:          q.Points,
		})

		if resp.RateLimited {
			fmt.Printf("Rate limit reached for %s. Try again in %d seconds.\n",
				cfg.Provider, int(math.Ceil(resp.RetryIn.Seconds())))
			return nil
		}
		if !resp.Success {
			return fmt.Errorf("grading failed: %s", resp.Error)
		}

		result := checker.ApplyAIGrade(q, resp.Correct, resp.Score, resp.Feedback)
		verdict := "Incorrect"
		if result.Correct {
			verdict = "Correct"
		}
		fmt.Printf("%s: %d/%d points\n", verdict, result.EarnedPoints, result.MaxPoints)
		fmt.Printf("Feedback: %s\n", result.Feedback)
		return nil
	},
}

func init() {
	gradeCmd.Flags().String("provider", "", "AI provider (openai, anthropic, gemini, openrouter); defaults to QUIZMARK_PROVIDER")
}

func findQuestion(z *quiz.Quiz, id string) *quiz.Question {
	for i := range z.Questions {
		if z.Questions[i].ID == id {
			return &z.Questions[i]
		}
	}
	return nil
}

func readAnswer(args []string) (string, error) {
	if len(args) == 3 {
		return args[2], nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read answer from stdin: %w", err)
	}
	return string(data), nil
}

// buildGrader assembles the provider stack: env config, key store and
// discovery fallbacks, event logging, and the shared rate limiter.
func buildGrader(cmd *cobra.Command) (*grader.Grader, llm.Config, func(), error) {
	cfg := llm.ConfigFromEnv()
	flagProvider, _ := cmd.Flags().GetString("provider")
	if flagProvider != "" {
		cfg.Provider = flagProvider
	}

	if cfg.APIKeyFor(cfg.Provider) == "" {
		if path, err := keystore.DefaultPath(); err == nil {
			if ks, err := keystore.Open(path); err == nil {
				if key, ok := ks.Get(cfg.Provider); ok {
					cfg.SetAPIKey(cfg.Provider, key)
				}
			}
		}
	}

	// Nothing picked the provider and no key turned up for the default:
	// fall back to whichever standard key env var is set.
	if flagProvider == "" && os.Getenv("QUIZMARK_PROVIDER") == "" && cfg.APIKeyFor(cfg.Provider) == "" {
		if discovered, ok := llm.DiscoverConfig(); ok {
			cfg = discovered
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, llm.Config{}, nil, err
	}

	cleanup := func() {}
	var repo store.EventRepo
	if s, err := openStore(cmd); err == nil {
		repo = s.EventRepo()
		cleanup = func() { _ = s.Close() }
	} else {
		fmt.Fprintf(os.Stderr, "warning: event log unavailable: %v\n", err)
	}

	provider, err := llm.NewProvider(cmd.Context(), cfg, repo)
	if err != nil {
		cleanup()
		return nil, llm.Config{}, nil, err
	}

	return grader.New(provider, cfg.Provider, limiter), cfg, cleanup, nil
}
