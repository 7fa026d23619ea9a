package grader

import (
	"context"
	"fmt"
	"math"

	"github.com/quizmark/quizmark/internal/llm"
	"github.com/quizmark/quizmark/internal/ratelimit"
)

const (
	gradingMaxTokens   = 1024
	gradingTemperature = 0.2
)

// Grader grades free-text answers through an llm Provider, gated by a
// per-provider rate limiter.
type Grader struct {
	provider   llm.Provider
	providerID string
	limiter    *ratelimit.Limiter
}

// New creates a Grader. providerID keys the rate limiter and must match
// a registry id. A nil limiter disables rate limiting.
func New(provider llm.Provider, providerID string, limiter *ratelimit.Limiter) *Grader {
	return &Grader{
		provider:   provider,
		providerID: providerID,
		limiter:    limiter,
	}
}

// GradeAnswer grades one answer. All failures are converted into a
// Response with Success=false and a message; nothing escapes as an
// error, so callers can hand the Response straight to display code.
// On success, Score is the raw score divided by points, in [0, 1].
func (g *Grader) GradeAnswer(ctx context.Context, req Request) Response {
	if req.Points <= 0 {
		return failure(fmt.Sprintf("invalid point value: %d", req.Points))
	}
	if req.QuestionText == "" {
		return failure("question text is empty")
	}

	if g.limiter != nil && !g.limiter.Reserve(g.providerID) {
		wait := g.limiter.TimeUntilNextSlot(g.providerID)
		return Response{
			Success:     false,
			Error:       fmt.Sprintf("rate limit reached, try again in %d seconds", int(math.Ceil(wait.Seconds()))),
			RateLimited: true,
			RetryIn:     wait,
		}
	}

	llmReq := llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildUserMessage(req)}},
		MaxTokens:   gradingMaxTokens,
		Temperature: gradingTemperature,
	}
	if info, ok := llm.Info(g.providerID); ok && info.SupportsStructuredOutput {
		llmReq.Schema = GradingSchema()
	}

	ctx = llm.WithPurpose(ctx, "free-text-grading")
	resp, err := g.provider.Generate(ctx, llmReq)
	if err != nil {
		return failure(err.Error())
	}

	raw, err := ParseGradingResponse(string(resp.Content), req.Points)
	if err != nil {
		return failure(err.Error())
	}

	return Response{
		Success:  true,
		Correct:  raw.Correct,
		Score:    clamp(raw.Score/float64(req.Points), 0, 1),
		Feedback: raw.Feedback,
	}
}

func failure(msg string) Response {
	return Response{Success: false, Error: msg}
}
