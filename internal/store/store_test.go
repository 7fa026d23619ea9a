package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "quizmark.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestGradingEvents_AppendListGet(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendGrading(ctx, GradingEventData{
		Provider:     "openai",
		Model:        "gpt-4o-mini",
		Purpose:      "free-text-grading",
		InputTokens:  120,
		OutputTokens: 40,
		LatencyMs:    850,
		CostUSD:      0.00042,
		Success:      true,
		RequestBody:  `{"messages":[]}`,
		ResponseBody: `{"correct":true}`,
	}))
	require.NoError(t, repo.AppendGrading(ctx, GradingEventData{
		Provider:     "anthropic",
		Model:        "claude-sonnet",
		Success:      false,
		ErrorMessage: "Anthropic API error: 401 - invalid key",
	}))

	events, err := repo.ListGrading(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 2)

	got, err := repo.GetGrading(ctx, events[0].ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, events[0].Provider, got.Provider)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestGradingEvents_ProviderFilterAndLimit(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for range 3 {
		require.NoError(t, repo.AppendGrading(ctx, GradingEventData{Provider: "openai", Model: "gpt-4o-mini", Success: true}))
	}
	require.NoError(t, repo.AppendGrading(ctx, GradingEventData{Provider: "gemini", Model: "gemini-flash", Success: true}))

	events, err := repo.ListGrading(ctx, QueryOpts{Provider: "openai"})
	require.NoError(t, err)
	require.Len(t, events, 3)
	for _, e := range events {
		assert.Equal(t, "openai", e.Provider)
	}

	events, err = repo.ListGrading(ctx, QueryOpts{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestGradingEvents_GetMissing(t *testing.T) {
	s := openTestStore(t)
	got, err := s.EventRepo().GetGrading(context.Background(), "no-such-id")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestAnswerEvents_Append(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()

	require.NoError(t, repo.AppendAnswer(context.Background(), AnswerEventData{
		QuestionID:   "q1",
		QuestionType: "multiple_choice",
		EarnedPoints: 5,
		MaxPoints:    5,
		Correct:      true,
	}))

	var count int
	require.NoError(t, s.DB().QueryRow(`SELECT COUNT(*) FROM answer_events`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestDefaultDBPath_EnvOverride(t *testing.T) {
	p := filepath.Join(t.TempDir(), "custom", "events.db")
	t.Setenv("QUIZMARK_DB", p)

	got, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, p, got)
}
