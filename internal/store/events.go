package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// GradingEventData captures one AI grading call for the event log.
type GradingEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	CostUSD      float64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// GradingEvent is a stored grading call.
type GradingEvent struct {
	ID        string
	CreatedAt time.Time
	GradingEventData
}

// AnswerEventData captures one locally checked answer.
type AnswerEventData struct {
	QuestionID   string
	QuestionType string
	EarnedPoints int
	MaxPoints    int
	Correct      bool
	Pending      bool
}

// QueryOpts configures event queries.
type QueryOpts struct {
	Limit    int    // max results, newest first (0 means 50)
	Provider string // filter by provider when non-empty
}

// EventRepo provides append and query access to the event log.
type EventRepo interface {
	AppendGrading(ctx context.Context, data GradingEventData) error
	AppendAnswer(ctx context.Context, data AnswerEventData) error
	ListGrading(ctx context.Context, opts QueryOpts) ([]GradingEvent, error)
	GetGrading(ctx context.Context, id string) (*GradingEvent, error)
}

type eventRepo struct {
	db *sql.DB
}

func (r *eventRepo) AppendGrading(ctx context.Context, data GradingEventData) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO grading_events
			(id, provider, model, purpose, input_tokens, output_tokens,
			 latency_ms, cost_usd, success, error_message, request_body, response_body)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), data.Provider, data.Model, data.Purpose,
		data.InputTokens, data.OutputTokens, data.LatencyMs, data.CostUSD,
		data.Success, data.ErrorMessage, data.RequestBody, data.ResponseBody,
	)
	if err != nil {
		return fmt.Errorf("save grading event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendAnswer(ctx context.Context, data AnswerEventData) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO answer_events
			(id, question_id, question_type, earned_points, max_points, correct, pending)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), data.QuestionID, data.QuestionType,
		data.EarnedPoints, data.MaxPoints, data.Correct, data.Pending,
	)
	if err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

const gradingColumns = `id, created_at, provider, model, purpose,
	input_tokens, output_tokens, latency_ms, cost_usd,
	success, error_message, request_body, response_body`

func (r *eventRepo) ListGrading(ctx context.Context, opts QueryOpts) ([]GradingEvent, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}

	query := `SELECT ` + gradingColumns + ` FROM grading_events`
	args := []any{}
	if opts.Provider != "" {
		query += ` WHERE provider = ?`
		args = append(args, opts.Provider)
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query grading events: %w", err)
	}
	defer rows.Close()

	var events []GradingEvent
	for rows.Next() {
		e, err := scanGradingEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}

func (r *eventRepo) GetGrading(ctx context.Context, id string) (*GradingEvent, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+gradingColumns+` FROM grading_events WHERE id = ?`, id)
	e, err := scanGradingEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return e, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGradingEvent(row rowScanner) (*GradingEvent, error) {
	var e GradingEvent
	err := row.Scan(
		&e.ID, &e.CreatedAt, &e.Provider, &e.Model, &e.Purpose,
		&e.InputTokens, &e.OutputTokens, &e.LatencyMs, &e.CostUSD,
		&e.Success, &e.ErrorMessage, &e.RequestBody, &e.ResponseBody,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
