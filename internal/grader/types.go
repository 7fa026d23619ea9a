// Package grader grades free-text answers with an AI provider: it
// builds a deterministic grading prompt, sends it through an llm
// Provider, and parses the model's reply into a well-formed grading
// result via a cascade of parsing strategies.
package grader

import "time"

// Request describes one answer to grade.
type Request struct {
	// QuestionText is the question as shown to the student.
	QuestionText string
	// ReferenceAnswer is the instructor's model answer, optional.
	ReferenceAnswer string
	// UserAnswer is the student's free-text answer.
	UserAnswer string
	// Points is the maximum points for the question. Must be > 0.
	Points int
}

// RawResult is a parsed grading result before score normalization.
// Score is in points, in [0, Points].
type RawResult struct {
	Correct  bool    `json:"correct"`
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback"`
}

// Response is the externally visible grading outcome. On success,
// Score is normalized to [0, 1] (raw score divided by points). On
// failure, Error carries the message and the grading fields are zero.
type Response struct {
	Success  bool
	Correct  bool
	Score    float64
	Feedback string
	Error    string

	// RateLimited distinguishes a limiter rejection from parse and
	// provider failures, so callers can show a retry countdown instead
	// of a generic error. RetryIn is how long until a slot opens.
	RateLimited bool
	RetryIn     time.Duration
}
