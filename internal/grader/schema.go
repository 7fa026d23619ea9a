package grader

import "github.com/quizmark/quizmark/internal/llm"

// GradingSchema is the structured-output schema requested from
// providers that support it. Providers without structured output get
// the same shape described in the prompt and rely on the parsing
// cascade instead.
func GradingSchema() *llm.Schema {
	return &llm.Schema{
		Name:        "grading_result",
		Description: "Grading verdict for a free-text quiz answer",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"correct": map[string]any{
					"type":        "boolean",
					"description": "Whether the answer deserves full credit",
				},
				"score": map[string]any{
					"type":        "number",
					"description": "Points earned, between 0 and the maximum points",
				},
				"feedback": map[string]any{
					"type":        "string",
					"description": "Short feedback addressed to the student",
				},
			},
			"required":             []string{"correct", "score", "feedback"},
			"additionalProperties": false,
		},
	}
}
