package checker

import "math"

// ChoiceMark is the per-choice verdict shown next to each option after
// grading a choice-based question.
type ChoiceMark string

const (
	MarkCorrect   ChoiceMark = "correct"
	MarkIncorrect ChoiceMark = "incorrect"
	MarkNone      ChoiceMark = ""
)

// BlankResult is the per-position verdict for fill_blank and dropdown
// questions, retained so the UI can highlight individual slots even
// when the question as a whole is wrong.
type BlankResult struct {
	Index    int    `json:"index"`
	Expected string `json:"expected"`
	Given    string `json:"given"`
	Correct  bool   `json:"correct"`
}

// Result is the outcome of checking one question.
type Result struct {
	QuestionID   string `json:"questionId"`
	EarnedPoints int    `json:"earnedPoints"`
	MaxPoints    int    `json:"maxPoints"`
	Correct      bool   `json:"correct"`
	Answered     bool   `json:"answered"`

	// Pending marks answers that cannot be auto-graded: free_text
	// without an AI grade, and every file_upload.
	Pending bool `json:"pending,omitempty"`

	// ChoiceMarks is populated for choice-based types.
	ChoiceMarks map[string]ChoiceMark `json:"choiceMarks,omitempty"`

	// Blanks is populated for fill_blank and dropdown.
	Blanks []BlankResult `json:"blanks,omitempty"`

	// FileAttached reports whether a file_upload answer carried a file.
	FileAttached bool `json:"fileAttached,omitempty"`

	// Feedback carries AI-grade feedback when the result came from an
	// external grading call.
	Feedback string `json:"feedback,omitempty"`
}

// Summary aggregates results over one attempt.
type Summary struct {
	EarnedPoints int `json:"earnedPoints"`
	MaxPoints    int `json:"maxPoints"`
	Percent      int `json:"percent"`
	Answered     int `json:"answered"`
	Pending      int `json:"pending"`
}

// Summarize folds per-question results into an attempt summary.
// Percent is round(100 * earned / max); an empty quiz scores 0.
func Summarize(results []Result) Summary {
	var s Summary
	for _, r := range results {
		s.EarnedPoints += r.EarnedPoints
		s.MaxPoints += r.MaxPoints
		if r.Pending {
			s.Pending++
		}
		if r.Answered {
			s.Answered++
		}
	}
	if s.MaxPoints > 0 {
		s.Percent = int(math.Round(100 * float64(s.EarnedPoints) / float64(s.MaxPoints)))
	}
	return s
}
