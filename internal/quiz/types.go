package quiz

import (
	"fmt"
	"strings"
)

// QuestionType tags the active variant of a Question.
type QuestionType string

const (
	TypeMultipleChoice QuestionType = "multiple_choice"
	TypeMultipleAnswer QuestionType = "multiple_answer"
	TypeTrueFalse      QuestionType = "true_false"
	TypeFillBlank      QuestionType = "fill_blank"
	TypeDropdown       QuestionType = "dropdown"
	TypeFreeText       QuestionType = "free_text"
	TypeNumeric        QuestionType = "numeric"
	TypeFileUpload     QuestionType = "file_upload"
)

// Types lists every question type in display order.
var Types = []QuestionType{
	TypeMultipleChoice,
	TypeMultipleAnswer,
	TypeTrueFalse,
	TypeFillBlank,
	TypeDropdown,
	TypeFreeText,
	TypeNumeric,
	TypeFileUpload,
}

func typeNames() string {
	names := make([]string, len(Types))
	for i, t := range Types {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

// Choice is one selectable option in a choice-based question.
type Choice struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	Correct bool   `json:"correct,omitempty"`
}

// Blank is one fill-in position within a fill_blank question.
type Blank struct {
	Answer string `json:"answer"`
}

// Tolerance selects how fill_blank values are compared when the
// numeric flag is set.
type Tolerance string

const (
	ToleranceOff   Tolerance = "off"
	TolerancePoint Tolerance = "0.1"
	ToleranceOne   Tolerance = "1"
)

// Value returns the numeric tolerance the tag maps to.
func (t Tolerance) Value() float64 {
	switch t {
	case TolerancePoint:
		return 0.1
	case ToleranceOne:
		return 1
	default:
		return 0
	}
}

// Question is a tagged union over the eight supported question types.
// Type selects the active variant; fields of other variants stay at
// their zero values and Validate rejects documents that populate them.
type Question struct {
	ID      string       `json:"id"`
	Type    QuestionType `json:"type"`
	Prompt  string       `json:"prompt"`
	Points  int          `json:"points"`
	Chapter string       `json:"chapter,omitempty"`

	// multiple_choice, multiple_answer, dropdown
	Choices []Choice `json:"choices,omitempty"`

	// true_false
	CorrectBool *bool `json:"correctBool,omitempty"`

	// fill_blank
	Blanks        []Blank   `json:"blanks,omitempty"`
	CaseSensitive bool      `json:"caseSensitive,omitempty"`
	Numeric       bool      `json:"numeric,omitempty"`
	Tolerance     Tolerance `json:"tolerance,omitempty"`

	// dropdown: expected choice id per slot
	Answers []string `json:"answers,omitempty"`

	// numeric
	CorrectAnswer *float64 `json:"correctAnswer,omitempty"`
	NumTolerance  *float64 `json:"numTolerance,omitempty"`

	// free_text
	ReferenceAnswer  string `json:"referenceAnswer,omitempty"`
	AIGradingEnabled bool   `json:"aiGradingEnabled,omitempty"`

	// file_upload
	AcceptedFileTypes []string `json:"acceptedFileTypes,omitempty"`
}

// Quiz is an ordered list of questions with a title.
type Quiz struct {
	ID        string     `json:"id,omitempty"`
	Title     string     `json:"title,omitempty"`
	Questions []Question `json:"questions"`
}

// CorrectChoiceIDs returns the ids of choices flagged correct.
func (q *Question) CorrectChoiceIDs() []string {
	var ids []string
	for _, c := range q.Choices {
		if c.Correct {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

// Validate checks the exactly-one-variant invariant: the fields required
// by q.Type are present and fields belonging to other variants are absent.
func (q *Question) Validate() error {
	if q.ID == "" {
		return fmt.Errorf("question has no id")
	}
	if q.Points <= 0 {
		return fmt.Errorf("question %s: points must be positive, got %d", q.ID, q.Points)
	}

	switch q.Type {
	case TypeMultipleChoice:
		if len(q.Choices) == 0 {
			return fmt.Errorf("question %s: multiple_choice requires choices", q.ID)
		}
		if n := len(q.CorrectChoiceIDs()); n != 1 {
			return fmt.Errorf("question %s: multiple_choice requires exactly one correct choice, got %d", q.ID, n)
		}
		return q.rejectForeign(fieldChoices)
	case TypeMultipleAnswer:
		if len(q.Choices) == 0 {
			return fmt.Errorf("question %s: multiple_answer requires choices", q.ID)
		}
		if len(q.CorrectChoiceIDs()) == 0 {
			return fmt.Errorf("question %s: multiple_answer requires at least one correct choice", q.ID)
		}
		return q.rejectForeign(fieldChoices)
	case TypeTrueFalse:
		if q.CorrectBool == nil {
			return fmt.Errorf("question %s: true_false requires correctBool", q.ID)
		}
		return q.rejectForeign(fieldCorrectBool)
	case TypeFillBlank:
		if len(q.Blanks) == 0 {
			return fmt.Errorf("question %s: fill_blank requires blanks", q.ID)
		}
		return q.rejectForeign(fieldBlanks)
	case TypeDropdown:
		if len(q.Choices) == 0 || len(q.Answers) == 0 {
			return fmt.Errorf("question %s: dropdown requires choices and answers", q.ID)
		}
		return q.rejectForeign(fieldChoices | fieldAnswers)
	case TypeNumeric:
		if q.CorrectAnswer == nil {
			return fmt.Errorf("question %s: numeric requires correctAnswer", q.ID)
		}
		return q.rejectForeign(fieldNumeric)
	case TypeFreeText:
		return q.rejectForeign(fieldFreeText)
	case TypeFileUpload:
		return q.rejectForeign(fieldFileUpload)
	default:
		return fmt.Errorf("question %s: unknown type %q (want one of %s)", q.ID, q.Type, typeNames())
	}
}

// Validate checks every question in the quiz.
func (z *Quiz) Validate() error {
	if len(z.Questions) == 0 {
		return fmt.Errorf("quiz has no questions")
	}
	seen := make(map[string]struct{}, len(z.Questions))
	for i := range z.Questions {
		q := &z.Questions[i]
		if err := q.Validate(); err != nil {
			return err
		}
		if _, dup := seen[q.ID]; dup {
			return fmt.Errorf("duplicate question id %q", q.ID)
		}
		seen[q.ID] = struct{}{}
	}
	return nil
}

// Variant field groups, used to detect foreign-variant data.
type fieldMask uint

const (
	fieldChoices fieldMask = 1 << iota
	fieldCorrectBool
	fieldBlanks
	fieldAnswers
	fieldNumeric
	fieldFreeText
	fieldFileUpload
)

func (q *Question) rejectForeign(allowed fieldMask) error {
	check := func(mask fieldMask, present bool, name string) error {
		if present && allowed&mask == 0 {
			return fmt.Errorf("question %s: field %s does not belong to type %s", q.ID, name, q.Type)
		}
		return nil
	}
	if err := check(fieldChoices, len(q.Choices) > 0, "choices"); err != nil {
		return err
	}
	if err := check(fieldCorrectBool, q.CorrectBool != nil, "correctBool"); err != nil {
		return err
	}
	if err := check(fieldBlanks, len(q.Blanks) > 0, "blanks"); err != nil {
		return err
	}
	if err := check(fieldAnswers, len(q.Answers) > 0, "answers"); err != nil {
		return err
	}
	if err := check(fieldNumeric, q.CorrectAnswer != nil || q.NumTolerance != nil, "correctAnswer"); err != nil {
		return err
	}
	if err := check(fieldFreeText, q.ReferenceAnswer != "" || q.AIGradingEnabled, "referenceAnswer"); err != nil {
		return err
	}
	return check(fieldFileUpload, len(q.AcceptedFileTypes) > 0, "acceptedFileTypes")
}
