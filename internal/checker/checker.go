// Package checker grades submitted answers locally. Checking is total:
// malformed and missing answers resolve to "incorrect, zero points",
// never to an error.
package checker

import (
	"math"
	"strconv"
	"strings"

	"github.com/quizmark/quizmark/internal/quiz"
)

// floatEpsilon absorbs floating-point noise in exact numeric
// comparisons (tolerance zero still accepts differences below it).
const floatEpsilon = 1e-9

// strategy grades one question type.
type strategy func(q *quiz.Question, a quiz.Answer) Result

var strategies = map[quiz.QuestionType]strategy{
	quiz.TypeMultipleChoice: checkMultipleChoice,
	quiz.TypeMultipleAnswer: checkMultipleAnswer,
	quiz.TypeTrueFalse:      checkTrueFalse,
	quiz.TypeFillBlank:      checkFillBlank,
	quiz.TypeDropdown:       checkDropdown,
	quiz.TypeNumeric:        checkNumeric,
	quiz.TypeFreeText:       checkFreeText,
	quiz.TypeFileUpload:     checkFileUpload,
}

// CheckAnswer grades a single question against the submitted answer.
func CheckAnswer(q *quiz.Question, a quiz.Answer) Result {
	s, ok := strategies[q.Type]
	if !ok {
		// Unknown type: cannot auto-grade, leave for review.
		return Result{QuestionID: q.ID, MaxPoints: q.Points, Pending: true, Answered: !a.IsEmpty()}
	}
	res := s(q, a)
	res.QuestionID = q.ID
	return res
}

// CheckQuiz grades every question in order and returns the per-question
// results plus the attempt summary.
func CheckQuiz(z *quiz.Quiz, answers quiz.AnswerSet) ([]Result, Summary) {
	results := make([]Result, 0, len(z.Questions))
	for i := range z.Questions {
		q := &z.Questions[i]
		results = append(results, CheckAnswer(q, answers[q.ID]))
	}
	return results, Summarize(results)
}

func checkMultipleChoice(q *quiz.Question, a quiz.Answer) Result {
	res := Result{MaxPoints: q.Points, Answered: !a.IsEmpty()}
	if a.IsEmpty() {
		return res
	}

	selected := a.Text()
	marks := make(map[string]ChoiceMark, len(q.Choices))
	for _, c := range q.Choices {
		switch {
		case c.ID == selected && c.Correct:
			marks[c.ID] = MarkCorrect
			res.Correct = true
		case c.ID == selected:
			marks[c.ID] = MarkIncorrect
		case c.Correct:
			marks[c.ID] = MarkCorrect
		default:
			marks[c.ID] = MarkNone
		}
	}
	res.ChoiceMarks = marks
	if res.Correct {
		res.EarnedPoints = q.Points
	}
	return res
}

func checkMultipleAnswer(q *quiz.Question, a quiz.Answer) Result {
	res := Result{MaxPoints: q.Points, Answered: !a.IsEmpty()}
	if a.IsEmpty() {
		return res
	}

	selected := toSet(a.List())
	correct := toSet(q.CorrectChoiceIDs())

	// Exact set equality. A strict subset or superset earns nothing.
	res.Correct = setEqual(selected, correct)

	marks := make(map[string]ChoiceMark, len(q.Choices))
	for _, c := range q.Choices {
		_, picked := selected[c.ID]
		switch {
		case picked && c.Correct:
			marks[c.ID] = MarkCorrect
		case picked || c.Correct:
			marks[c.ID] = MarkIncorrect
		default:
			marks[c.ID] = MarkNone
		}
	}
	res.ChoiceMarks = marks
	if res.Correct {
		res.EarnedPoints = q.Points
	}
	return res
}

func checkTrueFalse(q *quiz.Question, a quiz.Answer) Result {
	res := Result{MaxPoints: q.Points, Answered: !a.IsEmpty()}
	if a.IsEmpty() || q.CorrectBool == nil {
		return res
	}

	var implied bool
	switch strings.ToLower(strings.TrimSpace(a.Text())) {
	case "true":
		implied = true
	case "false":
		implied = false
	default:
		return res
	}

	if implied == *q.CorrectBool {
		res.Correct = true
		res.EarnedPoints = q.Points
	}
	return res
}

func checkFillBlank(q *quiz.Question, a quiz.Answer) Result {
	res := Result{MaxPoints: q.Points, Answered: !a.IsEmpty()}

	given := a.List()
	blanks := make([]BlankResult, len(q.Blanks))
	allCorrect := len(q.Blanks) > 0
	for i, b := range q.Blanks {
		g := ""
		if i < len(given) {
			g = given[i]
		}
		ok := blankMatches(q, b.Answer, g)
		blanks[i] = BlankResult{Index: i, Expected: b.Answer, Given: g, Correct: ok}
		if !ok {
			allCorrect = false
		}
	}

	res.Blanks = blanks
	if allCorrect {
		res.Correct = true
		res.EarnedPoints = q.Points
	}
	return res
}

// blankMatches compares one blank. Trimming and case folding apply
// unless the question is case sensitive; numeric blanks compare as
// numbers within the question's tolerance tag.
func blankMatches(q *quiz.Question, expected, given string) bool {
	if q.Numeric {
		ev, eok := parseFloat(expected)
		gv, gok := parseFloat(given)
		if eok && gok {
			return math.Abs(gv-ev) <= q.Tolerance.Value()+floatEpsilon
		}
		// Fall through to string comparison when either side is not
		// a number, so "n/a" style answer keys still work.
	}
	if q.CaseSensitive {
		return strings.TrimSpace(given) == strings.TrimSpace(expected)
	}
	return strings.EqualFold(strings.TrimSpace(given), strings.TrimSpace(expected))
}

func checkDropdown(q *quiz.Question, a quiz.Answer) Result {
	res := Result{MaxPoints: q.Points, Answered: !a.IsEmpty()}

	given := a.List()
	blanks := make([]BlankResult, len(q.Answers))
	allCorrect := len(q.Answers) > 0
	for i, expected := range q.Answers {
		g := ""
		if i < len(given) {
			g = given[i]
		}
		ok := g == expected
		blanks[i] = BlankResult{Index: i, Expected: expected, Given: g, Correct: ok}
		if !ok {
			allCorrect = false
		}
	}

	res.Blanks = blanks
	if allCorrect {
		res.Correct = true
		res.EarnedPoints = q.Points
	}
	return res
}

func checkNumeric(q *quiz.Question, a quiz.Answer) Result {
	res := Result{MaxPoints: q.Points, Answered: !a.IsEmpty()}
	if a.IsEmpty() || q.CorrectAnswer == nil {
		return res
	}

	v, ok := parseFloat(a.Text())
	if !ok {
		return res
	}

	tol := 0.0
	if q.NumTolerance != nil && *q.NumTolerance > 0 {
		tol = *q.NumTolerance
	}
	if math.Abs(v-*q.CorrectAnswer) <= tol+floatEpsilon {
		res.Correct = true
		res.EarnedPoints = q.Points
	}
	return res
}

func checkFreeText(q *quiz.Question, a quiz.Answer) Result {
	// Free text cannot be auto-graded locally. It stays pending (zero
	// points) until an AI grade is applied via ApplyAIGrade or a
	// reviewer scores it.
	return Result{MaxPoints: q.Points, Pending: true, Answered: !a.IsEmpty()}
}

func checkFileUpload(q *quiz.Question, a quiz.Answer) Result {
	// Never auto-graded. The checker only reports whether a file was
	// attached; correctness is always pending manual review.
	return Result{
		MaxPoints:    q.Points,
		Pending:      true,
		Answered:     !a.IsEmpty(),
		FileAttached: !a.IsEmpty(),
	}
}

// ApplyAIGrade converts an external AI grading outcome into a checker
// Result for a free_text question. score is the normalized 0..1 value
// returned by the grading client.
func ApplyAIGrade(q *quiz.Question, correct bool, score float64, feedback string) Result {
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return Result{
		QuestionID:   q.ID,
		MaxPoints:    q.Points,
		EarnedPoints: int(math.Round(score * float64(q.Points))),
		Correct:      correct,
		Answered:     true,
		Feedback:     feedback,
	}
}

func parseFloat(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return v, err == nil
}

func toSet(items []string) map[string]struct{} {
	m := make(map[string]struct{}, len(items))
	for _, s := range items {
		m[s] = struct{}{}
	}
	return m
}

func setEqual(a, b map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}
