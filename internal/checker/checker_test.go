package checker

import (
	"testing"

	"github.com/quizmark/quizmark/internal/quiz"
)

func boolPtr(b bool) *bool        { return &b }
func floatPtr(f float64) *float64 { return &f }

func mcQuestion() *quiz.Question {
	return &quiz.Question{
		ID:     "q1",
		Type:   quiz.TypeMultipleChoice,
		Points: 2,
		Choices: []quiz.Choice{
			{ID: "a", Text: "Lisbon"},
			{ID: "b", Text: "Paris", Correct: true},
			{ID: "c", Text: "Rome"},
		},
	}
}

func maQuestion() *quiz.Question {
	return &quiz.Question{
		ID:     "q2",
		Type:   quiz.TypeMultipleAnswer,
		Points: 3,
		Choices: []quiz.Choice{
			{ID: "a", Text: "2", Correct: true},
			{ID: "b", Text: "3", Correct: true},
			{ID: "c", Text: "4"},
			{ID: "d", Text: "5", Correct: true},
		},
	}
}

func TestCheckAnswer_UnansweredAlwaysZero(t *testing.T) {
	fixtures := map[quiz.QuestionType]*quiz.Question{
		quiz.TypeMultipleChoice: mcQuestion(),
		quiz.TypeMultipleAnswer: maQuestion(),
		quiz.TypeTrueFalse:      {ID: "q3", Type: quiz.TypeTrueFalse, Points: 1, CorrectBool: boolPtr(true)},
		quiz.TypeFillBlank:      {ID: "q4", Type: quiz.TypeFillBlank, Points: 1, Blanks: []quiz.Blank{{Answer: "Paris"}}},
		quiz.TypeDropdown:       {ID: "q5", Type: quiz.TypeDropdown, Points: 1, Choices: []quiz.Choice{{ID: "a", Text: "x"}}, Answers: []string{"a"}},
		quiz.TypeFreeText:       {ID: "q6", Type: quiz.TypeFreeText, Points: 5, AIGradingEnabled: true},
		quiz.TypeNumeric:        {ID: "q7", Type: quiz.TypeNumeric, Points: 1, CorrectAnswer: floatPtr(10)},
		quiz.TypeFileUpload:     {ID: "q8", Type: quiz.TypeFileUpload, Points: 4},
	}

	empties := map[string]quiz.Answer{
		"null":         {},
		"empty string": quiz.TextAnswer(""),
		"whitespace":   quiz.TextAnswer("   "),
		"empty list":   quiz.ListAnswer(),
	}

	for _, typ := range quiz.Types {
		q, ok := fixtures[typ]
		if !ok {
			t.Fatalf("no fixture for question type %s", typ)
		}
		for name, ans := range empties {
			res := CheckAnswer(q, ans)
			if res.EarnedPoints != 0 {
				t.Errorf("%s/%s: earned %d points, want 0", q.Type, name, res.EarnedPoints)
			}
			if res.Correct {
				t.Errorf("%s/%s: marked correct, want incorrect", q.Type, name)
			}
			if res.MaxPoints != q.Points {
				t.Errorf("%s/%s: max points %d, want %d", q.Type, name, res.MaxPoints, q.Points)
			}
		}
	}
}

func TestCheckMultipleChoice(t *testing.T) {
	q := mcQuestion()

	res := CheckAnswer(q, quiz.TextAnswer("b"))
	if !res.Correct || res.EarnedPoints != 2 {
		t.Fatalf("correct choice: got correct=%v earned=%d", res.Correct, res.EarnedPoints)
	}
	if res.ChoiceMarks["b"] != MarkCorrect {
		t.Errorf("expected choice b marked correct, got %q", res.ChoiceMarks["b"])
	}

	res = CheckAnswer(q, quiz.TextAnswer("a"))
	if res.Correct || res.EarnedPoints != 0 {
		t.Fatalf("wrong choice: got correct=%v earned=%d", res.Correct, res.EarnedPoints)
	}
	if res.ChoiceMarks["a"] != MarkIncorrect {
		t.Errorf("expected choice a marked incorrect, got %q", res.ChoiceMarks["a"])
	}

	// An id that matches no choice is simply wrong, not an error.
	res = CheckAnswer(q, quiz.TextAnswer("zzz"))
	if res.Correct || res.EarnedPoints != 0 {
		t.Fatalf("unknown choice id: got correct=%v earned=%d", res.Correct, res.EarnedPoints)
	}
}

func TestCheckMultipleAnswer_SetEquality(t *testing.T) {
	q := maQuestion()

	tests := []struct {
		name     string
		selected []string
		want     bool
	}{
		{"exact match", []string{"a", "b", "d"}, true},
		{"exact match, different order", []string{"d", "a", "b"}, true},
		{"strict subset", []string{"a", "b"}, false},
		{"strict superset", []string{"a", "b", "c", "d"}, false},
		{"disjoint", []string{"c"}, false},
		{"duplicates collapse", []string{"a", "a", "b", "d"}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := CheckAnswer(q, quiz.ListAnswer(tc.selected...))
			if res.Correct != tc.want {
				t.Errorf("selected %v: correct=%v, want %v", tc.selected, res.Correct, tc.want)
			}
			wantPoints := 0
			if tc.want {
				wantPoints = q.Points
			}
			if res.EarnedPoints != wantPoints {
				t.Errorf("selected %v: earned=%d, want %d", tc.selected, res.EarnedPoints, wantPoints)
			}
		})
	}
}

func TestCheckTrueFalse(t *testing.T) {
	q := &quiz.Question{ID: "tf", Type: quiz.TypeTrueFalse, Points: 1, CorrectBool: boolPtr(true)}

	tests := []struct {
		input string
		want  bool
	}{
		{"true", true},
		{"True", true},
		{" true ", true},
		{"false", false},
		{"yes", false}, // not a recognized boolean
	}
	for _, tc := range tests {
		res := CheckAnswer(q, quiz.TextAnswer(tc.input))
		if res.Correct != tc.want {
			t.Errorf("answer %q: correct=%v, want %v", tc.input, res.Correct, tc.want)
		}
	}
}

func TestCheckFillBlank_CaseFolding(t *testing.T) {
	q := &quiz.Question{
		ID: "fb", Type: quiz.TypeFillBlank, Points: 2,
		Blanks: []quiz.Blank{{Answer: "Paris"}},
	}

	for _, input := range []string{"paris", "  Paris  ", "PARIS"} {
		res := CheckAnswer(q, quiz.TextAnswer(input))
		if !res.Correct {
			t.Errorf("case-insensitive: %q should match %q", input, "Paris")
		}
	}

	q.CaseSensitive = true
	res := CheckAnswer(q, quiz.TextAnswer("paris"))
	if res.Correct {
		t.Error("case-sensitive: \"paris\" should not match \"Paris\"")
	}
	res = CheckAnswer(q, quiz.TextAnswer("  Paris  "))
	if !res.Correct {
		t.Error("case-sensitive: trimming still applies")
	}
}

func TestCheckFillBlank_AllBlanksMustMatch(t *testing.T) {
	q := &quiz.Question{
		ID: "fb2", Type: quiz.TypeFillBlank, Points: 4,
		Blanks: []quiz.Blank{{Answer: "red"}, {Answer: "blue"}},
	}

	res := CheckAnswer(q, quiz.ListAnswer("red", "green"))
	if res.Correct || res.EarnedPoints != 0 {
		t.Fatalf("partial match must not earn points: correct=%v earned=%d", res.Correct, res.EarnedPoints)
	}
	if len(res.Blanks) != 2 {
		t.Fatalf("expected 2 blank results, got %d", len(res.Blanks))
	}
	if !res.Blanks[0].Correct || res.Blanks[1].Correct {
		t.Errorf("per-blank detail wrong: %+v", res.Blanks)
	}

	res = CheckAnswer(q, quiz.ListAnswer("red", "blue"))
	if !res.Correct || res.EarnedPoints != 4 {
		t.Fatalf("full match: correct=%v earned=%d", res.Correct, res.EarnedPoints)
	}
}

func TestCheckFillBlank_NumericTolerance(t *testing.T) {
	q := &quiz.Question{
		ID: "fb3", Type: quiz.TypeFillBlank, Points: 1,
		Blanks:    []quiz.Blank{{Answer: "3.14"}},
		Numeric:   true,
		Tolerance: quiz.TolerancePoint,
	}

	tests := []struct {
		input string
		want  bool
	}{
		{"3.14", true},
		{"3.2", true},  // within 0.1
		{"3.05", true}, // within 0.1
		{"3.3", false},
		{"abc", false},
	}
	for _, tc := range tests {
		res := CheckAnswer(q, quiz.TextAnswer(tc.input))
		if res.Correct != tc.want {
			t.Errorf("numeric blank %q: correct=%v, want %v", tc.input, res.Correct, tc.want)
		}
	}
}

func TestCheckDropdown(t *testing.T) {
	q := &quiz.Question{
		ID: "dd", Type: quiz.TypeDropdown, Points: 2,
		Choices: []quiz.Choice{{ID: "a", Text: "1"}, {ID: "b", Text: "2"}, {ID: "c", Text: "3"}},
		Answers: []string{"b", "c"},
	}

	res := CheckAnswer(q, quiz.ListAnswer("b", "c"))
	if !res.Correct || res.EarnedPoints != 2 {
		t.Fatalf("all slots match: correct=%v earned=%d", res.Correct, res.EarnedPoints)
	}

	res = CheckAnswer(q, quiz.ListAnswer("b", "a"))
	if res.Correct || res.EarnedPoints != 0 {
		t.Fatalf("one wrong slot: correct=%v earned=%d", res.Correct, res.EarnedPoints)
	}
	if !res.Blanks[0].Correct || res.Blanks[1].Correct {
		t.Errorf("per-slot detail wrong: %+v", res.Blanks)
	}
}

func TestCheckNumeric_ToleranceBoundaries(t *testing.T) {
	q := &quiz.Question{
		ID: "num", Type: quiz.TypeNumeric, Points: 1,
		CorrectAnswer: floatPtr(10),
		NumTolerance:  floatPtr(0.5),
	}

	tests := []struct {
		input string
		want  bool
	}{
		{"9.5", true},
		{"10.5", true},
		{"10", true},
		{"9.49", false},
		{"10.51", false},
		{"not a number", false},
	}
	for _, tc := range tests {
		res := CheckAnswer(q, quiz.TextAnswer(tc.input))
		if res.Correct != tc.want {
			t.Errorf("numeric %q: correct=%v, want %v", tc.input, res.Correct, tc.want)
		}
	}
}

func TestCheckNumeric_ExactMatchUsesEpsilon(t *testing.T) {
	q := &quiz.Question{
		ID: "num2", Type: quiz.TypeNumeric, Points: 1,
		CorrectAnswer: floatPtr(0.3),
	}

	// 0.1+0.2 != 0.3 in binary floating point; the epsilon guard must
	// still accept the printed value.
	res := CheckAnswer(q, quiz.TextAnswer("0.3"))
	if !res.Correct {
		t.Error("exact numeric match rejected")
	}
	res = CheckAnswer(q, quiz.TextAnswer("0.31"))
	if res.Correct {
		t.Error("0.31 accepted with zero tolerance")
	}
}

func TestCheckFreeTextAndFileUpload_Pending(t *testing.T) {
	ft := &quiz.Question{ID: "ft", Type: quiz.TypeFreeText, Points: 5}
	res := CheckAnswer(ft, quiz.TextAnswer("my essay"))
	if !res.Pending || res.EarnedPoints != 0 {
		t.Fatalf("free text must stay pending with 0 points: %+v", res)
	}

	fu := &quiz.Question{ID: "fu", Type: quiz.TypeFileUpload, Points: 3}
	res = CheckAnswer(fu, quiz.TextAnswer("report.pdf"))
	if !res.Pending || !res.FileAttached {
		t.Fatalf("file upload with attachment: %+v", res)
	}
	res = CheckAnswer(fu, quiz.Answer{})
	if !res.Pending || res.FileAttached {
		t.Fatalf("file upload without attachment: %+v", res)
	}
}

func TestApplyAIGrade(t *testing.T) {
	q := &quiz.Question{ID: "ft", Type: quiz.TypeFreeText, Points: 10}

	res := ApplyAIGrade(q, true, 0.75, "solid answer")
	if res.EarnedPoints != 8 { // round(0.75*10)
		t.Errorf("earned=%d, want 8", res.EarnedPoints)
	}
	if !res.Correct || res.Feedback != "solid answer" {
		t.Errorf("unexpected result: %+v", res)
	}

	// Out-of-range scores clamp.
	if got := ApplyAIGrade(q, false, -0.5, "").EarnedPoints; got != 0 {
		t.Errorf("negative score: earned=%d, want 0", got)
	}
	if got := ApplyAIGrade(q, true, 1.7, "").EarnedPoints; got != 10 {
		t.Errorf("overlarge score: earned=%d, want 10", got)
	}
}

func TestSummarize(t *testing.T) {
	results := []Result{
		{EarnedPoints: 2, MaxPoints: 2, Correct: true, Answered: true},
		{EarnedPoints: 0, MaxPoints: 3, Answered: true},
		{EarnedPoints: 0, MaxPoints: 5, Pending: true, Answered: true},
	}
	s := Summarize(results)
	if s.EarnedPoints != 2 || s.MaxPoints != 10 {
		t.Fatalf("totals: %+v", s)
	}
	if s.Percent != 20 {
		t.Errorf("percent=%d, want 20", s.Percent)
	}
	if s.Pending != 1 || s.Answered != 3 {
		t.Errorf("counts: %+v", s)
	}
}

func TestSummarize_EmptyQuizIsZeroPercent(t *testing.T) {
	s := Summarize(nil)
	if s.Percent != 0 {
		t.Errorf("percent=%d, want 0 (division-by-zero guard)", s.Percent)
	}
}

func TestSummarize_Rounding(t *testing.T) {
	results := []Result{
		{EarnedPoints: 1, MaxPoints: 3},
	}
	if got := Summarize(results).Percent; got != 33 {
		t.Errorf("percent=%d, want 33", got)
	}
	results = []Result{
		{EarnedPoints: 2, MaxPoints: 3},
	}
	if got := Summarize(results).Percent; got != 67 {
		t.Errorf("percent=%d, want 67", got)
	}
}

func TestCheckQuiz(t *testing.T) {
	z := &quiz.Quiz{Questions: []quiz.Question{*mcQuestion(), *maQuestion()}}
	answers := quiz.AnswerSet{
		"q1": quiz.TextAnswer("b"),
		"q2": quiz.ListAnswer("a", "b"),
	}

	results, summary := CheckQuiz(z, answers)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if !results[0].Correct || results[1].Correct {
		t.Errorf("results: %+v", results)
	}
	if summary.EarnedPoints != 2 || summary.MaxPoints != 5 {
		t.Errorf("summary: %+v", summary)
	}
	if summary.Percent != 40 {
		t.Errorf("percent=%d, want 40", summary.Percent)
	}
}
