package quiz

import (
	"strings"
	"testing"
)

func boolPtr(b bool) *bool { return &b }

const sampleQuizDoc = `{
	"id": "geo-101",
	"title": "Geography basics",
	"questions": [
		{
			"id": "q1",
			"type": "multiple_choice",
			"prompt": "Capital of France?",
			"points": 5,
			"choices": [
				{"id": "a", "text": "Paris", "correct": true},
				{"id": "b", "text": "Lyon"}
			]
		},
		{
			"id": "q2",
			"type": "true_false",
			"prompt": "The Seine flows through Paris.",
			"points": 2,
			"correctBool": true
		},
		{
			"id": "q3",
			"type": "numeric",
			"prompt": "How many continents are there?",
			"points": 3,
			"correctAnswer": 7
		}
	]
}`

func TestDecode_ValidDocument(t *testing.T) {
	z, err := Decode([]byte(sampleQuizDoc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(z.Questions) != 3 {
		t.Fatalf("got %d questions", len(z.Questions))
	}
	if z.Questions[0].Type != TypeMultipleChoice {
		t.Errorf("q1 type = %s", z.Questions[0].Type)
	}
	if ids := z.Questions[0].CorrectChoiceIDs(); len(ids) != 1 || ids[0] != "a" {
		t.Errorf("correct choice ids = %v", ids)
	}
	if z.Questions[1].CorrectBool == nil || !*z.Questions[1].CorrectBool {
		t.Error("q2 correctBool not decoded")
	}
}

func TestDecode_SchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not json", `{{{`},
		{"no questions", `{"questions": []}`},
		{"unknown type", `{"questions": [{"id": "q1", "type": "essay", "prompt": "x", "points": 1}]}`},
		{"zero points", `{"questions": [{"id": "q1", "type": "free_text", "prompt": "x", "points": 0}]}`},
		{"missing id", `{"questions": [{"type": "free_text", "prompt": "x", "points": 1}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode([]byte(tt.doc)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestQuestionValidate_VariantConsistency(t *testing.T) {
	tests := []struct {
		name    string
		q       Question
		wantErr string
	}{
		{
			name: "multiple_choice needs exactly one correct",
			q: Question{
				ID: "q1", Type: TypeMultipleChoice, Points: 1,
				Choices: []Choice{{ID: "a", Correct: true}, {ID: "b", Correct: true}},
			},
			wantErr: "exactly one correct choice",
		},
		{
			name: "multiple_answer needs a correct choice",
			q: Question{
				ID: "q1", Type: TypeMultipleAnswer, Points: 1,
				Choices: []Choice{{ID: "a"}, {ID: "b"}},
			},
			wantErr: "at least one correct choice",
		},
		{
			name:    "true_false needs correctBool",
			q:       Question{ID: "q1", Type: TypeTrueFalse, Points: 1},
			wantErr: "requires correctBool",
		},
		{
			name: "foreign variant field rejected",
			q: Question{
				ID: "q1", Type: TypeTrueFalse, Points: 1,
				CorrectBool: boolPtr(true),
				Blanks:      []Blank{{Answer: "x"}},
			},
			wantErr: "does not belong",
		},
		{
			name:    "numeric needs correctAnswer",
			q:       Question{ID: "q1", Type: TypeNumeric, Points: 1},
			wantErr: "requires correctAnswer",
		},
		{
			name: "valid dropdown",
			q: Question{
				ID: "q1", Type: TypeDropdown, Points: 1,
				Choices: []Choice{{ID: "a"}, {ID: "b"}},
				Answers: []string{"a"},
			},
		},
		{
			name: "valid free_text with reference",
			q: Question{
				ID: "q1", Type: TypeFreeText, Points: 10,
				ReferenceAnswer: "model answer", AIGradingEnabled: true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.q.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error = %v, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestQuestionValidate_UnknownTypeListsValid(t *testing.T) {
	q := Question{ID: "q1", Type: "essay", Points: 1}
	err := q.Validate()
	if err == nil {
		t.Fatal("expected error for unknown type")
	}
	for _, typ := range Types {
		if !strings.Contains(err.Error(), string(typ)) {
			t.Errorf("error %q does not name type %s", err, typ)
		}
	}
}

func TestQuizValidate_DuplicateIDs(t *testing.T) {
	z := Quiz{Questions: []Question{
		{ID: "q1", Type: TypeFreeText, Points: 1},
		{ID: "q1", Type: TypeFreeText, Points: 1},
	}}
	if err := z.Validate(); err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("error = %v, want duplicate id error", err)
	}
}

func TestTolerance_Value(t *testing.T) {
	tests := []struct {
		tol  Tolerance
		want float64
	}{
		{ToleranceOff, 0},
		{TolerancePoint, 0.1},
		{ToleranceOne, 1},
		{Tolerance(""), 0},
	}
	for _, tt := range tests {
		if got := tt.tol.Value(); got != tt.want {
			t.Errorf("Tolerance(%q).Value() = %v, want %v", tt.tol, got, tt.want)
		}
	}
}
