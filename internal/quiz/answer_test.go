package quiz

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestAnswer_UnmarshalShapes(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantEmpty bool
		wantText  string
		wantList  []string
	}{
		{"string", `"Paris"`, false, "Paris", []string{"Paris"}},
		{"array", `["a", "b"]`, false, "", []string{"a", "b"}},
		{"single element array degrades to text", `["a"]`, false, "a", []string{"a"}},
		{"null", `null`, true, "", nil},
		{"empty string", `""`, true, "", nil},
		{"whitespace string", `"   "`, true, "   ", []string{"   "}},
		{"empty array", `[]`, true, "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a Answer
			if err := json.Unmarshal([]byte(tt.input), &a); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if a.IsEmpty() != tt.wantEmpty {
				t.Errorf("IsEmpty() = %v, want %v", a.IsEmpty(), tt.wantEmpty)
			}
			if a.Text() != tt.wantText {
				t.Errorf("Text() = %q, want %q", a.Text(), tt.wantText)
			}
			if !reflect.DeepEqual(a.List(), tt.wantList) {
				t.Errorf("List() = %v, want %v", a.List(), tt.wantList)
			}
		})
	}
}

func TestAnswer_UnmarshalRejectsOtherShapes(t *testing.T) {
	for _, input := range []string{`42`, `true`, `{"a": 1}`, `[1, 2]`} {
		var a Answer
		if err := json.Unmarshal([]byte(input), &a); err == nil {
			t.Errorf("expected error for %s", input)
		}
	}
}

func TestAnswer_MarshalRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		a    Answer
		want string
	}{
		{"text", TextAnswer("Paris"), `"Paris"`},
		{"list", ListAnswer("a", "b"), `["a","b"]`},
		{"zero value", Answer{}, `null`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.a)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("marshal = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDecodeAnswers(t *testing.T) {
	set, err := DecodeAnswers([]byte(`{
		"q1": "a",
		"q2": ["a", "b"],
		"q3": null
	}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(set) != 3 {
		t.Fatalf("got %d answers", len(set))
	}
	if set["q1"].Text() != "a" {
		t.Errorf("q1 = %q", set["q1"].Text())
	}
	if !set["q3"].IsEmpty() {
		t.Error("q3 should be empty")
	}

	if _, err := DecodeAnswers([]byte(`["not", "an", "object"]`)); err == nil {
		t.Error("expected error for non-object document")
	}
}
