package quiz

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Answer is what the user submitted for one question: a single string,
// a list of strings, or nothing at all. The zero value is "unanswered".
type Answer struct {
	text   string
	list   []string
	isText bool
	isList bool
}

// TextAnswer wraps a single-string answer.
func TextAnswer(s string) Answer {
	return Answer{text: s, isText: true}
}

// ListAnswer wraps a multi-string answer.
func ListAnswer(items ...string) Answer {
	return Answer{list: items, isList: true}
}

// IsEmpty reports whether the answer counts as unanswered: null, an
// empty/whitespace string, or an empty list.
func (a Answer) IsEmpty() bool {
	if a.isText {
		return strings.TrimSpace(a.text) == ""
	}
	if a.isList {
		return len(a.list) == 0
	}
	return true
}

// Text returns the single-string form. A one-element list degrades to
// its element so callers grading single-value types stay total.
func (a Answer) Text() string {
	if a.isText {
		return a.text
	}
	if a.isList && len(a.list) == 1 {
		return a.list[0]
	}
	return ""
}

// List returns the multi-string form. A single string degrades to a
// one-element list.
func (a Answer) List() []string {
	if a.isList {
		return a.list
	}
	if a.isText && a.text != "" {
		return []string{a.text}
	}
	return nil
}

// UnmarshalJSON accepts a JSON string, an array of strings, or null.
// Anything else is an error at the decoding boundary; grading itself
// never sees malformed answers.
func (a *Answer) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*a = Answer{}
		return nil
	}
	if strings.HasPrefix(trimmed, "\"") {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = TextAnswer(s)
		return nil
	}
	if strings.HasPrefix(trimmed, "[") {
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*a = ListAnswer(list...)
		return nil
	}
	return fmt.Errorf("answer must be a string, an array of strings, or null")
}

// MarshalJSON emits the same shapes UnmarshalJSON accepts.
func (a Answer) MarshalJSON() ([]byte, error) {
	switch {
	case a.isText:
		return json.Marshal(a.text)
	case a.isList:
		return json.Marshal(a.list)
	default:
		return []byte("null"), nil
	}
}

// AnswerSet maps question id to the submitted answer for one attempt.
type AnswerSet map[string]Answer
