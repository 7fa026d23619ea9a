package grader

import (
	"encoding/json"
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// ErrParseFailed is returned when every parsing strategy fails. The
// message is surfaced to callers verbatim, so a parse failure is never
// mistaken for a "incorrect answer" verdict.
var ErrParseFailed = errors.New("Failed to parse AI response")

const defaultFeedback = "No feedback provided."

// parseStrategy attempts to extract a grading payload from raw model
// output. Returns ok=false when the strategy does not apply; the next
// strategy is then tried.
type parseStrategy func(text string) (rawPayload, bool)

// rawPayload holds grading fields before type coercion. Fields are
// loosely typed because models routinely bend the requested types
// (quoted booleans, string scores).
type rawPayload struct {
	Correct  any `json:"correct"`
	Score    any `json:"score"`
	Feedback any `json:"feedback"`
}

var parseStrategies = []parseStrategy{
	parseFencedBlock,
	parseDirect,
	parseBalancedBraces,
	parseFieldRegex,
}

// ParseGradingResponse runs the parsing cascade over the model's raw
// text and normalizes the result: correct coerced to bool, score
// clamped to [0, points], feedback defaulted when missing. Returns
// ErrParseFailed when no strategy yields usable fields.
func ParseGradingResponse(text string, points int) (RawResult, error) {
	text = strings.TrimSpace(text)

	for _, strategy := range parseStrategies {
		payload, ok := strategy(text)
		if !ok {
			continue
		}
		return normalize(payload, points), nil
	}

	return RawResult{}, ErrParseFailed
}

var fencedBlockRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

// parseFencedBlock extracts the first triple-backtick code block
// (optionally tagged json) and parses its contents.
func parseFencedBlock(text string) (rawPayload, bool) {
	m := fencedBlockRe.FindStringSubmatch(text)
	if m == nil {
		return rawPayload{}, false
	}
	return parseDirect(strings.TrimSpace(m[1]))
}

// parseDirect parses the whole text as a JSON object.
func parseDirect(text string) (rawPayload, bool) {
	var payload rawPayload
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return rawPayload{}, false
	}
	if payload.Correct == nil && payload.Score == nil {
		return rawPayload{}, false
	}
	return payload, true
}

// parseBalancedBraces finds the first '{' and walks the text tracking
// brace depth, skipping braces inside string literals and respecting
// backslash escapes, then parses the balanced substring. Handles
// replies that wrap the JSON in prose.
func parseBalancedBraces(text string) (rawPayload, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return rawPayload{}, false
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		c := text[i]

		if escaped {
			escaped = false
			continue
		}

		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return parseDirect(text[start : i+1])
				}
			}
		}
	}

	return rawPayload{}, false
}

var (
	correctFieldRe  = regexp.MustCompile(`"correct"\s*:\s*(true|false)`)
	scoreFieldRe    = regexp.MustCompile(`"score"\s*:\s*(\d+)`)
	feedbackFieldRe = regexp.MustCompile(`"feedback"\s*:\s*"([^"]*)"`)
)

// parseFieldRegex is the last resort: pull the fields out of broken
// JSON one regex at a time. Requires both correct and score.
func parseFieldRegex(text string) (rawPayload, bool) {
	correctMatch := correctFieldRe.FindStringSubmatch(text)
	scoreMatch := scoreFieldRe.FindStringSubmatch(text)
	if correctMatch == nil || scoreMatch == nil {
		return rawPayload{}, false
	}

	score, err := strconv.ParseFloat(scoreMatch[1], 64)
	if err != nil {
		return rawPayload{}, false
	}

	payload := rawPayload{
		Correct: correctMatch[1] == "true",
		Score:   score,
	}
	if m := feedbackFieldRe.FindStringSubmatch(text); m != nil {
		payload.Feedback = m[1]
	}
	return payload, true
}

// normalize coerces the loosely typed payload into a well-formed
// RawResult: correct becomes a bool, score is clamped to [0, points],
// feedback falls back to a placeholder.
func normalize(payload rawPayload, points int) RawResult {
	var result RawResult

	result.Correct = coerceBool(payload.Correct)
	result.Score = clamp(coerceFloat(payload.Score), 0, float64(points))

	if s, ok := payload.Feedback.(string); ok && s != "" {
		result.Feedback = s
	} else {
		result.Feedback = defaultFeedback
	}

	return result
}

// coerceBool accepts bools, "true"/"false" strings, and numbers
// (non-zero is true).
func coerceBool(v any) bool {
	switch x := v.(type) {
	case bool:
		return x
	case string:
		return strings.EqualFold(strings.TrimSpace(x), "true")
	case float64:
		return x != 0
	}
	return false
}

// coerceFloat accepts numbers and numeric strings.
func coerceFloat(v any) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(x), 64); err == nil {
			return f
		}
	}
	return 0
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
