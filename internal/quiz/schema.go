package quiz

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// quizSchema is the JSON Schema every quiz document must satisfy before
// a Question ever reaches the checker. Variant-field consistency beyond
// what a schema can express is handled by Question.Validate.
var quizSchema = map[string]any{
	"type":     "object",
	"required": []any{"questions"},
	"properties": map[string]any{
		"id":    map[string]any{"type": "string"},
		"title": map[string]any{"type": "string"},
		"questions": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type":     "object",
				"required": []any{"id", "type", "prompt", "points"},
				"properties": map[string]any{
					"id":     map[string]any{"type": "string", "minLength": 1},
					"prompt": map[string]any{"type": "string"},
					"points": map[string]any{"type": "integer", "minimum": 1},
					"type": map[string]any{
						"type": "string",
						"enum": []any{
							"multiple_choice", "multiple_answer", "true_false",
							"fill_blank", "dropdown", "free_text", "numeric",
							"file_upload",
						},
					},
					"chapter": map[string]any{"type": "string"},
					"choices": map[string]any{
						"type": "array",
						"items": map[string]any{
							"type":     "object",
							"required": []any{"id", "text"},
							"properties": map[string]any{
								"id":      map[string]any{"type": "string", "minLength": 1},
								"text":    map[string]any{"type": "string"},
								"correct": map[string]any{"type": "boolean"},
							},
						},
					},
					"correctBool": map[string]any{"type": "boolean"},
					"blanks": map[string]any{
						"type": "array",
						"items": map[string]any{
							"type":     "object",
							"required": []any{"answer"},
							"properties": map[string]any{
								"answer": map[string]any{"type": "string"},
							},
						},
					},
					"caseSensitive": map[string]any{"type": "boolean"},
					"numeric":       map[string]any{"type": "boolean"},
					"tolerance": map[string]any{
						"type": "string",
						"enum": []any{"off", "0.1", "1"},
					},
					"answers": map[string]any{
						"type":  "array",
						"items": map[string]any{"type": "string"},
					},
					"correctAnswer":    map[string]any{"type": "number"},
					"numTolerance":     map[string]any{"type": "number", "minimum": 0},
					"referenceAnswer":  map[string]any{"type": "string"},
					"aiGradingEnabled": map[string]any{"type": "boolean"},
					"acceptedFileTypes": map[string]any{
						"type":  "array",
						"items": map[string]any{"type": "string"},
					},
				},
			},
		},
	},
}

var (
	compiledQuizSchema     *jsonschema.Schema
	compileQuizSchemaOnce  sync.Once
	compileQuizSchemaError error
)

func quizDocSchema() (*jsonschema.Schema, error) {
	compileQuizSchemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource("schema://quiz.json", quizSchema); err != nil {
			compileQuizSchemaError = fmt.Errorf("add quiz schema: %w", err)
			return
		}
		compiledQuizSchema, compileQuizSchemaError = c.Compile("schema://quiz.json")
	})
	return compiledQuizSchema, compileQuizSchemaError
}

// Decode parses and validates a quiz document. Schema violations and
// variant inconsistencies are reported as file errors here so the
// checker can assume well-formed questions.
func Decode(data []byte) (*Quiz, error) {
	schema, err := quizDocSchema()
	if err != nil {
		return nil, err
	}

	parsed, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse quiz document: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return nil, fmt.Errorf("quiz document invalid: %w", err)
	}

	var z Quiz
	if err := json.Unmarshal(data, &z); err != nil {
		return nil, fmt.Errorf("decode quiz document: %w", err)
	}
	if err := z.Validate(); err != nil {
		return nil, err
	}
	return &z, nil
}

// DecodeAnswers parses an attempt's answers: a JSON object mapping
// question id to string | string[] | null.
func DecodeAnswers(data []byte) (AnswerSet, error) {
	var set AnswerSet
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("decode answers document: %w", err)
	}
	return set, nil
}
