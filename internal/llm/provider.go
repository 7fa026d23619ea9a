package llm

import (
	"context"
	"encoding/json"
)

// Provider is the abstraction over one AI completion backend. Grading
// code builds a Request and receives the completion text; it never
// touches a provider's wire envelope directly.
type Provider interface {
	// Generate sends a prompt and returns the completion. When the
	// request carries a Schema, the provider uses its native structured
	// output mechanism and the returned Content is validated JSON;
	// otherwise Content is the raw completion text.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured
	// to use.
	ModelID() string
}

// Request describes one completion call.
type Request struct {
	// System sets the model's role and constraints.
	System string

	// Messages is the conversation. Grading is single-turn: one user
	// message carrying the grading prompt.
	Messages []Message

	// Schema, when set, requests structured output conforming to the
	// given JSON Schema. Providers without structured output ignore it
	// and the caller falls back to text parsing.
	Schema *Schema

	// MaxTokens caps the response length.
	MaxTokens int

	// Temperature in [0,1]; zero means deterministic.
	Temperature float64
}

// Message is a single conversation entry.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema names a JSON Schema the response must conform to.
type Schema struct {
	// Name identifies the schema (tool name for Anthropic, schema name
	// for OpenAI).
	Name string

	// Description guides the model.
	Description string

	// Definition is the JSON Schema as a map.
	Definition map[string]any
}

// Response is a completed provider call.
type Response struct {
	// Content is the completion. Validated JSON when the request had a
	// Schema, raw text otherwise.
	Content json.RawMessage

	// Usage reports token consumption.
	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to "end", "max_tokens", or "error".
	StopReason string
}

// Usage tracks token consumption for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
