package llm

import "sort"

// Provider identifiers accepted throughout the module.
const (
	ProviderOpenAI     = "openai"
	ProviderAnthropic  = "anthropic"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// ProviderInfo describes one provider's defaults and capabilities.
type ProviderInfo struct {
	ID           string
	DefaultModel string

	// SupportsVision marks providers that can grade image attachments.
	SupportsVision bool

	// SupportsStructuredOutput marks providers with a native JSON-schema
	// response mode. Without it the grading client always runs the text
	// parsing cascade.
	SupportsStructuredOutput bool
}

// Registry maps provider id to its capabilities. The grading client
// consults it before choosing between structured output and cascade
// parsing.
var Registry = map[string]ProviderInfo{
	ProviderOpenAI: {
		ID:                       ProviderOpenAI,
		DefaultModel:             "gpt-4o-mini",
		SupportsVision:           true,
		SupportsStructuredOutput: true,
	},
	ProviderAnthropic: {
		ID:                       ProviderAnthropic,
		DefaultModel:             "claude-haiku",
		SupportsVision:           true,
		SupportsStructuredOutput: true,
	},
	ProviderGemini: {
		ID:                       ProviderGemini,
		DefaultModel:             "gemini-flash",
		SupportsVision:           true,
		SupportsStructuredOutput: true,
	},
	ProviderOpenRouter: {
		ID:           ProviderOpenRouter,
		DefaultModel: "google/gemini-2.0-flash-exp",
		// Structured output support varies per routed model, so it is
		// never assumed; responses always go through the cascade.
	},
}

// ProviderIDs returns the registered provider ids in stable order.
func ProviderIDs() []string {
	ids := make([]string, 0, len(Registry))
	for id := range Registry {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Info returns the registry entry for a provider id.
func Info(id string) (ProviderInfo, bool) {
	info, ok := Registry[id]
	return info, ok
}
