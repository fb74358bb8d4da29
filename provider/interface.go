// Package provider turns a model identifier and a message history into one
// generated turn of text.
//
// duet talks to several independently hosted model families. Each family
// speaks its own request/response protocol, so the package is split into:
//
//   - Family: a closed set of supported backend families, resolved from the
//     model identifier by prefix (see Resolve).
//   - model.Backend: one implementation per family, built once at startup from
//     credentials (see NewBackend and InitializeBackends).
//   - Invoker: dispatches Invoke(modelID, history) to the right backend,
//     injects the fixed persona directive, bounds output length and applies
//     the timeout/retry Policy.
//
// # Why an explicit Family type?
//
// Identifiers that match no family fail with *UnsupportedModelError before any
// network call is made, instead of falling through to some default backend.
//
// # Usage
//
//	backends := provider.InitializeBackends(cfg, creds, logger)
//	inv := provider.NewInvoker(backends, provider.InvokerConfig{MaxTokens: 1024})
//	text, err := inv.Invoke(ctx, "claude-3-opus-20240229", history)
package provider

import "net/http"

// Family identifies a backend protocol.
type Family string

const (
	FamilyAnthropic  Family = "anthropic"
	FamilyOpenAI     Family = "openai"
	FamilyOpenRouter Family = "openrouter"
	FamilyOllama     Family = "ollama"
)

// Families lists every supported family in display order.
func Families() []Family {
	return []Family{FamilyAnthropic, FamilyOpenAI, FamilyOpenRouter, FamilyOllama}
}

// DisplayName returns the human-readable family name.
func (f Family) DisplayName() string {
	switch f {
	case FamilyAnthropic:
		return "Anthropic"
	case FamilyOpenAI:
		return "OpenAI"
	case FamilyOpenRouter:
		return "OpenRouter"
	case FamilyOllama:
		return "Ollama"
	default:
		return string(f)
	}
}

// DefaultBaseURL returns the API base URL used when none is configured.
func (f Family) DefaultBaseURL() string {
	switch f {
	case FamilyAnthropic:
		return "https://api.anthropic.com"
	case FamilyOpenAI:
		return "https://api.openai.com/v1"
	case FamilyOpenRouter:
		return "https://openrouter.ai/api/v1"
	case FamilyOllama:
		return "http://localhost:11434"
	default:
		return ""
	}
}

// RequiresAPIKey reports whether the family needs a credential to be usable.
func (f Family) RequiresAPIKey() bool {
	return f != FamilyOllama
}

// Config holds backend construction parameters.
type Config struct {
	Family     Family
	BaseURL    string
	APIKey     string       // unused for Ollama
	HTTPClient *http.Client // optional; SDK default when nil
}
