package model

import "context"

// Backend abstracts one model-hosting protocol (Anthropic, OpenAI, Ollama, ...)
// using duet's provider-agnostic message types.
//
// This interface is defined in the model package (not provider package) so the
// conversation layer and test doubles can depend on it without importing any SDK.
type Backend interface {
	// Generate performs exactly one outbound call and returns the generated text.
	Generate(ctx context.Context, req Request) (string, error)

	// Ping checks if the backend is reachable with the configured credentials.
	Ping(ctx context.Context) error
}

// Request is a single generation request in backend-neutral form.
type Request struct {
	// Model is the name sent to the backend API (routing prefixes already stripped).
	Model string

	// System is the persona directive placed ahead of the conversation history.
	System string

	// Messages is the full history of the generating participant, oldest first.
	Messages []Message

	// MaxTokens bounds the length of the generated turn.
	MaxTokens int64
}
