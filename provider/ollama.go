package provider

import (
	"context"
	"fmt"
	"net/http"

	"duet/model"
	"duet/ollama"
)

// OllamaBackend wraps ollama.Client to implement model.Backend.
//
// This backend converts duet messages to Ollama's api.Message, prepends the
// system directive as a "system" message and maps MaxTokens to num_predict.
type OllamaBackend struct {
	client *ollama.Client
}

// NewOllamaBackend creates a new Ollama backend.
//
// Parameters:
//   - baseURL: The Ollama server URL (e.g., "http://localhost:11434").
//     If empty, defaults to "http://localhost:11434".
//   - httpClient: optional HTTP client
//
// Returns an error if the baseURL is invalid.
func NewOllamaBackend(baseURL string, httpClient *http.Client) (*OllamaBackend, error) {
	client, err := ollama.NewClient(baseURL, httpClient)
	if err != nil {
		return nil, fmt.Errorf("failed to create Ollama client: %w", err)
	}

	return &OllamaBackend{client: client}, nil
}

// Generate implements model.Backend.Generate.
func (b *OllamaBackend) Generate(ctx context.Context, req model.Request) (string, error) {
	messages := ConvertToOllamaMessages(req.System, req.Messages)

	text, err := b.client.Chat(ctx, req.Model, messages, req.MaxTokens)
	if err != nil {
		return "", fmt.Errorf("Ollama request failed: %w", err)
	}
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// Ping implements model.Backend.Ping (direct passthrough).
func (b *OllamaBackend) Ping(ctx context.Context) error {
	if err := b.client.Ping(ctx); err != nil {
		return fmt.Errorf("Ollama ping failed: %w", err)
	}
	return nil
}
