package provider

import (
	"fmt"
	"net/http"

	"github.com/openai/openai-go/v3/option"
)

// NewOpenRouterBackend creates a backend for OpenRouter, which is 100%
// OpenAI-compatible, so it reuses OpenAIBackend with a different base URL.
//
// Model names are passed through with their vendor prefix
// (e.g. "meta-llama/llama-3.1-70b-instruct"); only duet's own "openrouter/"
// routing prefix is stripped by Resolve.
func NewOpenRouterBackend(baseURL, apiKey string, httpClient *http.Client) (*OpenAIBackend, error) {
	if baseURL == "" {
		baseURL = FamilyOpenRouter.DefaultBaseURL()
	}
	if apiKey == "" {
		return nil, fmt.Errorf("OpenRouter API key is required")
	}

	// Attribution headers are optional for OpenRouter but show up in its dashboard
	return newOpenAICompatible("OpenRouter", baseURL, apiKey, httpClient,
		option.WithHeader("X-Title", "duet"),
	), nil
}
