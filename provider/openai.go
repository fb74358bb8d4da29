package provider

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"duet/model"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// OpenAIBackend implements model.Backend using OpenAI's official Go SDK.
// It also serves OpenAI-compatible APIs (see NewOpenRouterBackend).
type OpenAIBackend struct {
	client  openai.Client
	name    string // for error messages
	baseURL string
}

// NewOpenAIBackend creates a new OpenAI backend.
//
// Parameters:
//   - baseURL: OpenAI API base URL (default: "https://api.openai.com/v1")
//   - apiKey: OpenAI API key (required)
//   - httpClient: optional HTTP client
func NewOpenAIBackend(baseURL, apiKey string, httpClient *http.Client) (*OpenAIBackend, error) {
	if baseURL == "" {
		baseURL = FamilyOpenAI.DefaultBaseURL()
	}
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	return newOpenAICompatible("OpenAI", baseURL, apiKey, httpClient), nil
}

func newOpenAICompatible(name, baseURL, apiKey string, httpClient *http.Client, extra ...option.RequestOption) *OpenAIBackend {
	opts := []option.RequestOption{
		option.WithBaseURL(baseURL),
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if httpClient != nil {
		opts = append(opts, option.WithHTTPClient(httpClient))
	}
	opts = append(opts, extra...)

	return &OpenAIBackend{
		client:  openai.NewClient(opts...),
		name:    name,
		baseURL: baseURL,
	}
}

// usesCompletionTokens reports whether the model rejects max_tokens in favour
// of max_completion_tokens (the o-series reasoning models).
func usesCompletionTokens(modelName string) bool {
	for _, prefix := range []string{"o1", "o3", "o4"} {
		if strings.HasPrefix(modelName, prefix) {
			return true
		}
	}
	return false
}

// Generate implements model.Backend.Generate with a single chat completion.
func (b *OpenAIBackend) Generate(ctx context.Context, req model.Request) (string, error) {
	params := openai.ChatCompletionNewParams{
		Messages: ConvertToOpenAIMessages(req.System, req.Messages),
		Model:    openai.ChatModel(req.Model),
	}
	if req.MaxTokens > 0 {
		if usesCompletionTokens(req.Model) {
			params.MaxCompletionTokens = openai.Int(req.MaxTokens)
		} else {
			params.MaxTokens = openai.Int(req.MaxTokens)
		}
	}

	resp, err := b.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("%s request failed: %w", b.name, err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}

	return resp.Choices[0].Message.Content, nil
}

// Ping implements model.Backend.Ping by attempting to list models.
func (b *OpenAIBackend) Ping(ctx context.Context) error {
	_, err := b.client.Models.List(ctx)
	if err != nil {
		return fmt.Errorf("%s ping failed: %w", b.name, err)
	}
	return nil
}
