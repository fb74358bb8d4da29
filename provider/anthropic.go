package provider

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"duet/model"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicBackend implements model.Backend using Anthropic's official Go SDK.
type AnthropicBackend struct {
	client  anthropic.Client
	baseURL string
}

// NewAnthropicBackend creates a new Anthropic backend.
//
// Parameters:
//   - baseURL: Anthropic API base URL (default: "https://api.anthropic.com")
//   - apiKey: Anthropic API key (required)
//   - httpClient: optional HTTP client
//
// SDK-level retries are disabled; retries are owned by the Invoker policy.
func NewAnthropicBackend(baseURL, apiKey string, httpClient *http.Client) (*AnthropicBackend, error) {
	if baseURL == "" {
		baseURL = FamilyAnthropic.DefaultBaseURL()
	}
	if apiKey == "" {
		return nil, fmt.Errorf("Anthropic API key is required")
	}

	opts := []option.RequestOption{
		option.WithBaseURL(baseURL),
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if httpClient != nil {
		opts = append(opts, option.WithHTTPClient(httpClient))
	}

	return &AnthropicBackend{
		client:  anthropic.NewClient(opts...),
		baseURL: baseURL,
	}, nil
}

// Generate implements model.Backend.Generate with a single Messages API call.
func (b *AnthropicBackend) Generate(ctx context.Context, req model.Request) (string, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(req.Model),
		Messages:  ConvertToAnthropicMessages(req.Messages),
		MaxTokens: req.MaxTokens,
	}

	// Anthropic uses a separate system parameter, not a message in the list
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}

	msg, err := b.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("Anthropic request failed: %w", err)
	}

	var text strings.Builder
	found := false
	for _, block := range msg.Content {
		if tb, ok := block.AsAny().(anthropic.TextBlock); ok {
			text.WriteString(tb.Text)
			found = true
		}
	}
	if !found {
		return "", ErrEmptyResponse
	}

	return text.String(), nil
}

// Ping implements model.Backend.Ping by attempting a minimal request.
func (b *AnthropicBackend) Ping(ctx context.Context) error {
	// Anthropic doesn't have a ping/health endpoint, so we make a minimal request
	_, err := b.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.ModelClaude3_5Haiku20241022,
		MaxTokens: 1,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock("ping")),
		},
	})
	if err != nil {
		return fmt.Errorf("Anthropic ping failed: %w", err)
	}
	return nil
}
