package ollama

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"
)

const (
	DefaultHost = "http://localhost:11434"
	defaultPort = "11434"
)

// Client is a thin wrapper over the Ollama API client that performs
// single, non-streamed chat completions.
type Client struct {
	client *api.Client
}

// NormalizeHost accepts the host[:port] form Ollama itself uses for
// OLLAMA_HOST. A value without a scheme gets http:// and, if it has no port,
// the default port 11434. Values with a scheme are returned unchanged.
func NormalizeHost(host string) string {
	host = strings.TrimSpace(host)
	if host == "" || strings.Contains(host, "://") {
		return host
	}

	hostport, path, _ := strings.Cut(host, "/")
	if _, _, err := net.SplitHostPort(hostport); err != nil {
		hostport = net.JoinHostPort(strings.Trim(hostport, "[]"), defaultPort)
	}
	if path != "" {
		return "http://" + hostport + "/" + path
	}
	return "http://" + hostport
}

func NewClient(baseURL string, httpClient *http.Client) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultHost
	}
	baseURL = NormalizeHost(baseURL)
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid Ollama URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, fmt.Errorf("invalid Ollama URL %q: scheme and host are required", baseURL)
	}

	return &Client{
		client: api.NewClient(parsedURL, httpClient),
	}, nil
}

// Chat sends the messages to model and returns the complete reply.
// numPredict bounds the number of generated tokens; zero leaves the server default.
func (c *Client) Chat(ctx context.Context, model string, messages []api.Message, numPredict int64) (string, error) {
	req := &api.ChatRequest{
		Model:    model,
		Messages: messages,
		Stream:   func(b bool) *bool { return &b }(false),
	}
	if numPredict > 0 {
		req.Options = map[string]any{"num_predict": numPredict}
	}

	// With streaming disabled the server answers with a single response,
	// but accumulate anyway in case it chunks.
	var reply strings.Builder
	respFunc := func(resp api.ChatResponse) error {
		reply.WriteString(resp.Message.Content)
		return nil
	}

	if err := c.client.Chat(ctx, req, respFunc); err != nil {
		return "", err
	}
	return reply.String(), nil
}

func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := c.client.List(ctx)
	return err
}
