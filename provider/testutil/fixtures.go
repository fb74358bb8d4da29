package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"duet/model"
)

// TestMessages returns a sample conversation for testing
func TestMessages() []model.Message {
	return []model.Message{
		model.UserMessage("Hello, how are you?"),
		model.AssistantMessage("I'm doing well, thank you!"),
		model.UserMessage("Can you help me with a task?"),
	}
}

// SingleUserMessage returns a single user message for simple tests
func SingleUserMessage(content string) []model.Message {
	return []model.Message{model.UserMessage(content)}
}

// RecordedRequest is one request captured by a FakeServer.
type RecordedRequest struct {
	Method string
	Path   string
	Header http.Header
	Body   map[string]any
}

// FakeServer is an httptest server that answers every request with a fixed
// status and body, and records what it received.
type FakeServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests []RecordedRequest
}

// NewFakeServer starts a server replying with status and body (JSON).
// The server is closed when the test finishes.
func NewFakeServer(t *testing.T, status int, body string) *FakeServer {
	t.Helper()

	fs := &FakeServer{}
	fs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		var decoded map[string]any
		_ = json.Unmarshal(raw, &decoded)

		fs.mu.Lock()
		fs.requests = append(fs.requests, RecordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Header: r.Header.Clone(),
			Body:   decoded,
		})
		fs.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(fs.Close)
	return fs
}

// Requests returns a copy of the recorded requests.
func (fs *FakeServer) Requests() []RecordedRequest {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return append([]RecordedRequest(nil), fs.requests...)
}

// Canned response bodies for each backend protocol.
const (
	AnthropicReply = `{
  "id": "msg_01",
  "type": "message",
  "role": "assistant",
  "model": "claude-3-opus-20240229",
  "content": [{"type": "text", "text": "hello from claude"}],
  "stop_reason": "end_turn",
  "stop_sequence": null,
  "usage": {"input_tokens": 10, "output_tokens": 5}
}`

	OpenAIReply = `{
  "id": "chatcmpl-1",
  "object": "chat.completion",
  "created": 1700000000,
  "model": "gpt-4",
  "choices": [{
    "index": 0,
    "message": {"role": "assistant", "content": "hello from gpt"},
    "finish_reason": "stop"
  }],
  "usage": {"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15}
}`

	OllamaReply = `{"model":"llama3.1","created_at":"2024-01-01T00:00:00Z","message":{"role":"assistant","content":"hello from ollama"},"done":true}`

	ErrorReply = `{"error": {"type": "api_error", "message": "boom"}}`
)
