package provider

import (
	"testing"

	"duet/model"
)

func TestNewBackend(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		expectError bool
	}{
		{
			name:   "ollama backend with defaults",
			config: Config{Family: FamilyOllama},
		},
		{
			name: "ollama backend with custom host",
			config: Config{
				Family:  FamilyOllama,
				BaseURL: "http://localhost:11434",
			},
		},
		{
			name: "ollama backend with invalid host",
			config: Config{
				Family:  FamilyOllama,
				BaseURL: "not a url",
			},
			expectError: true,
		},
		{
			name: "openai backend",
			config: Config{
				Family:  FamilyOpenAI,
				BaseURL: "https://api.openai.com/v1",
				APIKey:  "test-key",
			},
		},
		{
			name:        "openai backend without key",
			config:      Config{Family: FamilyOpenAI},
			expectError: true,
		},
		{
			name: "openrouter backend",
			config: Config{
				Family: FamilyOpenRouter,
				APIKey: "test-key",
			},
		},
		{
			name: "anthropic backend",
			config: Config{
				Family:  FamilyAnthropic,
				BaseURL: "https://api.anthropic.com",
				APIKey:  "test-key",
			},
		},
		{
			name:        "anthropic backend without key",
			config:      Config{Family: FamilyAnthropic},
			expectError: true,
		},
		{
			name:        "unknown family",
			config:      Config{Family: Family("unknown"), APIKey: "test-key"},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend, err := NewBackend(tt.config)

			if tt.expectError && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}

			// A failed constructor must not leak a typed nil through the interface
			if tt.expectError && backend != nil {
				t.Errorf("expected nil backend, got %T", backend)
			}
			if !tt.expectError && backend == nil {
				t.Error("expected non-nil backend, got nil")
			}
		})
	}
}

func TestFactoryReturnsConcreteTypes(t *testing.T) {
	tests := []struct {
		config Config
		check  func(model.Backend) bool
	}{
		{Config{Family: FamilyOllama}, func(b model.Backend) bool { _, ok := b.(*OllamaBackend); return ok }},
		{Config{Family: FamilyAnthropic, APIKey: "k"}, func(b model.Backend) bool { _, ok := b.(*AnthropicBackend); return ok }},
		{Config{Family: FamilyOpenAI, APIKey: "k"}, func(b model.Backend) bool { _, ok := b.(*OpenAIBackend); return ok }},
		{Config{Family: FamilyOpenRouter, APIKey: "k"}, func(b model.Backend) bool { _, ok := b.(*OpenAIBackend); return ok }},
	}

	for _, tt := range tests {
		backend, err := NewBackend(tt.config)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.config.Family, err)
		}
		if !tt.check(backend) {
			t.Errorf("%s: unexpected backend type %T", tt.config.Family, backend)
		}
	}
}
