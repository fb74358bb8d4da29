package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Credentials holds the API keys read from the environment (or a .env file
// loaded beforehand). Keys are never written to the settings file.
type Credentials struct {
	AnthropicAPIKey  string `envconfig:"ANTHROPIC_API_KEY"`
	OpenAIAPIKey     string `envconfig:"OPENAI_API_KEY"`
	OpenRouterAPIKey string `envconfig:"OPENROUTER_API_KEY"`
}

func LoadCredentials() (*Credentials, error) {
	var creds Credentials
	if err := envconfig.Process("", &creds); err != nil {
		return nil, fmt.Errorf("failed to read credentials: %w", err)
	}
	return &creds, nil
}
