package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	DefaultModelA    = "gpt-4"
	DefaultModelB    = "claude-3-opus-20240229"
	DefaultExchanges = 5
	DefaultMaxTokens = 1024
)

func Default() *Config {
	return &Config{
		DataDirectory: GetDefaultDataDir(),
		ModelA:        DefaultModelA,
		ModelB:        DefaultModelB,
		Exchanges:     DefaultExchanges,
		Supervised:    false,
		MaxTokens:     DefaultMaxTokens,
		Invoke: InvokeConfig{
			MaxAttempts: 1,
			Backoff:     2 * time.Second,
		},
	}
}

func GenerateConfigTemplate() string {
	return `# duet configuration
# Location: ~/.config/duet/settings.toml
# This file uses TOML format: https://toml.io
#
# Every key can be overridden with a DUET_* environment variable
# (DUET_MODEL_A, DUET_EXCHANGES, DUET_INVOKE_TIMEOUT, ...) or a command-line flag.
# API keys are read from ANTHROPIC_API_KEY, OPENAI_API_KEY and
# OPENROUTER_API_KEY, or from a .env file in the working directory.

# Directory for the debug log (DUET_DEBUG=1)
data_directory = "~/.local/share/duet"

# Participant A speaks first and receives the seed history.
# Supported identifiers: claude-*, gpt-*, chatgpt-*, o1*, o3*, o4*,
# openrouter/<vendor>/<model>, ollama/<model>
model_a = "gpt-4"
model_b = "claude-3-opus-20240229"

# Number of rounds; each round is one turn from A and one from B
exchanges = 5

# Ask for confirmation after every generated turn ('r' retries)
supervised = false

# Where conversation_<unix>.txt transcripts are written (default: current directory)
transcript_dir = ""

# TOML file with [[messages]] role/content entries replacing the built-in seed
seed_file = ""

# Upper bound on generated tokens per turn
max_tokens = 1024

[invoke]
# Per-call timeout, e.g. "90s" (0 = none)
timeout = "0s"
# Attempts per turn for failed backend calls (1 = no retry)
max_attempts = 1
# Wait between attempts, multiplied by the attempt number
backoff = "2s"

[providers]
# Leave empty to use each service's default endpoint
anthropic_base_url = ""
openai_base_url = ""
openrouter_base_url = ""
ollama_host = ""
`
}

// CreateDefaultConfig writes the settings template to path unless a file is
// already there. An empty path means the default settings file.
func CreateDefaultConfig(path string) (string, error) {
	if path == "" {
		path = GetSettingsFilePath()
	}
	path = ExpandPath(path)

	if FileExists(path) {
		return path, nil
	}

	if err := EnsureDir(filepath.Dir(path)); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	// 0600: may carry private endpoints
	if err := os.WriteFile(path, []byte(GenerateConfigTemplate()), 0600); err != nil {
		return "", fmt.Errorf("failed to write config: %w", err)
	}

	return path, nil
}
