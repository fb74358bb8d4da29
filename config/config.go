package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"duet/ollama"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

// EnvPrefix namespaces the environment overrides (DUET_MODEL_A, DUET_INVOKE_TIMEOUT, ...).
const EnvPrefix = "DUET"

type InvokeConfig struct {
	Timeout     time.Duration `toml:"timeout" split_words:"true" validate:"gte=0"`
	MaxAttempts int           `toml:"max_attempts" split_words:"true" validate:"gte=1,lte=10"`
	Backoff     time.Duration `toml:"backoff" split_words:"true" validate:"gte=0"`
}

// ProvidersConfig overrides backend endpoints. Empty values use each SDK's default.
type ProvidersConfig struct {
	AnthropicBaseURL  string `toml:"anthropic_base_url" envconfig:"ANTHROPIC_BASE_URL" validate:"omitempty,url"`
	OpenAIBaseURL     string `toml:"openai_base_url" envconfig:"OPENAI_BASE_URL" validate:"omitempty,url"`
	OpenRouterBaseURL string `toml:"openrouter_base_url" envconfig:"OPENROUTER_BASE_URL" validate:"omitempty,url"`
	OllamaHost        string `toml:"ollama_host" envconfig:"OLLAMA_HOST" validate:"omitempty,url"`
}

type Config struct {
	DataDirectory string `toml:"data_directory" split_words:"true"`

	ModelA        string `toml:"model_a" split_words:"true" validate:"required"`
	ModelB        string `toml:"model_b" split_words:"true" validate:"required"`
	Exchanges     int    `toml:"exchanges" validate:"gte=0"`
	Supervised    bool   `toml:"supervised"`
	TranscriptDir string `toml:"transcript_dir" split_words:"true"`
	SeedFile      string `toml:"seed_file" split_words:"true"`
	MaxTokens     int64  `toml:"max_tokens" split_words:"true" validate:"gt=0"`

	Invoke    InvokeConfig    `toml:"invoke"`
	Providers ProvidersConfig `toml:"providers"`
}

var Debug = false

// DebugLog discards everything until InitDebugLog enables it.
var DebugLog = newDiscardLogger()

var validate = validator.New()

func (c *Config) DataDir() string {
	return ExpandPath(c.DataDirectory)
}

// SeedPath returns the expanded seed file path, or "" for the built-in seed.
func (c *Config) SeedPath() string {
	return ExpandPath(c.SeedFile)
}

func (c *Config) TranscriptPath() string {
	if c.TranscriptDir == "" {
		return "."
	}
	return ExpandPath(c.TranscriptDir)
}

// Validate checks the merged configuration.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Load builds the configuration from defaults, the settings file and the
// environment, in that order. An empty path means the default settings file;
// a missing default file is not an error, a missing explicit one is.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = GetSettingsFilePath()
	}
	path = ExpandPath(path)

	if FileExists(path) {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse settings %s: %w", path, err)
		}
	} else if explicit {
		return nil, fmt.Errorf("settings file not found: %s", path)
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment overrides: %w", err)
	}

	// OLLAMA_HOST is commonly host[:port] without a scheme
	cfg.Providers.OllamaHost = ollama.NormalizeHost(cfg.Providers.OllamaHost)

	return cfg, nil
}

func CheckDebug() bool {
	debug := os.Getenv(EnvPrefix + "_DEBUG")
	return debug == "true" || debug == "1"
}

// InitDebugLog enables DebugLog when DUET_DEBUG is set, writing to
// <dataDir>/debug.log. Verbose mirrors the log to stderr regardless of
// DUET_DEBUG.
func InitDebugLog(dataDir string, verbose bool) {
	var writers []io.Writer

	if CheckDebug() {
		logPath := filepath.Join(dataDir, "debug.log")

		// 0600: the log contains model output
		if err := EnsureDir(dataDir); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Could not create data directory %s: %v\n", dataDir, err)
		} else if f, err := os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Could not open debug log at %s: %v\n", logPath, err)
		} else {
			writers = append(writers, f)
		}
	}
	if verbose {
		writers = append(writers, os.Stderr)
	}
	if len(writers) == 0 {
		return
	}

	Debug = true
	DebugLog = logrus.New()
	DebugLog.SetOutput(io.MultiWriter(writers...))
	DebugLog.SetLevel(logrus.DebugLevel)
	DebugLog.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	DebugLog.WithField("pid", os.Getpid()).Debug("=== Debug logging started ===")
}

func newDiscardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
