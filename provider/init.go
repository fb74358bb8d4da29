package provider

import (
	"duet/config"
	"duet/model"

	"github.com/sirupsen/logrus"
)

// InitializeBackends creates every backend that can be built from the
// configuration and credentials.
//
// This function is the single entry point for backend initialization:
//   - Ollama is always attempted (no credential needed)
//   - Cloud families are created only when their API key is present
//   - Failures are logged and skipped, so one bad family doesn't stop the
//     others; using a skipped family later yields *BackendUnavailableError
//
// Example:
//
//	backends := provider.InitializeBackends(cfg, creds, config.DebugLog)
//	// backends = {"ollama": ..., "anthropic": ..., "openai": ...}
func InitializeBackends(cfg *config.Config, creds *config.Credentials, log logrus.FieldLogger) map[Family]model.Backend {
	backends := make(map[Family]model.Backend)

	candidates := []Config{
		{Family: FamilyAnthropic, BaseURL: cfg.Providers.AnthropicBaseURL, APIKey: creds.AnthropicAPIKey},
		{Family: FamilyOpenAI, BaseURL: cfg.Providers.OpenAIBaseURL, APIKey: creds.OpenAIAPIKey},
		{Family: FamilyOpenRouter, BaseURL: cfg.Providers.OpenRouterBaseURL, APIKey: creds.OpenRouterAPIKey},
		{Family: FamilyOllama, BaseURL: cfg.Providers.OllamaHost},
	}

	for _, c := range candidates {
		if c.Family.RequiresAPIKey() && c.APIKey == "" {
			log.WithField("family", c.Family).Debug("no API key, backend not initialized")
			continue
		}

		b, err := NewBackend(c)
		if err != nil {
			log.WithField("family", c.Family).WithError(err).Warn("failed to initialize backend")
			continue
		}

		backends[c.Family] = b
		log.WithField("family", c.Family).Debug("initialized backend")
	}

	return backends
}
