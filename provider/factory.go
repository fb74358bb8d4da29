package provider

import (
	"fmt"

	"duet/model"
)

// NewBackend creates a backend based on configuration.
//
// This is the centralized factory function for creating any backend type.
// It dispatches to the appropriate constructor based on Config.Family.
//
// Returns an error if:
//   - The family is unknown
//   - The family-specific constructor fails (e.g., missing API key, invalid URL)
//
// Example:
//
//	b, err := provider.NewBackend(provider.Config{
//	    Family: provider.FamilyAnthropic,
//	    APIKey: os.Getenv("ANTHROPIC_API_KEY"),
//	})
func NewBackend(cfg Config) (model.Backend, error) {
	var (
		b   model.Backend
		err error
	)

	// Assign through typed variables so a failed constructor never yields a
	// non-nil interface holding a nil pointer.
	switch cfg.Family {
	case FamilyAnthropic:
		var ab *AnthropicBackend
		if ab, err = NewAnthropicBackend(cfg.BaseURL, cfg.APIKey, cfg.HTTPClient); err == nil {
			b = ab
		}
	case FamilyOpenAI:
		var ob *OpenAIBackend
		if ob, err = NewOpenAIBackend(cfg.BaseURL, cfg.APIKey, cfg.HTTPClient); err == nil {
			b = ob
		}
	case FamilyOpenRouter:
		var ob *OpenAIBackend
		if ob, err = NewOpenRouterBackend(cfg.BaseURL, cfg.APIKey, cfg.HTTPClient); err == nil {
			b = ob
		}
	case FamilyOllama:
		var lb *OllamaBackend
		if lb, err = NewOllamaBackend(cfg.BaseURL, cfg.HTTPClient); err == nil {
			b = lb
		}
	default:
		err = fmt.Errorf("unknown backend family: %s", cfg.Family)
	}

	if err != nil {
		return nil, err
	}
	return b, nil
}
