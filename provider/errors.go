package provider

import (
	"errors"
	"fmt"
)

// ErrEmptyResponse is returned when a backend answers without any text.
var ErrEmptyResponse = errors.New("backend returned no text")

// UnsupportedModelError is returned when a model identifier matches no known family.
type UnsupportedModelError struct {
	ModelID string
}

func (e *UnsupportedModelError) Error() string {
	return fmt.Sprintf("unsupported model: %q", e.ModelID)
}

// BackendUnavailableError is returned when the family is known but no backend
// was configured for it, usually because its API key is missing.
type BackendUnavailableError struct {
	Family  Family
	ModelID string
}

func (e *BackendUnavailableError) Error() string {
	if e.Family.RequiresAPIKey() {
		return fmt.Sprintf("%s backend not configured for model %q (is the API key set?)", e.Family.DisplayName(), e.ModelID)
	}
	return fmt.Sprintf("%s backend not configured for model %q", e.Family.DisplayName(), e.ModelID)
}

// BackendCallError wraps a transport or API failure from a backend call.
type BackendCallError struct {
	Family   Family
	ModelID  string
	Attempts int
	Err      error
}

func (e *BackendCallError) Error() string {
	if e.Attempts > 1 {
		return fmt.Sprintf("%s call for %q failed after %d attempts: %v", e.Family.DisplayName(), e.ModelID, e.Attempts, e.Err)
	}
	return fmt.Sprintf("%s call for %q failed: %v", e.Family.DisplayName(), e.ModelID, e.Err)
}

func (e *BackendCallError) Unwrap() error {
	return e.Err
}
