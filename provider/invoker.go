package provider

import (
	"context"
	"errors"
	"io"
	"slices"
	"time"

	"duet/model"

	"github.com/sirupsen/logrus"
)

// Policy controls timeouts and retries for backend calls.
//
// The zero value reproduces the historical behaviour: no timeout beyond the
// backend's own, and a single attempt. Only transport/API failures are
// retried; an unsupported or unconfigured model fails immediately.
type Policy struct {
	// Timeout bounds each individual attempt. Zero means no timeout.
	Timeout time.Duration

	// MaxAttempts is the total number of attempts per Invoke. Values below 1 mean 1.
	MaxAttempts int

	// Backoff is multiplied by the attempt number to get the wait before the next attempt.
	Backoff time.Duration
}

func (p Policy) attempts() int {
	if p.MaxAttempts < 1 {
		return 1
	}
	return p.MaxAttempts
}

// InvokerConfig holds the tunables of an Invoker.
type InvokerConfig struct {
	MaxTokens int64
	Policy    Policy
	Logger    logrus.FieldLogger
}

// Invoker generates one turn for a model identifier by dispatching to the
// backend of its family. Backends are injected once and never replaced.
type Invoker struct {
	backends  map[Family]model.Backend
	maxTokens int64
	policy    Policy
	log       logrus.FieldLogger
	sleep     func(ctx context.Context, d time.Duration) error
}

// NewInvoker creates an Invoker over the given backends. Families missing from
// the map are reported as *BackendUnavailableError when used.
func NewInvoker(backends map[Family]model.Backend, cfg InvokerConfig) *Invoker {
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	if cfg.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		cfg.Logger = l
	}

	copied := make(map[Family]model.Backend, len(backends))
	for f, b := range backends {
		if b != nil {
			copied[f] = b
		}
	}

	return &Invoker{
		backends:  copied,
		maxTokens: cfg.MaxTokens,
		policy:    cfg.Policy,
		log:       cfg.Logger,
		sleep:     sleepContext,
	}
}

// Has reports whether a backend is configured for f.
func (inv *Invoker) Has(f Family) bool {
	_, ok := inv.backends[f]
	return ok
}

// Invoke returns one generated turn for modelID given the participant's history.
//
// Every call performs at least one outbound request; nothing is cached even
// if the history repeats. The history is only read.
func (inv *Invoker) Invoke(ctx context.Context, modelID string, history []model.Message) (string, error) {
	target, err := Resolve(modelID)
	if err != nil {
		return "", err
	}

	backend, ok := inv.backends[target.Family]
	if !ok {
		return "", &BackendUnavailableError{Family: target.Family, ModelID: modelID}
	}

	req := model.Request{
		Model:     target.Model,
		System:    SystemPrompt,
		Messages:  slices.Clone(history),
		MaxTokens: inv.maxTokens,
	}

	maxAttempts := inv.policy.attempts()
	for attempt := 1; ; attempt++ {
		started := time.Now()
		text, err := inv.generate(ctx, backend, req)
		entry := inv.log.WithFields(logrus.Fields{
			"family":   target.Family,
			"model":    modelID,
			"attempt":  attempt,
			"duration": time.Since(started).Round(time.Millisecond),
		})
		if err == nil {
			entry.WithField("chars", len(text)).Debug("generated turn")
			return text, nil
		}

		callErr := &BackendCallError{Family: target.Family, ModelID: modelID, Attempts: attempt, Err: err}
		entry.WithError(err).Debug("backend call failed")

		if attempt >= maxAttempts || ctx.Err() != nil || errors.Is(err, ErrEmptyResponse) {
			return "", callErr
		}
		if err := inv.sleep(ctx, inv.policy.Backoff*time.Duration(attempt)); err != nil {
			return "", callErr
		}
	}
}

func (inv *Invoker) generate(ctx context.Context, backend model.Backend, req model.Request) (string, error) {
	if inv.policy.Timeout <= 0 {
		return backend.Generate(ctx, req)
	}

	ctx, cancel := context.WithTimeout(ctx, inv.policy.Timeout)
	defer cancel()
	return backend.Generate(ctx, req)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
