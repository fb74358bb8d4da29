package provider

import (
	"context"
	"fmt"
	"time"

	"duet/model"
)

// PingResult is the outcome of checking a single backend.
type PingResult struct {
	Family     Family
	Configured bool
	Err        error
	Latency    time.Duration
}

// OK reports whether the backend is configured and answered.
func (r PingResult) OK() bool {
	return r.Configured && r.Err == nil
}

// PingBackends checks every family in order. Unconfigured families are
// reported with Configured=false and no network call is made for them.
func PingBackends(ctx context.Context, backends map[Family]model.Backend) []PingResult {
	results := make([]PingResult, 0, len(Families()))

	for _, f := range Families() {
		b, ok := backends[f]
		if !ok || b == nil {
			results = append(results, PingResult{Family: f})
			continue
		}

		started := time.Now()
		err := b.Ping(ctx)
		if err != nil {
			err = fmt.Errorf("connection failed: %w", err)
		}
		results = append(results, PingResult{
			Family:     f,
			Configured: true,
			Err:        err,
			Latency:    time.Since(started),
		})
	}

	return results
}
