package gate

import (
	"context"
	"sync"
)

// ScriptedGate returns predetermined decisions in order.
type ScriptedGate struct {
	mu        sync.Mutex
	decisions []Decision
	calls     int
}

func NewScriptedGate(decisions ...Decision) *ScriptedGate {
	return &ScriptedGate{decisions: append([]Decision(nil), decisions...)}
}

// Confirm returns the next scripted decision, or ErrScriptExhausted.
func (g *ScriptedGate) Confirm(ctx context.Context) (Decision, error) {
	if err := ctx.Err(); err != nil {
		return Accept, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.calls++
	if len(g.decisions) == 0 {
		return Accept, ErrScriptExhausted
	}
	d := g.decisions[0]
	g.decisions = g.decisions[1:]
	return d, nil
}

// Calls returns how many times Confirm was called.
func (g *ScriptedGate) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

// Remaining returns how many decisions are left.
func (g *ScriptedGate) Remaining() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.decisions)
}
