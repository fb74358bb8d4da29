// Package gate lets a human operator accept or reject each generated turn.
//
// The conversation layer only depends on the Gate interface. Two
// implementations exist: TerminalGate reads one raw keystroke from an
// interactive terminal, and ScriptedGate replays predetermined decisions for
// tests and non-interactive runs.
package gate

import (
	"context"
	"errors"
	"fmt"
)

// Decision is the operator's verdict on a generated turn.
type Decision int

const (
	// Accept commits the turn to both histories.
	Accept Decision = iota
	// Retry discards the turn and regenerates it from the same history.
	Retry
)

func (d Decision) String() string {
	switch d {
	case Accept:
		return "accept"
	case Retry:
		return "retry"
	default:
		return fmt.Sprintf("Decision(%d)", int(d))
	}
}

// Gate blocks until the operator decides on the turn just displayed.
type Gate interface {
	Confirm(ctx context.Context) (Decision, error)
}

var (
	// ErrInterrupted is returned when the operator presses ctrl+c at the prompt.
	// Raw mode swallows SIGINT, so the gate reports it instead.
	ErrInterrupted = errors.New("interrupted by operator")

	// ErrScriptExhausted is returned by a ScriptedGate with no decisions left.
	ErrScriptExhausted = errors.New("scripted gate has no decisions left")
)

// InputDeviceError is returned when keystroke capture fails: the input is not
// a terminal, raw mode could not be entered, or the read failed.
type InputDeviceError struct {
	Device string
	Err    error
}

func (e *InputDeviceError) Error() string {
	return fmt.Sprintf("cannot read confirmation key from %s: %v", e.Device, e.Err)
}

func (e *InputDeviceError) Unwrap() error {
	return e.Err
}
