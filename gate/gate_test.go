package gate

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecisionString(t *testing.T) {
	assert.Equal(t, "accept", Accept.String())
	assert.Equal(t, "retry", Retry.String())
	assert.Equal(t, "Decision(7)", Decision(7).String())
}

func TestScriptedGate(t *testing.T) {
	g := NewScriptedGate(Retry, Retry, Accept)
	ctx := context.Background()

	for _, want := range []Decision{Retry, Retry, Accept} {
		got, err := g.Confirm(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	assert.Equal(t, 0, g.Remaining())

	_, err := g.Confirm(ctx)
	assert.ErrorIs(t, err, ErrScriptExhausted)
	assert.Equal(t, 4, g.Calls())
}

func TestScriptedGateCancelledContext(t *testing.T) {
	g := NewScriptedGate(Accept)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.Confirm(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, g.Remaining(), "a cancelled confirm must not consume a decision")
}

func press(m keypressModel, msg tea.KeyMsg) (keypressModel, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(keypressModel), cmd
}

func TestKeypressModelDecisions(t *testing.T) {
	tests := []struct {
		name        string
		msg         tea.KeyMsg
		want        Decision
		interrupted bool
	}{
		{"lowercase r retries", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")}, Retry, false},
		{"uppercase R retries", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("R")}, Retry, false},
		{"enter accepts", tea.KeyMsg{Type: tea.KeyEnter}, Accept, false},
		{"space accepts", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}, Accept, false},
		{"other letter accepts", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")}, Accept, false},
		{"escape accepts", tea.KeyMsg{Type: tea.KeyEsc}, Accept, false},
		{"ctrl+c interrupts", tea.KeyMsg{Type: tea.KeyCtrlC}, Accept, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newKeypressModel(DefaultPrompt, defaultKeyMap())
			m, cmd := press(m, tt.msg)

			require.NotNil(t, cmd, "the first key must quit the program")
			assert.IsType(t, tea.QuitMsg{}, cmd())
			assert.True(t, m.done)
			assert.Equal(t, tt.want, m.decision)
			assert.Equal(t, tt.interrupted, m.interrupted)
		})
	}
}

func TestKeypressModelIgnoresNonKeyMessages(t *testing.T) {
	m := newKeypressModel(DefaultPrompt, defaultKeyMap())
	next, cmd := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	assert.Nil(t, cmd)
	assert.False(t, next.(keypressModel).done)
}

func TestKeypressModelView(t *testing.T) {
	m := newKeypressModel("press a key", defaultKeyMap())
	assert.True(t, strings.Contains(m.View(), "press a key"))

	accepted, _ := press(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Empty(t, accepted.View())

	retried, _ := press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	assert.Contains(t, retried.View(), "retrying")
}

func TestTerminalGateRejectsNonTerminal(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	var out bytes.Buffer
	g := NewTerminalGate(r, &out)

	_, err = g.Confirm(context.Background())

	var devErr *InputDeviceError
	require.True(t, errors.As(err, &devErr))
	assert.ErrorIs(t, err, errNotTerminal)
	assert.Empty(t, out.String(), "nothing is drawn when the device is unusable")
}
