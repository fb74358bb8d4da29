package gate

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

const DefaultPrompt = "Press 'R' to retry the generation or press 'Enter/Return' to continue."

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	keyStyle    = lipgloss.NewStyle().Bold(true)
)

var errNotTerminal = errors.New("not a terminal")

type keyMap struct {
	Retry     key.Binding
	Interrupt key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Retry: key.NewBinding(
			key.WithKeys("r", "R"),
			key.WithHelp("r", "retry"),
		),
		Interrupt: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "abort run"),
		),
	}
}

// TerminalGate reads a single keystroke from an interactive terminal.
//
// The terminal is switched to raw mode only for the duration of Confirm and
// restored on every exit path, including errors; bubbletea owns that
// lifecycle.
type TerminalGate struct {
	in     *os.File
	out    io.Writer
	prompt string
	keys   keyMap
}

// NewTerminalGate creates a gate reading from in and drawing its prompt to out.
func NewTerminalGate(in *os.File, out io.Writer) *TerminalGate {
	return &TerminalGate{
		in:     in,
		out:    out,
		prompt: DefaultPrompt,
		keys:   defaultKeyMap(),
	}
}

// Confirm blocks until one key is pressed. 'r' or 'R' means Retry; any other
// key, including Enter, means Accept.
func (g *TerminalGate) Confirm(ctx context.Context) (Decision, error) {
	fd := g.in.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return Accept, &InputDeviceError{Device: g.in.Name(), Err: errNotTerminal}
	}

	p := tea.NewProgram(
		newKeypressModel(g.prompt, g.keys),
		tea.WithInput(g.in),
		tea.WithOutput(g.out),
		tea.WithContext(ctx),
	)

	final, err := p.Run()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Accept, ctxErr
		}
		return Accept, &InputDeviceError{Device: g.in.Name(), Err: err}
	}

	m, ok := final.(keypressModel)
	if !ok {
		return Accept, &InputDeviceError{Device: g.in.Name(), Err: errors.New("unexpected program state")}
	}
	if m.interrupted {
		return Accept, ErrInterrupted
	}
	return m.decision, nil
}

// keypressModel is a one-shot bubbletea model: it quits on the first key.
type keypressModel struct {
	prompt      string
	keys        keyMap
	decision    Decision
	interrupted bool
	done        bool
}

func newKeypressModel(prompt string, keys keyMap) keypressModel {
	return keypressModel{prompt: prompt, keys: keys}
}

func (m keypressModel) Init() tea.Cmd {
	return nil
}

func (m keypressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Interrupt):
		m.interrupted = true
	case key.Matches(keyMsg, m.keys.Retry):
		m.decision = Retry
	default:
		m.decision = Accept
	}

	m.done = true
	return m, tea.Quit
}

func (m keypressModel) View() string {
	if m.done {
		if m.decision == Retry {
			return keyStyle.Render("retrying...") + "\n"
		}
		return ""
	}
	return promptStyle.Render(m.prompt) + "\n"
}
