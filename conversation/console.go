package conversation

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	dimColor    = lipgloss.Color("7")
	accentColor = lipgloss.Color("12")

	// Model name above each generated turn
	speakerStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	// "preparing" and summary lines
	statusStyle = lipgloss.NewStyle().
			Foreground(dimColor)
)

// Console prints the exchange for the operator as it happens.
type Console struct {
	out io.Writer
}

// NewConsole returns a console writing to out. A nil writer discards output.
func NewConsole(out io.Writer) *Console {
	if out == nil {
		out = io.Discard
	}
	return &Console{out: out}
}

func (c *Console) Preparing(modelID string) {
	fmt.Fprintf(c.out, "\n%s\n\n", statusStyle.Render(modelID+" preparing its message, please wait..."))
}

// Turn prints a generated (already normalized) turn.
func (c *Console) Turn(modelID, text string) {
	fmt.Fprintf(c.out, "%s\n%s\n\n", speakerStyle.Render(modelID+":"), text)
}

func (c *Console) Finished(res *Result) {
	fmt.Fprintf(c.out, "%s\n", statusStyle.Render(fmt.Sprintf(
		"Conversation finished: %d turns accepted, %d retried. Transcript: %s",
		res.AcceptedTurns, res.Retries, res.TranscriptPath,
	)))
}
