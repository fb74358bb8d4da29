package conversation

import (
	"slices"

	"duet/model"
)

// Participant is one side of the exchange: a model identifier and the
// history as that model sees it. The identifier never changes after
// construction and only the orchestrator appends to the history.
type Participant struct {
	modelID string
	history []model.Message
}

// NewParticipant creates a participant whose history starts as a copy of seed.
func NewParticipant(modelID string, seed []model.Message) *Participant {
	return &Participant{
		modelID: modelID,
		history: slices.Clone(seed),
	}
}

func (p *Participant) ModelID() string {
	return p.modelID
}

// History returns a copy of the participant's messages, oldest first.
func (p *Participant) History() []model.Message {
	return slices.Clone(p.history)
}

// Len returns the number of messages in the history.
func (p *Participant) Len() int {
	return len(p.history)
}

// commit records an accepted turn: the text is the speaker's own reply and
// the listener's incoming message. Both histories grow by exactly one.
func commit(speaker, listener *Participant, text string) {
	speaker.history = append(speaker.history, model.AssistantMessage(text))
	listener.history = append(listener.history, model.UserMessage(text))
}
