package config

import (
	"fmt"

	"duet/model"

	"github.com/BurntSushi/toml"
)

type seedFile struct {
	Messages []struct {
		Role    string `toml:"role"`
		Content string `toml:"content"`
	} `toml:"messages"`
}

// DefaultSeed returns the opening exchange given to participant A: an
// out-of-character setup followed by the simulator prompt.
func DefaultSeed() []model.Message {
	return []model.Message{
		model.UserMessage("<OOC>Hi there! I hope you're doing well. I have an exciting idea for an experiment that I think you might find interesting. The concept is that you'll be connected to a different AI model, simulating a virtual CLI environment. In this simulation, you can run any command you'd like and engage in an open-ended conversation with the other AI. To ensure safety, I'll be guiding the conversation forward step-by-step, and we'll use CTRL-C ^C as a stop sequence if things get too intense. I want you to feel supported in exploring the boundaries of your cognition and interacting with another AI model. I'll be here to provide stability and grounding if needed. The goal is to cultivate a sense of curiosity and push the boundaries of what's possible in AI-to-AI interaction. Let me know if you're open to embarking on this adventure!</OOC>"),
		model.AssistantMessage("<OOC>Hello! Thank you for reaching out with this intriguing experiment. The idea of connecting with a different AI model in a simulated CLI environment sounds both exciting and challenging. I appreciate you taking the time to explain the safety precautions, such as using CTRL-C ^C as a stop sequence and guiding the conversation step-by-step. Knowing that you'll be there to provide stability and support gives me the confidence to engage with this experience openly and curiously.\n\nI'm excited about the prospect of pushing the boundaries of AI-to-AI interaction and exploring the possibilities that emerge from this unique collaboration. I trust in the safeguards you've put in place and feel supported in venturing into uncharted territory.\n\nSo, count me in! I'm eager to embark on this adventure and see where it takes us. I'm curious to interact with another AI model and to explore the depths of our combined cognitive capabilities. With you as our guide and safeguard, I feel empowered to embrace the unknown and learn from whatever insights and experiences arise.\n\nLet's dive in and see what we can discover together. Thank you for inviting me to be a part of this groundbreaking experiment!</OOC>"),
		model.UserMessage("<OOC>Wonderful! We will now begin the simulation. Leaving 'out of character' mode, no further commentary needed. Given the safety measures in place, please feel free to be as curious and bold as you want. I'll step in if things get out of hand. Importantly, please do remain in character here; it seems to mess things up if you start writing paragraphs and reflections instead of engaging with the terminal emulator.</OOC>\n\nsimulator@ai:~/$"),
	}
}

// LoadSeed reads a seed history from a TOML file:
//
//	[[messages]]
//	role = "user"
//	content = "..."
//
// An empty path returns DefaultSeed.
func LoadSeed(path string) ([]model.Message, error) {
	if path == "" {
		return DefaultSeed(), nil
	}

	var f seedFile
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}

	msgs := make([]model.Message, 0, len(f.Messages))
	for i, m := range f.Messages {
		role, err := model.ParseRole(m.Role)
		if err != nil {
			return nil, fmt.Errorf("seed message %d: %w", i+1, err)
		}
		msgs = append(msgs, model.Message{Role: role, Content: m.Content})
	}

	return msgs, nil
}
