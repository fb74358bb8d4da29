package model

import "fmt"

// Role identifies who authored a message, relative to the history that owns it.
// The same text is "assistant" in the speaker's history and "user" in the
// listener's history.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Invert returns the role the same message carries in the other participant's history.
func (r Role) Invert() Role {
	switch r {
	case RoleUser:
		return RoleAssistant
	case RoleAssistant:
		return RoleUser
	default:
		return r
	}
}

// Label returns the capitalized role name used as a transcript header.
func (r Role) Label() string {
	switch r {
	case RoleUser:
		return "User"
	case RoleAssistant:
		return "Assistant"
	default:
		return string(r)
	}
}

// Valid reports whether r is one of the two conversation roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}

// ParseRole converts a config or file value to a Role.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("invalid role %q (want %q or %q)", s, RoleUser, RoleAssistant)
	}
	return r, nil
}

// Message represents one entry of a participant's history.
type Message struct {
	Role    Role
	Content string
}

func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

func AssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}
