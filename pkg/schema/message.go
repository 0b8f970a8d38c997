package schema

import (
	"strings"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Message is one prior turn of a conversation
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Conversation is the ordered list of prior turns, oldest first
type Conversation []Message

////////////////////////////////////////////////////////////////////////////////
// CONSTANTS

// Message role constants
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
	RoleDeveloper = "developer"
	RoleModel     = "model"
)

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewMessage returns a message with the role normalised to lower case
func NewMessage(role, content string) Message {
	return Message{
		Role:    strings.ToLower(strings.TrimSpace(role)),
		Content: content,
	}
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// WithoutSystem returns the conversation with any system turns removed
func (c Conversation) WithoutSystem() Conversation {
	result := make(Conversation, 0, len(c))
	for _, message := range c {
		if message.Role != RoleSystem {
			result = append(result, message)
		}
	}
	return result
}

func (m Message) String() string {
	return Stringify(m)
}
