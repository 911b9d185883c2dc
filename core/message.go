package core

import "github.com/google/uuid"

// Role identifies the conversational origin of a Message.
type Role string

// Conversation roles understood by model providers.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
	RoleTool      Role = "tool"
)

// Message is a single role-tagged conversation unit. Messages are immutable
// value types; ordering within a slice defines the conversation order passed
// to a model.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// NewUserMessage constructs a user-authored text message.
func NewUserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// NewSystemMessage constructs a system instruction message.
func NewSystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// NewID generates a new unique identifier for runs.
func NewID() string { return uuid.NewString() }
