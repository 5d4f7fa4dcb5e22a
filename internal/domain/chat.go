package domain

import "time"

// ChatRole identifies the author of a transcript message.
type ChatRole string

// Chat roles.
const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

// ChatMessage is one entry in the advisor conversation transcript.
// The transcript is append-only; clearing removes all history.
type ChatMessage struct {
	Timestamp time.Time `json:"timestamp"`
	ID        string    `json:"id"`
	Role      ChatRole  `json:"role"`
	Content   string    `json:"content"`
}
