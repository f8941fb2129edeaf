package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	MessageSenderUser      = "user"
	MessageSenderAssistant = "assistant"
)

// Message is immutable once persisted; the pipeline creates one user and
// (on success) one assistant message per turn.
type Message struct {
	Id             uuid.UUID
	ConversationId uuid.UUID
	UserId         uuid.UUID
	Sender         string
	Content        string
	CreatedAt      time.Time
}
