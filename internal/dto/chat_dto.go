package dto

import (
	"time"

	"github.com/google/uuid"
)

// Title is optional; an untitled conversation is named after the first
// user message.
type CreateConversationRequest struct {
	Title string `json:"title" validate:"max=200"`
}

type CreateConversationResponse struct {
	Id uuid.UUID `json:"id"`
}

type ConversationResponse struct {
	Id        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type SendMessageRequest struct {
	ConversationId uuid.UUID `json:"conversation_id" validate:"required"`
	Content        string    `json:"content" validate:"required,max=4000"`
}

type SendMessageResponse struct {
	MessageId     uuid.UUID `json:"message_id"`
	Reply         string    `json:"reply"`
	QueryType     string    `json:"query_type"`
	UsedRetrieval bool      `json:"used_retrieval"`
	SkipReason    string    `json:"skip_reason,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type MessageResponse struct {
	Id        uuid.UUID `json:"id"`
	Sender    string    `json:"sender"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type ConversationHistoryResponse struct {
	ConversationId uuid.UUID         `json:"conversation_id"`
	Messages       []MessageResponse `json:"messages"`
}
