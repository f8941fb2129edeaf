package dto

import "github.com/google/uuid"

// PublishIngestKnowledgeMessage asks the ingestion consumer to chunk and
// embed a stored document.
type PublishIngestKnowledgeMessage struct {
	DocumentId uuid.UUID `json:"document_id"`
}

// PublishExtractConceptsMessage asks the concept consumer to analyze one
// substantive user message after the reply has already been delivered.
type PublishExtractConceptsMessage struct {
	UserId         uuid.UUID `json:"user_id"`
	ConversationId uuid.UUID `json:"conversation_id"`
	MessageId      uuid.UUID `json:"message_id"`
	Content        string    `json:"content"`
}
