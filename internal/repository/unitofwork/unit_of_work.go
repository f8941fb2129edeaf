package unitofwork

import (
	"context"

	"companion-chat-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ConversationRepository() contract.ConversationRepository
	MessageRepository() contract.MessageRepository
	KnowledgeDocumentRepository() contract.KnowledgeDocumentRepository
	KnowledgeChunkRepository() contract.KnowledgeChunkRepository
	ConceptMasteryRepository() contract.ConceptMasteryRepository
}
