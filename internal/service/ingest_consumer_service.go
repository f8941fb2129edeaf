package service

import (
	"context"
	"encoding/json"
	"time"

	"companion-chat-be/internal/constant"
	"companion-chat-be/internal/dto"
	"companion-chat-be/internal/entity"
	"companion-chat-be/internal/pkg/logger"
	"companion-chat-be/internal/repository/specification"
	"companion-chat-be/internal/repository/unitofwork"
	"companion-chat-be/pkg/embedding"
	"companion-chat-be/pkg/utils"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IIngestConsumerService interface {
	Consume(ctx context.Context) error
}

// ingestConsumerService chunks and embeds knowledge documents off the
// request path.
type ingestConsumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	logger            logger.ILogger
}

func NewIngestConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	log logger.ILogger,
) IIngestConsumerService {
	return &ingestConsumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		logger:            log,
	}
}

func (cs *ingestConsumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *ingestConsumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishIngestKnowledgeMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("IngestConsumer", "Failed to unmarshal message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // malformed payloads never become processable, drop them
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	document, err := uow.KnowledgeDocumentRepository().FindOne(ctx, specification.ByID{ID: payload.DocumentId})
	if err != nil {
		cs.logger.Error("IngestConsumer", "Failed to load document", map[string]interface{}{
			"document_id": payload.DocumentId,
			"error":       err.Error(),
		})
		msg.Nack()
		return
	}
	if document == nil {
		cs.logger.Warn("IngestConsumer", "Document vanished before ingestion", map[string]interface{}{
			"document_id": payload.DocumentId,
		})
		msg.Ack()
		return
	}

	texts := utils.SplitText(document.Body, constant.KnowledgeChunkSize, constant.KnowledgeChunkOverlap)

	chunks := make([]*entity.KnowledgeChunk, 0, len(texts))
	for i, text := range texts {
		res, err := cs.embeddingProvider.Generate(text, "RETRIEVAL_DOCUMENT")
		if err != nil {
			cs.logger.Error("IngestConsumer", "Embedding failed", map[string]interface{}{
				"document_id": document.Id,
				"chunk_index": i,
				"error":       err.Error(),
			})
			msg.Nack()
			return
		}
		chunks = append(chunks, &entity.KnowledgeChunk{
			Id:         uuid.New(),
			DocumentId: document.Id,
			Source:     document.Source,
			Content:    text,
			Embedding:  res.Embedding.Values,
			ChunkIndex: i,
			CreatedAt:  time.Now(),
		})
	}

	// Re-ingestion replaces: old chunks go first so a retry never leaves
	// duplicates behind.
	if err := uow.Begin(ctx); err != nil {
		msg.Nack()
		return
	}
	if err := uow.KnowledgeChunkRepository().DeleteByDocumentId(ctx, document.Id); err != nil {
		_ = uow.Rollback()
		msg.Nack()
		return
	}
	if err := uow.KnowledgeChunkRepository().CreateBulk(ctx, chunks); err != nil {
		cs.logger.Error("IngestConsumer", "Failed to store chunks", map[string]interface{}{
			"document_id": document.Id,
			"error":       err.Error(),
		})
		_ = uow.Rollback()
		msg.Nack()
		return
	}
	if err := uow.Commit(); err != nil {
		msg.Nack()
		return
	}

	cs.logger.Info("IngestConsumer", "Document ingested", map[string]interface{}{
		"document_id": document.Id,
		"chunks":      len(chunks),
	})
	msg.Ack()
}
