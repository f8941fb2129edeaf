package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"companion-chat-be/internal/dto"
	"companion-chat-be/internal/entity"
	"companion-chat-be/internal/repository/specification"
	"companion-chat-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IKnowledgeService interface {
	Ingest(ctx context.Context, req *dto.IngestDocumentRequest) (*dto.IngestDocumentResponse, error)
	GetAllDocuments(ctx context.Context) ([]*dto.DocumentResponse, error)
	DeleteDocument(ctx context.Context, id uuid.UUID) error
}

type knowledgeService struct {
	uowFactory      unitofwork.RepositoryFactory
	ingestPublisher IPublisherService
}

func NewKnowledgeService(uowFactory unitofwork.RepositoryFactory, ingestPublisher IPublisherService) IKnowledgeService {
	return &knowledgeService{
		uowFactory:      uowFactory,
		ingestPublisher: ingestPublisher,
	}
}

// Ingest stores the document and hands chunking/embedding to the async
// consumer. The document is searchable once the consumer finishes.
func (s *knowledgeService) Ingest(ctx context.Context, req *dto.IngestDocumentRequest) (*dto.IngestDocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	document := entity.KnowledgeDocument{
		Id:        uuid.New(),
		Source:    req.Source,
		Title:     req.Title,
		Body:      req.Body,
		CreatedAt: time.Now(),
	}
	if err := uow.KnowledgeDocumentRepository().Create(ctx, &document); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(dto.PublishIngestKnowledgeMessage{DocumentId: document.Id})
	if err != nil {
		return nil, err
	}
	if err := s.ingestPublisher.Publish(ctx, payload); err != nil {
		return nil, err
	}

	return &dto.IngestDocumentResponse{Id: document.Id}, nil
}

func (s *knowledgeService) GetAllDocuments(ctx context.Context) ([]*dto.DocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	documents, err := uow.KnowledgeDocumentRepository().FindAll(ctx,
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.DocumentResponse, 0, len(documents))
	for _, d := range documents {
		chunkCount, err := uow.KnowledgeChunkRepository().Count(ctx,
			specification.FilterBy{Field: "document_id", Value: d.Id},
		)
		if err != nil {
			return nil, err
		}
		response = append(response, &dto.DocumentResponse{
			Id:         d.Id,
			Source:     d.Source,
			Title:      d.Title,
			ChunkCount: chunkCount,
			CreatedAt:  d.CreatedAt,
		})
	}

	return response, nil
}

func (s *knowledgeService) DeleteDocument(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	document, err := uow.KnowledgeDocumentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if document == nil {
		return fmt.Errorf("document not found")
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.KnowledgeChunkRepository().DeleteByDocumentId(ctx, id); err != nil {
		return err
	}
	if err := uow.KnowledgeDocumentRepository().Delete(ctx, id); err != nil {
		return err
	}
	return uow.Commit()
}
