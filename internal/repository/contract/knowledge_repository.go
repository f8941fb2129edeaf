package contract

import (
	"context"

	"companion-chat-be/internal/entity"
	"companion-chat-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ScoredKnowledgeChunk pairs a chunk with its cosine similarity (0..1).
type ScoredKnowledgeChunk struct {
	Chunk      *entity.KnowledgeChunk
	Similarity float64
}

type KnowledgeDocumentRepository interface {
	Create(ctx context.Context, document *entity.KnowledgeDocument) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.KnowledgeDocument, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.KnowledgeDocument, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type KnowledgeChunkRepository interface {
	CreateBulk(ctx context.Context, chunks []*entity.KnowledgeChunk) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.KnowledgeChunk, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error

	// SearchSimilarWithScore runs a pgvector cosine search and returns
	// chunks at or above the similarity threshold, best first.
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, threshold float64) ([]*ScoredKnowledgeChunk, error)

	// SearchByKeywords returns chunks whose content matches ANY of the
	// keywords (case-insensitive), newest first.
	SearchByKeywords(ctx context.Context, keywords []string, limit int) ([]*entity.KnowledgeChunk, error)
}
