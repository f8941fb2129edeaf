package entity

import (
	"time"

	"github.com/google/uuid"
)

// KnowledgeDocument is the ingestion input: a reference text that gets
// split into chunks and embedded asynchronously.
type KnowledgeDocument struct {
	Id        uuid.UUID
	Source    string
	Title     string
	Body      string
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
}

// KnowledgeChunk is one embedded slice of a document. Read-only to the
// reply pipeline; written only by the ingestion consumer.
type KnowledgeChunk struct {
	Id         uuid.UUID
	DocumentId uuid.UUID
	Source     string
	Content    string
	Embedding  []float32
	ChunkIndex int
	CreatedAt  time.Time
}
