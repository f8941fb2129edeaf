package contract

import (
	"context"

	"companion-chat-be/internal/entity"
	"companion-chat-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ConceptMasteryRepository interface {
	Create(ctx context.Context, mastery *entity.ConceptMastery) error

	// FindForUpdate loads a mastery row under SELECT ... FOR UPDATE so the
	// read-modify-write cycle is atomic within the surrounding transaction.
	// Returns (nil, nil) when no row exists for the key.
	FindForUpdate(ctx context.Context, userId uuid.UUID, conceptKey string) (*entity.ConceptMastery, error)

	Update(ctx context.Context, mastery *entity.ConceptMastery) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ConceptMastery, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ConceptMastery, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
