package contract

import (
	"context"

	"companion-chat-be/internal/entity"
	"companion-chat-be/internal/repository/specification"

	"github.com/google/uuid"
)

type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Message, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// FindRecentByConversation returns the newest `limit` messages of a
	// conversation in chronological order (oldest first).
	FindRecentByConversation(ctx context.Context, conversationId uuid.UUID, limit int) ([]*entity.Message, error)

	DeleteByConversationId(ctx context.Context, conversationId uuid.UUID) error
}
