package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	windowKeyPrefix = "msgwindow"
	windowMaxSize   = 20
	windowTTL       = 30 * time.Minute
)

// WindowRepository keeps a short rolling window of recent user messages per
// conversation. The detection passes (religion, concept extraction) read
// from it instead of re-querying Postgres on every turn. Losing the window
// only weakens detection for a few turns, so Redis with a TTL is enough.
type WindowRepository struct {
	rdb *redis.Client
}

func NewWindowRepository(rdb *redis.Client) *WindowRepository {
	return &WindowRepository{rdb: rdb}
}

func (r *WindowRepository) key(conversationId uuid.UUID) string {
	return fmt.Sprintf("%s:%s", windowKeyPrefix, conversationId)
}

// Push appends a message to the window, trimming to the newest
// windowMaxSize entries and refreshing the TTL.
func (r *WindowRepository) Push(ctx context.Context, conversationId uuid.UUID, content string) error {
	key := r.key(conversationId)
	pipe := r.rdb.TxPipeline()
	pipe.LPush(ctx, key, content)
	pipe.LTrim(ctx, key, 0, windowMaxSize-1)
	pipe.Expire(ctx, key, windowTTL)
	_, err := pipe.Exec(ctx)
	return err
}

// Recent returns up to limit messages, newest first.
func (r *WindowRepository) Recent(ctx context.Context, conversationId uuid.UUID, limit int) ([]string, error) {
	if limit <= 0 || limit > windowMaxSize {
		limit = windowMaxSize
	}
	return r.rdb.LRange(ctx, r.key(conversationId), 0, int64(limit-1)).Result()
}

func (r *WindowRepository) Clear(ctx context.Context, conversationId uuid.UUID) error {
	return r.rdb.Del(ctx, r.key(conversationId)).Err()
}
