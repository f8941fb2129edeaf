package service

import (
	"context"
	"encoding/json"

	"companion-chat-be/internal/dto"
	"companion-chat-be/internal/pkg/logger"
	redisrepo "companion-chat-be/internal/repository/redis"
	"companion-chat-be/pkg/concepts"
	"companion-chat-be/pkg/events"
	"companion-chat-be/pkg/mastery"
	pktNats "companion-chat-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConceptConsumerService interface {
	Consume(ctx context.Context) error
}

// conceptConsumerService runs the concept-extraction → mastery-update path
// after the reply has already been delivered. Nothing here is allowed to
// affect a user-visible outcome, so every failure ends in Ack + log.
type conceptConsumerService struct {
	pubSub         *gochannel.GoChannel
	topicName      string
	extractor      *concepts.Extractor
	updater        *mastery.Updater
	windowRepo     *redisrepo.WindowRepository
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewConceptConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	extractor *concepts.Extractor,
	updater *mastery.Updater,
	windowRepo *redisrepo.WindowRepository,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IConceptConsumerService {
	return &conceptConsumerService{
		pubSub:         pubSub,
		topicName:      topicName,
		extractor:      extractor,
		updater:        updater,
		windowRepo:     windowRepo,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func (cs *conceptConsumerService) Consume(ctx context.Context) error {
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

func (cs *conceptConsumerService) processMessage(ctx context.Context, msg *message.Message) {
	defer msg.Ack()

	var payload dto.PublishExtractConceptsMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("ConceptConsumer", "Failed to unmarshal message", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	recentContext, err := cs.windowRepo.Recent(ctx, payload.ConversationId, 10)
	if err != nil {
		cs.logger.Warn("ConceptConsumer", "Window read failed, extracting without context", map[string]interface{}{
			"error": err.Error(),
		})
		recentContext = nil
	}

	observations := cs.extractor.Extract(ctx, payload.Content, recentContext, payload.MessageId)
	if len(observations) == 0 {
		return
	}

	updated, err := cs.updater.Apply(ctx, payload.UserId, observations)
	var failedConcepts []string
	if err != nil {
		if aggErr, ok := err.(*mastery.ConceptUpdateError); ok {
			for key := range aggErr.Failures {
				failedConcepts = append(failedConcepts, key)
			}
		}
		cs.logger.Error("ConceptConsumer", "Mastery batch finished with failures", map[string]interface{}{
			"user_id": payload.UserId,
			"updated": updated,
			"error":   err.Error(),
		})
	}

	if cs.eventPublisher != nil && updated > 0 {
		evt := events.NewMasteryUpdatedEvent(payload.UserId.String(), updated, failedConcepts)
		if pubErr := cs.eventPublisher.Publish(ctx, evt); pubErr != nil {
			cs.logger.Warn("ConceptConsumer", "Failed to publish mastery-updated event", map[string]interface{}{
				"error": pubErr.Error(),
			})
		}
	}
}
