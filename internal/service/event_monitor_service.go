package service

import (
	"context"
	"fmt"

	"companion-chat-be/internal/pkg/logger"
	"companion-chat-be/pkg/events"
	pktNats "companion-chat-be/pkg/nats"
)

// IEventMonitorService consumes the durable event stream and surfaces
// guard corrections and mastery batches in the structured log. It is the
// in-process audit tail for everything the publishers emit.
type IEventMonitorService interface {
	Run() error
	Close()
}

type eventMonitorService struct {
	subscriber *pktNats.Subscriber
	logger     logger.ILogger
}

func NewEventMonitorService(subscriber *pktNats.Subscriber, log logger.ILogger) IEventMonitorService {
	return &eventMonitorService{
		subscriber: subscriber,
		logger:     log,
	}
}

// Run registers the durable consumers and returns; delivery happens on
// the subscriber's own goroutines. A nil subscriber (NATS down at boot)
// disables monitoring without failing startup.
func (s *eventMonitorService) Run() error {
	if s.subscriber == nil {
		s.logger.Warn("EventMonitor", "NATS unavailable, event monitor disabled", nil)
		return nil
	}

	if err := s.subscriber.Subscribe(subjectFor(events.TypeReplyFlagged), "monitor-reply-flagged", s.handleReplyFlagged); err != nil {
		return err
	}
	if err := s.subscriber.Subscribe(subjectFor(events.TypeMasteryUpdated), "monitor-mastery-updated", s.handleMasteryUpdated); err != nil {
		return err
	}
	return nil
}

func (s *eventMonitorService) Close() {
	if s.subscriber != nil {
		s.subscriber.Close()
	}
}

func (s *eventMonitorService) handleReplyFlagged(_ context.Context, event events.Event) error {
	payload := event.Payload()
	details := map[string]interface{}{
		"conversation_id": payload["conversation_id"],
		"message_id":      payload["message_id"],
		"issue_types":     payload["issue_types"],
	}

	if critical, _ := payload["critical"].(bool); critical {
		s.logger.Warn("EventMonitor", "Critical guard correction delivered", details)
		return nil
	}
	s.logger.Info("EventMonitor", "Reply flagged by guard", details)
	return nil
}

func (s *eventMonitorService) handleMasteryUpdated(_ context.Context, event events.Event) error {
	payload := event.Payload()
	details := map[string]interface{}{
		"user_id":       payload["user_id"],
		"updated_count": payload["updated_count"],
	}

	if failed, ok := payload["failed_concepts"].([]interface{}); ok && len(failed) > 0 {
		details["failed_concepts"] = failed
		s.logger.Warn("EventMonitor", "Mastery batch had failed concepts", details)
		return nil
	}
	s.logger.Info("EventMonitor", "Mastery batch applied", details)
	return nil
}

func subjectFor(eventType string) string {
	return fmt.Sprintf("events.%s", eventType)
}
