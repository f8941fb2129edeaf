package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "REPLY_FLAGGED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the generic implementation every domain event embeds.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Domain event types.
const (
	TypeReplyFlagged   = "REPLY_FLAGGED"
	TypeMasteryUpdated = "MASTERY_UPDATED"
)

// NewReplyFlaggedEvent records that the guard found issues in a generated
// reply. Critical issues were auto-fixed before the user saw them; this
// event is the monitoring trail.
func NewReplyFlaggedEvent(conversationId, messageId string, issueTypes []string, critical bool) Event {
	return BaseEvent{
		Type: TypeReplyFlagged,
		Data: map[string]interface{}{
			"conversation_id": conversationId,
			"message_id":      messageId,
			"issue_types":     issueTypes,
			"critical":        critical,
		},
		OccurredAt: time.Now(),
	}
}

// NewMasteryUpdatedEvent records a completed mastery batch for a user.
func NewMasteryUpdatedEvent(userId string, updatedCount int, failedConcepts []string) Event {
	return BaseEvent{
		Type: TypeMasteryUpdated,
		Data: map[string]interface{}{
			"user_id":         userId,
			"updated_count":   updatedCount,
			"failed_concepts": failedConcepts,
		},
		OccurredAt: time.Now(),
	}
}
