package service

import (
	"context"
	"testing"

	"companion-chat-be/pkg/events"
)

type logEntry struct {
	level   string
	message string
	details map[string]interface{}
}

type recordingLogger struct {
	entries []logEntry
}

func (r *recordingLogger) Debug(_, message string, details map[string]interface{}) {
	r.entries = append(r.entries, logEntry{"debug", message, details})
}

func (r *recordingLogger) Info(_, message string, details map[string]interface{}) {
	r.entries = append(r.entries, logEntry{"info", message, details})
}

func (r *recordingLogger) Warn(_, message string, details map[string]interface{}) {
	r.entries = append(r.entries, logEntry{"warn", message, details})
}

func (r *recordingLogger) Error(_, message string, details map[string]interface{}) {
	r.entries = append(r.entries, logEntry{"error", message, details})
}

func (r *recordingLogger) Sync() error { return nil }

func TestEventMonitorReplyFlagged(t *testing.T) {
	log := &recordingLogger{}
	monitor := NewEventMonitorService(nil, log).(*eventMonitorService)

	// Non-critical flags land at info level.
	err := monitor.handleReplyFlagged(context.Background(), events.BaseEvent{
		Type: events.TypeReplyFlagged,
		Data: map[string]interface{}{
			"conversation_id": "c1",
			"message_id":      "m1",
			"issue_types":     []interface{}{"reply_too_long"},
			"critical":        false,
		},
	})
	if err != nil {
		t.Fatalf("handleReplyFlagged() error = %v", err)
	}
	if len(log.entries) != 1 || log.entries[0].level != "info" {
		t.Fatalf("entries = %+v, want one info entry", log.entries)
	}
	if log.entries[0].details["message_id"] != "m1" {
		t.Error("message id missing from log details")
	}

	// Critical corrections escalate to warn.
	log.entries = nil
	err = monitor.handleReplyFlagged(context.Background(), events.BaseEvent{
		Type: events.TypeReplyFlagged,
		Data: map[string]interface{}{
			"conversation_id": "c1",
			"message_id":      "m2",
			"issue_types":     []interface{}{"identity_disclosure"},
			"critical":        true,
		},
	})
	if err != nil {
		t.Fatalf("handleReplyFlagged() error = %v", err)
	}
	if len(log.entries) != 1 || log.entries[0].level != "warn" {
		t.Fatalf("entries = %+v, want one warn entry", log.entries)
	}
}

func TestEventMonitorMasteryUpdated(t *testing.T) {
	log := &recordingLogger{}
	monitor := NewEventMonitorService(nil, log).(*eventMonitorService)

	err := monitor.handleMasteryUpdated(context.Background(), events.BaseEvent{
		Type: events.TypeMasteryUpdated,
		Data: map[string]interface{}{
			"user_id":         "u1",
			"updated_count":   float64(3),
			"failed_concepts": []interface{}{},
		},
	})
	if err != nil {
		t.Fatalf("handleMasteryUpdated() error = %v", err)
	}
	if len(log.entries) != 1 || log.entries[0].level != "info" {
		t.Fatalf("entries = %+v, want one info entry", log.entries)
	}

	log.entries = nil
	err = monitor.handleMasteryUpdated(context.Background(), events.BaseEvent{
		Type: events.TypeMasteryUpdated,
		Data: map[string]interface{}{
			"user_id":         "u1",
			"updated_count":   float64(2),
			"failed_concepts": []interface{}{"names_racing_thoughts"},
		},
	})
	if err != nil {
		t.Fatalf("handleMasteryUpdated() error = %v", err)
	}
	if len(log.entries) != 1 || log.entries[0].level != "warn" {
		t.Fatalf("entries = %+v, want one warn entry", log.entries)
	}
}

func TestEventMonitorRunWithoutBroker(t *testing.T) {
	log := &recordingLogger{}
	monitor := NewEventMonitorService(nil, log)

	if err := monitor.Run(); err != nil {
		t.Fatalf("Run() without a broker must degrade, got error %v", err)
	}
	if len(log.entries) != 1 || log.entries[0].level != "warn" {
		t.Fatalf("entries = %+v, want one warn entry", log.entries)
	}
	monitor.Close()
}
