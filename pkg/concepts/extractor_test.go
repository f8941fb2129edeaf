package concepts

import (
	"context"
	"errors"
	"testing"

	"companion-chat-be/pkg/llm"

	"github.com/google/uuid"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

type fakeLLM struct {
	response string
	err      error
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return f.response, f.err
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return f.response, f.err
}

func TestExtractParsesObservations(t *testing.T) {
	e := NewExtractor(&fakeLLM{response: `[
		{"concept_key": "separates_feeling_from_fact", "confidence": 7, "evidence": "I know feeling this way doesn't make it true"},
		{"concept_key": "names_emotions_precisely", "confidence": 5, "evidence": "it's more disappointment than anger"}
	]`}, nopLogger{})

	msgId := uuid.New()
	obs := e.Extract(context.Background(), "some message", nil, msgId)

	if len(obs) != 2 {
		t.Fatalf("got %d observations, want 2", len(obs))
	}
	if obs[0].ConceptKey != "separates_feeling_from_fact" || obs[0].Confidence != 7 {
		t.Errorf("first observation = %+v", obs[0])
	}
	if obs[0].MessageId != msgId {
		t.Error("observation not tagged with the source message id")
	}
	if obs[0].ObservedAt.IsZero() {
		t.Error("ObservedAt not set")
	}
}

func TestExtractToleratesChattyResponse(t *testing.T) {
	e := NewExtractor(&fakeLLM{response: "Sure! Here's what I found:\n" +
		`[{"concept_key": "accepts_discomfort", "confidence": 6, "evidence": "sitting with it"}]` +
		"\nLet me know if you need more."}, nopLogger{})

	obs := e.Extract(context.Background(), "msg", nil, uuid.New())
	if len(obs) != 1 || obs[0].ConceptKey != "accepts_discomfort" {
		t.Errorf("got %+v, want the single wrapped observation", obs)
	}
}

func TestExtractDropsUnknownKeysAndClamps(t *testing.T) {
	e := NewExtractor(&fakeLLM{response: `[
		{"concept_key": "made_up_concept", "confidence": 9, "evidence": "x"},
		{"concept_key": "observes_without_judging", "confidence": 99, "evidence": "y"},
		{"concept_key": "notices_bodily_signals", "confidence": -3, "evidence": "z"}
	]`}, nopLogger{})

	obs := e.Extract(context.Background(), "msg", nil, uuid.New())

	if len(obs) != 2 {
		t.Fatalf("got %d observations, want 2 (unknown key dropped)", len(obs))
	}
	if obs[0].Confidence != 10 {
		t.Errorf("confidence 99 clamped to %d, want 10", obs[0].Confidence)
	}
	if obs[1].Confidence != 0 {
		t.Errorf("confidence -3 clamped to %d, want 0", obs[1].Confidence)
	}
}

func TestExtractEmptyOnFailure(t *testing.T) {
	t.Run("provider error", func(t *testing.T) {
		e := NewExtractor(&fakeLLM{err: errors.New("timeout")}, nopLogger{})
		if obs := e.Extract(context.Background(), "msg", nil, uuid.New()); obs != nil {
			t.Errorf("got %+v, want nil", obs)
		}
	})

	t.Run("malformed payload", func(t *testing.T) {
		e := NewExtractor(&fakeLLM{response: "I couldn't decide on a format"}, nopLogger{})
		if obs := e.Extract(context.Background(), "msg", nil, uuid.New()); obs != nil {
			t.Errorf("got %+v, want nil", obs)
		}
	})

	t.Run("empty array", func(t *testing.T) {
		e := NewExtractor(&fakeLLM{response: "[]"}, nopLogger{})
		if obs := e.Extract(context.Background(), "msg", nil, uuid.New()); len(obs) != 0 {
			t.Errorf("got %+v, want none", obs)
		}
	})
}
