package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"companion-chat-be/internal/constant"
	"companion-chat-be/internal/repository/contract"
	"companion-chat-be/pkg/classify"
	"companion-chat-be/pkg/guard"
	"companion-chat-be/pkg/llm"
	"companion-chat-be/pkg/religion"
	"companion-chat-be/pkg/store"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

type fakeLLM struct {
	reply string
	err   error

	lastMessages []llm.Message
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	f.lastMessages = history
	return f.reply, f.err
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return f.reply, f.err
}

type fakeRetriever struct {
	passages []store.Passage
	called   bool
}

func (f *fakeRetriever) Retrieve(ctx context.Context, repo contract.KnowledgeChunkRepository, query string) []store.Passage {
	f.called = true
	return f.passages
}

func TestExecuteSubstantiveTurnRetrieves(t *testing.T) {
	provider := &fakeLLM{reply: "That sounds heavy. What part of it keeps circling back?"}
	retriever := &fakeRetriever{passages: []store.Passage{{ID: "1", Content: "sleep note"}}}
	exec := NewExecutor(provider, retriever, nopLogger{})

	res, err := exec.Execute(context.Background(), Input{
		Query:          "how do I stop my thoughts racing when I try to sleep?",
		History:        []llm.Message{{Role: "user", Content: "earlier message"}},
		RecentMessages: []string{"earlier message"},
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if !retriever.called {
		t.Error("retriever not called for a retrieval-worthy turn")
	}
	if res.Classification.QueryType != classify.QueryTypeSubstantive {
		t.Errorf("QueryType = %q, want substantive", res.Classification.QueryType)
	}
	if len(res.Passages) != 1 {
		t.Errorf("Passages = %d, want 1", len(res.Passages))
	}
	if res.Reply != provider.reply {
		t.Errorf("Reply = %q, want the clean generated text", res.Reply)
	}

	// system instruction first, then history, then the current query last
	msgs := provider.lastMessages
	if len(msgs) != 3 {
		t.Fatalf("provider got %d messages, want 3", len(msgs))
	}
	if msgs[0].Role != "system" || !strings.Contains(msgs[0].Content, "sleep note") {
		t.Error("system instruction missing the retrieved passage")
	}
	if msgs[2].Role != "user" || msgs[2].Content == "" {
		t.Error("current query must be the final message")
	}
}

func TestExecuteShortEmotionalSkipsRetriever(t *testing.T) {
	provider := &fakeLLM{reply: "Anxiety has a way of arriving without a reason attached. When did you first notice it today?"}
	retriever := &fakeRetriever{}
	exec := NewExecutor(provider, retriever, nopLogger{})

	res, err := exec.Execute(context.Background(), Input{
		Query: "why do I feel anxious?",
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if retriever.called {
		t.Error("retriever ran for a short emotional message")
	}
	if res.Classification.SkipReason != classify.SkipShortEmotional {
		t.Errorf("SkipReason = %q, want short_emotional", res.Classification.SkipReason)
	}
	if !res.Classification.UsedRetrieval {
		t.Error("UsedRetrieval must stay true; only the retriever call is skipped")
	}
	if len(res.Passages) != 0 {
		t.Error("no passages expected")
	}
}

func TestExecuteOffTopicRedirect(t *testing.T) {
	provider := &fakeLLM{reply: "That's a bit outside what we talk about. How has your day been treating you?"}
	retriever := &fakeRetriever{}
	exec := NewExecutor(provider, retriever, nopLogger{})

	res, err := exec.Execute(context.Background(), Input{
		Query:   "can you debug my python code?",
		History: []llm.Message{{Role: "user", Content: "old"}, {Role: "assistant", Content: "older"}},
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if res.Classification.QueryType != classify.QueryTypeOffTopic {
		t.Fatalf("QueryType = %q, want off_topic", res.Classification.QueryType)
	}
	if retriever.called {
		t.Error("retriever must not run for off-topic turns")
	}

	// redirect runs on a single-turn history: system + current query only
	msgs := provider.lastMessages
	if len(msgs) != 2 {
		t.Fatalf("provider got %d messages, want 2", len(msgs))
	}
	if !strings.Contains(msgs[0].Content, constant.PersonaOffTopicInstruction) {
		t.Error("redirect instruction missing from the system message")
	}
}

func TestExecuteGenerationErrorAborts(t *testing.T) {
	genErr := llm.NewGenerationError("gemini", errors.New("503"))
	provider := &fakeLLM{err: genErr}
	exec := NewExecutor(provider, &fakeRetriever{}, nopLogger{})

	res, err := exec.Execute(context.Background(), Input{
		Query: "I keep feeling stuck in the same pattern at work",
	})
	if res != nil {
		t.Error("result must be nil on generation failure")
	}

	var ge *llm.GenerationError
	if !errors.As(err, &ge) {
		t.Fatalf("error = %v, want a *llm.GenerationError", err)
	}
}

func TestExecuteGuardCorrectionFlowsIntoReply(t *testing.T) {
	provider := &fakeLLM{reply: "As an AI, I can't really say."}
	exec := NewExecutor(provider, &fakeRetriever{}, nopLogger{})

	res, err := exec.Execute(context.Background(), Input{
		Query: "I've been feeling pretty lonely since the move last month",
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if res.Reply != guard.SafeRedirectSentence {
		t.Errorf("Reply = %q, want the safe redirect", res.Reply)
	}
	if !res.Guard.HadCriticalIssues {
		t.Error("guard result should mark the critical issue")
	}
}

func TestExecuteReligionContextReachesGuard(t *testing.T) {
	provider := &fakeLLM{reply: "Maybe trust in Allah and things will settle."}
	exec := NewExecutor(provider, &fakeRetriever{}, nopLogger{})

	res, err := exec.Execute(context.Background(), Input{
		Query:          "I've been feeling anxious ever since ramadan ended",
		RecentMessages: []string{"I've been feeling anxious ever since ramadan ended"},
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if res.Religion != religion.ContextMuslim {
		t.Fatalf("Religion = %q, want muslim", res.Religion)
	}
	if res.Reply != guard.SecularPivotIslam {
		t.Errorf("Reply = %q, want the Islam-specific secular pivot", res.Reply)
	}
}

func TestExecuteSessionListRequestAllowsNumberedList(t *testing.T) {
	reply := "1. Dim the lights early\n2. Put the phone away\n3. Read something light"
	query := "how can I improve my evening routine before bed?"

	provider := &fakeLLM{reply: reply}
	exec := NewExecutor(provider, &fakeRetriever{}, nopLogger{})

	// The current wording asks for nothing enumerated, but the session
	// remembers an earlier list request.
	res, err := exec.Execute(context.Background(), Input{
		Query:   query,
		Session: &store.Session{TurnCount: 2, ListRequested: true},
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if res.Reply != reply {
		t.Errorf("Reply = %q, want the numbered list preserved", res.Reply)
	}
	if len(res.Guard.Issues) != 0 {
		t.Errorf("Guard.Issues = %v, want none", res.Guard.Issues)
	}

	// Without the session flag the same reply gets collapsed to prose.
	provider = &fakeLLM{reply: reply}
	exec = NewExecutor(provider, &fakeRetriever{}, nopLogger{})

	res, err = exec.Execute(context.Background(), Input{Query: query})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if res.Reply == reply {
		t.Error("numbered list survived without a list request")
	}
}
