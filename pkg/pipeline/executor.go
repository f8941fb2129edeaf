// Package pipeline orchestrates one conversational turn:
// classify → detect context → retrieve (when warranted) → compose →
// generate → validate. Everything upstream of the generated reply degrades
// gracefully; a GenerationError is the only failure that aborts the turn.
package pipeline

import (
	"context"
	"time"

	"companion-chat-be/internal/pkg/logger"
	"companion-chat-be/internal/repository/contract"
	"companion-chat-be/pkg/classify"
	"companion-chat-be/pkg/guard"
	"companion-chat-be/pkg/llm"
	"companion-chat-be/pkg/persona"
	"companion-chat-be/pkg/religion"
	"companion-chat-be/pkg/store"
)

// KnowledgeRetriever is the retrieval seam; the production implementation
// is retrieval.Retriever.
type KnowledgeRetriever interface {
	Retrieve(ctx context.Context, repo contract.KnowledgeChunkRepository, query string) []store.Passage
}

// Executor runs the full turn pipeline.
type Executor struct {
	llmProvider llm.LLMProvider
	retriever   KnowledgeRetriever
	logger      logger.ILogger
	now         func() time.Time
}

func NewExecutor(llmProvider llm.LLMProvider, retriever KnowledgeRetriever, log logger.ILogger) *Executor {
	return &Executor{
		llmProvider: llmProvider,
		retriever:   retriever,
		logger:      log,
		now:         time.Now,
	}
}

// Input is everything one turn needs. RecentMessages feed religion
// detection (most-recent last); History is the model-facing transcript.
type Input struct {
	Query          string
	History        []llm.Message
	RecentMessages []string
	Session        *store.Session
	ChunkRepo      contract.KnowledgeChunkRepository
}

// Result is the validated reply plus the signals the caller persists,
// publishes, or hands to the concept-extraction path.
type Result struct {
	Reply          string
	Classification classify.Result
	Religion       religion.Context
	Passages       []store.Passage
	Guard          guard.Result
}

// Execute runs one turn. The only error it returns is a generation
// failure; retrieval and validation problems are absorbed into the result.
func (e *Executor) Execute(ctx context.Context, in Input) (*Result, error) {
	classification := classify.Classify(in.Query)
	religionCtx := religion.Detect(in.RecentMessages)

	e.logger.Debug("Pipeline", "Turn classified", map[string]interface{}{
		"query_type":     string(classification.QueryType),
		"used_retrieval": classification.UsedRetrieval,
		"skip_reason":    string(classification.SkipReason),
		"religion":       string(religionCtx),
	})

	if classification.QueryType == classify.QueryTypeOffTopic {
		return e.executeRedirect(ctx, in, classification, religionCtx)
	}

	var passages []store.Passage
	if classification.UsedRetrieval && classification.SkipReason != classify.SkipShortEmotional {
		passages = e.retriever.Retrieve(ctx, in.ChunkRepo, in.Query)
	}

	builder := persona.NewBuilder(e.now()).
		WithReligion(religionCtx).
		WithKnowledge(passages)
	if in.Session != nil {
		builder.WithSession(in.Session)
	}
	instruction := builder.Build()

	reply, err := e.generate(ctx, instruction, in.History, in.Query)
	if err != nil {
		return nil, err
	}

	guardResult := e.validate(reply, religionCtx, in)

	return &Result{
		Reply:          guardResult.CorrectedText,
		Classification: classification,
		Religion:       religionCtx,
		Passages:       passages,
		Guard:          guardResult,
	}, nil
}

// executeRedirect handles off-topic turns: a reduced-scope instruction and
// a single-turn history, since the deflection needs no conversation memory.
func (e *Executor) executeRedirect(ctx context.Context, in Input, classification classify.Result, religionCtx religion.Context) (*Result, error) {
	instruction := persona.NewBuilder(e.now()).
		WithReligion(religionCtx).
		WithOffTopicRedirect().
		Build()

	reply, err := e.generate(ctx, instruction, nil, in.Query)
	if err != nil {
		return nil, err
	}

	guardResult := e.validate(reply, religionCtx, in)

	return &Result{
		Reply:          guardResult.CorrectedText,
		Classification: classification,
		Religion:       religionCtx,
		Guard:          guardResult,
	}, nil
}

func (e *Executor) generate(ctx context.Context, instruction string, history []llm.Message, query string) (string, error) {
	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: "system", Content: instruction})
	messages = append(messages, history...)
	messages = append(messages, llm.Message{Role: "user", Content: query})

	reply, err := e.llmProvider.Chat(ctx, messages, llm.WithTemperature(0.7))
	if err != nil {
		e.logger.Error("Pipeline", "Generation failed, aborting turn", map[string]interface{}{
			"error": err.Error(),
		})
		return "", err
	}
	return reply, nil
}

func (e *Executor) validate(reply string, religionCtx religion.Context, in Input) guard.Result {
	// Session state remembers a list request from the current turn even
	// when the wording alone would not re-trigger the pattern.
	askedForList := classify.IsListRequest(in.Query)
	if in.Session != nil {
		askedForList = askedForList || in.Session.ListRequested
	}

	guardResult := guard.Validate(reply, guard.Context{
		UserReligion:     religionCtx,
		UserAskedForList: askedForList,
	})

	if len(guardResult.Issues) > 0 {
		e.logger.Warn("Pipeline", "Reply required correction", map[string]interface{}{
			"issues":   guardResult.Issues,
			"critical": guardResult.HadCriticalIssues,
		})
	}
	return guardResult
}
