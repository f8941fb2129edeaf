// Package concepts extracts concept observations from a user message via a
// structured LLM call. Extraction is best-effort: every failure degrades
// to an empty observation list, never to an error for the caller.
package concepts

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"companion-chat-be/internal/entity"
	"companion-chat-be/internal/pkg/logger"
	"companion-chat-be/pkg/llm"

	"github.com/google/uuid"
)

// KnownConcepts enumerates the concept identifiers the product tracks.
// Observations with keys outside this set are dropped.
var KnownConcepts = map[string]bool{
	"recognizes_thought_impermanence": true,
	"separates_feeling_from_fact":     true,
	"names_emotions_precisely":        true,
	"notices_bodily_signals":          true,
	"identifies_rumination_loops":     true,
	"reframes_negative_self_talk":     true,
	"accepts_discomfort":              true,
	"observes_without_judging":        true,
}

const extractionPrompt = `You analyze one message from a self-reflection conversation and report
which tracked concepts the person demonstrably shows understanding of.

Tracked concepts: %s

Recent conversation context:
%s

Message to analyze:
%s

Respond with ONLY a JSON array, no other text. Each element:
{"concept_key": "<one of the tracked concepts>", "confidence": <0-10 integer>, "evidence": "<short quote from the message>"}
Return [] if no concept is demonstrated. Only report concepts with real
evidence in the message itself, not the context.`

// ConceptExtractionError marks an extraction failure in logs. It never
// propagates: the extractor always returns a usable (possibly empty) list.
type ConceptExtractionError struct {
	Err error
}

func (e *ConceptExtractionError) Error() string {
	return fmt.Sprintf("concept extraction failed: %v", e.Err)
}

func (e *ConceptExtractionError) Unwrap() error {
	return e.Err
}

// Extractor asks the model for structured concept observations.
type Extractor struct {
	provider llm.LLMProvider
	logger   logger.ILogger
}

func NewExtractor(provider llm.LLMProvider, log logger.ILogger) *Extractor {
	return &Extractor{
		provider: provider,
		logger:   log,
	}
}

// Extract returns the observations demonstrated by the message, or an
// empty list on any failure.
func (e *Extractor) Extract(ctx context.Context, message string, recentContext []string, messageId uuid.UUID) []entity.ConceptObservation {
	keys := make([]string, 0, len(KnownConcepts))
	for k := range KnownConcepts {
		keys = append(keys, k)
	}

	prompt := fmt.Sprintf(extractionPrompt,
		strings.Join(keys, ", "),
		strings.Join(recentContext, "\n"),
		message,
	)

	response, err := e.provider.Generate(ctx, prompt, llm.WithTemperature(0.0))
	if err != nil {
		extErr := &ConceptExtractionError{Err: err}
		e.logger.Error("ConceptExtractor", "LLM call failed, skipping mastery update for this turn", map[string]interface{}{
			"error": extErr.Error(),
		})
		return nil
	}

	return e.parse(response, messageId)
}

type rawObservation struct {
	ConceptKey string `json:"concept_key"`
	Confidence int    `json:"confidence"`
	Evidence   string `json:"evidence"`
}

func (e *Extractor) parse(response string, messageId uuid.UUID) []entity.ConceptObservation {
	jsonContent := extractJSONArray(response)

	var raw []rawObservation
	if err := json.Unmarshal([]byte(jsonContent), &raw); err != nil {
		extErr := &ConceptExtractionError{Err: err}
		e.logger.Error("ConceptExtractor", "Malformed extraction payload, skipping mastery update for this turn", map[string]interface{}{
			"error": extErr.Error(),
		})
		return nil
	}

	now := time.Now()
	var observations []entity.ConceptObservation
	for _, r := range raw {
		if !KnownConcepts[r.ConceptKey] {
			continue
		}
		if r.Confidence < 0 {
			r.Confidence = 0
		}
		if r.Confidence > 10 {
			r.Confidence = 10
		}
		observations = append(observations, entity.ConceptObservation{
			ConceptKey: r.ConceptKey,
			Confidence: r.Confidence,
			Evidence:   r.Evidence,
			MessageId:  messageId,
			ObservedAt: now,
		})
	}
	return observations
}

// extractJSONArray isolates the JSON array from a chatty model response.
func extractJSONArray(response string) string {
	startIdx := strings.Index(response, "[")
	endIdx := strings.LastIndex(response, "]")

	if startIdx == -1 || endIdx == -1 || endIdx <= startIdx {
		return response
	}

	return response[startIdx : endIdx+1]
}
