// Package classify maps raw message text to categorical labels using
// layered pattern rules. All predicates are pure; evaluation order is fixed:
// off-topic veto > casual veto > retrieval-worthiness > emotional labeling.
package classify

import "strings"

// QueryType is the categorical label for an incoming user message.
type QueryType string

const (
	QueryTypeOffTopic    QueryType = "off_topic"
	QueryTypeCasual      QueryType = "casual"
	QueryTypeEmotional   QueryType = "emotional"
	QueryTypeSubstantive QueryType = "substantive"
)

// SkipReason records why the orchestrator skipped a step the classification
// itself allowed.
type SkipReason string

const (
	// SkipShortEmotional marks any emotional-labeled, retrieval-eligible
	// message under 30 characters; the retriever is skipped as a latency
	// optimization even when the message also reads as a question.
	SkipShortEmotional SkipReason = "short_emotional"
)

// Result is the derived classification for one message. Never persisted.
type Result struct {
	QueryType     QueryType
	UsedRetrieval bool
	SkipReason    SkipReason
}

const (
	casualLengthLimit    = 25
	retrievalLengthLimit = 50
	shortEmotionalLimit  = 30
)

// IsOffTopic reports whether text matches any domain-exclusion pattern.
// Checked first; an off-topic match short-circuits all other processing.
func IsOffTopic(text string) bool {
	for _, p := range offTopicPatterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

// IsCasualUpdate reports whether text is small talk or a status update.
// Distress vocabulary vetoes the casual label regardless of length.
func IsCasualUpdate(text string) bool {
	lower := strings.ToLower(strings.TrimSpace(text))

	if containsAny(lower, distressVocabulary) {
		return false
	}
	if len(lower) < casualLengthLimit {
		return true
	}
	for _, p := range statusUpdatePatterns {
		if p.MatchString(lower) {
			return true
		}
	}
	return acknowledgementTokens[lower]
}

// ShouldUseRetrieval reports whether the reply should be grounded in
// retrieved reference knowledge.
func ShouldUseRetrieval(text string) bool {
	lower := strings.ToLower(strings.TrimSpace(text))

	if IsCasualUpdate(text) {
		return false
	}
	if greetingList[lower] {
		return false
	}
	if questionPattern.MatchString(lower) {
		return true
	}
	if containsAny(lower, domainKeywords) {
		return true
	}
	if containsAny(lower, emotionalTriggerVocabulary) {
		return true
	}
	return len(lower) > retrievalLengthLimit
}

// HasEmotionalLabel reports whether text matches the narrow labeling
// vocabulary used for the final queryType derivation.
func HasEmotionalLabel(text string) bool {
	return containsAny(strings.ToLower(text), emotionalLabelVocabulary)
}

// IsListRequest reports whether the user explicitly asked for an enumerated
// answer.
func IsListRequest(text string) bool {
	return listRequestPattern.MatchString(text)
}

// Classify derives the final query type for a message.
// Precedence: off_topic > casual > emotional > substantive > casual fallback.
func Classify(text string) Result {
	if IsOffTopic(text) {
		return Result{QueryType: QueryTypeOffTopic}
	}
	if IsCasualUpdate(text) {
		return Result{QueryType: QueryTypeCasual}
	}
	if !ShouldUseRetrieval(text) {
		return Result{QueryType: QueryTypeCasual}
	}

	res := Result{UsedRetrieval: true}
	if HasEmotionalLabel(text) {
		res.QueryType = QueryTypeEmotional
	} else {
		res.QueryType = QueryTypeSubstantive
	}

	// Short emotional messages stay retrieval-eligible, but the
	// orchestrator may skip the retriever.
	if res.QueryType == QueryTypeEmotional && len(strings.TrimSpace(text)) < shortEmotionalLimit {
		res.SkipReason = SkipShortEmotional
	}

	return res
}

func containsAny(lower string, vocabulary []string) bool {
	for _, term := range vocabulary {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}
