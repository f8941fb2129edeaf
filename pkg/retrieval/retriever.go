// Package retrieval finds reference passages for a query: a pgvector
// semantic search first, then a lexical keyword fallback when the semantic
// results are weak or empty. All failures degrade to an empty result set;
// the conversation must still receive a reply.
package retrieval

import (
	"context"
	"strings"

	"companion-chat-be/internal/pkg/logger"
	"companion-chat-be/internal/repository/contract"
	"companion-chat-be/pkg/embedding"
	"companion-chat-be/pkg/store"
)

const (
	// AcceptThreshold is the minimum cosine similarity for a semantic hit.
	AcceptThreshold = 0.35

	// WeakTopThreshold triggers the lexical fallback when the best semantic
	// hit scores below it.
	WeakTopThreshold = 0.4

	// MaxResults caps the merged result set.
	MaxResults = 5

	// MaxKeywords bounds the lexical fallback query.
	MaxKeywords = 3

	minKeywordLen = 3
)

// Retriever orchestrates semantic search with lexical fallback.
type Retriever struct {
	embeddingProvider embedding.EmbeddingProvider
	logger            logger.ILogger
}

func NewRetriever(embeddingProvider embedding.EmbeddingProvider, log logger.ILogger) *Retriever {
	return &Retriever{
		embeddingProvider: embeddingProvider,
		logger:            log,
	}
}

// Retrieve returns up to MaxResults unique chunks for the query, best
// first. Never returns an error: every failure is logged and the result
// degrades to whatever was gathered before it (possibly nothing).
func (r *Retriever) Retrieve(ctx context.Context, repo contract.KnowledgeChunkRepository, query string) []store.Passage {
	semantic, topScore := r.searchSemantic(ctx, repo, query)

	results := semantic
	if len(semantic) == 0 || topScore < WeakTopThreshold {
		lexical := r.searchLexical(ctx, repo, query)
		results = append(results, lexical...)
	}

	return dedupe(results, MaxResults)
}

func (r *Retriever) searchSemantic(ctx context.Context, repo contract.KnowledgeChunkRepository, query string) ([]store.Passage, float64) {
	embeddingRes, err := r.embeddingProvider.Generate(query, "RETRIEVAL_QUERY")
	if err != nil {
		retErr := NewRetrievalError("embedding", err)
		r.logger.Error("Retriever", "Embedding generation failed, degrading to lexical search", map[string]interface{}{
			"error": retErr.Error(),
		})
		return nil, 0
	}

	scored, err := repo.SearchSimilarWithScore(ctx, embeddingRes.Embedding.Values, MaxResults, AcceptThreshold)
	if err != nil {
		retErr := NewRetrievalError("semantic", err)
		r.logger.Error("Retriever", "Vector search failed, degrading to lexical search", map[string]interface{}{
			"error": retErr.Error(),
		})
		return nil, 0
	}

	passages := make([]store.Passage, 0, len(scored))
	topScore := 0.0
	for i, s := range scored {
		if i == 0 {
			topScore = s.Similarity
		}
		passages = append(passages, store.Passage{
			ID:         s.Chunk.Id.String(),
			Source:     s.Chunk.Source,
			Content:    s.Chunk.Content,
			Similarity: s.Similarity,
		})
	}
	return passages, topScore
}

func (r *Retriever) searchLexical(ctx context.Context, repo contract.KnowledgeChunkRepository, query string) []store.Passage {
	keywords := ExtractKeywords(query, MaxKeywords)
	if len(keywords) == 0 {
		return nil
	}

	chunks, err := repo.SearchByKeywords(ctx, keywords, MaxResults)
	if err != nil {
		retErr := NewRetrievalError("lexical", err)
		r.logger.Error("Retriever", "Lexical fallback failed, degrading to empty knowledge", map[string]interface{}{
			"error":    retErr.Error(),
			"keywords": keywords,
		})
		return nil
	}

	passages := make([]store.Passage, 0, len(chunks))
	for _, c := range chunks {
		passages = append(passages, store.Passage{
			ID:      c.Id.String(),
			Source:  c.Source,
			Content: c.Content,
		})
	}
	return passages
}

// ExtractKeywords picks up to max words longer than minKeywordLen from the
// query, in order of appearance, lowercased with punctuation stripped.
func ExtractKeywords(query string, max int) []string {
	fields := strings.Fields(strings.ToLower(query))
	var keywords []string
	for _, f := range fields {
		word := strings.TrimFunc(f, func(r rune) bool {
			return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
		})
		if len(word) <= minKeywordLen {
			continue
		}
		keywords = append(keywords, word)
		if len(keywords) == max {
			break
		}
	}
	return keywords
}

// dedupe keeps the first occurrence of each chunk ID and truncates to limit.
func dedupe(passages []store.Passage, limit int) []store.Passage {
	seen := make(map[string]bool, len(passages))
	var out []store.Passage
	for _, p := range passages {
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		out = append(out, p)
		if len(out) == limit {
			break
		}
	}
	return out
}
