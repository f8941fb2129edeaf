package constant

const (
	// ChatHistoryWindow caps how many persisted messages feed one turn's
	// model history and the religion detection pass.
	ChatHistoryWindow = 20

	// Knowledge ingestion chunking.
	KnowledgeChunkSize    = 1500
	KnowledgeChunkOverlap = 200
)
