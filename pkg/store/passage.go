package store

// Passage is a retrieved reference snippet handed to the prompt composer.
// Similarity is zero for lexical-fallback hits.
type Passage struct {
	ID         string  `json:"id"`
	Source     string  `json:"source"`
	Content    string  `json:"content"`
	Similarity float64 `json:"similarity"`
}
