package retrieval

import "fmt"

// RetrievalError wraps an embedding or search failure. It is always
// recovered inside the retriever; the type exists so logs and metrics can
// distinguish retrieval failures from generation failures.
type RetrievalError struct {
	Stage string // "embedding" | "semantic" | "lexical"
	Err   error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("retrieval failed at %s: %v", e.Stage, e.Err)
}

func (e *RetrievalError) Unwrap() error {
	return e.Err
}

func NewRetrievalError(stage string, err error) *RetrievalError {
	return &RetrievalError{Stage: stage, Err: err}
}
