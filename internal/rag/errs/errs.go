// Package errs defines the error taxonomy of the RAG pipeline. Each failure
// mode is a distinct type so callers can map it to user-facing text with
// errors.As instead of inspecting message strings.
package errs

import "fmt"

// IngestionError reports a source file that could not be read or parsed at
// index-build time.
type IngestionError struct {
	Source string
	Err    error
}

func (e *IngestionError) Error() string {
	return fmt.Sprintf("ingestion failed for %s: %v", e.Source, e.Err)
}

func (e *IngestionError) Unwrap() error { return e.Err }

// EmbeddingError reports a failure of the remote embedding service: the
// service was unreachable, returned a malformed response, or rejected the
// credential.
type EmbeddingError struct {
	Err error
}

func (e *EmbeddingError) Error() string {
	return fmt.Sprintf("embedding failed: %v", e.Err)
}

func (e *EmbeddingError) Unwrap() error { return e.Err }

// RetrievalError reports an unavailable vector index or a failed search.
type RetrievalError struct {
	Err error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("retrieval failed: %v", e.Err)
}

func (e *RetrievalError) Unwrap() error { return e.Err }

// SynthesisError reports a failure of the remote text-generation service.
type SynthesisError struct {
	Err error
}

func (e *SynthesisError) Error() string {
	return fmt.Sprintf("answer synthesis failed: %v", e.Err)
}

func (e *SynthesisError) Unwrap() error { return e.Err }
