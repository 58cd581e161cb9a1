package domain

import "errors"

// ErrorKind is the stable error identifier exposed on a chat result.
type ErrorKind string

const (
	KindUnsupportedFormat ErrorKind = "UnsupportedFormat"
	KindExtractionFailed  ErrorKind = "ExtractionFailed"
	KindDocumentNotFound  ErrorKind = "DocumentNotFound"
	KindEmbeddingFailed   ErrorKind = "EmbeddingFailed"
	KindRetrievalFailed   ErrorKind = "RetrievalFailed"
	KindUpstreamTimeout   ErrorKind = "UpstreamTimeout"
	KindUpstreamError     ErrorKind = "UpstreamError"
	KindGenerationFailed  ErrorKind = "GenerationFailed"
)

// Retryable reports whether a failure of this kind is safe to retry
// with backoff. Malformed-input failures are not.
func (k ErrorKind) Retryable() bool {
	switch k {
	case KindUpstreamTimeout, KindUpstreamError, KindRetrievalFailed:
		return true
	default:
		return false
	}
}

// KindForError maps a wrapped pipeline error to its ErrorKind.
// Timeout classification wins over stage classification so callers
// can distinguish retryable timeouts from hard failures.
func KindForError(err error) ErrorKind {
	switch {
	case errors.Is(err, ErrUpstreamTimeout):
		return KindUpstreamTimeout
	case errors.Is(err, ErrUnsupportedFormat):
		return KindUnsupportedFormat
	case errors.Is(err, ErrExtractionFailed):
		return KindExtractionFailed
	case errors.Is(err, ErrDocumentNotFound), errors.Is(err, ErrNotFound):
		return KindDocumentNotFound
	case errors.Is(err, ErrEmbeddingFailed):
		return KindEmbeddingFailed
	case errors.Is(err, ErrRetrievalFailed):
		return KindRetrievalFailed
	case errors.Is(err, ErrGenerationFailed):
		return KindGenerationFailed
	default:
		return KindUpstreamError
	}
}

// Stage identifies where a chat turn is in its lifecycle.
// Transitions: Idle -> ResolvingDocument -> Retrieving -> PromptAssembly
// -> Generating -> Done, with any stage able to fail.
type Stage string

const (
	StageIdle              Stage = "Idle"
	StageResolvingDocument Stage = "ResolvingDocument"
	StageRetrieving        Stage = "Retrieving"
	StagePromptAssembly    Stage = "PromptAssembly"
	StageGenerating        Stage = "Generating"
	StageDone              Stage = "Done"
	StageFailed            Stage = "Failed"
)

// ChatResult is the outward-facing outcome of one chat turn.
// Failures are converted to a structured result at the orchestrator
// boundary and never propagate past it.
type ChatResult struct {
	// Success reports whether an answer was produced.
	Success bool `json:"success"`

	// Answer is the generated answer when Success is true.
	Answer string `json:"answer,omitempty"`

	// Error identifies the failure when Success is false.
	Error ErrorKind `json:"error,omitempty"`
}

// Failure builds a failed ChatResult from a pipeline error.
func Failure(err error) ChatResult {
	return ChatResult{Success: false, Error: KindForError(err)}
}
