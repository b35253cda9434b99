package rag

import "errors"

// Error taxonomy for the assistant core. Callers match with errors.Is; the
// HTTP layer translates these into degraded-mode responses instead of
// propagating raw failures into the conversation.
var (
	// ErrProviderUnavailable means the embedding or language-model backend
	// could not be reached.
	ErrProviderUnavailable = errors.New("ai provider unavailable")

	// ErrIndexUnavailable means the vector store is unreachable or the
	// collection is absent. Search surfaces degrade to empty results.
	ErrIndexUnavailable = errors.New("vector index unavailable")

	// ErrInvalidQuery rejects empty or malformed input before any external
	// call is made.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrToolExecution marks a failed tool call. It is caught at the tool
	// boundary and fed back to the model as a structured payload.
	ErrToolExecution = errors.New("tool execution failed")

	// ErrTurnBudgetExceeded means the bounded round count was spent and no
	// final answer could be produced even without tools.
	ErrTurnBudgetExceeded = errors.New("turn budget exceeded")
)
