package embedding

import "context"

// Task types hint the provider about how the embedding will be used. Ollama
// ignores them; Gemini uses them to pick an asymmetric embedding head.
const (
	TaskRetrievalQuery    = "RETRIEVAL_QUERY"
	TaskRetrievalDocument = "RETRIEVAL_DOCUMENT"
)

// EmbeddingProvider defines the interface for generating text embeddings.
// Ping is a cheap reachability probe (no embedding request) so health
// surfaces can report operability without burning model calls.
type EmbeddingProvider interface {
	Generate(ctx context.Context, text string, taskType string) (*EmbeddingResponse, error)
	Ping(ctx context.Context) error
}
