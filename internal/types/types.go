package types

import (
	"context"

	"github.com/rxbase/rxassist/internal/models"
)

// CompleteOptions carries per-call sampling parameters. A zero MaxTokens
// means no cap.
type CompleteOptions struct {
	Temperature float64
	MaxTokens   int
}

// ChatModel is a hosted chat-completion endpoint.
type ChatModel interface {
	Complete(ctx context.Context, system string, history []models.Turn, user string, opts CompleteOptions) (string, error)
}

// Embedder turns text into a fixed-length vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Dimension(ctx context.Context) (int, error)
}

// VectorIndex is a remote ANN index over product embeddings.
type VectorIndex interface {
	// Ensure brings the index into existence with the given dimensionality,
	// or fails when an existing index disagrees with it.
	Ensure(ctx context.Context, dimension int) error
	Upsert(ctx context.Context, entries []models.VectorEntry) error
	Query(ctx context.Context, vector []float32, topK int) ([]models.ScoredChunk, error)
	Close()
}

// Retriever returns the text blobs nearest to a query.
type Retriever interface {
	Retrieve(ctx context.Context, query string, k int) ([]string, error)
}
