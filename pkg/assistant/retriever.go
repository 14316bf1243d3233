package assistant

import (
	"context"
	"fmt"

	"github.com/rxbase/rxassist/internal/types"
)

// VectorRetriever embeds a query and returns the text blobs of its
// nearest neighbors in the vector index.
type VectorRetriever struct {
	embedder types.Embedder
	index    types.VectorIndex
}

// NewRetriever creates a retriever over the given embedder and index.
func NewRetriever(embedder types.Embedder, index types.VectorIndex) *VectorRetriever {
	return &VectorRetriever{
		embedder: embedder,
		index:    index,
	}
}

// Retrieve returns the k metadata texts nearest to the query, in rank
// order.
func (r *VectorRetriever) Retrieve(ctx context.Context, query string, k int) ([]string, error) {
	vector, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	hits, err := r.index.Query(ctx, vector, k)
	if err != nil {
		return nil, err
	}

	texts := make([]string, 0, len(hits))
	for _, hit := range hits {
		texts = append(texts, hit.Text)
	}
	return texts, nil
}
