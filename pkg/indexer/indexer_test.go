package indexer

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rxbase/rxassist/internal/models"
)

type stubEmbedder struct {
	dimension int
	dimErr    error
	embeds    []string
}

func (s *stubEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	s.embeds = append(s.embeds, text)
	return make([]float32, s.dimension), nil
}

func (s *stubEmbedder) Dimension(ctx context.Context) (int, error) {
	if s.dimErr != nil {
		return 0, s.dimErr
	}
	return s.dimension, nil
}

type stubIndex struct {
	ensureErr error
	ensured   int
	batches   [][]models.VectorEntry
}

func (s *stubIndex) Ensure(ctx context.Context, dimension int) error {
	s.ensured = dimension
	return s.ensureErr
}

func (s *stubIndex) Upsert(ctx context.Context, entries []models.VectorEntry) error {
	batch := make([]models.VectorEntry, len(entries))
	copy(batch, entries)
	s.batches = append(s.batches, batch)
	return nil
}

func (s *stubIndex) Query(ctx context.Context, vector []float32, topK int) ([]models.ScoredChunk, error) {
	return nil, nil
}

func (s *stubIndex) Close() {}

func makeProducts(n int) []models.Product {
	products := make([]models.Product, n)
	for i := range products {
		products[i] = models.Product{
			ID:          fmt.Sprintf("p%d", i),
			ProductName: fmt.Sprintf("PRODUCT-%d", i),
		}
	}
	return products
}

func TestRunBatchesUpserts(t *testing.T) {
	embedder := &stubEmbedder{dimension: 8}
	index := &stubIndex{}
	ix := NewWithConfig(IndexerConfig{}, embedder, index)

	// 250 products with the default batch size of 100 means three
	// batches of 100, 100, and 50.
	err := ix.Run(context.Background(), makeProducts(250))
	require.NoError(t, err)

	require.Len(t, index.batches, 3)
	assert.Len(t, index.batches[0], 100)
	assert.Len(t, index.batches[1], 100)
	assert.Len(t, index.batches[2], 50)
	assert.Equal(t, 8, index.ensured)
}

func TestRunSingleSmallBatch(t *testing.T) {
	embedder := &stubEmbedder{dimension: 4}
	index := &stubIndex{}
	ix := NewWithConfig(IndexerConfig{}, embedder, index)

	require.NoError(t, ix.Run(context.Background(), makeProducts(7)))
	require.Len(t, index.batches, 1)
	assert.Len(t, index.batches[0], 7)
}

func TestRunDimensionMismatchAbortsBeforeUpsert(t *testing.T) {
	embedder := &stubEmbedder{dimension: 8}
	index := &stubIndex{ensureErr: fmt.Errorf("dimension mismatch")}
	ix := NewWithConfig(IndexerConfig{}, embedder, index)

	err := ix.Run(context.Background(), makeProducts(10))
	require.Error(t, err)
	assert.Empty(t, index.batches)
	// Only the sentinel probe may have run; no product was embedded.
	assert.Empty(t, embedder.embeds)
}

func TestRunEntryShape(t *testing.T) {
	embedder := &stubEmbedder{dimension: 4}
	index := &stubIndex{}
	ix := NewWithConfig(IndexerConfig{}, embedder, index)

	products := []models.Product{
		{ID: "p1", ProductName: "CIPROTAB", SourceURL: "https://example.com/ciprotab"},
		{ProductName: "ATORITIC"}, // no id: positional fallback
	}
	require.NoError(t, ix.Run(context.Background(), products))

	require.Len(t, index.batches, 1)
	entries := index.batches[0]
	require.Len(t, entries, 2)

	assert.Equal(t, "p1", entries[0].ID)
	assert.Equal(t, "CIPROTAB", entries[0].Metadata.Title)
	assert.Equal(t, "https://example.com/ciprotab", entries[0].Metadata.SourceID)
	assert.Equal(t, 0, entries[0].Metadata.ChunkIndex)
	assert.Contains(t, entries[0].Metadata.Text, "Product Name: CIPROTAB")

	assert.Equal(t, "vec_1", entries[1].ID)
}

func TestRunReportsProgress(t *testing.T) {
	embedder := &stubEmbedder{dimension: 4}
	index := &stubIndex{}

	var productCalls, batchCalls int
	ix := NewWithConfig(IndexerConfig{
		BatchSize: 2,
		OnProduct: func(string) { productCalls++ },
		OnBatch:   func(int, int) { batchCalls++ },
	}, embedder, index)

	require.NoError(t, ix.Run(context.Background(), makeProducts(5)))
	assert.Equal(t, 5, productCalls)
	assert.Equal(t, 3, batchCalls)
}
