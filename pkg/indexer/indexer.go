package indexer

import (
	"context"
	"fmt"

	"github.com/rxbase/rxassist/internal/models"
	"github.com/rxbase/rxassist/internal/types"
	"github.com/rxbase/rxassist/pkg/catalog"
)

// IndexerConfig represents the configuration for the one-shot indexing
// batch job.
type IndexerConfig struct {
	BatchSize int
	OnProduct func(id string)          // called after each product is embedded
	OnBatch   func(batch, batches int) // called after each upserted batch
}

// Indexer brings the remote index into a state consistent with the
// local catalog. It is re-runnable: upserts are idempotent per id.
type Indexer struct {
	config   IndexerConfig
	embedder types.Embedder
	index    types.VectorIndex
}

// NewWithConfig creates a new Indexer with the given configuration.
func NewWithConfig(config IndexerConfig, embedder types.Embedder, index types.VectorIndex) *Indexer {
	if config.BatchSize == 0 {
		config.BatchSize = 100
	}

	return &Indexer{
		config:   config,
		embedder: embedder,
		index:    index,
	}
}

// Run embeds every product and upserts the resulting vectors in batches.
// The index is validated against the embedding model's dimensionality
// before anything is written; a mismatch aborts the whole run.
func (ix *Indexer) Run(ctx context.Context, products []models.Product) error {
	dimension, err := ix.embedder.Dimension(ctx)
	if err != nil {
		return err
	}

	if err := ix.index.Ensure(ctx, dimension); err != nil {
		return err
	}

	entries := make([]models.VectorEntry, 0, len(products))
	for i, product := range products {
		text := catalog.BuildEmbeddingText(product)
		vector, err := ix.embedder.Embed(ctx, text)
		if err != nil {
			return fmt.Errorf("failed to embed product %s: %w", product.UID(i), err)
		}

		entries = append(entries, models.VectorEntry{
			ID:     product.UID(i),
			Values: vector,
			Metadata: models.ChunkMetadata{
				Title:      product.DisplayTitle(i),
				SourceID:   product.SourceURL,
				ChunkIndex: 0,
				Text:       text,
			},
		})

		if ix.config.OnProduct != nil {
			ix.config.OnProduct(product.UID(i))
		}
	}

	batchSize := ix.config.BatchSize
	batches := (len(entries) + batchSize - 1) / batchSize
	for i := 0; i < len(entries); i += batchSize {
		end := i + batchSize
		if end > len(entries) {
			end = len(entries)
		}

		if err := ix.index.Upsert(ctx, entries[i:end]); err != nil {
			return fmt.Errorf("failed to upsert batch %d/%d: %w", i/batchSize+1, batches, err)
		}

		if ix.config.OnBatch != nil {
			ix.config.OnBatch(i/batchSize+1, batches)
		}
	}

	return nil
}
