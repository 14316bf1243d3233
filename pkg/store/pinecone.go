package store

import (
	"context"
	"fmt"
	"log"

	"github.com/pinecone-io/go-pinecone/v4/pinecone"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/rxbase/rxassist/internal/models"
)

// PineconeConfig represents the configuration for a Pinecone-backed
// vector index.
type PineconeConfig struct {
	APIKey    string
	IndexName string
	Cloud     string
	Region    string
}

// PineconeStore talks to a Pinecone serverless index.
type PineconeStore struct {
	config PineconeConfig
	client *pinecone.Client
	conn   *pinecone.IndexConnection
	host   string
}

// supportedRegions lists the AWS regions Pinecone serverless supports.
// Unrecognized regions fall back to us-east-1 at index creation time.
var supportedRegions = map[string]bool{
	"us-east-1":      true,
	"us-west-2":      true,
	"eu-west-1":      true,
	"ap-southeast-1": true,
}

// NewPineconeWithConfig creates a new PineconeStore with the given
// configuration.
func NewPineconeWithConfig(config PineconeConfig) (*PineconeStore, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("Pinecone API key is required (set PINECONE_API_KEY)")
	}
	if config.IndexName == "" {
		config.IndexName = "medical-vectors"
	}
	if config.Cloud == "" {
		config.Cloud = "aws"
	}
	if config.Region == "" {
		config.Region = "us-east-1"
	}

	client, err := pinecone.NewClient(pinecone.NewClientParams{ApiKey: config.APIKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create Pinecone client: %v", err)
	}

	return &PineconeStore{
		config: config,
		client: client,
	}, nil
}

// Ensure creates the index with the given dimensionality and cosine
// similarity when it does not exist, and verifies the dimensionality
// when it does.
func (ps *PineconeStore) Ensure(ctx context.Context, dimension int) error {
	indexes, err := ps.client.ListIndexes(ctx)
	if err != nil {
		return fmt.Errorf("failed to list indexes: %v", err)
	}

	var existing *pinecone.Index
	for _, idx := range indexes {
		if idx.Name == ps.config.IndexName {
			existing = idx
			break
		}
	}

	if existing == nil {
		dim := int32(dimension)
		metric := pinecone.Cosine
		idx, err := ps.client.CreateServerlessIndex(ctx, &pinecone.CreateServerlessIndexRequest{
			Name:      ps.config.IndexName,
			Dimension: &dim,
			Metric:    &metric,
			Cloud:     pinecone.Cloud(ps.config.Cloud),
			Region:    resolveRegion(ps.config.Region),
		})
		if err != nil {
			return fmt.Errorf("failed to create index %s: %v", ps.config.IndexName, err)
		}
		ps.host = idx.Host
		return nil
	}

	indexDim := 0
	if existing.Dimension != nil {
		indexDim = int(*existing.Dimension)
	}
	if indexDim != dimension {
		return dimensionMismatchError(ps.config.IndexName, indexDim, dimension)
	}

	ps.host = existing.Host
	return nil
}

// Upsert writes one batch of vector entries. Entries with ids already in
// the index are overwritten.
func (ps *PineconeStore) Upsert(ctx context.Context, entries []models.VectorEntry) error {
	conn, err := ps.connect(ctx)
	if err != nil {
		return err
	}

	vectors := make([]*pinecone.Vector, 0, len(entries))
	for _, entry := range entries {
		metadata, err := structpb.NewStruct(map[string]interface{}{
			"title":       entry.Metadata.Title,
			"source_id":   entry.Metadata.SourceID,
			"chunk_index": entry.Metadata.ChunkIndex,
			"text":        entry.Metadata.Text,
		})
		if err != nil {
			return fmt.Errorf("failed to encode metadata for %s: %v", entry.ID, err)
		}

		values := entry.Values
		vectors = append(vectors, &pinecone.Vector{
			Id:       entry.ID,
			Values:   &values,
			Metadata: metadata,
		})
	}

	if _, err := conn.UpsertVectors(ctx, vectors); err != nil {
		return fmt.Errorf("failed to upsert batch: %v", err)
	}
	return nil
}

// Query returns the topK nearest neighbors of the given vector.
func (ps *PineconeStore) Query(ctx context.Context, vector []float32, topK int) ([]models.ScoredChunk, error) {
	conn, err := ps.connect(ctx)
	if err != nil {
		return nil, err
	}

	response, err := conn.QueryByVectorValues(ctx, &pinecone.QueryByVectorValuesRequest{
		Vector:          vector,
		TopK:            uint32(topK),
		IncludeMetadata: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query index: %v", err)
	}

	chunks := make([]models.ScoredChunk, 0, len(response.Matches))
	for _, match := range response.Matches {
		var text string
		if match.Vector != nil && match.Vector.Metadata != nil {
			if field, ok := match.Vector.Metadata.Fields["text"]; ok {
				text = field.GetStringValue()
			}
		}
		chunks = append(chunks, models.ScoredChunk{
			Text:  text,
			Score: match.Score,
		})
	}

	return chunks, nil
}

func (ps *PineconeStore) Close() {
	if ps.conn != nil {
		ps.conn.Close()
		ps.conn = nil
	}
}

// connect resolves the index host lazily so the chat path can query an
// index it never created.
func (ps *PineconeStore) connect(ctx context.Context) (*pinecone.IndexConnection, error) {
	if ps.conn != nil {
		return ps.conn, nil
	}

	if ps.host == "" {
		idx, err := ps.client.DescribeIndex(ctx, ps.config.IndexName)
		if err != nil {
			return nil, fmt.Errorf("failed to describe index %s: %v", ps.config.IndexName, err)
		}
		ps.host = idx.Host
	}

	conn, err := ps.client.Index(pinecone.NewIndexConnParams{Host: ps.host})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to index %s: %v", ps.config.IndexName, err)
	}
	ps.conn = conn
	return conn, nil
}

// resolveRegion falls back to us-east-1 for regions Pinecone serverless
// does not offer.
func resolveRegion(region string) string {
	if supportedRegions[region] {
		return region
	}
	log.Printf("warning: region %q not recognized, defaulting to us-east-1", region)
	return "us-east-1"
}
