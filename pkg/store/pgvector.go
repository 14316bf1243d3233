package store

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"github.com/rxbase/rxassist/internal/models"
)

// PGVectorConfig represents the configuration for a self-hosted
// pgvector-backed index.
type PGVectorConfig struct {
	ConnString string
	TableName  string
}

// PGVectorStore implements the vector index on PostgreSQL with the
// pgvector extension, for deployments that do not use a managed index.
type PGVectorStore struct {
	config PGVectorConfig
	pool   *pgxpool.Pool
}

// NewPGVectorWithConfig creates a new PGVectorStore with the given
// configuration.
func NewPGVectorWithConfig(config PGVectorConfig) (*PGVectorStore, error) {
	if config.TableName == "" {
		config.TableName = "products"
	}

	pool, err := pgxpool.New(context.Background(), config.ConnString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}

	return &PGVectorStore{
		config: config,
		pool:   pool,
	}, nil
}

// Ensure creates the extension, table, and cosine index when missing,
// and verifies the embedding column's dimensionality when the table
// already exists.
func (vs *PGVectorStore) Ensure(ctx context.Context, dimension int) error {
	_, err := vs.pool.Exec(ctx, "CREATE EXTENSION IF NOT EXISTS vector")
	if err != nil {
		return fmt.Errorf("failed to create vector extension: %v", err)
	}

	existingDim, err := vs.embeddingDimension(ctx)
	if err != nil {
		return err
	}
	if existingDim > 0 {
		if existingDim != dimension {
			return dimensionMismatchError(vs.config.TableName, existingDim, dimension)
		}
		return nil
	}

	createTable := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			title TEXT,
			source_id TEXT,
			chunk_index INTEGER,
			text TEXT,
			embedding vector(%d)
		)`, vs.config.TableName, dimension)

	_, err = vs.pool.Exec(ctx, createTable)
	if err != nil {
		return fmt.Errorf("failed to create table: %v", err)
	}

	createIndex := fmt.Sprintf(`
		CREATE INDEX IF NOT EXISTS %s_embedding_idx
		ON %s
		USING ivfflat (embedding vector_cosine_ops)
		WITH (lists = 100)`,
		vs.config.TableName, vs.config.TableName)

	_, err = vs.pool.Exec(ctx, createIndex)
	if err != nil {
		return fmt.Errorf("failed to create index: %v", err)
	}

	return nil
}

// embeddingDimension reads the declared dimension of the embedding
// column, or 0 when the table does not exist yet.
func (vs *PGVectorStore) embeddingDimension(ctx context.Context) (int, error) {
	var dim int
	err := vs.pool.QueryRow(ctx, `
		SELECT a.atttypmod
		FROM pg_attribute a
		JOIN pg_class c ON c.oid = a.attrelid
		WHERE c.relname = $1 AND a.attname = 'embedding'`,
		vs.config.TableName).Scan(&dim)
	if err == pgx.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to inspect table %s: %v", vs.config.TableName, err)
	}
	return dim, nil
}

// Upsert writes one batch of vector entries inside a transaction.
// Later upserts with the same id overwrite earlier ones.
func (vs *PGVectorStore) Upsert(ctx context.Context, entries []models.VectorEntry) error {
	tx, err := vs.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback(ctx)

	stmt := fmt.Sprintf(`
		INSERT INTO %s (id, title, source_id, chunk_index, text, embedding)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			source_id = EXCLUDED.source_id,
			chunk_index = EXCLUDED.chunk_index,
			text = EXCLUDED.text,
			embedding = EXCLUDED.embedding`,
		vs.config.TableName)

	for _, entry := range entries {
		_, err = tx.Exec(ctx, stmt,
			entry.ID,
			sanitizeUTF8(entry.Metadata.Title),
			entry.Metadata.SourceID,
			entry.Metadata.ChunkIndex,
			sanitizeUTF8(entry.Metadata.Text),
			pgvector.NewVector(entry.Values),
		)
		if err != nil {
			return fmt.Errorf("failed to insert entry %s: %v", entry.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %v", err)
	}

	return nil
}

// Query returns the topK entries nearest to the given vector by cosine
// distance.
func (vs *PGVectorStore) Query(ctx context.Context, vector []float32, topK int) ([]models.ScoredChunk, error) {
	query := fmt.Sprintf(`
		SELECT text, 1 - (embedding <=> $1) AS score
		FROM %s
		ORDER BY embedding <=> $1
		LIMIT $2`,
		vs.config.TableName)

	rows, err := vs.pool.Query(ctx, query, pgvector.NewVector(vector), topK)
	if err != nil {
		return nil, fmt.Errorf("failed to query index: %v", err)
	}
	defer rows.Close()

	var chunks []models.ScoredChunk
	for rows.Next() {
		var text string
		var score float64
		if err := rows.Scan(&text, &score); err != nil {
			return nil, fmt.Errorf("failed to scan row: %v", err)
		}
		chunks = append(chunks, models.ScoredChunk{Text: text, Score: float32(score)})
	}

	return chunks, nil
}

func (vs *PGVectorStore) Close() {
	if vs.pool != nil {
		vs.pool.Close()
	}
}

func sanitizeUTF8(s string) string {
	if !utf8.ValidString(s) {
		v := make([]rune, 0, len(s))
		for i, r := range s {
			if r == utf8.RuneError {
				_, size := utf8.DecodeRuneInString(s[i:])
				if size == 1 {
					continue
				}
			}
			v = append(v, r)
		}
		return string(v)
	}
	return s
}
