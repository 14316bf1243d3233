package llm

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms/openai"
	"golang.org/x/time/rate"
)

// EmbedderConfig represents the configuration for an embedder.
type EmbedderConfig struct {
	APIKey    string
	Model     string
	BaseURL   string
	RateLimit float64 // embedding requests per second, 0 disables
}

// Embedder wraps a hosted embedding model.
type Embedder struct {
	config  EmbedderConfig
	llm     *openai.LLM
	limiter *rate.Limiter
}

// NewEmbedderWithConfig creates a new Embedder with the given
// configuration.
func NewEmbedderWithConfig(config EmbedderConfig) (*Embedder, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required (set OPENAI_API_KEY)")
	}
	if config.Model == "" {
		config.Model = "text-embedding-3-small"
	}

	opts := []openai.Option{
		openai.WithToken(config.APIKey),
		openai.WithEmbeddingModel(config.Model),
	}
	if config.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(config.BaseURL))
	}

	model, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize embedder: %w", err)
	}

	var limiter *rate.Limiter
	if config.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(config.RateLimit), 1)
	}

	return &Embedder{
		config:  config,
		llm:     model,
		limiter: limiter,
	}, nil
}

// Embed returns the embedding vector for one text. Empty input is
// replaced with a single space; the embedding API rejects empty strings.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		text = " "
	}

	if e.limiter != nil {
		if err := e.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	embeddings, err := e.llm.CreateEmbedding(ctx, []string{text})
	if err != nil {
		return nil, fmt.Errorf("failed to create embedding: %w", err)
	}
	if len(embeddings) == 0 {
		return nil, fmt.Errorf("empty embedding response")
	}

	return embeddings[0], nil
}

// Dimension probes the model's output dimensionality by embedding a
// sentinel string.
func (e *Embedder) Dimension(ctx context.Context) (int, error) {
	vec, err := e.Embed(ctx, "sample")
	if err != nil {
		return 0, fmt.Errorf("failed to probe embedding dimension: %w", err)
	}
	return len(vec), nil
}
