package llm

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"

	"github.com/rxbase/rxassist/internal/models"
	"github.com/rxbase/rxassist/internal/types"
)

// ChatConfig represents the configuration for a chat engine.
type ChatConfig struct {
	APIKey  string
	Model   string
	BaseURL string // optional OpenAI-compatible endpoint
}

// ChatEngine is an engine that uses a hosted LLM to generate chat
// responses.
type ChatEngine struct {
	config ChatConfig
	llm    llms.Model
}

// NewWithConfig creates a new ChatEngine with the given configuration.
func NewWithConfig(config ChatConfig) (*ChatEngine, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required (set OPENAI_API_KEY)")
	}
	if config.Model == "" {
		config.Model = "gpt-4o-mini"
	}

	opts := []openai.Option{
		openai.WithToken(config.APIKey),
		openai.WithModel(config.Model),
	}
	if config.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(config.BaseURL))
	}

	model, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM: %w", err)
	}

	return &ChatEngine{
		config: config,
		llm:    model,
	}, nil
}

// Complete sends one chat-completion request built from a system block,
// the prior conversation, and the literal user message.
func (ce *ChatEngine) Complete(ctx context.Context, system string, history []models.Turn, user string, opts types.CompleteOptions) (string, error) {
	content := make([]llms.MessageContent, 0, len(history)+2)
	content = append(content, llms.TextParts(schema.ChatMessageTypeSystem, system))

	for _, turn := range history {
		role := schema.ChatMessageTypeHuman
		if turn.Role == "assistant" {
			role = schema.ChatMessageTypeAI
		}
		content = append(content, llms.TextParts(role, turn.Content))
	}
	content = append(content, llms.TextParts(schema.ChatMessageTypeHuman, user))

	callOpts := []llms.CallOption{llms.WithTemperature(opts.Temperature)}
	if opts.MaxTokens > 0 {
		callOpts = append(callOpts, llms.WithMaxTokens(opts.MaxTokens))
	}

	response, err := ce.llm.GenerateContent(ctx, content, callOpts...)
	if err != nil {
		return "", fmt.Errorf("chat error: %w", err)
	}
	if response == nil || len(response.Choices) == 0 {
		return "", fmt.Errorf("chat error: empty response")
	}

	return response.Choices[0].Content, nil
}
