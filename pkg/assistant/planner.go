package assistant

import (
	"context"
	"log"
	"strings"

	"github.com/rxbase/rxassist/internal/models"
	"github.com/rxbase/rxassist/internal/types"
)

// PlannerConfig represents the configuration for the query planner.
type PlannerConfig struct {
	Temperature float64
	MaxTokens   int
}

// Planner asks the chat model for the best retrieval query given the
// conversation so far. It never fails: on any error the original user
// message is used verbatim.
type Planner struct {
	config PlannerConfig
	model  types.ChatModel
}

// NewPlannerWithConfig creates a new Planner with the given
// configuration.
func NewPlannerWithConfig(config PlannerConfig, model types.ChatModel) *Planner {
	if config.Temperature == 0 {
		config.Temperature = 0.1
	}
	if config.MaxTokens == 0 {
		config.MaxTokens = 50
	}

	return &Planner{
		config: config,
		model:  model,
	}
}

// Plan returns the normalized search query for the current user message.
func (p *Planner) Plan(ctx context.Context, message string, history []models.Turn) string {
	raw, err := p.model.Complete(ctx, plannerPrompt, history, plannerUserMessage(message), types.CompleteOptions{
		Temperature: p.config.Temperature,
		MaxTokens:   p.config.MaxTokens,
	})
	if err != nil {
		log.Printf("warning: query planning failed, using original message: %v", err)
		return message
	}

	return cleanPlannedQuery(raw, message)
}

// cleanPlannedQuery strips quote characters, drops any explanation
// prefixed before a colon, and falls back to the original message when
// the result is too short to be a query.
func cleanPlannedQuery(raw, original string) string {
	query := strings.TrimSpace(raw)
	query = strings.Trim(query, `"'`)
	query = strings.TrimSpace(query)

	if i := strings.LastIndex(query, ":"); i >= 0 {
		query = strings.TrimSpace(query[i+1:])
	}

	if len(query) < 2 {
		return original
	}
	return query
}
