package assistant

import (
	"context"
	"strings"

	"github.com/rxbase/rxassist/internal/models"
	"github.com/rxbase/rxassist/internal/types"
)

// AssistantConfig represents the configuration for the per-turn
// pipeline.
type AssistantConfig struct {
	TopK               int
	Temperature        float64
	PlannerTemperature float64
	PlannerMaxTokens   int
	CatalogNames       []string
	SourceURL          string
}

// Assistant runs the strictly linear per-turn pipeline: gate, plan,
// retrieve, generate. It keeps no state between turns; all continuity
// lives in the caller-supplied history.
type Assistant struct {
	config    AssistantConfig
	model     types.ChatModel
	retriever types.Retriever
	planner   *Planner
}

// NewWithConfig creates a new Assistant with the given configuration.
func NewWithConfig(config AssistantConfig, model types.ChatModel, retriever types.Retriever) *Assistant {
	if config.TopK == 0 {
		config.TopK = 5
	}
	if config.Temperature == 0 {
		config.Temperature = 0.2
	}

	planner := NewPlannerWithConfig(PlannerConfig{
		Temperature: config.PlannerTemperature,
		MaxTokens:   config.PlannerMaxTokens,
	}, model)

	return &Assistant{
		config:    config,
		model:     model,
		retriever: retriever,
		planner:   planner,
	}
}

// Respond produces the assistant's reply for one user turn. A bare
// greeting on the first turn short-circuits to the canned catalog
// listing without touching the network; everything else runs the full
// pipeline. Retrieval and generation failures propagate to the caller.
func (a *Assistant) Respond(ctx context.Context, message string, history []models.Turn) (string, error) {
	firstTurn := len(history) == 0
	greeting := firstTurn && IsGreeting(message)

	if greeting && !HasQuestion(message) {
		return CatalogGreeting(a.config.CatalogNames, a.config.SourceURL), nil
	}

	query := a.planner.Plan(ctx, message, history)

	chunks, err := a.retriever.Retrieve(ctx, query, a.config.TopK)
	if err != nil {
		return "", err
	}
	contextText := strings.Join(chunks, "\n\n")

	var catalogFallback string
	if greeting {
		catalogFallback = CatalogGreeting(a.config.CatalogNames, a.config.SourceURL)
	}

	reply, err := a.model.Complete(ctx, answerSystemPrompt(contextText, catalogFallback), history, message, types.CompleteOptions{
		Temperature: a.config.Temperature,
	})
	if err != nil {
		return "", err
	}

	return reply, nil
}
