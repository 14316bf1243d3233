package config

import (
	"fmt"
	"net/url"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	// Validate OpenAI config
	if c.OpenAI.APIKey == "" {
		errors = append(errors, ValidationError{
			Field:   "openai.api_key",
			Message: "OpenAI API key is required (set OPENAI_API_KEY)",
		})
	}

	if c.OpenAI.BaseURL != "" {
		if _, err := url.Parse(c.OpenAI.BaseURL); err != nil {
			errors = append(errors, ValidationError{
				Field:   "openai.base_url",
				Message: "invalid OpenAI base URL",
			})
		}
	}

	// Validate store config
	switch c.Store.Backend {
	case "pinecone":
		if c.Pinecone.APIKey == "" {
			errors = append(errors, ValidationError{
				Field:   "pinecone.api_key",
				Message: "Pinecone API key is required (set PINECONE_API_KEY)",
			})
		}
		if c.Pinecone.IndexName == "" {
			errors = append(errors, ValidationError{
				Field:   "pinecone.index_name",
				Message: "index name is required",
			})
		}
	case "pgvector":
		if c.Database.URL == "" {
			errors = append(errors, ValidationError{
				Field:   "database.url",
				Message: "database URL is required (set DATABASE_URL)",
			})
		} else if _, err := url.Parse(c.Database.URL); err != nil {
			errors = append(errors, ValidationError{
				Field:   "database.url",
				Message: "invalid database URL",
			})
		}
	default:
		errors = append(errors, ValidationError{
			Field:   "store.backend",
			Message: fmt.Sprintf("unknown backend %q (expected pinecone or pgvector)", c.Store.Backend),
		})
	}

	if c.Store.BatchSize < 1 || c.Store.BatchSize > 1000 {
		errors = append(errors, ValidationError{
			Field:   "store.batch_size",
			Message: "batch_size must be between 1 and 1000",
		})
	}

	if c.Store.TopK < 1 {
		errors = append(errors, ValidationError{
			Field:   "store.top_k",
			Message: "top_k must be positive",
		})
	}

	// Validate chat config
	if c.Chat.Temperature < 0 || c.Chat.Temperature > 2 {
		errors = append(errors, ValidationError{
			Field:   "chat.temperature",
			Message: "temperature must be between 0 and 2",
		})
	}

	if c.Chat.PlannerTemperature < 0 || c.Chat.PlannerTemperature > 2 {
		errors = append(errors, ValidationError{
			Field:   "chat.planner_temperature",
			Message: "planner_temperature must be between 0 and 2",
		})
	}

	if c.Chat.PlannerMaxTokens < 1 || c.Chat.PlannerMaxTokens > 4096 {
		errors = append(errors, ValidationError{
			Field:   "chat.planner_max_tokens",
			Message: "planner_max_tokens must be between 1 and 4096",
		})
	}

	// Validate fetcher config
	if c.Fetcher.RateLimit <= 0 {
		errors = append(errors, ValidationError{
			Field:   "fetcher.rate_limit",
			Message: "rate_limit must be positive",
		})
	}

	if c.Catalog.Path == "" {
		errors = append(errors, ValidationError{
			Field:   "catalog.path",
			Message: "catalog path is required",
		})
	}

	return errors
}
