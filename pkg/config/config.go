package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	OpenAI struct {
		APIKey         string `yaml:"api_key"`
		ChatModel      string `yaml:"chat_model"`
		EmbeddingModel string `yaml:"embedding_model"`
		BaseURL        string `yaml:"base_url"`
	} `yaml:"openai"`

	Pinecone struct {
		APIKey    string `yaml:"api_key"`
		IndexName string `yaml:"index_name"`
		Cloud     string `yaml:"cloud"`
		Region    string `yaml:"region"`
	} `yaml:"pinecone"`

	Database struct {
		URL       string `yaml:"url"`
		TableName string `yaml:"table_name"`
	} `yaml:"database"`

	Store struct {
		Backend   string `yaml:"backend"` // "pinecone" or "pgvector"
		BatchSize int    `yaml:"batch_size"`
		TopK      int    `yaml:"top_k"`
	} `yaml:"store"`

	Catalog struct {
		Path      string `yaml:"path"`
		SourceURL string `yaml:"source_url"`
	} `yaml:"catalog"`

	Fetcher struct {
		RateLimit      float64 `yaml:"rate_limit"`
		TimeoutSeconds int     `yaml:"timeout_seconds"`
	} `yaml:"fetcher"`

	Chat struct {
		Temperature        float64 `yaml:"temperature"`
		PlannerTemperature float64 `yaml:"planner_temperature"`
		PlannerMaxTokens   int     `yaml:"planner_max_tokens"`
	} `yaml:"chat"`
}

func LoadConfig(path string) (*Config, error) {
	// If no path provided, try default locations
	if path == "" {
		locations := []string{
			"config.yaml",
			"config.yml",
			filepath.Join(os.Getenv("HOME"), ".config/rxassist/config.yaml"),
			"/etc/rxassist/config.yaml",
		}

		for _, loc := range locations {
			if _, err := os.Stat(loc); err == nil {
				path = loc
				break
			}
		}
	}

	if path == "" {
		return getDefaultConfig()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %v", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %v", err)
	}

	// Merge with environment variables
	mergeWithEnv(&config)

	// Apply defaults for unset values
	applyDefaults(&config)

	return &config, nil
}

func getDefaultConfig() (*Config, error) {
	config := &Config{}
	mergeWithEnv(config)
	applyDefaults(config)
	return config, nil
}

func applyDefaults(config *Config) {
	if config.OpenAI.ChatModel == "" {
		config.OpenAI.ChatModel = "gpt-4o-mini"
	}
	if config.OpenAI.EmbeddingModel == "" {
		config.OpenAI.EmbeddingModel = "text-embedding-3-small"
	}

	if config.Pinecone.IndexName == "" {
		config.Pinecone.IndexName = "medical-vectors"
	}
	if config.Pinecone.Cloud == "" {
		config.Pinecone.Cloud = "aws"
	}
	if config.Pinecone.Region == "" {
		config.Pinecone.Region = "us-east-1"
	}

	if config.Database.TableName == "" {
		config.Database.TableName = "products"
	}

	if config.Store.Backend == "" {
		config.Store.Backend = "pinecone"
	}
	if config.Store.BatchSize == 0 {
		config.Store.BatchSize = 100
	}
	if config.Store.TopK == 0 {
		config.Store.TopK = 5
	}

	if config.Catalog.Path == "" {
		config.Catalog.Path = "wockhardt_products.json"
	}
	if config.Catalog.SourceURL == "" {
		config.Catalog.SourceURL = "https://www.wockhardt.com"
	}

	if config.Fetcher.RateLimit == 0 {
		config.Fetcher.RateLimit = 2.0
	}
	if config.Fetcher.TimeoutSeconds == 0 {
		config.Fetcher.TimeoutSeconds = 30
	}

	if config.Chat.Temperature == 0 {
		config.Chat.Temperature = 0.2
	}
	if config.Chat.PlannerTemperature == 0 {
		config.Chat.PlannerTemperature = 0.1
	}
	if config.Chat.PlannerMaxTokens == 0 {
		config.Chat.PlannerMaxTokens = 50
	}
}

func mergeWithEnv(config *Config) {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		config.OpenAI.APIKey = key
	}
	if model := os.Getenv("EMBEDDING_MODEL"); model != "" {
		config.OpenAI.EmbeddingModel = model
	}
	if key := os.Getenv("PINECONE_API_KEY"); key != "" {
		config.Pinecone.APIKey = key
	}
	if name := os.Getenv("PINECONE_INDEX_NAME"); name != "" {
		config.Pinecone.IndexName = name
	}
	if region := os.Getenv("PINECONE_REGION"); region != "" {
		config.Pinecone.Region = region
	}
	if path := os.Getenv("CATALOG_JSON"); path != "" {
		config.Catalog.Path = path
	}
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		config.Database.URL = dbURL
	}
}
