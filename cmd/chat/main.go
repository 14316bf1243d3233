package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"github.com/rxbase/rxassist/internal/models"
	"github.com/rxbase/rxassist/internal/types"
	"github.com/rxbase/rxassist/pkg/assistant"
	"github.com/rxbase/rxassist/pkg/catalog"
	cfgPkg "github.com/rxbase/rxassist/pkg/config"
	"github.com/rxbase/rxassist/pkg/llm"
	"github.com/rxbase/rxassist/pkg/store"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "Path to config file")
	flag.Parse()

	config, err := cfgPkg.LoadConfig(configPath)
	if err != nil {
		log.Fatal(err)
	}

	if errs := config.Validate(); len(errs) > 0 {
		for _, e := range errs {
			color.Red("configuration error: %v", e)
		}
		os.Exit(1)
	}

	if err := run(config); err != nil {
		color.Red("%v", err)
		os.Exit(1)
	}
}

func getSpinner(description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(color.CyanString(description)),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetWidth(20),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetRenderBlankState(true),
	)
}

func newVectorIndex(config *cfgPkg.Config) (types.VectorIndex, error) {
	switch config.Store.Backend {
	case "pgvector":
		return store.NewPGVectorWithConfig(store.PGVectorConfig{
			ConnString: config.Database.URL,
			TableName:  config.Database.TableName,
		})
	default:
		return store.NewPineconeWithConfig(store.PineconeConfig{
			APIKey:    config.Pinecone.APIKey,
			IndexName: config.Pinecone.IndexName,
			Cloud:     config.Pinecone.Cloud,
			Region:    config.Pinecone.Region,
		})
	}
}

func run(config *cfgPkg.Config) error {
	ctx := context.Background()

	chatEngine, err := llm.NewWithConfig(llm.ChatConfig{
		APIKey:  config.OpenAI.APIKey,
		Model:   config.OpenAI.ChatModel,
		BaseURL: config.OpenAI.BaseURL,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize chat engine: %v", err)
	}

	embedder, err := llm.NewEmbedderWithConfig(llm.EmbedderConfig{
		APIKey:  config.OpenAI.APIKey,
		Model:   config.OpenAI.EmbeddingModel,
		BaseURL: config.OpenAI.BaseURL,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize embedder: %v", err)
	}

	vectorIndex, err := newVectorIndex(config)
	if err != nil {
		return fmt.Errorf("failed to initialize vector store: %v", err)
	}
	defer vectorIndex.Close()

	// The catalog is only needed for the canned first-turn greeting;
	// a missing file degrades that message, nothing else.
	products := catalog.Load(config.Catalog.Path)

	bot := assistant.NewWithConfig(assistant.AssistantConfig{
		TopK:               config.Store.TopK,
		Temperature:        config.Chat.Temperature,
		PlannerTemperature: config.Chat.PlannerTemperature,
		PlannerMaxTokens:   config.Chat.PlannerMaxTokens,
		CatalogNames:       catalog.Names(products),
		SourceURL:          config.Catalog.SourceURL,
	}, chatEngine, assistant.NewRetriever(embedder, vectorIndex))

	color.Cyan("\nChat with the product knowledge base (type 'exit' to quit)")

	scanner := bufio.NewScanner(os.Stdin)
	userPrompt := color.New(color.FgGreen).PrintfFunc()
	assistantPrompt := color.New(color.FgCyan).PrintfFunc()

	var history []models.Turn

	for {
		userPrompt("\nYou: ")
		if !scanner.Scan() {
			break
		}

		message := scanner.Text()
		if strings.ToLower(message) == "exit" {
			break
		}
		if strings.TrimSpace(message) == "" {
			continue
		}

		spinner := getSpinner("🤖 Generating response...")
		reply, err := bot.Respond(ctx, message, history)
		spinner.Finish()
		fmt.Print("\r")

		if err != nil {
			color.Red("Error: %v\n", err)
			continue
		}

		assistantPrompt("Assistant: %s\n", reply)

		history = append(history,
			models.Turn{Role: "user", Content: message},
			models.Turn{Role: "assistant", Content: reply},
		)
	}

	return nil
}
