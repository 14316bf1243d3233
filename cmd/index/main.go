package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"github.com/rxbase/rxassist/internal/types"
	"github.com/rxbase/rxassist/pkg/catalog"
	cfgPkg "github.com/rxbase/rxassist/pkg/config"
	"github.com/rxbase/rxassist/pkg/fetcher"
	"github.com/rxbase/rxassist/pkg/indexer"
	"github.com/rxbase/rxassist/pkg/llm"
	"github.com/rxbase/rxassist/pkg/store"
)

func main() {
	var configPath string
	var catalogPath string
	var backend string
	var refresh bool

	flag.StringVar(&configPath, "config", "", "Path to config file")
	flag.StringVar(&catalogPath, "catalog", "", "Path to the catalog JSON file")
	flag.StringVar(&backend, "backend", "", "Vector store backend (pinecone or pgvector)")
	flag.BoolVar(&refresh, "refresh", false, "Re-fetch product sheets before indexing")
	flag.Parse()

	config, err := cfgPkg.LoadConfig(configPath)
	if err != nil {
		log.Fatal(err)
	}

	// Command line flags override the config file
	if catalogPath != "" {
		config.Catalog.Path = catalogPath
	}
	if backend != "" {
		config.Store.Backend = backend
	}

	if errs := config.Validate(); len(errs) > 0 {
		for _, e := range errs {
			color.Red("configuration error: %v", e)
		}
		os.Exit(1)
	}

	if err := run(config, refresh); err != nil {
		color.Red("%v", err)
		os.Exit(1)
	}
}

func getProgressBar(total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription(color.BlueString(description)),
		progressbar.OptionSetItsString("items"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionFullWidth(),
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

func run(config *cfgPkg.Config, refresh bool) error {
	ctx := context.Background()

	if _, err := os.Stat(config.Catalog.Path); err != nil {
		return fmt.Errorf("catalog file not found: %s", config.Catalog.Path)
	}

	products := catalog.Load(config.Catalog.Path)
	if len(products) == 0 {
		return fmt.Errorf("catalog %s contains no products", config.Catalog.Path)
	}
	color.Blue("\nLoaded %d products from %s\n", len(products), config.Catalog.Path)

	if refresh {
		fetchBar := getProgressBar(-1, "🌐 Fetching product sheets...")
		f := fetcher.NewWithConfig(fetcher.FetcherConfig{
			RateLimit: config.Fetcher.RateLimit,
			Timeout:   time.Duration(config.Fetcher.TimeoutSeconds) * time.Second,
			OnProgress: func(url string) {
				fetchBar.Add(1)
			},
		})
		products = f.Refresh(ctx, products)
		fetchBar.Finish()
		color.Green("\n✓ Product sheets refreshed\n")
	}

	embedder, err := llm.NewEmbedderWithConfig(llm.EmbedderConfig{
		APIKey:    config.OpenAI.APIKey,
		Model:     config.OpenAI.EmbeddingModel,
		BaseURL:   config.OpenAI.BaseURL,
		RateLimit: config.Fetcher.RateLimit,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize embedder: %v", err)
	}

	vectorIndex, err := newVectorIndex(config)
	if err != nil {
		return fmt.Errorf("failed to initialize vector store: %v", err)
	}
	defer vectorIndex.Close()

	color.Blue("Probing embedding dimension for model %s\n", config.OpenAI.EmbeddingModel)

	embedBar := getProgressBar(len(products), "🧬 Embedding products...")
	ix := indexer.NewWithConfig(indexer.IndexerConfig{
		BatchSize: config.Store.BatchSize,
		OnProduct: func(id string) {
			embedBar.Add(1)
		},
		OnBatch: func(batch, batches int) {
			fmt.Printf("\nUpserted batch %d/%d\n", batch, batches)
		},
	}, embedder, vectorIndex)

	if err := ix.Run(ctx, products); err != nil {
		return err
	}
	embedBar.Finish()

	color.Green("\n✓ All embeddings stored successfully\n")
	return nil
}
