package fetcher

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"github.com/rxbase/rxassist/internal/models"
)

// FetcherConfig represents the configuration for the product-sheet
// fetcher.
type FetcherConfig struct {
	RateLimit  float64 // requests per second
	Timeout    time.Duration
	OnProgress func(url string)
}

// Fetcher downloads product-sheet pages and extracts their main text,
// filling the extracted_text field of catalog records that only carry a
// source_url.
type Fetcher struct {
	config  FetcherConfig
	client  *http.Client
	limiter *rate.Limiter
}

// NewWithConfig creates a new Fetcher with the given configuration.
func NewWithConfig(config FetcherConfig) *Fetcher {
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.RateLimit == 0 {
		config.RateLimit = 2
	}

	return &Fetcher{
		config: config,
		client: &http.Client{
			Timeout: config.Timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(config.RateLimit), 1),
	}
}

// Refresh fills the extracted_text of every product that has a
// source_url but no text yet. Per-product failures are logged and
// skipped; the rest of the catalog is still processed.
func (f *Fetcher) Refresh(ctx context.Context, products []models.Product) []models.Product {
	for i := range products {
		p := &products[i]
		if p.SourceURL == "" || p.ExtractedText != "" {
			continue
		}

		text, err := f.FetchSheet(ctx, p.SourceURL)
		if err != nil {
			log.Printf("warning: failed to fetch %s: %v", p.SourceURL, err)
			continue
		}
		p.ExtractedText = text

		if f.config.OnProgress != nil {
			f.config.OnProgress(p.SourceURL)
		}
	}
	return products
}

// FetchSheet downloads one product page and returns its main content as
// whitespace-normalized text.
func (f *Fetcher) FetchSheet(ctx context.Context, url string) (string, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("received status code %d for URL: %s", resp.StatusCode, url)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", err
	}

	return extractMainContent(doc), nil
}

func extractMainContent(doc *goquery.Document) string {
	selectors := []string{
		"main",
		"article",
		".content",
		"#content",
		".product-details",
		"#product-details",
	}

	var content string
	for _, selector := range selectors {
		if selected := doc.Find(selector); selected.Length() > 0 {
			content = selected.Text()
			break
		}
	}

	// Fallback to body if no main content found
	if content == "" {
		content = doc.Find("body").Text()
	}

	return cleanContent(content)
}

func cleanContent(content string) string {
	content = strings.Join(strings.Fields(content), " ")

	noisePatterns := []string{
		"Cookie Policy",
		"Accept Cookies",
		"Privacy Policy",
		"Terms of Service",
	}
	for _, pattern := range noisePatterns {
		content = strings.ReplaceAll(content, pattern, "")
	}

	return strings.TrimSpace(content)
}
