package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rxbase/rxassist/internal/models"
)

func TestFetchSheet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`
			<html>
				<head><title>CIPROTAB 500</title></head>
				<body>
					<nav>Navigation junk</nav>
					<main>
						<h1>CIPROTAB 500</h1>
						<p>Ciprofloxacin tablets for bacterial infections.</p>
					</main>
				</body>
			</html>
		`))
	}))
	defer server.Close()

	f := NewWithConfig(FetcherConfig{RateLimit: 100})

	text, err := f.FetchSheet(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Contains(t, text, "CIPROTAB 500")
	assert.Contains(t, text, "Ciprofloxacin tablets")
	assert.NotContains(t, text, "Navigation junk")
}

func TestFetchSheetBodyFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><p>Plain page text</p></body></html>`))
	}))
	defer server.Close()

	f := NewWithConfig(FetcherConfig{RateLimit: 100})

	text, err := f.FetchSheet(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "Plain page text", text)
}

func TestFetchSheetBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	f := NewWithConfig(FetcherConfig{RateLimit: 100})

	_, err := f.FetchSheet(context.Background(), server.URL)
	assert.Error(t, err)
}

func TestRefresh(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><main>Fetched sheet text</main></body></html>`))
	}))
	defer server.Close()

	var fetched []string
	f := NewWithConfig(FetcherConfig{
		RateLimit:  100,
		OnProgress: func(url string) { fetched = append(fetched, url) },
	})

	products := []models.Product{
		{ID: "p1", SourceURL: server.URL},
		{ID: "p2", SourceURL: server.URL, ExtractedText: "already filled"},
		{ID: "p3"}, // no source URL
	}

	result := f.Refresh(context.Background(), products)

	assert.Equal(t, "Fetched sheet text", result[0].ExtractedText)
	assert.Equal(t, "already filled", result[1].ExtractedText)
	assert.Empty(t, result[2].ExtractedText)
	assert.Len(t, fetched, 1)
}

func TestRefreshSkipsFailedFetches(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	f := NewWithConfig(FetcherConfig{RateLimit: 100})

	products := []models.Product{{ID: "p1", SourceURL: server.URL}}
	result := f.Refresh(context.Background(), products)

	// Failure is logged and skipped, not fatal.
	assert.Empty(t, result[0].ExtractedText)
}
