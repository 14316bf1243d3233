package catalog

import (
	"encoding/json"
	"log"
	"os"
	"strings"

	"github.com/rxbase/rxassist/internal/models"
)

// MaxEmbeddingTextLen bounds the size of the text blob sent to the
// embedding API.
const MaxEmbeddingTextLen = 6000

// embeddingFields is the ordered allow-list of fields that contribute to
// a product's embedding text.
var embeddingFields = []struct {
	label string
	value func(models.Product) string
}{
	{"Product Name", func(p models.Product) string { return p.ProductName }},
	{"Brand Name", func(p models.Product) string { return p.BrandName }},
	{"Therapeutic Class", func(p models.Product) string { return p.TherapeuticClass }},
	{"Strength", func(p models.Product) string { return p.Strength }},
	{"Dosage Form", func(p models.Product) string { return p.DosageForm }},
	{"Pack Size", func(p models.Product) string { return p.PackSize }},
	{"Composition", func(p models.Product) string { return p.Composition }},
	{"Indication Summary", func(p models.Product) string { return p.IndicationSummary }},
	{"Extracted Text", func(p models.Product) string { return p.ExtractedText }},
}

// Load reads a JSON array of product records. It fails softly: read or
// parse errors are logged and an empty catalog is returned.
func Load(path string) []models.Product {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("warning: could not read catalog %s: %v", path, err)
		return nil
	}

	var products []models.Product
	if err := json.Unmarshal(data, &products); err != nil {
		log.Printf("warning: could not parse catalog %s: %v", path, err)
		return nil
	}

	return products
}

// Names returns the display names of every product, skipping records
// with no usable name.
func Names(products []models.Product) []string {
	var names []string
	for _, p := range products {
		name := p.ProductName
		if name == "" {
			name = p.BrandName
		}
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}

// BuildEmbeddingText concatenates the allow-listed fields of a product
// into one labelled text blob. Records with none of the fields present
// fall back to their id. The result never exceeds MaxEmbeddingTextLen
// characters.
func BuildEmbeddingText(p models.Product) string {
	var parts []string
	for _, f := range embeddingFields {
		if v := f.value(p); v != "" {
			parts = append(parts, f.label+": "+v)
		}
	}
	if len(parts) == 0 {
		parts = append(parts, p.ID)
	}

	text := strings.TrimSpace(strings.Join(parts, "\n"))
	return truncate(text, MaxEmbeddingTextLen)
}

// truncate cuts s to at most n characters without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
