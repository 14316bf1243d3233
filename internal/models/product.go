package models

import "fmt"

// Product is one record from the catalog JSON file. Every field is
// optional; records are read-only once loaded.
type Product struct {
	ID                string `json:"id,omitempty"`
	ProductName       string `json:"product_name,omitempty"`
	BrandName         string `json:"brand_name,omitempty"`
	TherapeuticClass  string `json:"therapeutic_class,omitempty"`
	Strength          string `json:"strength,omitempty"`
	DosageForm        string `json:"dosage_form,omitempty"`
	PackSize          string `json:"pack_size,omitempty"`
	Composition       string `json:"composition,omitempty"`
	IndicationSummary string `json:"indication_summary,omitempty"`
	ExtractedText     string `json:"extracted_text,omitempty"`
	SourceURL         string `json:"source_url,omitempty"`
}

// UID returns the record id, or a positional fallback when the record
// carries none. pos is the record's index in the catalog.
func (p Product) UID(pos int) string {
	if p.ID != "" {
		return p.ID
	}
	return fmt.Sprintf("vec_%d", pos)
}

// DisplayTitle returns the product name, falling back to the brand name
// and then the uid.
func (p Product) DisplayTitle(pos int) string {
	if p.ProductName != "" {
		return p.ProductName
	}
	if p.BrandName != "" {
		return p.BrandName
	}
	return p.UID(pos)
}

// Turn is one caller-owned conversation message.
type Turn struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// ChunkMetadata travels with every indexed vector and comes back on
// query hits.
type ChunkMetadata struct {
	Title      string
	SourceID   string
	ChunkIndex int
	Text       string
}

// VectorEntry is one (id, embedding, metadata) triple for upsert.
type VectorEntry struct {
	ID       string
	Values   []float32
	Metadata ChunkMetadata
}

// ScoredChunk is one nearest-neighbor hit.
type ScoredChunk struct {
	Text  string
	Score float32
}
