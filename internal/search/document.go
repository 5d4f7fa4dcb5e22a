// Package search provides full-text search across the catalog using Bleve.
// Artworks, books and journal posts are indexed as one unified document
// type so a single query can span the whole site.
package search

import (
	"strings"

	"github.com/arvandstudio/arvand-server/internal/domain"
	"github.com/arvandstudio/arvand-server/internal/i18n"
)

// DocType represents the type of document in the unified index.
type DocType string

// Document types for the search index.
const (
	DocTypeArtwork DocType = "artwork"
	DocTypeBook    DocType = "book"
	DocTypeJournal DocType = "journal"
)

// SearchDocument is the unified document structure for the Bleve index.
//
// Localized fields are flattened for indexing: the English base goes into
// the stemmed fields, and every translation is concatenated into the
// *_all companions so a Persian or Russian query still finds the record.
type SearchDocument struct {
	// Identity
	ID   string  `json:"id"`
	Type DocType `json:"type"`

	// English base title (stemmed, stored, highlighted)
	Name string `json:"name"`

	// Every localized title value, newline-joined
	NameAll string `json:"name_all"`

	// Body text across languages: description, excerpt, essay content
	Body string `json:"body,omitempty"`

	// Artwork-specific
	Category string `json:"category,omitempty"`

	// Journal-specific
	Tags []string `json:"tags,omitempty"`

	// Numeric fields for range queries and sorting
	Year int `json:"year,omitempty"`

	// Timestamps for sorting
	CreatedAt int64 `json:"created_at"` // Unix millis
	UpdatedAt int64 `json:"updated_at"` // Unix millis
}

// ToMap converts the document to a map with lowercase field names.
// Bleve by default uses Go struct field names (capitalized), but our
// mapping uses lowercase names, so we convert explicitly.
func (d *SearchDocument) ToMap() map[string]interface{} {
	m := map[string]interface{}{
		"id":         d.ID,
		"type":       string(d.Type),
		"name":       d.Name,
		"name_all":   d.NameAll,
		"created_at": d.CreatedAt,
		"updated_at": d.UpdatedAt,
	}

	// Optional fields - only add if non-empty
	if d.Body != "" {
		m["body"] = d.Body
	}
	if d.Category != "" {
		m["category"] = d.Category
	}
	if len(d.Tags) > 0 {
		m["tags"] = d.Tags
	}
	if d.Year > 0 {
		m["year"] = d.Year
	}

	return m
}

// allText joins every localized value of the given texts.
func allText(texts ...i18n.Text) string {
	var parts []string
	for _, t := range texts {
		parts = append(parts, t.All()...)
	}
	return strings.Join(parts, "\n")
}

// ArtworkToSearchDocument converts an artwork to a SearchDocument.
func ArtworkToSearchDocument(a *domain.Artwork) *SearchDocument {
	return &SearchDocument{
		ID:        a.ID,
		Type:      DocTypeArtwork,
		Name:      a.Title.Base,
		NameAll:   allText(a.Title),
		Body:      allText(a.Description, a.Technique),
		Category:  string(a.Category),
		Year:      a.Year,
		CreatedAt: a.CreatedAt.UnixMilli(),
		UpdatedAt: a.UpdatedAt.UnixMilli(),
	}
}

// BookToSearchDocument converts a book to a SearchDocument.
func BookToSearchDocument(b *domain.Book) *SearchDocument {
	return &SearchDocument{
		ID:        b.ID,
		Type:      DocTypeBook,
		Name:      b.Title.Base,
		NameAll:   allText(b.Title, b.Subtitle),
		Body:      allText(b.Description),
		CreatedAt: b.CreatedAt.UnixMilli(),
		UpdatedAt: b.UpdatedAt.UnixMilli(),
	}
}

// JournalToSearchDocument converts a journal post to a SearchDocument.
func JournalToSearchDocument(p *domain.JournalPost) *SearchDocument {
	return &SearchDocument{
		ID:        p.ID,
		Type:      DocTypeJournal,
		Name:      p.Title.Base,
		NameAll:   allText(p.Title),
		Body:      allText(p.Excerpt, p.Content),
		Tags:      p.Tags,
		CreatedAt: p.CreatedAt.UnixMilli(),
		UpdatedAt: p.UpdatedAt.UnixMilli(),
	}
}
