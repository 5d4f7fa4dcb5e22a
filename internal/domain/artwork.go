package domain

import (
	"github.com/arvandstudio/arvand-server/internal/i18n"
)

// Category classifies an artwork. The set is fixed; the admin form offers
// exactly these values.
type Category string

// Artwork categories.
const (
	CategoryPainting      Category = "Painting"
	CategorySculpture     Category = "Sculpture"
	CategoryDigital       Category = "Digital Art"
	CategoryPhotography   Category = "Photography"
	CategoryPhilosophy    Category = "Philosophy"
	CategoryGraphicDesign Category = "Graphic Design"
)

// Categories lists every valid artwork category.
var Categories = []Category{
	CategoryPainting,
	CategorySculpture,
	CategoryDigital,
	CategoryPhotography,
	CategoryPhilosophy,
	CategoryGraphicDesign,
}

// Valid reports whether c is one of the fixed categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Artwork is a portfolio piece. Immutable after creation; the only
// lifecycle operations are add and delete.
type Artwork struct {
	Record
	Title       i18n.Text `json:"title"`
	Description i18n.Text `json:"description"`
	Technique   i18n.Text `json:"technique,omitzero"`
	Category    Category  `json:"category"`
	ImageURL    string    `json:"image_url"`
	Dimensions  string    `json:"dimensions,omitempty"`
	Year        int       `json:"year"`
	Featured    bool      `json:"featured,omitempty"`
}
