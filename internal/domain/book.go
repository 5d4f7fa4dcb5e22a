package domain

import (
	"github.com/arvandstudio/arvand-server/internal/i18n"
)

// Book is a published title offered in the bookstore.
type Book struct {
	Record
	Title       i18n.Text `json:"title"`
	Subtitle    i18n.Text `json:"subtitle,omitzero"`
	Description i18n.Text `json:"description"`
	CoverURL    string    `json:"cover_url"`
	PublishDate string    `json:"publish_date"` // ISO 8601
	Price       float64   `json:"price"`
	Pages       int       `json:"pages"`
}
