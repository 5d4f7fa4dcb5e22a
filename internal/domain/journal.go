package domain

import (
	"github.com/arvandstudio/arvand-server/internal/i18n"
)

// JournalPost is an essay published in the journal section.
type JournalPost struct {
	Record
	Title   i18n.Text `json:"title"`
	Excerpt i18n.Text `json:"excerpt"`
	Content i18n.Text `json:"content"`
	Date    string    `json:"date"` // ISO 8601 date
	// Tags are free text, order preserved, duplicates permitted.
	Tags []string `json:"tags"`
}
