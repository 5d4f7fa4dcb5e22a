package translator

import (
	"encoding/json/v2"
	"strings"

	"github.com/arvandstudio/arvand-server/internal/errors"
	"github.com/arvandstudio/arvand-server/internal/i18n"
)

// Kind selects which field set the content engine is asked to produce.
type Kind string

const (
	KindArtwork Kind = "artwork"
	KindBook    Kind = "book"
	KindJournal Kind = "journal"
)

// Content is the parsed result of one generation call. Only the fields
// relevant to the requested Kind are populated.
type Content struct {
	Title       i18n.Text
	Subtitle    i18n.Text
	Description i18n.Text
	Technique   i18n.Text
	Excerpt     i18n.Text
	Body        i18n.Text
}

// parseContent decodes the model's flat JSON payload into localized texts.
//
// The wire format uses plain field names for the English base ("title",
// "description") and language-suffixed names for every other language
// ("title_fa", "description_ru"). Any malformed payload fails the whole
// call; partial content never reaches the catalog.
func parseContent(raw string) (*Content, error) {
	cleaned := stripFences(raw)

	var fields map[string]string
	if err := json.Unmarshal([]byte(cleaned), &fields); err != nil {
		return nil, errors.Wrap(err, errors.CodeUpstream, "content engine returned malformed JSON")
	}
	if len(fields) == 0 {
		return nil, errors.Upstream("content engine returned an empty object")
	}

	c := &Content{
		Title:       collectText(fields, "title"),
		Subtitle:    collectText(fields, "subtitle"),
		Description: collectText(fields, "description"),
		Technique:   collectText(fields, "technique"),
		Excerpt:     collectText(fields, "excerpt"),
		Body:        collectText(fields, "content"),
	}

	if c.Title.IsZero() {
		return nil, errors.Upstream("content engine response is missing a title")
	}

	return c, nil
}

// collectText assembles one localized text from a base field and its
// language-suffixed siblings.
func collectText(fields map[string]string, name string) i18n.Text {
	text := i18n.New(fields[name])
	for _, lang := range i18n.Variants {
		if v := fields[name+"_"+string(lang)]; v != "" {
			text.Set(lang, v)
		}
	}
	return text
}

// stripFences removes markdown code fences some models wrap around JSON
// even when asked not to.
func stripFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
