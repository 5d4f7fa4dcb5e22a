// Package i18n provides the supported language set and localized text values
// for the Arvand catalog.
//
// Every piece of visitor-facing text carries a required base (English) value
// plus optional per-language overrides. Resolution always falls back to the
// base value, so a missing translation is never an error.
package i18n

import (
	"golang.org/x/text/language"
)

// Language is a supported interface language code.
type Language string

// The eight languages the catalog is published in. English is the base
// language and is never stored as an override.
const (
	English Language = "en"
	Persian Language = "fa"
	French  Language = "fr"
	German  Language = "de"
	Russian Language = "ru"
	Turkish Language = "tr"
	Arabic  Language = "ar"
	Chinese Language = "zh"
)

// Supported lists every language the catalog is published in, base first.
var Supported = []Language{English, Persian, French, German, Russian, Turkish, Arabic, Chinese}

// Base is the default language; Text values must always carry a base variant.
const Base = English

// Variants lists the non-base languages, in the order translation prompts
// request them.
var Variants = []Language{Persian, French, German, Russian, Turkish, Arabic, Chinese}

// matcher resolves arbitrary BCP 47 tags against the supported set.
var matcher = func() language.Matcher {
	tags := make([]language.Tag, 0, len(Supported))
	for _, l := range Supported {
		tags = append(tags, language.Make(string(l)))
	}
	return language.NewMatcher(tags)
}()

// IsSupported reports whether code names one of the supported languages.
func IsSupported(code string) bool {
	for _, l := range Supported {
		if string(l) == code {
			return true
		}
	}
	return false
}

// Match resolves an Accept-Language header (or a bare language code) to the
// closest supported language. Unrecognized or empty input resolves to the
// base language.
func Match(acceptLanguage string) Language {
	if acceptLanguage == "" {
		return Base
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return Base
	}
	_, index, _ := matcher.Match(tags...)
	return Supported[index]
}

// Text is a localized string: a required base value plus optional overrides
// for the non-base languages.
//
// This replaces the historical one-column-per-language record shape; the
// supported set can grow without touching entity definitions.
type Text struct {
	Base     string              `json:"base"`
	Variants map[Language]string `json:"variants,omitempty"`
}

// New creates a Text with only the base value set.
func New(base string) Text {
	return Text{Base: base}
}

// In returns the value for lang, falling back to the base value when the
// override is absent or empty. Asking for the base language always returns
// the base value.
func (t Text) In(lang Language) string {
	if lang == Base {
		return t.Base
	}
	if v, ok := t.Variants[lang]; ok && v != "" {
		return v
	}
	return t.Base
}

// Set records an override for lang. Setting the base language replaces the
// base value instead.
func (t *Text) Set(lang Language, value string) {
	if lang == Base {
		t.Base = value
		return
	}
	if t.Variants == nil {
		t.Variants = make(map[Language]string, len(Variants))
	}
	t.Variants[lang] = value
}

// IsZero reports whether the Text carries no base value.
func (t Text) IsZero() bool {
	return t.Base == ""
}

// All returns the value in every supported language, resolved with fallback.
// Used for search indexing, where each localized variant is a match target.
func (t Text) All() []string {
	seen := make(map[string]bool, len(Supported))
	out := make([]string, 0, len(Supported))
	for _, l := range Supported {
		v := t.In(l)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
