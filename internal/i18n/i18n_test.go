package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestText_In_FallsBackToBase(t *testing.T) {
	tests := []struct {
		name     string
		text     Text
		lang     Language
		expected string
	}{
		{
			name:     "override present",
			text:     Text{Base: "The Mirror", Variants: map[Language]string{Persian: "آینه"}},
			lang:     Persian,
			expected: "آینه",
		},
		{
			name:     "override absent",
			text:     Text{Base: "The Mirror", Variants: map[Language]string{Persian: "آینه"}},
			lang:     French,
			expected: "The Mirror",
		},
		{
			name:     "override empty string",
			text:     Text{Base: "The Mirror", Variants: map[Language]string{German: ""}},
			lang:     German,
			expected: "The Mirror",
		},
		{
			name:     "no variants at all",
			text:     New("The Mirror"),
			lang:     Chinese,
			expected: "The Mirror",
		},
		{
			name:     "base language ignores variants",
			text:     Text{Base: "The Mirror", Variants: map[Language]string{English: "wrong"}},
			lang:     English,
			expected: "The Mirror",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.text.In(tt.lang))
		})
	}
}

func TestText_In_EveryLanguageResolves(t *testing.T) {
	text := Text{Base: "Dust and Light", Variants: map[Language]string{
		Persian: "غبار و نور",
		French:  "Poussière et lumière",
	}}

	for _, lang := range Supported {
		got := text.In(lang)
		assert.NotEmpty(t, got, "language %s must resolve to something", lang)
		if v, ok := text.Variants[lang]; ok && v != "" && lang != Base {
			assert.Equal(t, v, got)
		}
	}
}

func TestText_Set(t *testing.T) {
	var text Text
	text.Set(English, "Origins")
	text.Set(Turkish, "Kökenler")

	assert.Equal(t, "Origins", text.Base)
	assert.Equal(t, "Kökenler", text.In(Turkish))
	assert.NotContains(t, text.Variants, English)
}

func TestText_All_DeduplicatesFallbacks(t *testing.T) {
	text := Text{Base: "Silence", Variants: map[Language]string{Russian: "Тишина"}}

	all := text.All()
	assert.ElementsMatch(t, []string{"Silence", "Тишина"}, all)
}

func TestMatch(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   Language
	}{
		{"empty header", "", English},
		{"exact code", "fa", Persian},
		{"weighted header", "de-DE,de;q=0.9,en;q=0.5", German},
		{"regional variant", "fr-CA", French},
		{"unsupported language", "ja", English},
		{"garbage", ";;;", English},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Match(tt.header))
		})
	}
}

func TestIsSupported(t *testing.T) {
	assert.True(t, IsSupported("zh"))
	assert.True(t, IsSupported("en"))
	assert.False(t, IsSupported("ja"))
	assert.False(t, IsSupported(""))
}
