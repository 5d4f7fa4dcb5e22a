package translator

import (
	"context"
	jsonv1 "encoding/json"
	"encoding/json/v2"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arvandstudio/arvand-server/internal/errors"
	"github.com/arvandstudio/arvand-server/internal/i18n"
)

// newFakeEngine starts a chat completion endpoint that always answers with
// the given message content.
func newFakeEngine(t *testing.T, content string, status int) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}

		resp := openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: content}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.MarshalWrite(w, resp, jsonv1.DefaultOptionsV1()); err != nil {
			t.Errorf("failed to write fake response: %v", err)
		}
	}))
	t.Cleanup(srv.Close)

	return srv
}

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()

	c, err := New(Config{
		APIKey:  "test-key",
		BaseURL: baseURL,
		Model:   "test-model",
		Timeout: 5 * time.Second,
	}, nil)
	require.NoError(t, err)
	t.Cleanup(c.Close)

	return c
}

func TestNew_RequiresAPIKey(t *testing.T) {
	_, err := New(Config{}, nil)
	assert.Error(t, err)
}

func TestGenerateLocalized_Artwork(t *testing.T) {
	payload := `{
		"title": "Threshold", "title_fa": "آستانه", "title_fr": "Seuil",
		"description": "A study of passage.", "description_fa": "مطالعه‌ای درباره گذار.",
		"technique": "Oil on canvas", "technique_fa": "رنگ روغن روی بوم"
	}`
	srv := newFakeEngine(t, payload, http.StatusOK)
	c := newTestClient(t, srv.URL)

	content, err := c.GenerateLocalized(context.Background(), KindArtwork, "آستانه", "گذار", "Painting")
	require.NoError(t, err)

	assert.Equal(t, "Threshold", content.Title.Base)
	assert.Equal(t, "آستانه", content.Title.In(i18n.Persian))
	assert.Equal(t, "Seuil", content.Title.In(i18n.French))
	assert.Equal(t, "Oil on canvas", content.Technique.Base)
	// Missing variants fall back to the base language.
	assert.Equal(t, "A study of passage.", content.Description.In(i18n.Chinese))
}

func TestGenerateLocalized_StripsMarkdownFences(t *testing.T) {
	payload := "```json\n{\"title\": \"Threshold\", \"description\": \"A study.\"}\n```"
	srv := newFakeEngine(t, payload, http.StatusOK)
	c := newTestClient(t, srv.URL)

	content, err := c.GenerateLocalized(context.Background(), KindArtwork, "آستانه", "گذار", "")
	require.NoError(t, err)
	assert.Equal(t, "Threshold", content.Title.Base)
}

func TestGenerateLocalized_MalformedJSON(t *testing.T) {
	srv := newFakeEngine(t, "sorry, I cannot help with that", http.StatusOK)
	c := newTestClient(t, srv.URL)

	_, err := c.GenerateLocalized(context.Background(), KindArtwork, "آستانه", "گذار", "")
	assert.ErrorIs(t, err, errors.ErrUpstream)
}

func TestGenerateLocalized_MissingTitle(t *testing.T) {
	srv := newFakeEngine(t, `{"description": "orphaned"}`, http.StatusOK)
	c := newTestClient(t, srv.URL)

	_, err := c.GenerateLocalized(context.Background(), KindArtwork, "آستانه", "گذار", "")
	assert.ErrorIs(t, err, errors.ErrUpstream)
}

func TestGenerateLocalized_UpstreamFailure(t *testing.T) {
	srv := newFakeEngine(t, "", http.StatusInternalServerError)
	c := newTestClient(t, srv.URL)

	_, err := c.GenerateLocalized(context.Background(), KindArtwork, "آستانه", "گذار", "")
	assert.ErrorIs(t, err, errors.ErrUpstream)
}

func TestGenerateLocalized_RetriesThroughLimiter(t *testing.T) {
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)
	c := newTestClient(t, srv.URL)

	_, err := c.GenerateLocalized(context.Background(), KindArtwork, "آستانه", "گذار", "")
	assert.ErrorIs(t, err, errors.ErrUpstream)

	// Each attempt passes through the limiter before hitting the wire.
	assert.Equal(t, maxRetries, requests)
}

func TestAdvise(t *testing.T) {
	srv := newFakeEngine(t, "Focus on the sculpture collection this quarter.", http.StatusOK)
	c := newTestClient(t, srv.URL)

	answer, err := c.Advise(context.Background(), "What should I prioritize?", "12 artworks, 3 books")
	require.NoError(t, err)
	assert.Equal(t, "Focus on the sculpture collection this quarter.", answer)
}

func TestParseContent_JournalBody(t *testing.T) {
	payload := `{
		"title": "On Passage", "title_fa": "درباره گذار",
		"excerpt": "An essay on thresholds.", "excerpt_fa": "جستاری درباره آستانه‌ها.",
		"content": "The threshold is where...", "content_fa": "آستانه جایی است که..."
	}`

	content, err := parseContent(payload)
	require.NoError(t, err)

	assert.Equal(t, "An essay on thresholds.", content.Excerpt.Base)
	assert.Equal(t, "آستانه جایی است که...", content.Body.In(i18n.Persian))
	// Journal bodies only come back in two languages; the rest fall back.
	assert.Equal(t, "The threshold is where...", content.Body.In(i18n.German))
}
