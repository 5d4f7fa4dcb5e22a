// Package translator generates localized catalog content through an
// OpenAI-compatible chat completion API.
//
// The admin composes new records in Persian only; this package asks the
// model for the full eight-language field set in a single call and parses
// the flat JSON it returns. A failed or malformed response fails the whole
// operation so the catalog never holds half-translated records.
package translator

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/arvandstudio/arvand-server/internal/errors"
	"github.com/arvandstudio/arvand-server/internal/ratelimit"
)

const (
	defaultBaseURL = "https://openrouter.ai/api/v1"
	defaultModel   = "google/gemini-2.5-flash"
	defaultTimeout = 120 * time.Second
	maxRetries     = 3
)

// Config holds the settings for the content engine client.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// Client talks to the chat completion API.
type Client struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	limiter *ratelimit.KeyedRateLimiter
	logger  *slog.Logger
}

// New creates a content engine client. The API key is required; every
// other field falls back to a sensible default.
func New(cfg Config, logger *slog.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, stderrors.New("translator: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	apiCfg := openai.DefaultConfig(cfg.APIKey)
	apiCfg.BaseURL = cfg.BaseURL

	return &Client{
		client:  openai.NewClientWithConfig(apiCfg),
		model:   cfg.Model,
		timeout: cfg.Timeout,
		limiter: ratelimit.New(1, 3), // The upstream provider throttles aggressively
		logger:  logger,
	}, nil
}

// Close releases the client's rate limiter resources.
func (c *Client) Close() {
	c.limiter.Stop()
}

// GenerateLocalized asks the model for the full localized field set of one
// new record. title and body are the admin's Persian inputs; extra carries
// kind-specific context such as the artwork category.
func (c *Client) GenerateLocalized(ctx context.Context, kind Kind, title, body, extra string) (*Content, error) {
	raw, err := c.complete(ctx, generatorSystemPrompt, generatePrompt(kind, title, body, extra), 0.7)
	if err != nil {
		return nil, err
	}
	return parseContent(raw)
}

// Advise answers a strategy question from the admin dashboard. siteContext
// describes the current catalog state and recent conversation.
func (c *Client) Advise(ctx context.Context, query, siteContext string) (string, error) {
	return c.complete(ctx, advisorSystemPrompt, advisePrompt(query, siteContext), 0.8)
}

// complete runs one chat completion with retries.
func (c *Client) complete(ctx context.Context, system, user string, temperature float32) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: temperature,
	}

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		// Every attempt waits on the limiter, so retries after a throttled
		// response are spaced out instead of fired back to back.
		if err := c.limiter.Wait(ctx, "chat"); err != nil {
			return "", errors.Wrap(err, errors.CodeUpstream, "content engine request throttled")
		}

		resp, err := c.client.CreateChatCompletion(ctx, req)
		if err != nil {
			lastErr = err
			if c.logger != nil {
				c.logger.Warn("Content engine request failed", "attempt", attempt, "error", err)
			}
			if ctx.Err() != nil {
				break
			}
			continue
		}

		if len(resp.Choices) == 0 {
			lastErr = stderrors.New("empty response: no choices returned")
			continue
		}

		return resp.Choices[0].Message.Content, nil
	}

	return "", errors.Wrap(lastErr, errors.CodeUpstream, "content engine request failed")
}

const generatorSystemPrompt = `You are the content engine for a multilingual high-end art website. ` +
	`You translate Persian source material into academic, philosophical, sophisticated prose. ` +
	`You always answer with a single valid JSON object and nothing else. No markdown fences.`

const advisorSystemPrompt = `You are the strategic advisor for a world-renowned Professor of Philosophy and Artist. ` +
	`Provide concise, professional, actionable answers of at most 150 words. ` +
	`If the user asks in Persian, reply in Persian.`

// generatePrompt builds the user prompt for one localized record.
func generatePrompt(kind Kind, title, body, extra string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "I will provide a Persian title and description for a new %s.\n\n", kind)
	b.WriteString("Your task:\n")
	b.WriteString("1. Translate the title and description into English (en), French (fr), German (de), Russian (ru), Turkish (tr), Arabic (ar) and Chinese (zh), keeping the Persian original.\n")
	b.WriteString("2. Use plain field names for English (e.g. \"title\") and append the language code for every other language (e.g. \"title_fa\", \"description_ru\").\n")
	b.WriteString("3. Return ONLY the JSON object.\n\n")

	switch kind {
	case KindArtwork:
		b.WriteString("Fields required: title, description and technique (infer the technique if possible), each in all languages.\n")
	case KindBook:
		b.WriteString("Fields required: title, subtitle and description, each in all languages.\n")
	case KindJournal:
		b.WriteString("Fields required: title and excerpt in all languages, plus a short essay body of about 300 words under \"content\" (English) and \"content_fa\" (Persian) only.\n")
	}

	fmt.Fprintf(&b, "\nInput title (Persian): %s\n", title)
	fmt.Fprintf(&b, "Input description (Persian): %s\n", body)
	if extra != "" {
		fmt.Fprintf(&b, "Extra info: %s\n", extra)
	}

	return b.String()
}

// advisePrompt builds the user prompt for one advisor exchange.
func advisePrompt(query, siteContext string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Context of current site status: %s\n\n", siteContext)
	fmt.Fprintf(&b, "The user asks: %q\n", query)
	return b.String()
}
