package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/arvandstudio/arvand-server/internal/domain"
	"github.com/arvandstudio/arvand-server/internal/errors"
	"github.com/arvandstudio/arvand-server/internal/id"
	"github.com/arvandstudio/arvand-server/internal/store"
)

// transcriptContextSize is how many trailing messages are replayed to the
// advisor as conversation context.
const transcriptContextSize = 5

// Advisor answers strategy questions given the current site context.
type Advisor interface {
	Advise(ctx context.Context, query, siteContext string) (string, error)
}

// ChatService owns the strategic advisor transcript on the admin
// dashboard. Messages persist across restarts; the transcript can only
// grow or be cleared wholesale.
type ChatService struct {
	store   *store.Store
	advisor Advisor
	catalog *CatalogService
	logger  *slog.Logger

	mu       sync.RWMutex
	messages []*domain.ChatMessage
}

// NewChatService creates a new chat service.
func NewChatService(store *store.Store, advisor Advisor, catalog *CatalogService, logger *slog.Logger) *ChatService {
	return &ChatService{
		store:   store,
		advisor: advisor,
		catalog: catalog,
		logger:  logger,
	}
}

// Load rehydrates the transcript from the store. Called once at startup.
func (s *ChatService) Load(ctx context.Context) error {
	messages, err := s.store.Messages.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("load chat transcript: %w", err)
	}

	slices.SortFunc(messages, func(a, b *domain.ChatMessage) int {
		return a.Timestamp.Compare(b.Timestamp)
	})

	s.mu.Lock()
	s.messages = messages
	s.mu.Unlock()

	s.logger.Info("chat transcript loaded", "messages", len(messages))
	return nil
}

// Ask records the admin's question, consults the advisor with the current
// site context, and records the reply. On advisor failure the question
// stays in the transcript and the error is returned to the caller.
func (s *ChatService) Ask(ctx context.Context, query string) (*domain.ChatMessage, error) {
	if strings.TrimSpace(query) == "" {
		return nil, errors.Validation("query is empty")
	}

	if _, err := s.append(ctx, domain.RoleUser, query); err != nil {
		return nil, err
	}

	answer, err := s.advisor.Advise(ctx, query, s.siteContext())
	if err != nil {
		return nil, fmt.Errorf("advisor: %w", err)
	}

	return s.append(ctx, domain.RoleAssistant, answer)
}

// append persists one message and adds it to the transcript.
func (s *ChatService) append(ctx context.Context, role domain.ChatRole, content string) (*domain.ChatMessage, error) {
	messageID, err := id.Generate("msg")
	if err != nil {
		return nil, fmt.Errorf("generate message ID: %w", err)
	}

	message := &domain.ChatMessage{
		ID:        messageID,
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	}

	if err := s.store.Messages.Create(ctx, message.ID, message); err != nil {
		return nil, fmt.Errorf("persist chat message: %w", err)
	}

	s.mu.Lock()
	s.messages = append(s.messages, message)
	s.mu.Unlock()

	return message, nil
}

// siteContext summarizes the catalog and recent conversation for the
// advisor prompt.
func (s *ChatService) siteContext() string {
	artworks, books, posts := s.catalog.Counts()

	var b strings.Builder
	fmt.Fprintf(&b, "The site currently holds %d artworks, %d books and %d journal posts.", artworks, books, posts)

	s.mu.RLock()
	recent := s.messages
	if len(recent) > transcriptContextSize {
		recent = recent[len(recent)-transcriptContextSize:]
	}
	for _, m := range recent {
		fmt.Fprintf(&b, "\n%s: %s", m.Role, m.Content)
	}
	s.mu.RUnlock()

	return b.String()
}

// Messages returns the transcript in chronological order.
func (s *ChatService) Messages() []*domain.ChatMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.messages)
}

// Clear wipes the transcript.
func (s *ChatService) Clear(ctx context.Context) error {
	if err := s.store.Messages.DeleteAll(ctx); err != nil {
		return fmt.Errorf("clear chat transcript: %w", err)
	}

	s.mu.Lock()
	s.messages = nil
	s.mu.Unlock()

	return nil
}
