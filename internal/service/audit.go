// Package service holds the application state container, split into one
// service per concern. Every service keeps its working copy in memory,
// writes through to the store before mutating it, and fans changes out
// over SSE.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/arvandstudio/arvand-server/internal/domain"
	"github.com/arvandstudio/arvand-server/internal/id"
	"github.com/arvandstudio/arvand-server/internal/sse"
	"github.com/arvandstudio/arvand-server/internal/store"
)

// AuditService keeps the append-only admin action log, newest first.
type AuditService struct {
	store      *store.Store
	sseManager *sse.Manager
	logger     *slog.Logger

	mu      sync.RWMutex
	entries []*domain.AuditEntry
}

// NewAuditService creates a new audit service.
func NewAuditService(store *store.Store, sseManager *sse.Manager, logger *slog.Logger) *AuditService {
	return &AuditService{
		store:      store,
		sseManager: sseManager,
		logger:     logger,
	}
}

// Load rehydrates the log from the store. Called once at startup.
func (s *AuditService) Load(ctx context.Context) error {
	entries, err := s.store.Logs.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("load audit log: %w", err)
	}

	slices.SortFunc(entries, func(a, b *domain.AuditEntry) int {
		return b.Timestamp.Compare(a.Timestamp)
	})

	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()

	s.logger.Info("audit log loaded", "entries", len(entries))
	return nil
}

// Append records one admin action at the head of the log.
func (s *AuditService) Append(ctx context.Context, action string) (*domain.AuditEntry, error) {
	entryID, err := id.Generate("log")
	if err != nil {
		return nil, fmt.Errorf("generate log ID: %w", err)
	}

	entry := &domain.AuditEntry{
		ID:        entryID,
		Action:    action,
		Timestamp: time.Now(),
	}

	if err := s.store.Logs.Create(ctx, entry.ID, entry); err != nil {
		return nil, fmt.Errorf("persist audit entry: %w", err)
	}

	s.mu.Lock()
	s.entries = append([]*domain.AuditEntry{entry}, s.entries...)
	s.mu.Unlock()

	s.sseManager.Emit(sse.NewEvent(sse.EventAuditLogged, entry))

	return entry, nil
}

// List returns the log entries, newest first.
func (s *AuditService) List() []*domain.AuditEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.entries)
}
