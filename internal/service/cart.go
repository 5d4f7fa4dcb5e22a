package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/arvandstudio/arvand-server/internal/domain"
	"github.com/arvandstudio/arvand-server/internal/sse"
	"github.com/arvandstudio/arvand-server/internal/store"
)

// CartService owns the shopping cart. At most one line exists per book id;
// adding an already-present book increments the quantity instead.
type CartService struct {
	store      *store.Store
	notifier   *NotifierService
	audit      *AuditService
	sseManager *sse.Manager
	logger     *slog.Logger

	mu    sync.RWMutex
	items []*domain.CartItem
}

// NewCartService creates a new cart service.
func NewCartService(
	store *store.Store,
	notifier *NotifierService,
	audit *AuditService,
	sseManager *sse.Manager,
	logger *slog.Logger,
) *CartService {
	return &CartService{
		store:      store,
		notifier:   notifier,
		audit:      audit,
		sseManager: sseManager,
		logger:     logger,
	}
}

// Load rehydrates the cart from the store. Called once at startup.
func (s *CartService) Load(ctx context.Context) error {
	items, err := s.store.CartItems.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("load cart: %w", err)
	}

	// The store iterates in key order; restore the order lines were added.
	slices.SortFunc(items, func(a, b *domain.CartItem) int {
		return a.AddedAt.Compare(b.AddedAt)
	})

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()

	s.logger.Info("cart loaded", "items", len(items))
	return nil
}

// Add puts a book in the cart. An existing line gets its quantity bumped;
// a new book becomes a line with quantity 1. Both paths queue a toast,
// append one audit entry, and tell clients to open the cart view.
func (s *CartService) Add(ctx context.Context, book *domain.Book) (*domain.CartItem, error) {
	// The lock spans the store write: concurrent adds for the same book
	// must serialize or two lines could land for one id.
	s.mu.Lock()
	idx := slices.IndexFunc(s.items, func(i *domain.CartItem) bool { return i.Book.ID == book.ID })

	var item *domain.CartItem
	if idx >= 0 {
		existing := *s.items[idx]
		existing.Quantity++
		item = &existing
	} else {
		item = &domain.CartItem{Book: *book, Quantity: 1, AddedAt: time.Now()}
	}

	if err := s.store.CartItems.Put(ctx, book.ID, item); err != nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("persist cart item: %w", err)
	}

	if idx >= 0 {
		s.items[idx] = item
	} else {
		s.items = append(s.items, item)
	}
	s.mu.Unlock()

	if idx >= 0 {
		s.notifier.Notify(fmt.Sprintf("%s quantity updated", book.Title.Base), domain.SeveritySuccess)
	} else {
		s.notifier.Notify(fmt.Sprintf("%s added to cart", book.Title.Base), domain.SeveritySuccess)
	}

	if _, err := s.audit.Append(ctx, fmt.Sprintf("Added to cart: %s", book.Title.Base)); err != nil {
		s.logger.Warn("failed to append audit entry", "error", err)
	}

	// The storefront opens the cart drawer whenever a line changes.
	s.sseManager.Emit(sse.NewEvent(sse.EventCartUpdated, map[string]any{"open": true}))

	return item, nil
}

// Remove takes a line out of the cart by book id. Removing an unknown id
// is a no-op with no side effects.
func (s *CartService) Remove(ctx context.Context, bookID string) error {
	s.mu.Lock()
	idx := slices.IndexFunc(s.items, func(i *domain.CartItem) bool { return i.Book.ID == bookID })
	if idx < 0 {
		s.mu.Unlock()
		return nil
	}

	if err := s.store.CartItems.Delete(ctx, bookID); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("delete cart item: %w", err)
	}

	s.items = slices.DeleteFunc(s.items, func(i *domain.CartItem) bool { return i.Book.ID == bookID })
	s.mu.Unlock()

	s.sseManager.Emit(sse.NewEvent(sse.EventCartUpdated, map[string]any{"open": false}))
	return nil
}

// Clear empties the cart. Idempotent.
func (s *CartService) Clear(ctx context.Context) error {
	s.mu.Lock()
	if err := s.store.CartItems.DeleteAll(ctx); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("clear cart: %w", err)
	}
	s.items = nil
	s.mu.Unlock()

	s.sseManager.Emit(sse.NewEvent(sse.EventCartUpdated, map[string]any{"open": false}))
	return nil
}

// Items returns the cart lines in insertion order.
func (s *CartService) Items() []*domain.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.items)
}

// Total derives the cart total from current contents. Never cached, so it
// can never diverge from the lines themselves.
func (s *CartService) Total() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total float64
	for _, item := range s.items {
		total += item.Subtotal()
	}
	return total
}
