package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/arvandstudio/arvand-server/internal/domain"
	"github.com/arvandstudio/arvand-server/internal/search"
	"github.com/arvandstudio/arvand-server/internal/sse"
	"github.com/arvandstudio/arvand-server/internal/store"
)

// CatalogService owns the three content collections: artworks, books and
// journal posts. Records are immutable after creation; the only mutations
// are add and remove.
//
// Every mutation persists to the store first and only then updates the
// in-memory copy, so a reported success is always durable and a failure
// leaves the working state untouched.
type CatalogService struct {
	store      *store.Store
	index      *search.SearchIndex
	audit      *AuditService
	sseManager *sse.Manager
	logger     *slog.Logger

	mu       sync.RWMutex
	artworks []*domain.Artwork
	books    []*domain.Book
	posts    []*domain.JournalPost
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(
	store *store.Store,
	index *search.SearchIndex,
	audit *AuditService,
	sseManager *sse.Manager,
	logger *slog.Logger,
) *CatalogService {
	return &CatalogService{
		store:      store,
		index:      index,
		audit:      audit,
		sseManager: sseManager,
		logger:     logger,
	}
}

// Load rehydrates all collections from the store and rebuilds the search
// index to match. Called once at startup.
func (s *CatalogService) Load(ctx context.Context) error {
	artworks, err := s.store.Artworks.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("load artworks: %w", err)
	}
	books, err := s.store.Books.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("load books: %w", err)
	}
	posts, err := s.store.Posts.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("load journal posts: %w", err)
	}

	sortArtworks(artworks)
	sortBooks(books)
	sortPosts(posts)

	s.mu.Lock()
	s.artworks = artworks
	s.books = books
	s.posts = posts
	s.mu.Unlock()

	if err := s.reindex(artworks, books, posts); err != nil {
		return fmt.Errorf("reindex catalog: %w", err)
	}

	s.logger.Info("catalog loaded",
		"artworks", len(artworks),
		"books", len(books),
		"journal_posts", len(posts))
	return nil
}

// reindex rebuilds the search index from the given collections.
func (s *CatalogService) reindex(artworks []*domain.Artwork, books []*domain.Book, posts []*domain.JournalPost) error {
	if err := s.index.Rebuild(); err != nil {
		return err
	}

	docs := make([]*search.SearchDocument, 0, len(artworks)+len(books)+len(posts))
	for _, a := range artworks {
		docs = append(docs, search.ArtworkToSearchDocument(a))
	}
	for _, b := range books {
		docs = append(docs, search.BookToSearchDocument(b))
	}
	for _, p := range posts {
		docs = append(docs, search.JournalToSearchDocument(p))
	}

	return s.index.IndexDocuments(docs)
}

// AddArtwork commits a new artwork to the catalog.
func (s *CatalogService) AddArtwork(ctx context.Context, artwork *domain.Artwork) error {
	if err := s.store.Artworks.Create(ctx, artwork.ID, artwork); err != nil {
		return fmt.Errorf("persist artwork: %w", err)
	}

	s.mu.Lock()
	s.artworks = append([]*domain.Artwork{artwork}, s.artworks...)
	sortArtworks(s.artworks)
	s.mu.Unlock()

	s.afterAdd(ctx,
		fmt.Sprintf("Added new artwork: %s", artwork.Title.Base),
		search.ArtworkToSearchDocument(artwork),
		sse.NewEvent(sse.EventArtworkCreated, artwork))
	return nil
}

// RemoveArtwork removes an artwork by id. Removing an unknown id is a
// no-op: no error, no audit entry.
func (s *CatalogService) RemoveArtwork(ctx context.Context, artworkID string) error {
	s.mu.Lock()
	idx := slices.IndexFunc(s.artworks, func(a *domain.Artwork) bool { return a.ID == artworkID })
	if idx < 0 {
		s.mu.Unlock()
		return nil
	}
	removed := s.artworks[idx]
	s.mu.Unlock()

	if err := s.store.Artworks.Delete(ctx, artworkID); err != nil {
		return fmt.Errorf("delete artwork: %w", err)
	}

	s.mu.Lock()
	s.artworks = slices.DeleteFunc(s.artworks, func(a *domain.Artwork) bool { return a.ID == artworkID })
	s.mu.Unlock()

	s.afterRemove(ctx,
		fmt.Sprintf("Removed artwork: %s", removed.Title.Base),
		artworkID,
		sse.NewEvent(sse.EventArtworkDeleted, map[string]string{"id": artworkID}))
	return nil
}

// AddBook commits a new book to the catalog.
func (s *CatalogService) AddBook(ctx context.Context, book *domain.Book) error {
	if err := s.store.Books.Create(ctx, book.ID, book); err != nil {
		return fmt.Errorf("persist book: %w", err)
	}

	s.mu.Lock()
	s.books = append([]*domain.Book{book}, s.books...)
	sortBooks(s.books)
	s.mu.Unlock()

	s.afterAdd(ctx,
		fmt.Sprintf("Added new book: %s", book.Title.Base),
		search.BookToSearchDocument(book),
		sse.NewEvent(sse.EventBookCreated, book))
	return nil
}

// RemoveBook removes a book by id. Unknown ids are a no-op.
func (s *CatalogService) RemoveBook(ctx context.Context, bookID string) error {
	s.mu.Lock()
	idx := slices.IndexFunc(s.books, func(b *domain.Book) bool { return b.ID == bookID })
	if idx < 0 {
		s.mu.Unlock()
		return nil
	}
	removed := s.books[idx]
	s.mu.Unlock()

	if err := s.store.Books.Delete(ctx, bookID); err != nil {
		return fmt.Errorf("delete book: %w", err)
	}

	s.mu.Lock()
	s.books = slices.DeleteFunc(s.books, func(b *domain.Book) bool { return b.ID == bookID })
	s.mu.Unlock()

	s.afterRemove(ctx,
		fmt.Sprintf("Removed book: %s", removed.Title.Base),
		bookID,
		sse.NewEvent(sse.EventBookDeleted, map[string]string{"id": bookID}))
	return nil
}

// AddJournalPost commits a new journal post to the catalog.
func (s *CatalogService) AddJournalPost(ctx context.Context, post *domain.JournalPost) error {
	if err := s.store.Posts.Create(ctx, post.ID, post); err != nil {
		return fmt.Errorf("persist journal post: %w", err)
	}

	s.mu.Lock()
	s.posts = append([]*domain.JournalPost{post}, s.posts...)
	sortPosts(s.posts)
	s.mu.Unlock()

	s.afterAdd(ctx,
		fmt.Sprintf("Published journal post: %s", post.Title.Base),
		search.JournalToSearchDocument(post),
		sse.NewEvent(sse.EventJournalCreated, post))
	return nil
}

// RemoveJournalPost removes a journal post by id. Unknown ids are a no-op.
func (s *CatalogService) RemoveJournalPost(ctx context.Context, postID string) error {
	s.mu.Lock()
	idx := slices.IndexFunc(s.posts, func(p *domain.JournalPost) bool { return p.ID == postID })
	if idx < 0 {
		s.mu.Unlock()
		return nil
	}
	removed := s.posts[idx]
	s.mu.Unlock()

	if err := s.store.Posts.Delete(ctx, postID); err != nil {
		return fmt.Errorf("delete journal post: %w", err)
	}

	s.mu.Lock()
	s.posts = slices.DeleteFunc(s.posts, func(p *domain.JournalPost) bool { return p.ID == postID })
	s.mu.Unlock()

	s.afterRemove(ctx,
		fmt.Sprintf("Removed journal post: %s", removed.Title.Base),
		postID,
		sse.NewEvent(sse.EventJournalDeleted, map[string]string{"id": postID}))
	return nil
}

// afterAdd handles the audit, index and SSE side effects of a successful
// add. The record is already durable at this point, so side-effect
// failures are logged and swallowed.
func (s *CatalogService) afterAdd(ctx context.Context, action string, doc *search.SearchDocument, event sse.Event) {
	if _, err := s.audit.Append(ctx, action); err != nil {
		s.logger.Warn("failed to append audit entry", "action", action, "error", err)
	}
	if err := s.index.IndexDocument(doc); err != nil {
		s.logger.Warn("failed to index document", "id", doc.ID, "error", err)
	}
	s.sseManager.Emit(event)
}

// afterRemove mirrors afterAdd for deletions.
func (s *CatalogService) afterRemove(ctx context.Context, action, docID string, event sse.Event) {
	if _, err := s.audit.Append(ctx, action); err != nil {
		s.logger.Warn("failed to append audit entry", "action", action, "error", err)
	}
	if err := s.index.DeleteDocument(docID); err != nil {
		s.logger.Warn("failed to remove document from index", "id", docID, "error", err)
	}
	s.sseManager.Emit(event)
}

// Artworks returns the artwork collection, newest year first.
func (s *CatalogService) Artworks() []*domain.Artwork {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.artworks)
}

// Books returns the book collection, most recently created first.
func (s *CatalogService) Books() []*domain.Book {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.books)
}

// Book returns one book by id.
func (s *CatalogService) Book(bookID string) (*domain.Book, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := slices.IndexFunc(s.books, func(b *domain.Book) bool { return b.ID == bookID })
	if idx < 0 {
		return nil, false
	}
	return s.books[idx], true
}

// JournalPosts returns the journal collection, newest date first.
func (s *CatalogService) JournalPosts() []*domain.JournalPost {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.posts)
}

// Counts reports the collection sizes, used for the advisor's context.
func (s *CatalogService) Counts() (artworks, books, posts int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.artworks), len(s.books), len(s.posts)
}

func sortArtworks(artworks []*domain.Artwork) {
	slices.SortStableFunc(artworks, func(a, b *domain.Artwork) int {
		return b.Year - a.Year
	})
}

func sortBooks(books []*domain.Book) {
	slices.SortStableFunc(books, func(a, b *domain.Book) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
}

func sortPosts(posts []*domain.JournalPost) {
	slices.SortStableFunc(posts, func(a, b *domain.JournalPost) int {
		return cmpStringDesc(a.Date, b.Date)
	})
}

// cmpStringDesc orders ISO date strings newest first.
func cmpStringDesc(a, b string) int {
	switch {
	case a < b:
		return 1
	case a > b:
		return -1
	default:
		return 0
	}
}
