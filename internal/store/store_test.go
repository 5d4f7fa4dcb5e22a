package store

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arvandstudio/arvand-server/internal/domain"
	"github.com/arvandstudio/arvand-server/internal/errors"
	"github.com/arvandstudio/arvand-server/internal/i18n"
)

// newTestStore creates a store backed by a temporary directory.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := New(t.TempDir(), slog.New(slog.DiscardHandler))
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = s.Close()
	})

	return s
}

func testArtwork(id string) *domain.Artwork {
	art := &domain.Artwork{
		Title:       i18n.New("Threshold"),
		Description: i18n.New("A study of passage."),
		Category:    domain.CategoryPainting,
		Year:        2024,
		ImageURL:    "/images/threshold.jpg",
	}
	art.ID = id
	art.InitTimestamps()
	return art
}

func TestCollection_CreateAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	art := testArtwork("art-1")
	require.NoError(t, s.Artworks.Create(ctx, art.ID, art))

	got, err := s.Artworks.Get(ctx, "art-1")
	require.NoError(t, err)
	assert.Equal(t, "Threshold", got.Title.Base)
	assert.Equal(t, domain.CategoryPainting, got.Category)
	assert.Equal(t, 2024, got.Year)
}

func TestCollection_CreateDuplicate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	art := testArtwork("art-1")
	require.NoError(t, s.Artworks.Create(ctx, art.ID, art))

	err := s.Artworks.Create(ctx, art.ID, art)
	assert.ErrorIs(t, err, errors.ErrAlreadyExists)
}

func TestCollection_GetMissing(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Artworks.Get(context.Background(), "art-nope")
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestCollection_DeleteIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	art := testArtwork("art-1")
	require.NoError(t, s.Artworks.Create(ctx, art.ID, art))

	require.NoError(t, s.Artworks.Delete(ctx, "art-1"))
	_, err := s.Artworks.Get(ctx, "art-1")
	assert.ErrorIs(t, err, errors.ErrNotFound)

	// Deleting again is a no-op.
	assert.NoError(t, s.Artworks.Delete(ctx, "art-1"))
	assert.NoError(t, s.Artworks.Delete(ctx, "never-existed"))
}

func TestCollection_PutReplaces(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	item := &domain.CartItem{Quantity: 1}
	item.Book.ID = "book-1"
	item.Book.Title = i18n.New("Origins")
	item.Book.Price = 30

	require.NoError(t, s.CartItems.Put(ctx, "book-1", item))

	item.Quantity = 2
	require.NoError(t, s.CartItems.Put(ctx, "book-1", item))

	got, err := s.CartItems.Get(ctx, "book-1")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Quantity)
}

func TestCollection_ListAll(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"art-a", "art-b", "art-c"} {
		require.NoError(t, s.Artworks.Create(ctx, id, testArtwork(id)))
	}

	all, err := s.Artworks.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	ids := make([]string, 0, len(all))
	for _, a := range all {
		ids = append(ids, a.ID)
	}
	assert.ElementsMatch(t, []string{"art-a", "art-b", "art-c"}, ids)
}

func TestCollection_DeleteAll(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i, id := range []string{"book-1", "book-2"} {
		item := &domain.CartItem{Quantity: i + 1}
		item.Book.ID = id
		require.NoError(t, s.CartItems.Put(ctx, id, item))
	}

	require.NoError(t, s.CartItems.DeleteAll(ctx))

	all, err := s.CartItems.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	// Clearing an empty collection is fine.
	assert.NoError(t, s.CartItems.DeleteAll(ctx))
}

func TestCollection_PrefixIsolation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	art := testArtwork("shared-id")
	require.NoError(t, s.Artworks.Create(ctx, art.ID, art))

	entry := &domain.AuditEntry{ID: "shared-id", Action: "Added new artwork: Threshold", Timestamp: time.Now()}
	require.NoError(t, s.Logs.Create(ctx, entry.ID, entry))

	arts, err := s.Artworks.ListAll(ctx)
	require.NoError(t, err)
	logs, err := s.Logs.ListAll(ctx)
	require.NoError(t, err)

	assert.Len(t, arts, 1)
	assert.Len(t, logs, 1)
}

func TestStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := New(dir, slog.New(slog.DiscardHandler))
	require.NoError(t, err)

	art := testArtwork("art-1")
	require.NoError(t, s.Artworks.Create(ctx, art.ID, art))
	require.NoError(t, s.Close())

	reopened, err := New(dir, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Artworks.Get(ctx, "art-1")
	require.NoError(t, err)
	assert.Equal(t, "Threshold", got.Title.Base)
}

func TestCollection_ContextCancellation(t *testing.T) {
	s := newTestStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	art := testArtwork("art-1")
	assert.Error(t, s.Artworks.Create(ctx, art.ID, art))
	_, err := s.Artworks.Get(ctx, "art-1")
	assert.Error(t, err)
}
