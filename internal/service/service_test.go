package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arvandstudio/arvand-server/internal/domain"
	"github.com/arvandstudio/arvand-server/internal/errors"
	"github.com/arvandstudio/arvand-server/internal/i18n"
	"github.com/arvandstudio/arvand-server/internal/media/images"
	"github.com/arvandstudio/arvand-server/internal/search"
	"github.com/arvandstudio/arvand-server/internal/sse"
	"github.com/arvandstudio/arvand-server/internal/store"
	"github.com/arvandstudio/arvand-server/internal/translator"
)

// fakeGenerator returns canned localized content or a fixed error.
type fakeGenerator struct {
	content *translator.Content
	err     error
	calls   int
}

func (g *fakeGenerator) GenerateLocalized(_ context.Context, _ translator.Kind, title, _, _ string) (*translator.Content, error) {
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	if g.content != nil {
		return g.content, nil
	}
	text := i18n.New(title)
	text.Set(i18n.Persian, title+" (fa)")
	return &translator.Content{
		Title:       text,
		Description: i18n.New("generated description"),
		Technique:   i18n.New("oil on canvas"),
		Subtitle:    i18n.New("generated subtitle"),
		Excerpt:     i18n.New("generated excerpt"),
		Body:        i18n.New("generated body"),
	}, nil
}

type fakeAdvisor struct {
	answer string
	err    error
}

func (a *fakeAdvisor) Advise(context.Context, string, string) (string, error) {
	return a.answer, a.err
}

// env bundles the service graph over temp-dir storage.
type env struct {
	store     *store.Store
	index     *search.SearchIndex
	manager   *sse.Manager
	notifier  *NotifierService
	audit     *AuditService
	catalog   *CatalogService
	cart      *CartService
	chat      *ChatService
	composer  *ComposerService
	admin     *AdminService
	generator *fakeGenerator
	advisor   *fakeAdvisor
}

func newTestEnv(t *testing.T, dataDir string) *env {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)

	st, err := store.New(dataDir+"/db", logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	idx, err := search.NewSearchIndex(search.Options{DataPath: t.TempDir(), Logger: logger})
	require.NoError(t, err)
	t.Cleanup(func() { _ = idx.Close() })

	imgStorage, err := images.NewStorage(t.TempDir())
	require.NoError(t, err)

	manager := sse.NewManager(logger)

	notifier := NewNotifierService(manager, logger)
	notifier.ttl = 50 * time.Millisecond
	t.Cleanup(notifier.Close)

	audit := NewAuditService(st, manager, logger)
	catalog := NewCatalogService(st, idx, audit, manager, logger)
	cart := NewCartService(st, notifier, audit, manager, logger)
	generator := &fakeGenerator{}
	advisor := &fakeAdvisor{answer: "Prioritize the sculpture series."}
	chat := NewChatService(st, advisor, catalog, logger)
	composer := NewComposerService(catalog, notifier, generator, imgStorage, logger)
	admin := NewAdminService("sesame", audit, notifier, logger)

	ctx := context.Background()
	require.NoError(t, audit.Load(ctx))
	require.NoError(t, catalog.Load(ctx))
	require.NoError(t, cart.Load(ctx))
	require.NoError(t, chat.Load(ctx))

	return &env{
		store: st, index: idx, manager: manager,
		notifier: notifier, audit: audit, catalog: catalog,
		cart: cart, chat: chat, composer: composer, admin: admin,
		generator: generator, advisor: advisor,
	}
}

func testBook(bookID, title string, price float64) *domain.Book {
	book := &domain.Book{
		Title: i18n.New(title),
		Price: price,
		Pages: 200,
	}
	book.ID = bookID
	book.InitTimestamps()
	return book
}

// --- Cart ---

func TestCart_AddSameBookTwiceIncrementsQuantity(t *testing.T) {
	e := newTestEnv(t, t.TempDir())
	ctx := context.Background()

	book := testBook("book-1", "Origins", 30)
	_, err := e.cart.Add(ctx, book)
	require.NoError(t, err)
	_, err = e.cart.Add(ctx, book)
	require.NoError(t, err)

	items := e.cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestCart_TotalTracksContents(t *testing.T) {
	e := newTestEnv(t, t.TempDir())
	ctx := context.Background()

	assert.Zero(t, e.cart.Total())

	_, err := e.cart.Add(ctx, testBook("book-1", "Origins", 30))
	require.NoError(t, err)
	_, err = e.cart.Add(ctx, testBook("book-2", "Passages", 45.5))
	require.NoError(t, err)
	_, err = e.cart.Add(ctx, testBook("book-1", "Origins", 30))
	require.NoError(t, err)

	assert.InDelta(t, 2*30+45.5, e.cart.Total(), 1e-9)

	require.NoError(t, e.cart.Remove(ctx, "book-1"))
	assert.InDelta(t, 45.5, e.cart.Total(), 1e-9)

	require.NoError(t, e.cart.Clear(ctx))
	assert.Zero(t, e.cart.Total())
}

func TestCart_RemoveUnknownIsNoOp(t *testing.T) {
	e := newTestEnv(t, t.TempDir())
	ctx := context.Background()

	_, err := e.cart.Add(ctx, testBook("book-1", "Origins", 30))
	require.NoError(t, err)
	logsBefore := len(e.audit.List())

	require.NoError(t, e.cart.Remove(ctx, "book-nope"))
	assert.Len(t, e.cart.Items(), 1)
	assert.Len(t, e.audit.List(), logsBefore, "no audit entry for a missing id")
}

func TestCart_AddAppendsAuditEntry(t *testing.T) {
	e := newTestEnv(t, t.TempDir())
	ctx := context.Background()

	_, err := e.cart.Add(ctx, testBook("book-1", "Origins", 30))
	require.NoError(t, err)

	logs := e.audit.List()
	require.NotEmpty(t, logs)
	assert.Equal(t, "Added to cart: Origins", logs[0].Action)
}

func TestCart_SurvivesReload(t *testing.T) {
	dir := t.TempDir()
	e := newTestEnv(t, dir)
	ctx := context.Background()

	_, err := e.cart.Add(ctx, testBook("book-1", "Origins", 30))
	require.NoError(t, err)

	fresh := NewCartService(e.store, e.notifier, e.audit, e.manager, slog.New(slog.DiscardHandler))
	require.NoError(t, fresh.Load(ctx))

	items := fresh.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "book-1", items[0].Book.ID)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestCart_ConcurrentAddsMergeIntoOneLine(t *testing.T) {
	e := newTestEnv(t, t.TempDir())
	ctx := context.Background()

	book := testBook("book-1", "Origins", 30)

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := e.cart.Add(ctx, book)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	items := e.cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 50, items[0].Quantity)

	// The stored line must agree with memory.
	stored, err := e.store.CartItems.Get(ctx, "book-1")
	require.NoError(t, err)
	assert.Equal(t, 50, stored.Quantity)
}

func TestCart_AddRacingClearDoesNotPanic(t *testing.T) {
	e := newTestEnv(t, t.TempDir())
	ctx := context.Background()

	book := testBook("book-1", "Origins", 30)
	_, err := e.cart.Add(ctx, book)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := e.cart.Add(ctx, book)
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			assert.NoError(t, e.cart.Clear(ctx))
		}()
	}
	wg.Wait()
}

func TestCart_ReloadKeepsInsertionOrder(t *testing.T) {
	e := newTestEnv(t, t.TempDir())
	ctx := context.Background()

	// Insertion order deliberately disagrees with key order.
	_, err := e.cart.Add(ctx, testBook("book-z", "Passages", 45.5))
	require.NoError(t, err)
	_, err = e.cart.Add(ctx, testBook("book-a", "Origins", 30))
	require.NoError(t, err)

	fresh := NewCartService(e.store, e.notifier, e.audit, e.manager, slog.New(slog.DiscardHandler))
	require.NoError(t, fresh.Load(ctx))

	items := fresh.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "book-z", items[0].Book.ID)
	assert.Equal(t, "book-a", items[1].Book.ID)
}

// --- Notifications ---

func TestNotifier_AutoExpiry(t *testing.T) {
	e := newTestEnv(t, t.TempDir())

	notification := e.notifier.Notify("saved", domain.SeveritySuccess)
	require.NotNil(t, notification)
	assert.Len(t, e.notifier.List(), 1)

	assert.Eventually(t, func() bool {
		return len(e.notifier.List()) == 0
	}, time.Second, 10*time.Millisecond)

	// Removing after expiry is a no-op.
	e.notifier.Remove(notification.ID)
}

func TestNotifier_EarlyRemoval(t *testing.T) {
	e := newTestEnv(t, t.TempDir())

	notification := e.notifier.Notify("saved", domain.SeverityInfo)
	require.NotNil(t, notification)

	e.notifier.Remove(notification.ID)
	assert.Empty(t, e.notifier.List())

	// The scheduled expiry must not resurrect or error.
	time.Sleep(100 * time.Millisecond)
	assert.Empty(t, e.notifier.List())
}

func TestNotifier_IdenticalMessagesStack(t *testing.T) {
	e := newTestEnv(t, t.TempDir())

	first := e.notifier.Notify("saved", domain.SeverityInfo)
	second := e.notifier.Notify("saved", domain.SeverityInfo)
	require.NotNil(t, first)
	require.NotNil(t, second)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Len(t, e.notifier.List(), 2)
}

// --- Catalog ---

func TestCatalog_ArtworksOrderedByYearDesc(t *testing.T) {
	e := newTestEnv(t, t.TempDir())
	ctx := context.Background()

	for i, year := range []int{2019, 2024, 2021} {
		art := &domain.Artwork{
			Title:    i18n.New(fmt.Sprintf("Piece %d", i)),
			Category: domain.CategoryPainting,
			Year:     year,
		}
		art.ID = fmt.Sprintf("art-%d", i)
		art.InitTimestamps()
		require.NoError(t, e.catalog.AddArtwork(ctx, art))
	}

	artworks := e.catalog.Artworks()
	require.Len(t, artworks, 3)
	assert.Equal(t, 2024, artworks[0].Year)
	assert.Equal(t, 2021, artworks[1].Year)
	assert.Equal(t, 2019, artworks[2].Year)
}

func TestCatalog_RemoveUnknownIsNoOp(t *testing.T) {
	e := newTestEnv(t, t.TempDir())
	ctx := context.Background()

	logsBefore := len(e.audit.List())
	require.NoError(t, e.catalog.RemoveArtwork(ctx, "art-ghost"))
	assert.Len(t, e.audit.List(), logsBefore)
}

func TestCatalog_RemoveLogsTitle(t *testing.T) {
	e := newTestEnv(t, t.TempDir())
	ctx := context.Background()

	art := &domain.Artwork{Title: i18n.New("Threshold"), Category: domain.CategoryPainting, Year: 2024}
	art.ID = "art-1"
	art.InitTimestamps()
	require.NoError(t, e.catalog.AddArtwork(ctx, art))
	require.NoError(t, e.catalog.RemoveArtwork(ctx, "art-1"))

	logs := e.audit.List()
	require.NotEmpty(t, logs)
	assert.Equal(t, "Removed artwork: Threshold", logs[0].Action)
	assert.Empty(t, e.catalog.Artworks())
}

func TestCatalog_SurvivesReload(t *testing.T) {
	dir := t.TempDir()
	e := newTestEnv(t, dir)
	ctx := context.Background()

	art := &domain.Artwork{Title: i18n.New("Threshold"), Category: domain.CategoryPainting, Year: 2024}
	art.ID = "art-1"
	art.InitTimestamps()
	require.NoError(t, e.catalog.AddArtwork(ctx, art))

	fresh := NewCatalogService(e.store, e.index, e.audit, e.manager, slog.New(slog.DiscardHandler))
	require.NoError(t, fresh.Load(ctx))

	artworks := fresh.Artworks()
	require.Len(t, artworks, 1)
	assert.Equal(t, "Threshold", artworks[0].Title.Base)
}

func TestCatalog_AddedArtworkIsSearchable(t *testing.T) {
	e := newTestEnv(t, t.TempDir())
	ctx := context.Background()

	art := &domain.Artwork{
		Title:    i18n.New("Threshold"),
		Category: domain.CategoryPainting,
		Year:     2024,
	}
	art.ID = "art-1"
	art.Title.Set(i18n.Persian, "آستانه")
	art.InitTimestamps()
	require.NoError(t, e.catalog.AddArtwork(ctx, art))

	for _, query := range []string{"Threshold", "آستانه"} {
		params := search.DefaultSearchParams()
		params.Query = query

		result, err := e.index.Search(ctx, params)
		require.NoError(t, err)
		require.NotEmpty(t, result.Hits, "query %q", query)
		assert.Equal(t, "art-1", result.Hits[0].ID)
	}
}

// --- Composer ---

func TestComposer_ArtworkSuccess(t *testing.T) {
	e := newTestEnv(t, t.TempDir())
	ctx := context.Background()

	artwork, err := e.composer.ComposeArtwork(ctx, ArtworkInput{
		Title:    "X",
		Category: domain.CategoryPainting,
		Year:     2024,
	})
	require.NoError(t, err)

	artworks := e.catalog.Artworks()
	require.Len(t, artworks, 1)
	assert.Equal(t, artwork.ID, artworks[0].ID)
	assert.Equal(t, "X", artworks[0].Title.Base)
	assert.Equal(t, domain.CategoryPainting, artworks[0].Category)
	assert.Equal(t, 2024, artworks[0].Year)
	assert.NotEmpty(t, artworks[0].ImageURL)

	logs := e.audit.List()
	require.NotEmpty(t, logs)
	assert.Equal(t, "Added new artwork: X", logs[0].Action)
}

func TestComposer_GeneratorFailureLeavesCatalogUnchanged(t *testing.T) {
	e := newTestEnv(t, t.TempDir())
	ctx := context.Background()

	e.generator.err = errors.Upstream("content engine request failed")

	_, err := e.composer.ComposeArtwork(ctx, ArtworkInput{
		Title:    "X",
		Category: domain.CategoryPainting,
		Year:     2024,
	})
	require.Error(t, err)

	assert.Empty(t, e.catalog.Artworks())

	notifications := e.notifier.List()
	require.NotEmpty(t, notifications)
	assert.Equal(t, domain.SeverityError, notifications[0].Severity)
}

func TestComposer_EmptyTitleIsRejectedBeforeGeneration(t *testing.T) {
	e := newTestEnv(t, t.TempDir())

	_, err := e.composer.ComposeArtwork(context.Background(), ArtworkInput{Category: domain.CategoryPainting})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrValidation)
	assert.Zero(t, e.generator.calls)
}

func TestComposer_BookAndJournal(t *testing.T) {
	e := newTestEnv(t, t.TempDir())
	ctx := context.Background()

	book, err := e.composer.ComposeBook(ctx, BookInput{Title: "Origins", Price: 30, Pages: 200})
	require.NoError(t, err)
	assert.Equal(t, 30.0, book.Price)
	assert.NotEmpty(t, book.PublishDate)

	post, err := e.composer.ComposeJournal(ctx, JournalInput{Title: "On Passage", Context: "thresholds", Tags: []string{"philosophy"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"philosophy"}, post.Tags)
	assert.Equal(t, "generated body", post.Content.Base)

	books := e.catalog.Books()
	posts := e.catalog.JournalPosts()
	assert.Len(t, books, 1)
	assert.Len(t, posts, 1)
}

// --- Admin ---

func TestAdmin_Login(t *testing.T) {
	e := newTestEnv(t, t.TempDir())
	ctx := context.Background()

	require.NoError(t, e.admin.Login(ctx, "sesame"))
	logs := e.audit.List()
	require.NotEmpty(t, logs)
	assert.Equal(t, "ورود مدیر به سیستم فرماندهی", logs[0].Action)

	err := e.admin.Login(ctx, "wrong")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrInvalidCredentials)
	logs = e.audit.List()
	assert.Equal(t, "تلاش ناموفق برای ورود", logs[0].Action)
}

// --- Chat ---

func TestChat_AskRecordsBothSides(t *testing.T) {
	e := newTestEnv(t, t.TempDir())
	ctx := context.Background()

	reply, err := e.chat.Ask(ctx, "What should I prioritize?")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAssistant, reply.Role)
	assert.Equal(t, "Prioritize the sculpture series.", reply.Content)

	messages := e.chat.Messages()
	require.Len(t, messages, 2)
	assert.Equal(t, domain.RoleUser, messages[0].Role)
	assert.Equal(t, domain.RoleAssistant, messages[1].Role)
}

func TestChat_AdvisorFailureKeepsQuestion(t *testing.T) {
	e := newTestEnv(t, t.TempDir())
	ctx := context.Background()

	e.advisor.err = errors.Upstream("advisor offline")
	e.advisor.answer = ""

	_, err := e.chat.Ask(ctx, "Anyone there?")
	require.Error(t, err)

	messages := e.chat.Messages()
	require.Len(t, messages, 1)
	assert.Equal(t, domain.RoleUser, messages[0].Role)
}

func TestChat_Clear(t *testing.T) {
	e := newTestEnv(t, t.TempDir())
	ctx := context.Background()

	_, err := e.chat.Ask(ctx, "hello")
	require.NoError(t, err)
	require.NoError(t, e.chat.Clear(ctx))
	assert.Empty(t, e.chat.Messages())

	fresh := NewChatService(e.store, e.advisor, e.catalog, slog.New(slog.DiscardHandler))
	require.NoError(t, fresh.Load(ctx))
	assert.Empty(t, fresh.Messages())
}

// --- Audit ---

func TestAudit_NewestFirst(t *testing.T) {
	e := newTestEnv(t, t.TempDir())
	ctx := context.Background()

	_, err := e.audit.Append(ctx, "first")
	require.NoError(t, err)
	_, err = e.audit.Append(ctx, "second")
	require.NoError(t, err)

	logs := e.audit.List()
	require.Len(t, logs, 2)
	assert.Equal(t, "second", logs[0].Action)
	assert.Equal(t, "first", logs[1].Action)
}
