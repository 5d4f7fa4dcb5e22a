package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/arvandstudio/arvand-server/internal/domain"
	"github.com/arvandstudio/arvand-server/internal/errors"
	"github.com/arvandstudio/arvand-server/internal/id"
	"github.com/arvandstudio/arvand-server/internal/media/images"
	"github.com/arvandstudio/arvand-server/internal/translator"
)

// Generator produces the localized field set for one new record.
type Generator interface {
	GenerateLocalized(ctx context.Context, kind translator.Kind, title, body, extra string) (*translator.Content, error)
}

// ComposerService runs the admin content pipeline: a one-language form
// submission is expanded to the full localized record by the generator,
// merged with the structured fields the generator does not set, and
// committed to the catalog.
//
// Any generator failure aborts the pipeline before the catalog is touched.
// The caller gets the error and an error toast is queued; the admin's form
// state survives for a retry.
type ComposerService struct {
	catalog   *CatalogService
	notifier  *NotifierService
	generator Generator
	images    *images.Storage
	logger    *slog.Logger
}

// NewComposerService creates a new composer service.
func NewComposerService(
	catalog *CatalogService,
	notifier *NotifierService,
	generator Generator,
	imageStorage *images.Storage,
	logger *slog.Logger,
) *ComposerService {
	return &ComposerService{
		catalog:   catalog,
		notifier:  notifier,
		generator: generator,
		images:    imageStorage,
		logger:    logger,
	}
}

// ArtworkInput is the admin artwork form.
type ArtworkInput struct {
	Title       string // Base-language title, required
	Description string
	Category    domain.Category
	Year        int
	Dimensions  string
	Featured    bool
	Image       string // Optional data URL upload
}

// BookInput is the admin book form.
type BookInput struct {
	Title       string // Base-language title, required
	Description string
	Price       float64
	Pages       int
	Cover       string // Optional data URL upload
}

// JournalInput is the admin journal form.
type JournalInput struct {
	Title   string // Base-language title, required
	Context string // Free-text seed for the essay body
	Tags    []string
}

// ComposeArtwork runs the pipeline for a new artwork.
func (s *ComposerService) ComposeArtwork(ctx context.Context, input ArtworkInput) (*domain.Artwork, error) {
	if input.Title == "" {
		return nil, errors.Validation("title is required")
	}

	content, err := s.generator.GenerateLocalized(ctx, translator.KindArtwork,
		input.Title, input.Description, fmt.Sprintf("Category: %s", input.Category))
	if err != nil {
		s.notifier.Notify("خطا در ارتباط با هوش مصنوعی", domain.SeverityError)
		return nil, err
	}

	artworkID, err := id.Generate("art")
	if err != nil {
		return nil, fmt.Errorf("generate artwork ID: %w", err)
	}

	imageURL, err := s.storeImage(artworkID, input.Image, 600, 800)
	if err != nil {
		return nil, err
	}

	artwork := &domain.Artwork{
		Title:       content.Title,
		Description: content.Description,
		Technique:   content.Technique,
		Category:    input.Category,
		Year:        input.Year,
		Dimensions:  input.Dimensions,
		Featured:    input.Featured,
		ImageURL:    imageURL,
	}
	artwork.ID = artworkID
	artwork.InitTimestamps()

	if err := s.catalog.AddArtwork(ctx, artwork); err != nil {
		s.notifier.Notify("خطا در ذخیره در دیتابیس", domain.SeverityError)
		return nil, err
	}

	s.notifier.Notify("اثر با موفقیت ترجمه و ثبت شد.", domain.SeveritySuccess)
	return artwork, nil
}

// ComposeBook runs the pipeline for a new book.
func (s *ComposerService) ComposeBook(ctx context.Context, input BookInput) (*domain.Book, error) {
	if input.Title == "" {
		return nil, errors.Validation("title is required")
	}

	content, err := s.generator.GenerateLocalized(ctx, translator.KindBook,
		input.Title, input.Description, "")
	if err != nil {
		s.notifier.Notify("خطا در عملیات", domain.SeverityError)
		return nil, err
	}

	bookID, err := id.Generate("book")
	if err != nil {
		return nil, fmt.Errorf("generate book ID: %w", err)
	}

	coverURL, err := s.storeImage(bookID, input.Cover, 400, 600)
	if err != nil {
		return nil, err
	}

	book := &domain.Book{
		Title:       content.Title,
		Subtitle:    content.Subtitle,
		Description: content.Description,
		Price:       input.Price,
		Pages:       input.Pages,
		PublishDate: time.Now().Format("2006-01-02"),
		CoverURL:    coverURL,
	}
	book.ID = bookID
	book.InitTimestamps()

	if err := s.catalog.AddBook(ctx, book); err != nil {
		s.notifier.Notify("خطا در ذخیره در دیتابیس", domain.SeverityError)
		return nil, err
	}

	s.notifier.Notify("کتاب با موفقیت ترجمه و به کتابخانه افزوده شد.", domain.SeveritySuccess)
	return book, nil
}

// ComposeJournal runs the pipeline for a new journal post. The generator
// writes the essay body from the admin's context notes.
func (s *ComposerService) ComposeJournal(ctx context.Context, input JournalInput) (*domain.JournalPost, error) {
	if input.Title == "" {
		return nil, errors.Validation("title is required")
	}

	content, err := s.generator.GenerateLocalized(ctx, translator.KindJournal,
		input.Title, input.Context, "")
	if err != nil {
		s.notifier.Notify("خطا در عملیات", domain.SeverityError)
		return nil, err
	}

	postID, err := id.Generate("post")
	if err != nil {
		return nil, fmt.Errorf("generate post ID: %w", err)
	}

	post := &domain.JournalPost{
		Title:   content.Title,
		Excerpt: content.Excerpt,
		Content: content.Body,
		Date:    time.Now().Format("2006-01-02"),
		Tags:    input.Tags,
	}
	post.ID = postID
	post.InitTimestamps()

	if err := s.catalog.AddJournalPost(ctx, post); err != nil {
		s.notifier.Notify("خطا در ذخیره در دیتابیس", domain.SeverityError)
		return nil, err
	}

	s.notifier.Notify("مقاله با موفقیت تولید، ترجمه و منتشر شد.", domain.SeveritySuccess)
	return post, nil
}

// storeImage saves an uploaded data URL under the record's id and returns
// its public URL. Without an upload, a deterministic placeholder is used
// so every record still renders.
func (s *ComposerService) storeImage(recordID, dataURL string, placeholderW, placeholderH int) (string, error) {
	if dataURL == "" {
		return fmt.Sprintf("https://picsum.photos/seed/%s/%d/%d", recordID, placeholderW, placeholderH), nil
	}

	data, ext, err := images.DecodeDataURL(dataURL)
	if err != nil {
		return "", err
	}

	name := fmt.Sprintf("%s.%s", recordID, ext)
	if err := s.images.Save(name, data); err != nil {
		return "", fmt.Errorf("store image: %w", err)
	}

	return "/api/v1/images/" + name, nil
}
