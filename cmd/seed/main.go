// Package main provides a tool to seed the database with sample catalog data.
//
// This writes a small multilingual set of artworks, books and journal posts
// so the public site has content before the admin pipeline is configured.
//
// Usage:
//
//	DATA_PATH=~/Arvand/data go run ./cmd/seed
//	DATA_PATH=~/Arvand/data go run ./cmd/seed --wipe  # Clear existing catalog first
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/arvandstudio/arvand-server/internal/domain"
	"github.com/arvandstudio/arvand-server/internal/i18n"
	"github.com/arvandstudio/arvand-server/internal/id"
	"github.com/arvandstudio/arvand-server/internal/store"
)

var wipe = flag.Bool("wipe", false, "Delete the existing catalog before seeding")

func main() {
	flag.Parse()

	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		dataPath = os.ExpandEnv("$HOME/Arvand/data")
	}
	dbPath := filepath.Join(dataPath, "db")

	fmt.Printf("Opening database at: %s\n", dbPath)

	s, err := store.New(dbPath, nil)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()

	if *wipe {
		fmt.Println("Wiping existing catalog...")
		if err := s.Artworks.DeleteAll(ctx); err != nil {
			log.Fatalf("Failed to wipe artworks: %v", err)
		}
		if err := s.Books.DeleteAll(ctx); err != nil {
			log.Fatalf("Failed to wipe books: %v", err)
		}
		if err := s.Posts.DeleteAll(ctx); err != nil {
			log.Fatalf("Failed to wipe journal posts: %v", err)
		}
	}

	seedArtworks(ctx, s)
	seedBooks(ctx, s)
	seedJournal(ctx, s)

	fmt.Println("\nDone.")
}

func localized(base, fa, fr string) i18n.Text {
	text := i18n.New(base)
	if fa != "" {
		text.Set(i18n.Persian, fa)
	}
	if fr != "" {
		text.Set(i18n.French, fr)
	}
	return text
}

func placeholderImage(seed string, width, height int) string {
	return fmt.Sprintf("https://picsum.photos/seed/%s/%d/%d", seed, width, height)
}

func seedArtworks(ctx context.Context, s *store.Store) {
	artworks := []*domain.Artwork{
		{
			Title:       localized("Threshold", "آستانه", "Seuil"),
			Description: localized("A meditation on doorways and the moment before crossing.", "تأملی در درگاه‌ها و لحظه پیش از عبور.", "Une méditation sur les seuils et l'instant avant le passage."),
			Technique:   localized("Oil on canvas", "رنگ روغن روی بوم", "Huile sur toile"),
			Category:    domain.CategoryPainting,
			Year:        2021,
			Dimensions:  "120 x 90 cm",
			Featured:    true,
		},
		{
			Title:       localized("Weight of Silence", "وزن سکوت", "Le poids du silence"),
			Description: localized("Cast bronze studying the density of an unspoken word.", "برنز ریخته‌گری‌شده در مطالعه چگالی کلمه ناگفته.", "Bronze coulé étudiant la densité d'un mot tu."),
			Technique:   localized("Bronze", "برنز", "Bronze"),
			Category:    domain.CategorySculpture,
			Year:        2024,
			Dimensions:  "45 x 30 x 30 cm",
		},
		{
			Title:       localized("Recursion Garden", "باغ بازگشتی", "Jardin récursif"),
			Description: localized("Generative piece grown from a single seed rule.", "اثر مولد روییده از یک قاعده اولیه.", "Œuvre générative née d'une règle unique."),
			Category:    domain.CategoryDigital,
			Year:        2023,
		},
	}

	for _, artwork := range artworks {
		artworkID, err := id.Generate("art")
		if err != nil {
			log.Fatalf("Failed to generate artwork ID: %v", err)
		}
		artwork.ID = artworkID
		artwork.ImageURL = placeholderImage(artworkID, 600, 800)
		artwork.InitTimestamps()

		if err := s.Artworks.Create(ctx, artwork.ID, artwork); err != nil {
			log.Fatalf("Failed to seed artwork %q: %v", artwork.Title.In(i18n.English), err)
		}
		fmt.Printf("  Seeded artwork: %s (%s)\n", artwork.Title.In(i18n.English), artwork.ID)
	}
}

func seedBooks(ctx context.Context, s *store.Store) {
	books := []*domain.Book{
		{
			Title:       localized("On Thresholds", "درباره آستانه‌ها", "Des seuils"),
			Subtitle:    localized("Essays on liminal space", "جستارهایی درباره فضای آستانه‌ای", "Essais sur l'espace liminal"),
			Description: localized("Collected essays on the spaces between rooms, years and selves.", "مجموعه جستارهایی درباره فضاهای میان اتاق‌ها، سال‌ها و خویشتن‌ها.", "Essais réunis sur les espaces entre les pièces, les années et les soi."),
			PublishDate: "2022-10-01",
			Price:       38.5,
			Pages:       212,
		},
		{
			Title:       localized("Origins", "خاستگاه‌ها", "Origines"),
			Description: localized("A visual record of the first decade of studio work.", "سندی تصویری از نخستین دهه کار در آتلیه.", "Un témoignage visuel de la première décennie d'atelier."),
			PublishDate: "2019-04-12",
			Price:       54,
			Pages:       304,
		},
	}

	for _, book := range books {
		bookID, err := id.Generate("book")
		if err != nil {
			log.Fatalf("Failed to generate book ID: %v", err)
		}
		book.ID = bookID
		book.CoverURL = placeholderImage(bookID, 400, 600)
		book.InitTimestamps()

		if err := s.Books.Create(ctx, book.ID, book); err != nil {
			log.Fatalf("Failed to seed book %q: %v", book.Title.In(i18n.English), err)
		}
		fmt.Printf("  Seeded book: %s (%s)\n", book.Title.In(i18n.English), book.ID)
	}
}

func seedJournal(ctx context.Context, s *store.Store) {
	posts := []*domain.JournalPost{
		{
			Title:   localized("Silence as Form", "سکوت به مثابه فرم", ""),
			Excerpt: localized("Why the studio stays quiet during the first hour of work.", "چرا آتلیه در ساعت نخست کار ساکت می‌ماند.", ""),
			Content: localized("The first hour belongs to looking, not making. Notes from the winter studio on letting a piece announce itself before any tool is picked up.", "ساعت نخست به نگاه کردن تعلق دارد، نه ساختن. یادداشت‌هایی از آتلیه زمستانی درباره اجازه دادن به اثر برای اعلام حضور پیش از برداشتن هر ابزار.", ""),
			Date:    time.Now().AddDate(0, -2, 0).Format("2006-01-02"),
			Tags:    []string{"process", "studio"},
		},
		{
			Title:   localized("Against the Finished Surface", "علیه سطح تمام‌شده", ""),
			Excerpt: localized("In defense of visible labor in sculpture.", "در دفاع از کار نمایان در مجسمه‌سازی.", ""),
			Content: localized("Tool marks are a record of attention. An argument for leaving the chisel's path legible in the final bronze.", "رد ابزار سندی از توجه است. استدلالی برای خوانا گذاشتن مسیر قلم در برنز نهایی.", ""),
			Date:    time.Now().AddDate(0, -5, 0).Format("2006-01-02"),
			Tags:    []string{"craft"},
		},
	}

	for _, post := range posts {
		postID, err := id.Generate("post")
		if err != nil {
			log.Fatalf("Failed to generate journal post ID: %v", err)
		}
		post.ID = postID
		post.InitTimestamps()

		if err := s.Posts.Create(ctx, post.ID, post); err != nil {
			log.Fatalf("Failed to seed journal post %q: %v", post.Title.In(i18n.English), err)
		}
		fmt.Printf("  Seeded journal post: %s (%s)\n", post.Title.In(i18n.English), post.ID)
	}
}
