// Package store persists catalog state to a Badger key-value database.
//
// Every collection lives under its own key prefix and every record is a JSON
// blob. The store is the durable side of the state container: services keep
// the working copy in memory and write through here on every mutation.
package store

import (
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"

	"github.com/arvandstudio/arvand-server/internal/domain"
)

// Key prefixes, one per collection.
const (
	prefixArtwork = "artwork:"
	prefixBook    = "book:"
	prefixPost    = "post:"
	prefixLog     = "log:"
	prefixCart    = "cart:"
	prefixChat    = "chat:"
)

// Store wraps a Badger database instance with one typed collection per
// state bucket.
type Store struct {
	db     *badger.DB
	logger *slog.Logger

	Artworks  *Collection[domain.Artwork]
	Books     *Collection[domain.Book]
	Posts     *Collection[domain.JournalPost]
	Logs      *Collection[domain.AuditEntry]
	CartItems *Collection[domain.CartItem]
	Messages  *Collection[domain.ChatMessage]
}

// New opens (or creates) the database at path.
func New(path string, logger *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil            // Disable Badger's internal logging
	opts.SyncWrites = true       // Mutations must survive a crash once reported successful
	opts.CompactL0OnClose = true // Compact L0 tables on close for faster startup

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	s := &Store{
		db:     db,
		logger: logger,
	}

	s.Artworks = NewCollection[domain.Artwork](s, prefixArtwork)
	s.Books = NewCollection[domain.Book](s, prefixBook)
	s.Posts = NewCollection[domain.JournalPost](s, prefixPost)
	s.Logs = NewCollection[domain.AuditEntry](s, prefixLog)
	s.CartItems = NewCollection[domain.CartItem](s, prefixCart)
	s.Messages = NewCollection[domain.ChatMessage](s, prefixChat)

	if logger != nil {
		logger.Info("Badger database opened successfully", "path", path)
	}

	return s, nil
}

// Close gracefully closes the database connection.
func (s *Store) Close() error {
	if s.logger != nil {
		s.logger.Info("Closing database connection")
	}
	return s.db.Close()
}
