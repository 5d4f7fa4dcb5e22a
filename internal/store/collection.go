package store

import (
	"context"
	"encoding/json/v2"
	stderrors "errors"
	"fmt"
	"iter"

	"github.com/dgraph-io/badger/v4"

	"github.com/arvandstudio/arvand-server/internal/errors"
)

// Collection provides generic CRUD operations for one prefix-scoped record
// type. Catalog records are only ever looked up by id, so there are no
// secondary indexes.
type Collection[T any] struct {
	store  *Store
	prefix string
}

// NewCollection creates a new Collection instance for type T.
func NewCollection[T any](s *Store, prefix string) *Collection[T] {
	return &Collection[T]{
		store:  s,
		prefix: prefix,
	}
}

// Create stores a new record under the given ID.
// Returns errors.ErrAlreadyExists if a record with this ID already exists.
func (c *Collection[T]) Create(ctx context.Context, id string, record *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := []byte(c.prefix + id)

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	return c.store.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		if err == nil {
			return errors.ErrAlreadyExists
		}
		if !stderrors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("failed to check existing key: %w", err)
		}

		if err := txn.Set(key, data); err != nil {
			return fmt.Errorf("failed to set key: %w", err)
		}
		return nil
	})
}

// Get retrieves a record by ID.
// Returns errors.ErrNotFound if the record does not exist.
func (c *Collection[T]) Get(ctx context.Context, id string) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := []byte(c.prefix + id)
	var record T

	err := c.store.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if stderrors.Is(err, badger.ErrKeyNotFound) {
			return errors.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to get key: %w", err)
		}

		return item.Value(func(val []byte) error {
			if err := json.Unmarshal(val, &record); err != nil {
				return fmt.Errorf("failed to unmarshal record: %w", err)
			}
			return nil
		})
	})

	if err != nil {
		return nil, err
	}

	return &record, nil
}

// Put stores a record under the given ID, replacing any existing value.
// Used for records whose identity persists across mutations (cart lines).
func (c *Collection[T]) Put(ctx context.Context, id string, record *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := []byte(c.prefix + id)

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	return c.store.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(key, data); err != nil {
			return fmt.Errorf("failed to set key: %w", err)
		}
		return nil
	})
}

// Delete deletes a record by ID.
// This operation is idempotent - it does not return an error if the record
// does not exist.
func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := []byte(c.prefix + id)

	return c.store.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete(key); err != nil {
			return fmt.Errorf("failed to delete key: %w", err)
		}
		return nil
	})
}

// DeleteAll removes every record in the collection.
// Used by clear-cart and clear-chat, which empty a bucket wholesale.
func (c *Collection[T]) DeleteAll(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	prefix := []byte(c.prefix)

	// Collect keys under a read transaction first; Badger forbids
	// iterating and writing in the same transaction batch safely.
	var keys [][]byte
	err := c.store.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.PrefetchValues = false

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		return nil
	})
	if err != nil {
		return err
	}

	return c.store.db.Update(func(txn *badger.Txn) error {
		for _, key := range keys {
			if err := txn.Delete(key); err != nil {
				return fmt.Errorf("failed to delete key: %w", err)
			}
		}
		return nil
	})
}

// List returns an iterator over all records in the collection.
func (c *Collection[T]) List(ctx context.Context) iter.Seq2[*T, error] {
	return func(yield func(*T, error) bool) {
		c.store.db.View(func(txn *badger.Txn) error {
			opts := badger.DefaultIteratorOptions
			opts.Prefix = []byte(c.prefix)
			opts.PrefetchValues = true

			it := txn.NewIterator(opts)
			defer it.Close()

			for it.Seek([]byte(c.prefix)); it.ValidForPrefix([]byte(c.prefix)); it.Next() {
				if ctx.Err() != nil {
					yield(nil, ctx.Err())
					return ctx.Err()
				}

				var record T
				err := it.Item().Value(func(val []byte) error {
					return json.Unmarshal(val, &record)
				})

				if err != nil {
					yield(nil, err)
					return err
				}

				if !yield(&record, nil) {
					return nil // Consumer stopped early
				}
			}

			return nil
		})
	}
}

// ListAll collects every record in the collection into a slice.
// Convenience wrapper over List for startup rehydration.
func (c *Collection[T]) ListAll(ctx context.Context) ([]*T, error) {
	var out []*T
	for record, err := range c.List(ctx) {
		if err != nil {
			return nil, err
		}
		out = append(out, record)
	}
	return out, nil
}
