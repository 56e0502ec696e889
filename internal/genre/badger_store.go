// Melographus - Music Listening Analytics for Chat Bots
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/melographus

package genre

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/melographus/internal/config"
	"github.com/tomtom215/melographus/internal/models"
)

// Key prefix for genre entries in BadgerDB.
const genreKeyPrefix = "genre:"

// BadgerStore implements Store using BadgerDB for durable storage.
type BadgerStore struct {
	db *badger.DB
}

// NewBadgerStore opens (or creates) a Badger database per the store
// configuration and returns a genre store on top of it.
func NewBadgerStore(cfg *config.GenreStoreConfig) (*BadgerStore, error) {
	opts := badger.DefaultOptions(cfg.Path)
	opts.Logger = nil // Suppress BadgerDB logs
	if cfg.InMemory {
		opts = opts.WithInMemory(true)
		opts.Dir = ""
		opts.ValueDir = ""
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db for genres: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

// NewBadgerStoreFromDB wraps an already-open database. The caller
// retains ownership; Close becomes a no-op for the underlying DB.
func NewBadgerStoreFromDB(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

func genreKey(artist string) []byte {
	return []byte(genreKeyPrefix + models.NormalizeArtist(artist))
}

// Get retrieves the entry for an artist.
func (s *BadgerStore) Get(_ context.Context, artist string) (*models.GenreCacheEntry, error) {
	var entry models.GenreCacheEntry

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(genreKey(artist))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrEntryNotFound
		}
		if err != nil {
			return fmt.Errorf("get genre entry: %w", err)
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &entry)
		})
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// Put stores an entry, keyed by the normalized artist name.
func (s *BadgerStore) Put(_ context.Context, entry *models.GenreCacheEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal genre entry: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(genreKey(entry.ArtistName), data)
	})
}

// Delete removes the entry for an artist. Deleting a missing entry is
// not an error.
func (s *BadgerStore) Delete(_ context.Context, artist string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete(genreKey(artist))
		if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("delete genre entry: %w", err)
		}
		return nil
	})
}

// Count returns the number of stored genre entries.
func (s *BadgerStore) Count(_ context.Context) (int, error) {
	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(genreKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Close closes the underlying database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// RunGC runs one value-log garbage collection cycle. Badger returns an
// error when nothing was rewritten; callers on a GC timer can ignore
// badger.ErrNoRewrite.
func (s *BadgerStore) RunGC() error {
	return s.db.RunValueLogGC(0.5)
}
