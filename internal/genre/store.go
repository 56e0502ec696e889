// Melographus - Music Listening Analytics for Chat Bots
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/melographus

package genre

import (
	"context"
	"errors"

	"github.com/tomtom215/melographus/internal/models"
)

// ErrEntryNotFound is returned when the store has no entry for an
// artist.
var ErrEntryNotFound = errors.New("genre entry not found")

// Store is the persistent layer behind the genre cache. Entries survive
// restarts so a cold start does not hammer the metadata provider.
type Store interface {
	Get(ctx context.Context, artist string) (*models.GenreCacheEntry, error)
	Put(ctx context.Context, entry *models.GenreCacheEntry) error
	Delete(ctx context.Context, artist string) error
	Count(ctx context.Context) (int, error)
	Close() error
}
