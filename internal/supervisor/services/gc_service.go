// Melographus - Music Listening Analytics for Chat Bots
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/melographus

package services

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/melographus/internal/logging"
	"github.com/tomtom215/melographus/internal/metrics"
)

// GenreStoreMaintainer is the maintenance surface of the genre store.
type GenreStoreMaintainer interface {
	RunGC() error
	Count(ctx context.Context) (int, error)
}

// GenreStoreGCService runs periodic value-log garbage collection on
// the genre store and refreshes the entry-count gauge.
type GenreStoreGCService struct {
	store    GenreStoreMaintainer
	interval time.Duration
}

// NewGenreStoreGCService creates the GC loop.
func NewGenreStoreGCService(store GenreStoreMaintainer, interval time.Duration) *GenreStoreGCService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &GenreStoreGCService{store: store, interval: interval}
}

// Serve implements suture.Service.
func (g *GenreStoreGCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(g.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := g.store.RunGC(); err != nil && !errors.Is(err, badger.ErrNoRewrite) {
				logging.Warn().Err(err).Msg("Genre store GC failed")
			}
			if count, err := g.store.Count(ctx); err == nil {
				metrics.GenreStoreEntries.Set(float64(count))
			}
		}
	}
}

func (g *GenreStoreGCService) String() string { return "genre-store-gc" }
