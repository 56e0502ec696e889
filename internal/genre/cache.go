// Melographus - Music Listening Analytics for Chat Bots
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/melographus

package genre

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/tomtom215/melographus/internal/config"
	"github.com/tomtom215/melographus/internal/logging"
	"github.com/tomtom215/melographus/internal/metadata"
	"github.com/tomtom215/melographus/internal/metrics"
	"github.com/tomtom215/melographus/internal/models"
)

// call tracks one in-flight provider fetch. Concurrent resolvers for
// the same artist wait on done and share the result.
type call struct {
	done   chan struct{}
	genres []string
	err    error
}

// Cache resolves artist genres with three layers: an in-memory map, a
// persistent store, and the metadata provider. Lookups for the same
// artist are deduplicated so a burst of requests causes at most one
// provider fetch.
type Cache struct {
	provider metadata.Provider
	store    Store
	cfg      config.GenreCacheConfig

	mu       sync.Mutex
	live     map[string]liveEntry
	inflight map[string]*call

	// sem bounds concurrent provider fetches.
	sem chan struct{}

	now func() time.Time
}

type liveEntry struct {
	genres    []string
	fetchedAt time.Time
	negative  bool
}

// NewCache creates a genre cache.
func NewCache(provider metadata.Provider, store Store, cfg config.GenreCacheConfig) *Cache {
	return &Cache{
		provider: provider,
		store:    store,
		cfg:      cfg,
		live:     make(map[string]liveEntry),
		inflight: make(map[string]*call),
		sem:      make(chan struct{}, cfg.MaxConcurrentFetches),
		now:      time.Now,
	}
}

// Resolve returns the genre tags for an artist. Results are served from
// the in-memory layer when fresh, from the persistent store otherwise,
// and fetched from the provider on a miss. An artist the provider does
// not know resolves to an empty slice and is negatively cached.
func (c *Cache) Resolve(ctx context.Context, artist string) ([]string, error) {
	key := models.NormalizeArtist(artist)
	if key == "" {
		return nil, nil
	}

	c.mu.Lock()

	if entry, ok := c.live[key]; ok && c.fresh(entry) {
		c.mu.Unlock()
		metrics.GenreCacheHits.Inc()
		return entry.genres, nil
	}

	if cl, ok := c.inflight[key]; ok {
		c.mu.Unlock()
		metrics.GenreCacheShared.Inc()
		return c.await(ctx, cl)
	}

	cl := &call{done: make(chan struct{})}
	c.inflight[key] = cl
	c.mu.Unlock()

	metrics.GenreCacheMisses.Inc()
	go c.fetch(key, cl)

	return c.await(ctx, cl)
}

// await blocks until the shared fetch completes or the caller's context
// is done. The fetch itself keeps running for other waiters.
func (c *Cache) await(ctx context.Context, cl *call) ([]string, error) {
	select {
	case <-cl.done:
		return cl.genres, cl.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// fetch runs on its own goroutine with a timeout independent of any
// caller context, so one impatient caller cannot cancel the fetch for
// everyone waiting on it.
func (c *Cache) fetch(key string, cl *call) {
	defer func() {
		c.mu.Lock()
		delete(c.inflight, key)
		c.mu.Unlock()
		close(cl.done)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), c.cfg.FetchTimeout)
	defer cancel()

	// Check the persistent store before going to the provider. Durable
	// entries serve until RefreshAfter; negative entries only until
	// NegativeTTL.
	if entry, err := c.store.Get(ctx, key); err == nil {
		age := c.now().Sub(entry.FetchedAt)
		negative := len(entry.Genres) == 0
		maxAge := c.cfg.RefreshAfter
		if negative {
			maxAge = c.cfg.NegativeTTL
		}
		if age < maxAge {
			c.admit(key, entry.Genres, negative)
			cl.genres = entry.Genres
			return
		}
	} else if !errors.Is(err, ErrEntryNotFound) {
		logging.Warn().Err(err).Str("artist", key).Msg("Genre store read failed")
	}

	c.sem <- struct{}{}
	genres, err := c.provider.ArtistGenres(ctx, key)
	<-c.sem

	switch {
	case err == nil:
		c.persist(ctx, key, genres)
		c.admit(key, genres, false)
		cl.genres = genres

	case errors.Is(err, metadata.ErrArtistNotFound):
		// Cache the absence so unknown artists do not refetch on
		// every chart render.
		c.persist(ctx, key, nil)
		c.admit(key, nil, true)
		cl.genres = nil

	default:
		// Fall back to a stale persisted entry when the provider is
		// down.
		if entry, serr := c.store.Get(ctx, key); serr == nil {
			metrics.GenreCacheStaleServed.Inc()
			logging.Debug().Str("artist", key).Msg("Serving stale genre entry")
			c.admit(key, entry.Genres, false)
			cl.genres = entry.Genres
			return
		}
		// Remember the failure in the live layer for NegativeTTL so a
		// down provider is not refetched on every chart render.
		c.admit(key, nil, true)
		cl.err = err
	}
}

// persist writes through to the store. A negative result is stored as
// an entry with no genres.
func (c *Cache) persist(ctx context.Context, key string, genres []string) {
	entry := &models.GenreCacheEntry{
		ArtistName: key,
		Genres:     genres,
		FetchedAt:  c.now(),
	}
	if err := c.store.Put(ctx, entry); err != nil {
		logging.Warn().Err(err).Str("artist", key).Msg("Genre store write failed")
	}
}

func (c *Cache) admit(key string, genres []string, negative bool) {
	c.mu.Lock()
	c.live[key] = liveEntry{genres: genres, fetchedAt: c.now(), negative: negative}
	c.mu.Unlock()
}

func (c *Cache) fresh(entry liveEntry) bool {
	ttl := c.cfg.TTL
	if entry.negative {
		ttl = c.cfg.NegativeTTL
	}
	return c.now().Sub(entry.fetchedAt) < ttl
}

// Invalidate drops an artist from the in-memory layer and the store.
func (c *Cache) Invalidate(ctx context.Context, artist string) error {
	key := models.NormalizeArtist(artist)

	c.mu.Lock()
	delete(c.live, key)
	c.mu.Unlock()

	return c.store.Delete(ctx, key)
}
