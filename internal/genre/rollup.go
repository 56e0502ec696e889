// Melographus - Music Listening Analytics for Chat Bots
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/melographus

package genre

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/tomtom215/melographus/internal/logging"
	"github.com/tomtom215/melographus/internal/models"
)

// Resolver is the lookup interface the aggregator depends on. *Cache
// satisfies it.
type Resolver interface {
	Resolve(ctx context.Context, artist string) ([]string, error)
}

// Aggregator folds ranked artist totals into genre rollups.
type Aggregator struct {
	resolver Resolver
	workers  int
}

// NewAggregator creates an Aggregator resolving genres through resolver
// with at most workers concurrent lookups.
func NewAggregator(resolver Resolver, workers int) *Aggregator {
	if workers < 1 {
		workers = 1
	}
	return &Aggregator{resolver: resolver, workers: workers}
}

// RollupByGenre groups artist totals by genre. Each artist contributes
// its full playcount to every genre it carries. Genres rank by total
// playcount descending, ties alphabetically; each rollup lists its
// contributing artists by playcount descending. Artists whose lookup
// fails are skipped rather than failing the whole rollup.
func (a *Aggregator) RollupByGenre(ctx context.Context, totals []models.ArtistTotal) ([]models.GenreRollup, error) {
	type resolved struct {
		total  models.ArtistTotal
		genres []string
	}

	results := make([]resolved, len(totals))
	sem := make(chan struct{}, a.workers)
	var wg sync.WaitGroup

	for i, total := range totals {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(i int, total models.ArtistTotal) {
			defer wg.Done()
			defer func() { <-sem }()

			genres, err := a.resolver.Resolve(ctx, total.ArtistName)
			if err != nil {
				logging.Debug().Err(err).Str("artist", total.ArtistName).Msg("Genre lookup failed, skipping artist")
				return
			}
			results[i] = resolved{total: total, genres: genres}
		}(i, total)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	byGenre := make(map[string]*models.GenreRollup)
	for _, r := range results {
		for _, g := range r.genres {
			rollup, ok := byGenre[g]
			if !ok {
				rollup = &models.GenreRollup{GenreName: g}
				byGenre[g] = rollup
			}
			rollup.Playcount += r.total.Playcount
			rollup.Artists = append(rollup.Artists, r.total)
		}
	}

	rollups := make([]models.GenreRollup, 0, len(byGenre))
	for _, rollup := range byGenre {
		sort.Slice(rollup.Artists, func(i, j int) bool {
			if rollup.Artists[i].Playcount != rollup.Artists[j].Playcount {
				return rollup.Artists[i].Playcount > rollup.Artists[j].Playcount
			}
			return rollup.Artists[i].ArtistName < rollup.Artists[j].ArtistName
		})
		rollups = append(rollups, *rollup)
	}

	sort.Slice(rollups, func(i, j int) bool {
		if rollups[i].Playcount != rollups[j].Playcount {
			return rollups[i].Playcount > rollups[j].Playcount
		}
		return rollups[i].GenreName < rollups[j].GenreName
	})
	return rollups, nil
}

// ArtistsForGenre filters artist totals down to those carrying the
// given genre, preserving the input ranking. The genre match is
// case-insensitive.
func (a *Aggregator) ArtistsForGenre(ctx context.Context, totals []models.ArtistTotal, genreName string) ([]models.ArtistTotal, error) {
	want := strings.ToLower(strings.TrimSpace(genreName))
	if want == "" {
		return nil, nil
	}

	type verdict struct {
		keep bool
	}

	verdicts := make([]verdict, len(totals))
	sem := make(chan struct{}, a.workers)
	var wg sync.WaitGroup

	for i, total := range totals {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(i int, total models.ArtistTotal) {
			defer wg.Done()
			defer func() { <-sem }()

			genres, err := a.resolver.Resolve(ctx, total.ArtistName)
			if err != nil {
				return
			}
			for _, g := range genres {
				if g == want {
					verdicts[i].keep = true
					return
				}
			}
		}(i, total)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	matched := make([]models.ArtistTotal, 0, len(totals))
	for i, total := range totals {
		if verdicts[i].keep {
			matched = append(matched, total)
		}
	}
	return matched, nil
}
