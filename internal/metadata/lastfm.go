// Melographus - Music Listening Analytics for Chat Bots
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/melographus

package metadata

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shkh/lastfm-go/lastfm"
	"golang.org/x/time/rate"

	"github.com/tomtom215/melographus/internal/config"
	"github.com/tomtom215/melographus/internal/metrics"
)

// LastFMProvider resolves artist genre tags via the Last.fm
// artist.getTopTags endpoint. Requests are paced with a client-side
// rate limiter; Last.fm enforces roughly 5 requests per second per key.
type LastFMProvider struct {
	api     *lastfm.Api
	limiter *rate.Limiter
	maxTags int
}

// NewLastFMProvider creates a provider from configuration.
func NewLastFMProvider(cfg *config.LastFMConfig) *LastFMProvider {
	return &LastFMProvider{
		api:     lastfm.New(cfg.APIKey, cfg.APISecret),
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		maxTags: cfg.MaxTags,
	}
}

// Name implements Provider.
func (p *LastFMProvider) Name() string { return "lastfm" }

// ArtistGenres implements Provider. Tags come back from Last.fm sorted
// by weight; only the top maxTags are kept.
func (p *LastFMProvider) ArtistGenres(ctx context.Context, artist string) ([]string, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	start := time.Now()
	result, err := p.api.Artist.GetTopTags(lastfm.P{
		"artist":      artist,
		"autocorrect": 1,
	})
	metrics.RecordMetadataFetch(p.Name(), time.Since(start), err)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("artist %q: %w", artist, ErrArtistNotFound)
		}
		return nil, fmt.Errorf("lastfm artist.getTopTags: %w: %v", ErrUnavailable, err)
	}

	genres := make([]string, 0, p.maxTags)
	for _, tag := range result.Tags {
		name := strings.ToLower(strings.TrimSpace(tag.Name))
		if name == "" {
			continue
		}
		genres = append(genres, name)
		if len(genres) >= p.maxTags {
			break
		}
	}
	return genres, nil
}

// isNotFound detects the Last.fm "The artist you supplied could not be
// found" error (code 6). The client library only surfaces the message
// text, so match on it.
func isNotFound(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "could not be found") ||
		strings.Contains(msg, "invalid parameters")
}
