// Melographus - Music Listening Analytics for Chat Bots
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/melographus

package config

import "fmt"

// Validate checks the configuration for values that would misbehave at
// runtime. It returns the first problem found.
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateServer,
		c.validateGenreCache,
		c.validateLastFM,
		c.validateCharts,
		c.validateAPI,
	}

	for _, validate := range validators {
		if err := validate(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %s", c.Server.Timeout)
	}
	return nil
}

func (c *Config) validateGenreCache() error {
	if c.GenreCache.TTL <= 0 {
		return fmt.Errorf("GENRE_CACHE_TTL must be positive, got %s", c.GenreCache.TTL)
	}
	if c.GenreCache.NegativeTTL <= 0 {
		return fmt.Errorf("GENRE_CACHE_NEGATIVE_TTL must be positive, got %s", c.GenreCache.NegativeTTL)
	}
	if c.GenreCache.FetchTimeout <= 0 {
		return fmt.Errorf("GENRE_FETCH_TIMEOUT must be positive, got %s", c.GenreCache.FetchTimeout)
	}
	if c.GenreCache.MaxConcurrentFetches < 1 {
		return fmt.Errorf("GENRE_FETCH_CONCURRENCY must be at least 1, got %d", c.GenreCache.MaxConcurrentFetches)
	}
	return nil
}

func (c *Config) validateLastFM() error {
	if c.LastFM.RequestsPerSecond <= 0 {
		return fmt.Errorf("LASTFM_REQUESTS_PER_SECOND must be positive, got %f", c.LastFM.RequestsPerSecond)
	}
	if c.LastFM.MaxTags < 1 {
		return fmt.Errorf("LASTFM_MAX_TAGS must be at least 1, got %d", c.LastFM.MaxTags)
	}
	return nil
}

func (c *Config) validateCharts() error {
	if c.Charts.MinArtistsForGenres < 0 {
		return fmt.Errorf("CHARTS_MIN_ARTISTS_FOR_GENRES must not be negative, got %d", c.Charts.MinArtistsForGenres)
	}
	if c.Charts.MinArtistsForGenreFilter < 0 {
		return fmt.Errorf("CHARTS_MIN_ARTISTS_FOR_GENRE_FILTER must not be negative, got %d", c.Charts.MinArtistsForGenreFilter)
	}
	if c.Charts.DefaultPageSize < 1 {
		return fmt.Errorf("CHARTS_DEFAULT_PAGE_SIZE must be at least 1, got %d", c.Charts.DefaultPageSize)
	}
	if c.Charts.LeaderboardWorkers < 1 {
		return fmt.Errorf("CHARTS_LEADERBOARD_WORKERS must be at least 1, got %d", c.Charts.LeaderboardWorkers)
	}
	if c.Charts.RollupWorkers < 1 {
		return fmt.Errorf("CHARTS_ROLLUP_WORKERS must be at least 1, got %d", c.Charts.RollupWorkers)
	}
	return nil
}

func (c *Config) validateAPI() error {
	if c.API.RateLimitReqs < 1 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1, got %d", c.API.RateLimitReqs)
	}
	if c.API.MaxPageSize < 1 {
		return fmt.Errorf("API_MAX_PAGE_SIZE must be at least 1, got %d", c.API.MaxPageSize)
	}
	return nil
}
