// Melographus - Music Listening Analytics for Chat Bots
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/melographus

package config

import "time"

// Config is the root configuration for Melographus.
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Database   DatabaseConfig   `koanf:"database"`
	GenreStore GenreStoreConfig `koanf:"genre_store"`
	GenreCache GenreCacheConfig `koanf:"genre_cache"`
	LastFM     LastFMConfig     `koanf:"lastfm"`
	Charts     ChartsConfig     `koanf:"charts"`
	Throttle   ThrottleConfig   `koanf:"throttle"`
	API        APIConfig        `koanf:"api"`
	Logging    LoggingConfig    `koanf:"logging"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port"`
	Timeout time.Duration `koanf:"timeout"`
}

// DatabaseConfig configures the DuckDB play store.
type DatabaseConfig struct {
	// Path is the DuckDB database file. Use ":memory:" for ephemeral runs.
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	// Threads is the DuckDB thread count. 0 = use runtime.NumCPU().
	Threads int `koanf:"threads"`
}

// GenreStoreConfig configures the BadgerDB genre store.
type GenreStoreConfig struct {
	Path string `koanf:"path"`
	// InMemory runs Badger without disk persistence (tests, ephemeral runs).
	InMemory bool `koanf:"in_memory"`
	// GCInterval is how often the value-log garbage collector runs.
	GCInterval time.Duration `koanf:"gc_interval"`
}

// GenreCacheConfig configures the in-process genre cache.
type GenreCacheConfig struct {
	// TTL is how long an in-memory entry is served without consulting
	// the durable store.
	TTL time.Duration `koanf:"ttl"`

	// NegativeTTL is how long a failed lookup is cached as "no genres"
	// before the external provider is tried again.
	NegativeTTL time.Duration `koanf:"negative_ttl"`

	// RefreshAfter is the age at which a durable entry is considered
	// stale and refreshed from the external provider.
	RefreshAfter time.Duration `koanf:"refresh_after"`

	// FetchTimeout bounds a single external metadata lookup.
	FetchTimeout time.Duration `koanf:"fetch_timeout"`

	// MaxConcurrentFetches caps simultaneous external lookups.
	MaxConcurrentFetches int `koanf:"max_concurrent_fetches"`
}

// LastFMConfig configures the Last.fm metadata provider.
type LastFMConfig struct {
	APIKey    string `koanf:"api_key"`
	APISecret string `koanf:"api_secret"`
	// RequestsPerSecond paces outgoing API calls. Last.fm asks clients
	// to stay under 5 requests per second averaged over 5 minutes.
	RequestsPerSecond float64 `koanf:"requests_per_second"`
	// MaxTags is the maximum number of genre tags kept per artist.
	MaxTags int `koanf:"max_tags"`
}

// ChartsConfig holds the policy thresholds of the charts facade.
// The original bot shipped these as constants; they are tuned data,
// so they live in configuration here.
type ChartsConfig struct {
	// MinArtistsForGenres is the minimum top-artist sample required
	// before a top-genre listing is computed.
	MinArtistsForGenres int `koanf:"min_artists_for_genres"`

	// MinArtistsForGenreFilter is the minimum all-time top-artist
	// sample required before filtering artists by genre.
	MinArtistsForGenreFilter int `koanf:"min_artists_for_genre_filter"`

	// DefaultPageSize is the page length used when a caller does not
	// specify one.
	DefaultPageSize int `koanf:"default_page_size"`

	// LeaderboardWorkers caps concurrent per-user playcount lookups
	// when building a leaderboard.
	LeaderboardWorkers int `koanf:"leaderboard_workers"`

	// RollupWorkers caps concurrent genre resolutions during a rollup.
	RollupWorkers int `koanf:"rollup_workers"`
}

// ThrottleConfig configures per-user request cooldowns.
type ThrottleConfig struct {
	Enabled bool          `koanf:"enabled"`
	Window  time.Duration `koanf:"window"`
}

// APIConfig configures the HTTP API surface.
type APIConfig struct {
	RateLimitReqs   int           `koanf:"rate_limit_reqs"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`
	CORSOrigins     []string      `koanf:"cors_origins"`
	MaxPageSize     int           `koanf:"max_page_size"`
}

// LoggingConfig configures the global logger.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}
