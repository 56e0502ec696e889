// Melographus - Music Listening Analytics for Chat Bots
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/melographus

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in
// order of priority. The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/melographus/config.yaml",
	"/etc/melographus/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the
// config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config with all sensible default values.
// Defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:    "0.0.0.0",
			Port:    3839,
			Timeout: 30 * time.Second,
		},
		Database: DatabaseConfig{
			Path:      "/data/melographus.duckdb",
			MaxMemory: "1GB",
			Threads:   0, // 0 = use runtime.NumCPU()
		},
		GenreStore: GenreStoreConfig{
			Path:       "/data/genres",
			InMemory:   false,
			GCInterval: 10 * time.Minute,
		},
		GenreCache: GenreCacheConfig{
			TTL:                  time.Hour,
			NegativeTTL:          15 * time.Minute,
			RefreshAfter:         30 * 24 * time.Hour,
			FetchTimeout:         10 * time.Second,
			MaxConcurrentFetches: 4,
		},
		LastFM: LastFMConfig{
			APIKey:            "",
			APISecret:         "",
			RequestsPerSecond: 4,
			MaxTags:           8,
		},
		Charts: ChartsConfig{
			MinArtistsForGenres:      10,
			MinArtistsForGenreFilter: 100,
			DefaultPageSize:          10,
			LeaderboardWorkers:       8,
			RollupWorkers:            4,
		},
		Throttle: ThrottleConfig{
			Enabled: false, // gating is normally applied at the command layer
			Window:  5 * time.Second,
		},
		API: APIConfig{
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
			CORSOrigins:     []string{"*"},
			MaxPageSize:     100,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Load loads configuration using Koanf v2 with layered sources:
//  1. Defaults: built-in sensible defaults
//  2. Config file: optional YAML config file (if exists)
//  3. Environment variables: override any setting
//
// Precedence: ENV > File > Defaults.
func Load() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: environment variables (highest priority)
	// LASTFM_API_KEY -> lastfm.api_key, HTTP_PORT -> server.port
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths are parsed as
// comma-separated slices when supplied via environment variables.
var sliceConfigPaths = []string{
	"api.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for
// known slice fields. Env vars come in as strings, but the config expects
// slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		// Already a slice (from YAML file or defaults)
		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envTransformFunc maps environment variable names to koanf config paths.
// Unmapped variables are dropped so random environment noise cannot
// pollute the configuration.
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	envMappings := map[string]string{
		// Server mappings
		"http_host":    "server.host",
		"http_port":    "server.port",
		"http_timeout": "server.timeout",

		// Database mappings
		"duckdb_path":       "database.path",
		"duckdb_max_memory": "database.max_memory",
		"duckdb_threads":    "database.threads",

		// Genre store mappings
		"genre_store_path":        "genre_store.path",
		"genre_store_in_memory":   "genre_store.in_memory",
		"genre_store_gc_interval": "genre_store.gc_interval",

		// Genre cache mappings
		"genre_cache_ttl":           "genre_cache.ttl",
		"genre_cache_negative_ttl":  "genre_cache.negative_ttl",
		"genre_cache_refresh_after": "genre_cache.refresh_after",
		"genre_fetch_timeout":       "genre_cache.fetch_timeout",
		"genre_fetch_concurrency":   "genre_cache.max_concurrent_fetches",

		// Last.fm mappings
		"lastfm_api_key":             "lastfm.api_key",
		"lastfm_api_secret":          "lastfm.api_secret",
		"lastfm_requests_per_second": "lastfm.requests_per_second",
		"lastfm_max_tags":            "lastfm.max_tags",

		// Charts policy mappings
		"charts_min_artists_for_genres":       "charts.min_artists_for_genres",
		"charts_min_artists_for_genre_filter": "charts.min_artists_for_genre_filter",
		"charts_default_page_size":            "charts.default_page_size",
		"charts_leaderboard_workers":          "charts.leaderboard_workers",
		"charts_rollup_workers":               "charts.rollup_workers",

		// Throttle mappings
		"throttle_enabled": "throttle.enabled",
		"throttle_window":  "throttle.window",

		// API mappings
		"rate_limit_requests": "api.rate_limit_reqs",
		"rate_limit_window":   "api.rate_limit_window",
		"cors_origins":        "api.cors_origins",
		"api_max_page_size":   "api.max_page_size",

		// Logging mappings
		"log_level":  "logging.level",
		"log_format": "logging.format",
		"log_caller": "logging.caller",
	}

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}

	// Skip unmapped keys entirely
	return ""
}
