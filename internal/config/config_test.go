// Melographus - Music Listening Analytics for Chat Bots
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/melographus

package config

import (
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := defaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default configuration should validate, got %v", err)
	}
}

func TestDefaultThresholds(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Charts.MinArtistsForGenres != 10 {
		t.Errorf("MinArtistsForGenres = %d, want 10", cfg.Charts.MinArtistsForGenres)
	}
	if cfg.Charts.MinArtistsForGenreFilter != 100 {
		t.Errorf("MinArtistsForGenreFilter = %d, want 100", cfg.Charts.MinArtistsForGenreFilter)
	}
	if cfg.Charts.DefaultPageSize != 10 {
		t.Errorf("DefaultPageSize = %d, want 10", cfg.Charts.DefaultPageSize)
	}
}

func TestLoadWithEnvOverride(t *testing.T) {
	t.Setenv("HTTP_PORT", "8099")
	t.Setenv("LASTFM_API_KEY", "test-key")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CHARTS_MIN_ARTISTS_FOR_GENRES", "25")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Server.Port != 8099 {
		t.Errorf("Server.Port = %d, want 8099", cfg.Server.Port)
	}
	if cfg.LastFM.APIKey != "test-key" {
		t.Errorf("LastFM.APIKey = %q, want %q", cfg.LastFM.APIKey, "test-key")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
	if cfg.Charts.MinArtistsForGenres != 25 {
		t.Errorf("Charts.MinArtistsForGenres = %d, want 25", cfg.Charts.MinArtistsForGenres)
	}
}

func TestLoadCORSOriginsFromEnv(t *testing.T) {
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	want := []string{"https://a.example", "https://b.example"}
	if len(cfg.API.CORSOrigins) != len(want) {
		t.Fatalf("CORSOrigins = %v, want %v", cfg.API.CORSOrigins, want)
	}
	for i, origin := range want {
		if cfg.API.CORSOrigins[i] != origin {
			t.Errorf("CORSOrigins[%d] = %q, want %q", i, cfg.API.CORSOrigins[i], origin)
		}
	}
}

func TestEnvTransformIgnoresUnmappedKeys(t *testing.T) {
	if got := envTransformFunc("PATH"); got != "" {
		t.Errorf("envTransformFunc(PATH) = %q, want empty", got)
	}
	if got := envTransformFunc("HOME"); got != "" {
		t.Errorf("envTransformFunc(HOME) = %q, want empty", got)
	}
	if got := envTransformFunc("LASTFM_API_KEY"); got != "lastfm.api_key" {
		t.Errorf("envTransformFunc(LASTFM_API_KEY) = %q, want lastfm.api_key", got)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero port", func(c *Config) { c.Server.Port = 0 }},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }},
		{"negative cache ttl", func(c *Config) { c.GenreCache.TTL = -time.Second }},
		{"zero fetch timeout", func(c *Config) { c.GenreCache.FetchTimeout = 0 }},
		{"zero fetch concurrency", func(c *Config) { c.GenreCache.MaxConcurrentFetches = 0 }},
		{"zero lastfm rate", func(c *Config) { c.LastFM.RequestsPerSecond = 0 }},
		{"zero page size", func(c *Config) { c.Charts.DefaultPageSize = 0 }},
		{"zero leaderboard workers", func(c *Config) { c.Charts.LeaderboardWorkers = 0 }},
		{"zero rate limit", func(c *Config) { c.API.RateLimitReqs = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}
