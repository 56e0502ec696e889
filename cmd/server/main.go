// Melographus - Music Listening Analytics for Chat Bots
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/melographus

// Command server runs the Melographus HTTP service.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/melographus/internal/api"
	"github.com/tomtom215/melographus/internal/charts"
	"github.com/tomtom215/melographus/internal/config"
	"github.com/tomtom215/melographus/internal/genre"
	"github.com/tomtom215/melographus/internal/logging"
	"github.com/tomtom215/melographus/internal/metadata"
	"github.com/tomtom215/melographus/internal/period"
	"github.com/tomtom215/melographus/internal/playstore"
	"github.com/tomtom215/melographus/internal/supervisor"
	"github.com/tomtom215/melographus/internal/supervisor/services"
	"github.com/tomtom215/melographus/internal/throttle"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("db_path", cfg.Database.Path).
		Str("genre_store_path", cfg.GenreStore.Path).
		Bool("throttle_enabled", cfg.Throttle.Enabled).
		Msg("Configuration loaded")

	// Play store (DuckDB)
	plays, err := playstore.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open play store")
	}
	defer func() {
		if err := plays.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing play store")
		}
	}()

	// Genre store (Badger) and metadata provider (Last.fm behind a
	// circuit breaker)
	genreStore, err := genre.NewBadgerStore(&cfg.GenreStore)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open genre store")
	}
	defer func() {
		if err := genreStore.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing genre store")
		}
	}()

	provider := metadata.NewBreakerProvider(metadata.NewLastFMProvider(&cfg.LastFM))
	genreCache := genre.NewCache(provider, genreStore, cfg.GenreCache)
	aggregator := genre.NewAggregator(genreCache, cfg.Charts.RollupWorkers)

	var cooldown *throttle.Cooldown
	if cfg.Throttle.Enabled {
		cooldown = throttle.New(cfg.Throttle.Window)
	}

	svc := charts.New(plays, plays, aggregator, period.NewResolver(), cooldown, cfg.Charts)

	handler := api.NewHandler(svc, cfg, plays.Ping)
	router := api.NewRouter(handler, cfg)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.Timeout,
	}

	// Supervision tree
	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddStorageService(services.NewGenreStoreGCService(genreStore, cfg.GenreStore.GCInterval))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Application stopped gracefully")
}
