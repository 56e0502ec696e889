// Melographus - Music Listening Analytics for Chat Bots
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/melographus

// Package playstore persists play events, precomputed all-time artist
// rollups, and group membership in DuckDB.
package playstore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/tomtom215/melographus/internal/config"
	"github.com/tomtom215/melographus/internal/logging"
	"github.com/tomtom215/melographus/internal/metrics"
)

// Store wraps a DuckDB connection.
type Store struct {
	conn *sql.DB
}

// New opens (or creates) the database file and initializes the schema.
func New(cfg *config.DatabaseConfig) (*Store, error) {
	threads := cfg.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}

	if dbDir := filepath.Dir(cfg.Path); dbDir != "" && dbDir != "." {
		if err := os.MkdirAll(dbDir, 0o750); err != nil {
			return nil, fmt.Errorf("create database directory %s: %w", dbDir, err)
		}
	}

	// Auto-install/auto-load stays off so startup cannot hang waiting
	// on the extension repository in restricted networks.
	connStr := fmt.Sprintf("%s?access_mode=read_write&threads=%d&max_memory=%s&autoinstall_known_extensions=false&autoload_known_extensions=false",
		cfg.Path, threads, cfg.MaxMemory)

	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &Store{conn: conn}
	if err := s.initSchema(context.Background()); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	logging.Info().Str("path", cfg.Path).Int("threads", threads).Msg("Play store opened")
	return s, nil
}

// NewInMemory opens an in-memory database, used by tests.
func NewInMemory() (*Store, error) {
	conn, err := sql.Open("duckdb", ":memory:?autoinstall_known_extensions=false&autoload_known_extensions=false")
	if err != nil {
		return nil, fmt.Errorf("open in-memory database: %w", err)
	}

	s := &Store{conn: conn}
	if err := s.initSchema(context.Background()); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) initSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS plays (
			user_id INTEGER NOT NULL,
			artist_name VARCHAR NOT NULL,
			album_name VARCHAR,
			track_name VARCHAR,
			played_at TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_plays_user_time ON plays (user_id, played_at)`,
		`CREATE TABLE IF NOT EXISTS top_artists_alltime (
			user_id INTEGER NOT NULL,
			artist_name VARCHAR NOT NULL,
			playcount INTEGER NOT NULL,
			PRIMARY KEY (user_id, artist_name)
		)`,
		`CREATE TABLE IF NOT EXISTS group_members (
			group_id VARCHAR NOT NULL,
			user_id INTEGER NOT NULL,
			external_user_id VARCHAR,
			user_name VARCHAR,
			privacy_level INTEGER NOT NULL DEFAULT 1,
			registered_at TIMESTAMP NOT NULL,
			PRIMARY KEY (group_id, user_id)
		)`,
	}

	for _, stmt := range stmts {
		if _, err := s.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement failed: %w", err)
		}
	}
	return nil
}

// Conn exposes the underlying connection for health checks.
func (s *Store) Conn() *sql.DB {
	return s.conn
}

// Ping verifies the connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.conn.PingContext(ctx)
}

// Close closes the database.
func (s *Store) Close() error {
	return s.conn.Close()
}

func observe(operation, table string, start time.Time, err error) {
	metrics.RecordDBQuery(operation, table, time.Since(start))
	if err != nil {
		metrics.RecordDBError(operation, table)
	}
}
