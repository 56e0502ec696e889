// Melographus - Music Listening Analytics for Chat Bots
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/melographus

package playstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tomtom215/melographus/internal/models"
)

// InsertPlays appends play events in a single transaction. Artist names
// are normalized on the way in so aggregation queries never need to.
func (s *Store) InsertPlays(ctx context.Context, plays []models.PlayEvent) (err error) {
	if len(plays) == 0 {
		return nil
	}
	began := time.Now()
	defer func() { observe("insert", "plays", began, err) }()

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO plays (user_id, artist_name, album_name, track_name, played_at) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, p := range plays {
		name := models.NormalizeArtist(p.ArtistName)
		if name == "" {
			continue
		}
		if _, err = stmt.ExecContext(ctx, p.UserID, name, p.AlbumName, p.TrackName, p.PlayedAt); err != nil {
			return fmt.Errorf("insert play: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit plays: %w", err)
	}
	return nil
}

// TopArtistsInRange aggregates a user's plays inside [start, end) into
// ranked artist totals.
func (s *Store) TopArtistsInRange(ctx context.Context, userID int, start, end time.Time) (totals []models.ArtistTotal, err error) {
	began := time.Now()
	defer func() { observe("select", "plays", began, err) }()

	rows, err := s.conn.QueryContext(ctx,
		`SELECT artist_name, COUNT(*) AS playcount
		 FROM plays
		 WHERE user_id = ? AND played_at >= ? AND played_at < ?
		 GROUP BY artist_name
		 ORDER BY playcount DESC, artist_name ASC`,
		userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("query top artists: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanTotals(rows)
}

// TopArtistsAllTime returns the precomputed all-time rollup for a user.
// Call RefreshAllTime after bulk inserts to keep it current.
func (s *Store) TopArtistsAllTime(ctx context.Context, userID int) (totals []models.ArtistTotal, err error) {
	began := time.Now()
	defer func() { observe("select", "top_artists_alltime", began, err) }()

	rows, err := s.conn.QueryContext(ctx,
		`SELECT artist_name, playcount
		 FROM top_artists_alltime
		 WHERE user_id = ?
		 ORDER BY playcount DESC, artist_name ASC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("query all-time artists: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanTotals(rows)
}

// RefreshAllTime rebuilds the all-time rollup for a user from raw
// plays.
func (s *Store) RefreshAllTime(ctx context.Context, userID int) (err error) {
	began := time.Now()
	defer func() { observe("refresh", "top_artists_alltime", began, err) }()

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx,
		`DELETE FROM top_artists_alltime WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("clear rollup: %w", err)
	}

	if _, err = tx.ExecContext(ctx,
		`INSERT INTO top_artists_alltime (user_id, artist_name, playcount)
		 SELECT user_id, artist_name, COUNT(*)
		 FROM plays
		 WHERE user_id = ?
		 GROUP BY user_id, artist_name`,
		userID); err != nil {
		return fmt.Errorf("rebuild rollup: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit rollup: %w", err)
	}
	return nil
}

// PlaycountForTarget returns one user's playcount for a single artist,
// album, or track inside [start, end). Names are matched trimmed and
// case-insensitively. A zero end time means all time; artist targets
// answer that from the precomputed rollup.
func (s *Store) PlaycountForTarget(ctx context.Context, userID int, target models.TargetType, name string, start, end time.Time) (count int, err error) {
	key := models.NormalizeArtist(name)
	began := time.Now()

	if target == models.TargetArtist && end.IsZero() {
		defer func() { observe("select", "top_artists_alltime", began, err) }()
		err = s.conn.QueryRowContext(ctx,
			`SELECT COALESCE(
				(SELECT playcount FROM top_artists_alltime WHERE user_id = ? AND artist_name = ?), 0)`,
			userID, key).Scan(&count)
		if err != nil {
			return 0, fmt.Errorf("query target playcount: %w", err)
		}
		return count, nil
	}

	column := "artist_name"
	switch target {
	case models.TargetAlbum:
		column = "album_name"
	case models.TargetTrack:
		column = "track_name"
	}

	query := `SELECT COUNT(*) FROM plays WHERE user_id = ? AND lower(trim(` + column + `)) = ?`
	args := []any{userID, key}
	if !end.IsZero() {
		query += ` AND played_at >= ? AND played_at < ?`
		args = append(args, start, end)
	}

	defer func() { observe("select", "plays", began, err) }()
	if err = s.conn.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("query target playcount: %w", err)
	}
	return count, nil
}

func scanTotals(rows *sql.Rows) ([]models.ArtistTotal, error) {
	var totals []models.ArtistTotal
	for rows.Next() {
		var t models.ArtistTotal
		if err := rows.Scan(&t.ArtistName, &t.Playcount); err != nil {
			return nil, fmt.Errorf("scan artist total: %w", err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate artist totals: %w", err)
	}
	return totals, nil
}
