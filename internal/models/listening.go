// Melographus - Music Listening Analytics for Chat Bots
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/melographus

package models

import (
	"strings"
	"time"
)

// PlayEvent is a single timestamped record of a user listening to a track
// (a "scrobble"). Events are append-only and owned by the play store; the
// analytics core never mutates them.
type PlayEvent struct {
	UserID     int       `json:"user_id"`
	ArtistName string    `json:"artist_name"`
	AlbumName  string    `json:"album_name,omitempty"`
	TrackName  string    `json:"track_name,omitempty"`
	PlayedAt   time.Time `json:"played_at"`
}

// ArtistTotal is one row of a ranked per-artist playcount list.
// ArtistName is always in normalized form (see NormalizeArtist).
type ArtistTotal struct {
	ArtistName string `json:"artist_name"`
	Playcount  int    `json:"playcount"`
}

// GenreRollup aggregates the playcounts of every artist carrying a genre.
// Artists preserves the relative ranking of the contributing artists.
type GenreRollup struct {
	GenreName string        `json:"genre_name"`
	Playcount int           `json:"playcount"`
	Artists   []ArtistTotal `json:"artists"`
}

// GenreCacheEntry is the durable record mapping a normalized artist name
// to its genre tags. Entries are replaced on refresh, never deleted; a
// failed lookup is cached briefly as an empty tag set.
type GenreCacheEntry struct {
	ArtistName string    `json:"artist_name"`
	Genres     []string  `json:"genres"`
	FetchedAt  time.Time `json:"fetched_at"`
}

// AffinityVector is a user's weighted artist-playcount profile used for
// similarity scoring. Keys are normalized artist names.
type AffinityVector struct {
	UserID  int                `json:"user_id"`
	Weights map[string]float64 `json:"weights"`
}

// NormalizeArtist produces the canonical join key for an artist name:
// trimmed and case-folded. Two play events differing only in case or
// surrounding whitespace must aggregate into one ArtistTotal.
func NormalizeArtist(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
