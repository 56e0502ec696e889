// Melographus - Music Listening Analytics for Chat Bots
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/melographus

// Package models defines the shared data types of the listening
// analytics core: play events, ranked artist and genre lists,
// leaderboard rows, affinity vectors, and API envelopes.
//
// Artist-name normalization (NormalizeArtist) is the join key across
// every component. Derived types (ArtistTotal, GenreRollup,
// LeaderboardEntry, AffinityVector) are transient and computed per
// request; GenreCacheEntry is the only record with a cross-request
// lifecycle, owned by the genre cache.
package models
