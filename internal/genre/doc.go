// Melographus - Music Listening Analytics for Chat Bots
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/melographus

// Package genre caches artist genre tags and rolls artist playcounts
// up into genre charts.
//
// Lookups go through three layers: a TTL-bounded in-memory map, a
// BadgerDB write-through store, and the metadata provider. Concurrent
// lookups for one artist share a single provider fetch.
package genre
