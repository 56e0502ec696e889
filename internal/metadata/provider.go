// Melographus - Music Listening Analytics for Chat Bots
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/melographus

// Package metadata resolves artist metadata (genre tags) from external
// providers. The Last.fm implementation is wrapped in a circuit breaker
// so a slow or failing upstream cannot stall the rest of the service.
package metadata

import (
	"context"
	"errors"
)

// ErrUnavailable is returned when the provider cannot be reached or the
// circuit breaker is open.
var ErrUnavailable = errors.New("metadata provider unavailable")

// ErrArtistNotFound is returned when the provider has no record of the
// artist. Callers treat this as a cacheable empty result, not a fault.
var ErrArtistNotFound = errors.New("artist not found")

// Provider fetches genre tags for an artist. Implementations must be
// safe for concurrent use.
type Provider interface {
	// ArtistGenres returns the genre tags for the named artist, most
	// relevant first, lowercased. An artist unknown to the provider
	// returns ErrArtistNotFound.
	ArtistGenres(ctx context.Context, artist string) ([]string, error)

	// Name identifies the provider in logs and metrics.
	Name() string
}
