// Melographus - Music Listening Analytics for Chat Bots
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/melographus

package metadata

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/melographus/internal/logging"
	"github.com/tomtom215/melographus/internal/metrics"
)

// BreakerProvider wraps a Provider with a circuit breaker. The breaker
// uses real time for its interval and timeout calculations; unit tests
// should exercise the wrapped provider directly.
type BreakerProvider struct {
	inner Provider
	cb    *gobreaker.CircuitBreaker[[]string]
}

// NewBreakerProvider wraps inner with a circuit breaker that opens
// after a 60% failure rate over at least 10 requests, waits 2 minutes
// before probing, and allows 3 requests while half-open.
func NewBreakerProvider(inner Provider) *BreakerProvider {
	name := inner.Name()
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[[]string](gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= 0.6
		},
		IsSuccessful: func(err error) bool {
			// An unknown artist is a valid answer, not a provider fault.
			return err == nil || errors.Is(err, ErrArtistNotFound)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Circuit breaker state transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			if to == gobreaker.StateOpen {
				metrics.CircuitBreakerTrips.WithLabelValues(name).Inc()
			}
		},
	})

	return &BreakerProvider{inner: inner, cb: cb}
}

// Name implements Provider.
func (b *BreakerProvider) Name() string { return b.inner.Name() }

// ArtistGenres implements Provider. When the circuit is open the call
// fails fast with ErrUnavailable.
func (b *BreakerProvider) ArtistGenres(ctx context.Context, artist string) ([]string, error) {
	genres, err := b.cb.Execute(func() ([]string, error) {
		return b.inner.ArtistGenres(ctx, artist)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("circuit open for %s: %w", b.inner.Name(), ErrUnavailable)
		}
		return nil, err
	}
	return genres, nil
}

func stateToFloat(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
