// Melographus - Music Listening Analytics for Chat Bots
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/melographus

package metadata

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

type fakeProvider struct {
	genres []string
	err    error
	calls  atomic.Int64
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) ArtistGenres(_ context.Context, _ string) ([]string, error) {
	f.calls.Add(1)
	return f.genres, f.err
}

func TestBreakerPassesThroughSuccess(t *testing.T) {
	inner := &fakeProvider{genres: []string{"rock", "indie"}}
	bp := NewBreakerProvider(inner)

	genres, err := bp.ArtistGenres(context.Background(), "radiohead")
	if err != nil {
		t.Fatalf("ArtistGenres failed: %v", err)
	}
	if len(genres) != 2 || genres[0] != "rock" {
		t.Errorf("genres = %v", genres)
	}
}

func TestBreakerPassesThroughNotFound(t *testing.T) {
	inner := &fakeProvider{err: ErrArtistNotFound}
	bp := NewBreakerProvider(inner)

	_, err := bp.ArtistGenres(context.Background(), "no such band")
	if !errors.Is(err, ErrArtistNotFound) {
		t.Errorf("expected ErrArtistNotFound, got %v", err)
	}
}

func TestBreakerOpensAfterFailureRun(t *testing.T) {
	inner := &fakeProvider{err: errors.New("upstream down")}
	bp := NewBreakerProvider(inner)

	// Drive enough failures to trip the breaker (>= 10 requests at a
	// 100% failure rate).
	for i := 0; i < 12; i++ {
		_, _ = bp.ArtistGenres(context.Background(), "x")
	}

	before := inner.calls.Load()
	_, err := bp.ArtistGenres(context.Background(), "x")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable from open circuit, got %v", err)
	}
	if inner.calls.Load() != before {
		t.Error("open circuit should not reach the inner provider")
	}
}

func TestBreakerNotFoundDoesNotTrip(t *testing.T) {
	inner := &fakeProvider{err: ErrArtistNotFound}
	bp := NewBreakerProvider(inner)

	for i := 0; i < 20; i++ {
		_, _ = bp.ArtistGenres(context.Background(), "x")
	}

	// All 20 calls must have reached the provider.
	if got := inner.calls.Load(); got != 20 {
		t.Errorf("inner calls = %d, want 20", got)
	}
}

func TestIsNotFound(t *testing.T) {
	if !isNotFound(errors.New("The artist you supplied could not be found")) {
		t.Error("not-found message should match")
	}
	if isNotFound(errors.New("connection refused")) {
		t.Error("transport error should not match")
	}
}
