// Melographus - Music Listening Analytics for Chat Bots
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/melographus

package genre

import (
	"context"
	"errors"
	"testing"

	"github.com/tomtom215/melographus/internal/models"
)

type mapResolver struct {
	genres map[string][]string
	err    error
}

func (m *mapResolver) Resolve(_ context.Context, artist string) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.genres[artist], nil
}

func testTotals() []models.ArtistTotal {
	return []models.ArtistTotal{
		{ArtistName: "alpha", Playcount: 30},
		{ArtistName: "beta", Playcount: 20},
		{ArtistName: "gamma", Playcount: 10},
	}
}

func testMapResolver() *mapResolver {
	return &mapResolver{genres: map[string][]string{
		"alpha": {"rock", "jazz"},
		"beta":  {"rock"},
		"gamma": {"jazz"},
	}}
}

func TestRollupByGenre(t *testing.T) {
	agg := NewAggregator(testMapResolver(), 4)

	rollups, err := agg.RollupByGenre(context.Background(), testTotals())
	if err != nil {
		t.Fatalf("RollupByGenre failed: %v", err)
	}
	if len(rollups) != 2 {
		t.Fatalf("got %d rollups, want 2", len(rollups))
	}

	// rock: alpha(30)+beta(20)=50, jazz: alpha(30)+gamma(10)=40
	if rollups[0].GenreName != "rock" || rollups[0].Playcount != 50 {
		t.Errorf("rollups[0] = %s/%d, want rock/50", rollups[0].GenreName, rollups[0].Playcount)
	}
	if rollups[1].GenreName != "jazz" || rollups[1].Playcount != 40 {
		t.Errorf("rollups[1] = %s/%d, want jazz/40", rollups[1].GenreName, rollups[1].Playcount)
	}

	if rollups[0].Artists[0].ArtistName != "alpha" || rollups[0].Artists[1].ArtistName != "beta" {
		t.Errorf("rock artists = %v", rollups[0].Artists)
	}
}

func TestRollupTieBreaksAlphabetically(t *testing.T) {
	resolver := &mapResolver{genres: map[string][]string{
		"one": {"zeta", "alpha"},
	}}
	agg := NewAggregator(resolver, 2)

	rollups, err := agg.RollupByGenre(context.Background(), []models.ArtistTotal{
		{ArtistName: "one", Playcount: 5},
	})
	if err != nil {
		t.Fatalf("RollupByGenre failed: %v", err)
	}
	if rollups[0].GenreName != "alpha" || rollups[1].GenreName != "zeta" {
		t.Errorf("tie order = %s, %s", rollups[0].GenreName, rollups[1].GenreName)
	}
}

func TestRollupSkipsFailedLookups(t *testing.T) {
	agg := NewAggregator(&mapResolver{err: errors.New("down")}, 2)

	rollups, err := agg.RollupByGenre(context.Background(), testTotals())
	if err != nil {
		t.Fatalf("RollupByGenre failed: %v", err)
	}
	if len(rollups) != 0 {
		t.Errorf("got %d rollups, want 0 when every lookup fails", len(rollups))
	}
}

func TestRollupCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	agg := NewAggregator(testMapResolver(), 2)
	_, err := agg.RollupByGenre(ctx, testTotals())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestArtistsForGenre(t *testing.T) {
	agg := NewAggregator(testMapResolver(), 4)

	matched, err := agg.ArtistsForGenre(context.Background(), testTotals(), "Jazz")
	if err != nil {
		t.Fatalf("ArtistsForGenre failed: %v", err)
	}
	if len(matched) != 2 {
		t.Fatalf("got %d artists, want 2", len(matched))
	}
	// Input ranking preserved.
	if matched[0].ArtistName != "alpha" || matched[1].ArtistName != "gamma" {
		t.Errorf("matched = %v", matched)
	}
}

func TestArtistsForGenreNoMatches(t *testing.T) {
	agg := NewAggregator(testMapResolver(), 4)

	matched, err := agg.ArtistsForGenre(context.Background(), testTotals(), "polka")
	if err != nil {
		t.Fatalf("ArtistsForGenre failed: %v", err)
	}
	if len(matched) != 0 {
		t.Errorf("matched = %v, want empty", matched)
	}
}

func TestArtistsForGenreBlankGenre(t *testing.T) {
	agg := NewAggregator(testMapResolver(), 4)

	matched, err := agg.ArtistsForGenre(context.Background(), testTotals(), "   ")
	if err != nil {
		t.Fatalf("ArtistsForGenre failed: %v", err)
	}
	if matched != nil {
		t.Errorf("matched = %v, want nil", matched)
	}
}
