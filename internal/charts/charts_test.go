// Melographus - Music Listening Analytics for Chat Bots
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/melographus

package charts

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/melographus/internal/config"
	"github.com/tomtom215/melographus/internal/models"
	"github.com/tomtom215/melographus/internal/period"
	"github.com/tomtom215/melographus/internal/throttle"
)

type fakePlays struct {
	ranged  map[int][]models.ArtistTotal
	alltime map[int][]models.ArtistTotal
	counts  map[string]int // see key()
	err     error
}

func (f *fakePlays) TopArtistsInRange(_ context.Context, userID int, _, _ time.Time) ([]models.ArtistTotal, error) {
	return f.ranged[userID], f.err
}

func (f *fakePlays) TopArtistsAllTime(_ context.Context, userID int) ([]models.ArtistTotal, error) {
	return f.alltime[userID], f.err
}

func (f *fakePlays) PlaycountForTarget(_ context.Context, userID int, target models.TargetType, name string, _, _ time.Time) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.counts[key(userID, target, name)], nil
}

func key(userID int, target models.TargetType, name string) string {
	return target.String() + "/" + strings.ToLower(name) + "/" + string(rune('0'+userID))
}

type fakeGroups struct {
	members map[string][]models.GroupMember
	err     error
}

func (f *fakeGroups) Members(_ context.Context, groupID string) ([]models.GroupMember, error) {
	return f.members[groupID], f.err
}

type fakeGenres struct{}

func (fakeGenres) RollupByGenre(_ context.Context, totals []models.ArtistTotal) ([]models.GenreRollup, error) {
	// Every artist maps to one genre named after its first letter.
	byGenre := map[string]*models.GenreRollup{}
	for _, t := range totals {
		g := t.ArtistName[:1]
		r, ok := byGenre[g]
		if !ok {
			r = &models.GenreRollup{GenreName: g}
			byGenre[g] = r
		}
		r.Playcount += t.Playcount
		r.Artists = append(r.Artists, t)
	}
	out := make([]models.GenreRollup, 0, len(byGenre))
	for _, r := range byGenre {
		out = append(out, *r)
	}
	return out, nil
}

func (fakeGenres) ArtistsForGenre(_ context.Context, totals []models.ArtistTotal, genre string) ([]models.ArtistTotal, error) {
	var out []models.ArtistTotal
	for _, t := range totals {
		if strings.HasPrefix(t.ArtistName, strings.ToLower(genre)) {
			out = append(out, t)
		}
	}
	return out, nil
}

func nTotals(n int) []models.ArtistTotal {
	out := make([]models.ArtistTotal, n)
	for i := range out {
		out[i] = models.ArtistTotal{
			ArtistName: string(rune('a'+i%26)) + "-artist",
			Playcount:  n - i,
		}
	}
	return out
}

func testChartsConfig() config.ChartsConfig {
	return config.ChartsConfig{
		MinArtistsForGenres:      10,
		MinArtistsForGenreFilter: 100,
		DefaultPageSize:          10,
		LeaderboardWorkers:       4,
		RollupWorkers:            4,
	}
}

func newService(plays *fakePlays, groups *fakeGroups, cooldown *throttle.Cooldown) *Service {
	return New(plays, groups, fakeGenres{}, period.NewResolver(), cooldown, testChartsConfig())
}

func TestGetTopArtistsByPeriod(t *testing.T) {
	plays := &fakePlays{
		ranged:  map[int][]models.ArtistTotal{1: nTotals(3)},
		alltime: map[int][]models.ArtistTotal{1: nTotals(5)},
	}
	svc := newService(plays, &fakeGroups{}, nil)

	totals, err := svc.GetTopArtists(context.Background(), 1, "weekly", 0)
	if err != nil {
		t.Fatalf("GetTopArtists failed: %v", err)
	}
	if len(totals) != 3 {
		t.Errorf("weekly totals = %d, want 3 (ranged)", len(totals))
	}

	totals, err = svc.GetTopArtists(context.Background(), 1, "alltime", 0)
	if err != nil {
		t.Fatalf("GetTopArtists failed: %v", err)
	}
	if len(totals) != 5 {
		t.Errorf("alltime totals = %d, want 5 (precomputed)", len(totals))
	}

	_, err = svc.GetTopArtists(context.Background(), 1, "bogus", 0)
	if !errors.Is(err, period.ErrInvalidPeriod) {
		t.Errorf("expected ErrInvalidPeriod, got %v", err)
	}
}

func TestGetTopGenresThreshold(t *testing.T) {
	plays := &fakePlays{ranged: map[int][]models.ArtistTotal{
		1: nTotals(8),  // below minimum
		2: nTotals(12), // above minimum
	}}
	svc := newService(plays, &fakeGroups{}, nil)

	_, err := svc.GetTopGenres(context.Background(), 1, "weekly", 0)
	if !errors.Is(err, ErrInsufficientData) {
		t.Errorf("expected ErrInsufficientData, got %v", err)
	}

	rollups, err := svc.GetTopGenres(context.Background(), 2, "weekly", 0)
	if err != nil {
		t.Fatalf("GetTopGenres failed: %v", err)
	}
	if len(rollups) == 0 {
		t.Error("expected rollups for user above threshold")
	}
}

func TestGetArtistsForGenre(t *testing.T) {
	plays := &fakePlays{alltime: map[int][]models.ArtistTotal{
		1: nTotals(150),
		2: nTotals(50), // below filter minimum
	}}
	svc := newService(plays, &fakeGroups{}, nil)

	matched, err := svc.GetArtistsForGenre(context.Background(), 1, "a")
	if err != nil {
		t.Fatalf("GetArtistsForGenre failed: %v", err)
	}
	if len(matched) == 0 {
		t.Error("expected matches for genre prefix")
	}

	_, err = svc.GetArtistsForGenre(context.Background(), 2, "a")
	if !errors.Is(err, ErrInsufficientData) {
		t.Errorf("expected ErrInsufficientData, got %v", err)
	}

	_, err = svc.GetArtistsForGenre(context.Background(), 1, "zzz")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for unmatched genre, got %v", err)
	}
}

func TestGetLeaderboard(t *testing.T) {
	registered := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	groups := &fakeGroups{members: map[string][]models.GroupMember{
		"g1": {
			{UserID: 1, UserName: "ana", PrivacyLevel: models.PrivacyPublic, RegisteredAt: registered},
			{UserID: 2, UserName: "bob", PrivacyLevel: models.PrivacyPublic, RegisteredAt: registered},
			{UserID: 3, UserName: "cyd", PrivacyLevel: models.PrivacyPublic, RegisteredAt: registered},
		},
	}}
	plays := &fakePlays{counts: map[string]int{
		key(1, models.TargetArtist, "radiohead"): 10,
		key(2, models.TargetArtist, "radiohead"): 30,
		// user 3 has no plays and must be dropped
	}}
	svc := newService(plays, groups, nil)

	entries, err := svc.GetLeaderboard(context.Background(), "g1", models.TargetArtist, "radiohead", "alltime", 0, models.VisibilityExclude)
	if err != nil {
		t.Fatalf("GetLeaderboard failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2: %+v", len(entries), entries)
	}
	if entries[0].UserName != "bob" || entries[0].Playcount != 30 {
		t.Errorf("entries[0] = %+v", entries[0])
	}
}

func TestGetLeaderboardAlbumAndTrackTargets(t *testing.T) {
	registered := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	groups := &fakeGroups{members: map[string][]models.GroupMember{
		"g1": {
			{UserID: 1, UserName: "ana", PrivacyLevel: models.PrivacyPublic, RegisteredAt: registered},
			{UserID: 2, UserName: "bob", PrivacyLevel: models.PrivacyPublic, RegisteredAt: registered},
		},
	}}
	plays := &fakePlays{counts: map[string]int{
		key(1, models.TargetAlbum, "in rainbows"):  4,
		key(2, models.TargetAlbum, "in rainbows"):  9,
		key(1, models.TargetTrack, "pyramid song"): 7,
		key(2, models.TargetArtist, "in rainbows"): 50, // must not leak into the album board
	}}
	svc := newService(plays, groups, nil)

	entries, err := svc.GetLeaderboard(context.Background(), "g1", models.TargetAlbum, "In Rainbows", "alltime", 0, models.VisibilityExclude)
	if err != nil {
		t.Fatalf("GetLeaderboard failed: %v", err)
	}
	if len(entries) != 2 || entries[0].UserName != "bob" || entries[0].Playcount != 9 {
		t.Errorf("album board = %+v", entries)
	}

	entries, err = svc.GetLeaderboard(context.Background(), "g1", models.TargetTrack, "Pyramid Song", "alltime", 0, models.VisibilityExclude)
	if err != nil {
		t.Fatalf("GetLeaderboard failed: %v", err)
	}
	if len(entries) != 1 || entries[0].UserName != "ana" || entries[0].Playcount != 7 {
		t.Errorf("track board = %+v", entries)
	}
}

func TestGetLeaderboardUnknownGroup(t *testing.T) {
	svc := newService(&fakePlays{}, &fakeGroups{}, nil)

	_, err := svc.GetLeaderboard(context.Background(), "nope", models.TargetArtist, "radiohead", "alltime", 0, models.VisibilityExclude)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestGetAffinity(t *testing.T) {
	plays := &fakePlays{alltime: map[int][]models.ArtistTotal{
		1: {{ArtistName: "x", Playcount: 10}, {ArtistName: "y", Playcount: 5}},
		2: {{ArtistName: "x", Playcount: 20}, {ArtistName: "y", Playcount: 10}},
		3: {},
	}}
	svc := newService(plays, &fakeGroups{}, nil)

	res, err := svc.GetAffinity(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("GetAffinity failed: %v", err)
	}
	if res.Score != 100 {
		t.Errorf("identical taste score = %f, want 100", res.Score)
	}
	if res.SharedCount != 2 {
		t.Errorf("shared = %d, want 2", res.SharedCount)
	}

	res, err = svc.GetAffinity(context.Background(), 1, 3)
	if err != nil {
		t.Fatalf("GetAffinity failed: %v", err)
	}
	if res.Score != 0 {
		t.Errorf("score against empty listener = %f, want 0", res.Score)
	}
}

func TestCooldownGatesExpensiveCharts(t *testing.T) {
	plays := &fakePlays{ranged: map[int][]models.ArtistTotal{1: nTotals(12)}}
	cooldown := throttle.New(time.Minute)
	svc := newService(plays, &fakeGroups{}, cooldown)

	if _, err := svc.GetTopGenres(context.Background(), 1, "weekly", 0); err != nil {
		t.Fatalf("first request failed: %v", err)
	}
	_, err := svc.GetTopGenres(context.Background(), 1, "weekly", 0)
	if !errors.Is(err, ErrOnCooldown) {
		t.Errorf("expected ErrOnCooldown, got %v", err)
	}

	// Cheap chart stays available during the cooldown.
	if _, err := svc.GetTopArtists(context.Background(), 1, "weekly", 0); err != nil {
		t.Errorf("GetTopArtists should not be throttled: %v", err)
	}
}
