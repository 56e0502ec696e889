// Melographus - Music Listening Analytics for Chat Bots
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/melographus

// Package charts is the service facade behind the API handlers. It
// resolves time windows, pulls ranked plays from the store, and applies
// the policy thresholds that gate genre charts.
package charts

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/tomtom215/melographus/internal/config"
	"github.com/tomtom215/melographus/internal/leaderboard"
	"github.com/tomtom215/melographus/internal/logging"
	"github.com/tomtom215/melographus/internal/models"
	"github.com/tomtom215/melographus/internal/period"
	"github.com/tomtom215/melographus/internal/throttle"
)

var (
	// ErrInsufficientData is returned when a user has too few top
	// artists for a genre chart to be meaningful.
	ErrInsufficientData = errors.New("not enough listening data")

	// ErrNotFound is returned for an empty group or a genre no artist
	// matches.
	ErrNotFound = errors.New("not found")

	// ErrOnCooldown is returned when the requesting user must wait
	// before the next expensive chart.
	ErrOnCooldown = errors.New("on cooldown")
)

// PlayStore is the slice of the play store the facade needs.
type PlayStore interface {
	TopArtistsInRange(ctx context.Context, userID int, start, end time.Time) ([]models.ArtistTotal, error)
	TopArtistsAllTime(ctx context.Context, userID int) ([]models.ArtistTotal, error)
	PlaycountForTarget(ctx context.Context, userID int, target models.TargetType, name string, start, end time.Time) (int, error)
}

// GroupDirectory lists group members.
type GroupDirectory interface {
	Members(ctx context.Context, groupID string) ([]models.GroupMember, error)
}

// GenreSource rolls artist totals up into genre views.
type GenreSource interface {
	RollupByGenre(ctx context.Context, totals []models.ArtistTotal) ([]models.GenreRollup, error)
	ArtistsForGenre(ctx context.Context, totals []models.ArtistTotal, genre string) ([]models.ArtistTotal, error)
}

// Service implements the chart operations.
type Service struct {
	plays    PlayStore
	groups   GroupDirectory
	genres   GenreSource
	periods  *period.Resolver
	cooldown *throttle.Cooldown
	cfg      config.ChartsConfig
}

// New creates a Service. cooldown may be nil to disable throttling.
func New(plays PlayStore, groups GroupDirectory, genres GenreSource, periods *period.Resolver, cooldown *throttle.Cooldown, cfg config.ChartsConfig) *Service {
	return &Service{
		plays:    plays,
		groups:   groups,
		genres:   genres,
		periods:  periods,
		cooldown: cooldown,
		cfg:      cfg,
	}
}

// Cooldown exposes the throttle for administrative resets. Returns nil
// when throttling is disabled.
func (s *Service) Cooldown() *throttle.Cooldown {
	return s.cooldown
}

func (s *Service) checkCooldown(userID int) error {
	if s.cooldown == nil {
		return nil
	}
	ok, remaining := s.cooldown.Allow(userID)
	if !ok {
		return fmt.Errorf("%w: retry in %s", ErrOnCooldown, remaining.Round(time.Second))
	}
	return nil
}

func (s *Service) topArtistsForWindow(ctx context.Context, userID int, w period.Window) ([]models.ArtistTotal, error) {
	if w.Mode == period.ModePrecomputed {
		return s.plays.TopArtistsAllTime(ctx, userID)
	}
	return s.plays.TopArtistsInRange(ctx, userID, w.Start, w.End)
}

// GetTopArtists returns a user's ranked artists for a period token.
func (s *Service) GetTopArtists(ctx context.Context, userID int, periodToken string, days int) ([]models.ArtistTotal, error) {
	w, err := s.periods.Resolve(periodToken, days)
	if err != nil {
		return nil, err
	}
	return s.topArtistsForWindow(ctx, userID, w)
}

// GetTopGenres rolls a user's top artists for the period up into ranked
// genres. A user with fewer top artists than the configured minimum
// gets ErrInsufficientData instead of a misleading chart.
func (s *Service) GetTopGenres(ctx context.Context, userID int, periodToken string, days int) ([]models.GenreRollup, error) {
	if err := s.checkCooldown(userID); err != nil {
		return nil, err
	}

	totals, err := s.GetTopArtists(ctx, userID, periodToken, days)
	if err != nil {
		return nil, err
	}
	if len(totals) < s.cfg.MinArtistsForGenres {
		return nil, fmt.Errorf("%w: %d top artists, need %d", ErrInsufficientData, len(totals), s.cfg.MinArtistsForGenres)
	}

	return s.genres.RollupByGenre(ctx, totals)
}

// GetArtistsForGenre filters a user's all-time top artists down to one
// genre. The all-time chart is used regardless of period because genre
// filtering over a thin window produces noise. No matching artists
// yields ErrNotFound.
func (s *Service) GetArtistsForGenre(ctx context.Context, userID int, genreName string) ([]models.ArtistTotal, error) {
	if err := s.checkCooldown(userID); err != nil {
		return nil, err
	}

	totals, err := s.plays.TopArtistsAllTime(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(totals) < s.cfg.MinArtistsForGenreFilter {
		return nil, fmt.Errorf("%w: %d all-time artists, need %d", ErrInsufficientData, len(totals), s.cfg.MinArtistsForGenreFilter)
	}

	matched, err := s.genres.ArtistsForGenre(ctx, totals, genreName)
	if err != nil {
		return nil, err
	}
	if len(matched) == 0 {
		return nil, fmt.Errorf("genre %q: %w", genreName, ErrNotFound)
	}
	return matched, nil
}

// GetLeaderboard ranks a group's members by playcount for a target
// artist, album, or track. Playcounts are fetched with bounded
// concurrency, one query per member. An unknown or empty group yields
// ErrNotFound.
func (s *Service) GetLeaderboard(ctx context.Context, groupID string, target models.TargetType, name, periodToken string, days int, mode models.VisibilityMode) ([]models.LeaderboardEntry, error) {
	w, err := s.periods.Resolve(periodToken, days)
	if err != nil {
		return nil, err
	}

	members, err := s.groups.Members(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return nil, fmt.Errorf("group %q: %w", groupID, ErrNotFound)
	}

	start, end := w.Start, w.End
	if w.Mode == period.ModePrecomputed {
		start, end = time.Time{}, time.Time{}
	}

	candidates := make([]leaderboard.Candidate, len(members))
	sem := make(chan struct{}, s.cfg.LeaderboardWorkers)
	var wg sync.WaitGroup

	for i, m := range members {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(i int, m models.GroupMember) {
			defer wg.Done()
			defer func() { <-sem }()

			count, err := s.plays.PlaycountForTarget(ctx, m.UserID, target, name, start, end)
			if err != nil {
				logging.Warn().Err(err).Int("user_id", m.UserID).Msg("Playcount lookup failed, member dropped from leaderboard")
				return
			}
			candidates[i] = leaderboard.Candidate{Member: m, Playcount: count}
		}(i, m)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return leaderboard.Build(candidates, mode), nil
}
