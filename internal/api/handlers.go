// Melographus - Music Listening Analytics for Chat Bots
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/melographus

package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/melographus/internal/aggregate"
	"github.com/tomtom215/melographus/internal/charts"
	"github.com/tomtom215/melographus/internal/config"
	"github.com/tomtom215/melographus/internal/metadata"
	"github.com/tomtom215/melographus/internal/models"
	"github.com/tomtom215/melographus/internal/period"
	"github.com/tomtom215/melographus/internal/throttle"
)

// ChartService is the facade the handlers call into. *charts.Service
// satisfies it.
type ChartService interface {
	GetTopArtists(ctx context.Context, userID int, periodToken string, days int) ([]models.ArtistTotal, error)
	GetTopGenres(ctx context.Context, userID int, periodToken string, days int) ([]models.GenreRollup, error)
	GetArtistsForGenre(ctx context.Context, userID int, genre string) ([]models.ArtistTotal, error)
	GetLeaderboard(ctx context.Context, groupID string, target models.TargetType, name, periodToken string, days int, mode models.VisibilityMode) ([]models.LeaderboardEntry, error)
	GetAffinity(ctx context.Context, userA, userB int) (*charts.AffinityResult, error)
	Cooldown() *throttle.Cooldown
}

// Handler holds the dependencies for the HTTP handlers.
type Handler struct {
	charts ChartService
	cfg    *config.Config
	ready  func(ctx context.Context) error
}

// NewHandler creates a Handler. ready is the readiness probe, usually
// the play store's Ping.
func NewHandler(svc ChartService, cfg *config.Config, ready func(ctx context.Context) error) *Handler {
	return &Handler{charts: svc, cfg: cfg, ready: ready}
}

// respondServiceError maps facade errors to HTTP status codes.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, period.ErrInvalidPeriod):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, aggregate.ErrInvalidPageSize):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, charts.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, charts.ErrInsufficientData):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, charts.ErrOnCooldown):
		respondError(w, http.StatusTooManyRequests, err.Error())
	case errors.Is(err, metadata.ErrUnavailable):
		respondError(w, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		respondError(w, http.StatusGatewayTimeout, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}

func (h *Handler) userIDParam(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "id"))
}

func (h *Handler) pageParams(r *http.Request) (page, pageSize int) {
	q := r.URL.Query()
	page, _ = strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ = strconv.Atoi(q.Get("page_size"))
	if pageSize < 1 {
		pageSize = h.cfg.Charts.DefaultPageSize
	}
	if pageSize > h.cfg.API.MaxPageSize {
		pageSize = h.cfg.API.MaxPageSize
	}
	return page, pageSize
}

func periodParams(r *http.Request) (token string, days int) {
	q := r.URL.Query()
	days, _ = strconv.Atoi(q.Get("days"))
	return q.Get("period"), days
}

// TopArtists handles GET /api/v1/users/{id}/top-artists.
func (h *Handler) TopArtists(w http.ResponseWriter, r *http.Request) {
	userID, err := h.userIDParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	token, days := periodParams(r)

	totals, err := h.charts.GetTopArtists(r.Context(), userID, token, days)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	page, pageSize := h.pageParams(r)
	items, meta, err := aggregate.Page(totals, page, pageSize)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondPage(w, items, meta)
}

// TopGenres handles GET /api/v1/users/{id}/top-genres.
func (h *Handler) TopGenres(w http.ResponseWriter, r *http.Request) {
	userID, err := h.userIDParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	token, days := periodParams(r)

	rollups, err := h.charts.GetTopGenres(r.Context(), userID, token, days)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	page, pageSize := h.pageParams(r)
	items, meta, err := aggregate.Page(rollups, page, pageSize)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondPage(w, items, meta)
}

// GenreArtists handles GET /api/v1/users/{id}/genres/{genre}/artists.
func (h *Handler) GenreArtists(w http.ResponseWriter, r *http.Request) {
	userID, err := h.userIDParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	genreName := chi.URLParam(r, "genre")

	totals, err := h.charts.GetArtistsForGenre(r.Context(), userID, genreName)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	page, pageSize := h.pageParams(r)
	items, meta, err := aggregate.Page(totals, page, pageSize)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondPage(w, items, meta)
}

// WhoKnows handles GET /api/v1/groups/{id}/whoknows. The target is
// named by exactly one of the artist, album, or track parameters.
func (h *Handler) WhoKnows(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "id")
	q := r.URL.Query()

	target, name := models.TargetArtist, q.Get("artist")
	if name == "" {
		if v := q.Get("album"); v != "" {
			target, name = models.TargetAlbum, v
		} else if v := q.Get("track"); v != "" {
			target, name = models.TargetTrack, v
		}
	}
	if name == "" {
		respondError(w, http.StatusBadRequest, "artist, album, or track parameter is required")
		return
	}
	token, days := periodParams(r)
	mode := models.ParseVisibilityMode(q.Get("mode"))

	entries, err := h.charts.GetLeaderboard(r.Context(), groupID, target, name, token, days, mode)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	page, pageSize := h.pageParams(r)
	items, meta, err := aggregate.Page(entries, page, pageSize)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondPage(w, items, meta)
}

// Affinity handles GET /api/v1/affinity.
func (h *Handler) Affinity(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	userA, errA := strconv.Atoi(q.Get("user_a"))
	userB, errB := strconv.Atoi(q.Get("user_b"))
	if errA != nil || errB != nil {
		respondError(w, http.StatusBadRequest, "user_a and user_b parameters are required")
		return
	}

	result, err := h.charts.GetAffinity(r.Context(), userA, userB)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondData(w, result)
}

// ResetCooldowns handles POST /api/v1/admin/cooldowns/reset. With a
// user_id query parameter only that user's cooldown is cleared.
func (h *Handler) ResetCooldowns(w http.ResponseWriter, r *http.Request) {
	cooldown := h.charts.Cooldown()
	if cooldown == nil {
		respondError(w, http.StatusConflict, "throttling is disabled")
		return
	}

	if raw := r.URL.Query().Get("user_id"); raw != "" {
		userID, err := strconv.Atoi(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid user_id")
			return
		}
		cooldown.Forget(userID)
		respondData(w, map[string]any{"cleared": "user", "user_id": userID})
		return
	}

	cooldown.Reset()
	respondData(w, map[string]any{"cleared": "all"})
}
