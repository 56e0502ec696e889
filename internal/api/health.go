// Melographus - Music Listening Analytics for Chat Bots
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/melographus

package api

import (
	"context"
	"net/http"
	"time"
)

// HealthLive reports process liveness.
func (h *Handler) HealthLive(w http.ResponseWriter, _ *http.Request) {
	respondData(w, map[string]string{"status": "alive"})
}

// HealthReady reports readiness: the play store must answer a ping.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if h.ready != nil {
		if err := h.ready(ctx); err != nil {
			respondError(w, http.StatusServiceUnavailable, "database not ready: "+err.Error())
			return
		}
	}
	respondData(w, map[string]string{"status": "ready"})
}
