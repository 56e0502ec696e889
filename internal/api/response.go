// Melographus - Music Listening Analytics for Chat Bots
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/melographus

package api

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tomtom215/melographus/internal/logging"
	"github.com/tomtom215/melographus/internal/models"
)

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, payload *models.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Err(err).Msg("Failed to encode API response")
	}
}

// respondData writes a successful response.
func respondData(w http.ResponseWriter, data interface{}) {
	respondJSON(w, http.StatusOK, &models.APIResponse{Success: true, Data: data})
}

// respondPage writes a successful response with paging metadata.
func respondPage(w http.ResponseWriter, data interface{}, meta models.PageMeta) {
	respondJSON(w, http.StatusOK, &models.APIResponse{Success: true, Data: data, Meta: &meta})
}

// respondError writes an error response.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, &models.APIResponse{Success: false, Error: message})
}
