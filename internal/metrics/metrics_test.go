// Melographus - Music Listening Analytics for Chat Bots
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/melographus

package metrics

import (
	"errors"
	"testing"
	"time"
)

func TestRecordHelpers(t *testing.T) {
	// Registration happens at package init; these must not panic on
	// repeated label combinations.
	RecordDBQuery("select", "plays", 5*time.Millisecond)
	RecordDBQuery("select", "plays", 7*time.Millisecond)
	RecordDBError("insert", "plays")
	RecordAPIRequest("GET", "/api/v1/users/{id}/top-artists", 200, time.Millisecond)
	RecordMetadataFetch("lastfm", 20*time.Millisecond, nil)
	RecordMetadataFetch("lastfm", 20*time.Millisecond, errors.New("timeout"))

	GenreCacheHits.Inc()
	GenreCacheMisses.Inc()
	GenreCacheShared.Inc()
	GenreCacheStaleServed.Inc()
	CircuitBreakerState.WithLabelValues("lastfm").Set(2)
	CircuitBreakerTrips.WithLabelValues("lastfm").Inc()
	CooldownRejections.Inc()
}
