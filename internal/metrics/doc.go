// Melographus - Music Listening Analytics for Chat Bots
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/melographus

// Package metrics defines the Prometheus instrumentation for the
// service: genre cache efficiency, metadata provider latency and
// breaker state, DuckDB query performance, and API throughput.
package metrics
