// Melographus - Music Listening Analytics for Chat Bots
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/melographus

// Package config loads layered configuration with Koanf v2.
//
// Precedence, lowest to highest: built-in defaults, an optional YAML
// config file, environment variables. Environment variables are mapped
// through an explicit table (see envTransformFunc) so unrelated
// variables cannot leak into the configuration.
//
// Policy thresholds that were hard-coded in the original bot (minimum
// top-artist samples for genre commands, default page size, cooldown
// window) are configuration here, since the original values look like
// tuned data rather than designed invariants.
package config
