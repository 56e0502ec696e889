// Melographus - Music Listening Analytics for Chat Bots
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/melographus

// Package period maps symbolic time-period tokens (weekly, monthly,
// alltime, ...) to either a concrete [start, end) range for on-the-fly
// aggregation or a request for the precomputed all-time rollup.
package period

import (
	"errors"
	"strings"
	"time"
)

// ErrInvalidPeriod is returned for an unrecognized period token.
var ErrInvalidPeriod = errors.New("unknown time period")

// Mode selects how play data for a window is obtained.
type Mode int

const (
	// ModeRange aggregates raw plays inside [Start, End).
	ModeRange Mode = iota

	// ModePrecomputed uses the store's precomputed all-time rollup.
	// Scanning a user's full history on every request is wasteful.
	ModePrecomputed
)

// Window is a resolved time window.
type Window struct {
	Mode  Mode
	Start time.Time
	End   time.Time
	// Days is the span of a ModeRange window, for display purposes.
	Days int
}

// tokenDays maps period tokens to their day spans. Tokens mirror the
// compact period list the bot commands accept.
var tokenDays = map[string]int{
	"weekly":     7,
	"week":       7,
	"w":          7,
	"monthly":    30,
	"month":      30,
	"m":          30,
	"quarterly":  90,
	"quarter":    90,
	"q":          90,
	"half":       180,
	"halfyearly": 180,
	"h":          180,
	"yearly":     365,
	"year":       365,
	"y":          365,
}

// allTimeTokens select the precomputed rollup.
var allTimeTokens = map[string]bool{
	"alltime": true,
	"overall": true,
	"all":     true,
	"a":       true,
	"o":       true,
}

// Resolver turns period tokens into windows. The zero value is not
// usable; construct with NewResolver.
type Resolver struct {
	now func() time.Time
}

// NewResolver creates a Resolver using the wall clock.
func NewResolver() *Resolver {
	return &Resolver{now: time.Now}
}

// NewResolverWithClock creates a Resolver with an injectable clock,
// for deterministic tests.
func NewResolverWithClock(now func() time.Time) *Resolver {
	return &Resolver{now: now}
}

// Resolve maps a period token and an optional explicit day count to a
// Window. An explicit days value > 0 overrides the token. An empty
// token defaults to weekly. Unknown tokens return ErrInvalidPeriod.
func (r *Resolver) Resolve(token string, days int) (Window, error) {
	if days > 0 {
		return r.rangeWindow(days), nil
	}

	token = strings.ToLower(strings.TrimSpace(token))
	if token == "" {
		token = "weekly"
	}

	if allTimeTokens[token] {
		return Window{Mode: ModePrecomputed}, nil
	}

	span, ok := tokenDays[token]
	if !ok {
		return Window{}, ErrInvalidPeriod
	}
	return r.rangeWindow(span), nil
}

func (r *Resolver) rangeWindow(days int) Window {
	end := r.now()
	return Window{
		Mode:  ModeRange,
		Start: end.AddDate(0, 0, -days),
		End:   end,
		Days:  days,
	}
}
