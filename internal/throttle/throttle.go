// Melographus - Music Listening Analytics for Chat Bots
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/melographus

// Package throttle enforces a per-user cooldown between expensive
// chart requests.
package throttle

import (
	"sync"
	"time"

	"github.com/tomtom215/melographus/internal/metrics"
)

// Cooldown tracks the last accepted request per user. The zero value is
// not usable; construct with New.
type Cooldown struct {
	window time.Duration

	mu   sync.Mutex
	last map[int]time.Time

	now func() time.Time
}

// New creates a Cooldown with the given window. A window of zero
// disables throttling.
func New(window time.Duration) *Cooldown {
	return &Cooldown{
		window: window,
		last:   make(map[int]time.Time),
		now:    time.Now,
	}
}

// Allow reports whether the user may issue a request now. An allowed
// call starts the user's cooldown; a denied call returns the time left
// and does not extend it.
func (c *Cooldown) Allow(userID int) (bool, time.Duration) {
	if c.window <= 0 {
		return true, 0
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if last, ok := c.last[userID]; ok {
		elapsed := now.Sub(last)
		if elapsed < c.window {
			metrics.CooldownRejections.Inc()
			return false, c.window - elapsed
		}
	}
	c.last[userID] = now
	return true, 0
}

// Forget clears the cooldown for one user.
func (c *Cooldown) Forget(userID int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.last, userID)
}

// Reset clears all cooldowns.
func (c *Cooldown) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.last = make(map[int]time.Time)
}
