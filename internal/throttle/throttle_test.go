// Melographus - Music Listening Analytics for Chat Bots
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/melographus

package throttle

import (
	"testing"
	"time"
)

func newTestCooldown(window time.Duration) (*Cooldown, *time.Time) {
	c := New(window)
	current := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return current }
	return c, &current
}

func TestAllowThenDeny(t *testing.T) {
	c, clock := newTestCooldown(5 * time.Second)

	ok, _ := c.Allow(1)
	if !ok {
		t.Fatal("first request should be allowed")
	}

	*clock = clock.Add(2 * time.Second)
	ok, remaining := c.Allow(1)
	if ok {
		t.Fatal("request inside the window should be denied")
	}
	if remaining != 3*time.Second {
		t.Errorf("remaining = %s, want 3s", remaining)
	}
}

func TestAllowAfterWindow(t *testing.T) {
	c, clock := newTestCooldown(5 * time.Second)

	c.Allow(1)
	*clock = clock.Add(5 * time.Second)
	if ok, _ := c.Allow(1); !ok {
		t.Error("request at window expiry should be allowed")
	}
}

func TestUsersAreIndependent(t *testing.T) {
	c, _ := newTestCooldown(5 * time.Second)

	c.Allow(1)
	if ok, _ := c.Allow(2); !ok {
		t.Error("a different user should not share the cooldown")
	}
}

func TestDenialDoesNotExtendCooldown(t *testing.T) {
	c, clock := newTestCooldown(5 * time.Second)

	c.Allow(1)
	*clock = clock.Add(4 * time.Second)
	c.Allow(1) // denied
	*clock = clock.Add(time.Second)
	if ok, _ := c.Allow(1); !ok {
		t.Error("denied attempts must not restart the window")
	}
}

func TestForgetAndReset(t *testing.T) {
	c, _ := newTestCooldown(time.Minute)

	c.Allow(1)
	c.Allow(2)

	c.Forget(1)
	if ok, _ := c.Allow(1); !ok {
		t.Error("Forget should clear the user's cooldown")
	}
	if ok, _ := c.Allow(2); ok {
		t.Error("Forget of one user must not affect others")
	}

	c.Reset()
	if ok, _ := c.Allow(2); !ok {
		t.Error("Reset should clear every cooldown")
	}
}

func TestZeroWindowDisables(t *testing.T) {
	c, _ := newTestCooldown(0)

	for i := 0; i < 5; i++ {
		if ok, _ := c.Allow(1); !ok {
			t.Fatal("zero window should never deny")
		}
	}
}
