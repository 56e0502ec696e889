// Melographus - Music Listening Analytics for Chat Bots
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/melographus

package models

import "time"

// PrivacyLevel controls whether a user may appear in cross-user output.
// It constrains visibility only; aggregation math is never affected.
type PrivacyLevel int

const (
	// PrivacyPrivate hides the user from leaderboards.
	PrivacyPrivate PrivacyLevel = iota

	// PrivacyPublic allows the user to appear in leaderboards.
	PrivacyPublic
)

// String returns the privacy level as a lowercase label.
func (p PrivacyLevel) String() string {
	switch p {
	case PrivacyPrivate:
		return "private"
	case PrivacyPublic:
		return "public"
	default:
		return "unknown"
	}
}

// VisibilityMode selects how non-public users are treated when building
// a leaderboard.
type VisibilityMode int

const (
	// VisibilityExclude omits non-public users from the output entirely.
	VisibilityExclude VisibilityMode = iota

	// VisibilityRedact keeps the rank slot but replaces identifying
	// fields with a redacted placeholder.
	VisibilityRedact
)

// ParseVisibilityMode maps a mode label to a VisibilityMode.
// Unrecognized labels default to VisibilityExclude, the safer policy.
func ParseVisibilityMode(s string) VisibilityMode {
	if s == "redact" {
		return VisibilityRedact
	}
	return VisibilityExclude
}

// TargetType selects which play attribute a leaderboard target names.
type TargetType int

const (
	// TargetArtist counts plays of an artist.
	TargetArtist TargetType = iota

	// TargetAlbum counts plays of an album.
	TargetAlbum

	// TargetTrack counts plays of a track.
	TargetTrack
)

// String returns the target type as a lowercase label.
func (t TargetType) String() string {
	switch t {
	case TargetAlbum:
		return "album"
	case TargetTrack:
		return "track"
	default:
		return "artist"
	}
}

// GroupMember describes one candidate user inside a group, as supplied
// by the group directory.
type GroupMember struct {
	UserID         int          `json:"user_id"`
	ExternalUserID string       `json:"external_user_id"`
	UserName       string       `json:"user_name"`
	PrivacyLevel   PrivacyLevel `json:"privacy_level"`
	RegisteredAt   time.Time    `json:"registered_at"`
}

// LeaderboardEntry is one ranked row of a "who knows" leaderboard.
type LeaderboardEntry struct {
	UserID         int          `json:"user_id"`
	ExternalUserID string       `json:"external_user_id,omitempty"`
	UserName       string       `json:"user_name"`
	Playcount      int          `json:"playcount"`
	PrivacyLevel   PrivacyLevel `json:"privacy_level"`
	RegisteredAt   time.Time    `json:"registered_at"`
	Redacted       bool         `json:"redacted,omitempty"`
}
