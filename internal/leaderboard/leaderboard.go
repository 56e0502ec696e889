// Melographus - Music Listening Analytics for Chat Bots
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/melographus

// Package leaderboard ranks group members by their playcount for a
// target artist, honoring each member's privacy level.
package leaderboard

import (
	"sort"

	"github.com/tomtom215/melographus/internal/models"
)

// RedactedName replaces the display name of private members in redact
// mode.
const RedactedName = "Private user"

// Candidate pairs a group member with their playcount for the target.
type Candidate struct {
	Member    models.GroupMember
	Playcount int
}

// Build ranks candidates into leaderboard entries. Members with zero
// plays are dropped. Ranking is playcount descending; ties go to the
// earlier registration date, then the lower user ID, so rankings are
// stable across rebuilds.
//
// Private members are handled per mode: VisibilityExclude omits them,
// VisibilityRedact keeps their slot with the name replaced.
func Build(candidates []Candidate, mode models.VisibilityMode) []models.LeaderboardEntry {
	entries := make([]models.LeaderboardEntry, 0, len(candidates))
	for _, c := range candidates {
		if c.Playcount <= 0 {
			continue
		}

		private := c.Member.PrivacyLevel == models.PrivacyPrivate
		if private && mode == models.VisibilityExclude {
			continue
		}

		entry := models.LeaderboardEntry{
			UserID:         c.Member.UserID,
			ExternalUserID: c.Member.ExternalUserID,
			UserName:       c.Member.UserName,
			Playcount:      c.Playcount,
			PrivacyLevel:   c.Member.PrivacyLevel,
			RegisteredAt:   c.Member.RegisteredAt,
		}
		if private && mode == models.VisibilityRedact {
			entry.Redacted = true
			entry.UserName = RedactedName
			entry.ExternalUserID = ""
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Playcount != entries[j].Playcount {
			return entries[i].Playcount > entries[j].Playcount
		}
		if !entries[i].RegisteredAt.Equal(entries[j].RegisteredAt) {
			return entries[i].RegisteredAt.Before(entries[j].RegisteredAt)
		}
		return entries[i].UserID < entries[j].UserID
	})
	return entries
}
