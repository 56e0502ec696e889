// Melographus - Music Listening Analytics for Chat Bots
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/melographus

package playstore

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/melographus/internal/models"
)

// UpsertMember adds a user to a group or updates their details.
func (s *Store) UpsertMember(ctx context.Context, groupID string, m models.GroupMember) (err error) {
	start := time.Now()
	defer func() { observe("upsert", "group_members", start, err) }()

	_, err = s.conn.ExecContext(ctx,
		`INSERT INTO group_members (group_id, user_id, external_user_id, user_name, privacy_level, registered_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (group_id, user_id) DO UPDATE SET
			external_user_id = excluded.external_user_id,
			user_name = excluded.user_name,
			privacy_level = excluded.privacy_level,
			registered_at = excluded.registered_at`,
		groupID, m.UserID, m.ExternalUserID, m.UserName, int(m.PrivacyLevel), m.RegisteredAt)
	if err != nil {
		return fmt.Errorf("upsert group member: %w", err)
	}
	return nil
}

// RemoveMember drops a user from a group.
func (s *Store) RemoveMember(ctx context.Context, groupID string, userID int) (err error) {
	start := time.Now()
	defer func() { observe("delete", "group_members", start, err) }()

	_, err = s.conn.ExecContext(ctx,
		`DELETE FROM group_members WHERE group_id = ? AND user_id = ?`, groupID, userID)
	if err != nil {
		return fmt.Errorf("remove group member: %w", err)
	}
	return nil
}

// Members lists the members of a group.
func (s *Store) Members(ctx context.Context, groupID string) (members []models.GroupMember, err error) {
	start := time.Now()
	defer func() { observe("select", "group_members", start, err) }()

	rows, err := s.conn.QueryContext(ctx,
		`SELECT user_id, external_user_id, user_name, privacy_level, registered_at
		 FROM group_members
		 WHERE group_id = ?
		 ORDER BY user_id`,
		groupID)
	if err != nil {
		return nil, fmt.Errorf("query group members: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var m models.GroupMember
		var level int
		if err := rows.Scan(&m.UserID, &m.ExternalUserID, &m.UserName, &level, &m.RegisteredAt); err != nil {
			return nil, fmt.Errorf("scan group member: %w", err)
		}
		m.PrivacyLevel = models.PrivacyLevel(level)
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate group members: %w", err)
	}
	return members, nil
}
