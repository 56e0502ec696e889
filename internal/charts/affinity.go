// Melographus - Music Listening Analytics for Chat Bots
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/melographus

package charts

import (
	"context"

	"github.com/tomtom215/melographus/internal/affinity"
)

// AffinityResult reports the taste overlap between two users.
type AffinityResult struct {
	UserA        int     `json:"user_a"`
	UserB        int     `json:"user_b"`
	Score        float64 `json:"score"`
	SharedCount  int     `json:"shared_artists"`
	ArtistsCount int     `json:"compared_artists"`
}

// GetAffinity scores two users' all-time listening overlap on a 0-100
// scale. Users with no listening data score 0.
func (s *Service) GetAffinity(ctx context.Context, userA, userB int) (*AffinityResult, error) {
	if err := s.checkCooldown(userA); err != nil {
		return nil, err
	}

	totalsA, err := s.plays.TopArtistsAllTime(ctx, userA)
	if err != nil {
		return nil, err
	}
	totalsB, err := s.plays.TopArtistsAllTime(ctx, userB)
	if err != nil {
		return nil, err
	}

	vecA := affinity.BuildVector(userA, totalsA)
	vecB := affinity.BuildVector(userB, totalsB)

	shared := 0
	union := len(vecB.Weights)
	for artist := range vecA.Weights {
		if _, ok := vecB.Weights[artist]; ok {
			shared++
		} else {
			union++
		}
	}

	return &AffinityResult{
		UserA:        userA,
		UserB:        userB,
		Score:        affinity.Score(vecA, vecB),
		SharedCount:  shared,
		ArtistsCount: union,
	}, nil
}
