// Melographus - Music Listening Analytics for Chat Bots
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/melographus

// Package affinity scores how similar two users' listening habits are
// on a 0-100 scale.
package affinity

import (
	"github.com/tomtom215/melographus/internal/models"
)

// BuildVector turns a user's artist totals into a weight vector. Each
// artist's weight is its playcount divided by the user's highest
// playcount, so a casual listener and a heavy listener with the same
// taste produce the same vector.
func BuildVector(userID int, totals []models.ArtistTotal) models.AffinityVector {
	vec := models.AffinityVector{
		UserID:  userID,
		Weights: make(map[string]float64, len(totals)),
	}

	max := 0
	for _, t := range totals {
		if t.Playcount > max {
			max = t.Playcount
		}
	}
	if max == 0 {
		return vec
	}

	for _, t := range totals {
		if t.Playcount <= 0 {
			continue
		}
		vec.Weights[t.ArtistName] = float64(t.Playcount) / float64(max)
	}
	return vec
}

// Score computes the affinity between two weight vectors. For each
// artist in the union of both vectors the overlap is the smaller weight
// divided by the larger; the score is the average overlap scaled to
// 0-100. The measure is symmetric and a vector scores 100 against
// itself. Two users with no artists in common, or with no listening
// data at all, score 0.
func Score(a, b models.AffinityVector) float64 {
	union := make(map[string]struct{}, len(a.Weights)+len(b.Weights))
	for artist := range a.Weights {
		union[artist] = struct{}{}
	}
	for artist := range b.Weights {
		union[artist] = struct{}{}
	}
	if len(union) == 0 {
		return 0
	}

	var sum float64
	for artist := range union {
		wa := a.Weights[artist]
		wb := b.Weights[artist]
		if wa == 0 || wb == 0 {
			continue
		}
		if wa < wb {
			sum += wa / wb
		} else {
			sum += wb / wa
		}
	}
	return sum / float64(len(union)) * 100
}
