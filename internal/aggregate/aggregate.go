// Melographus - Music Listening Analytics for Chat Bots
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/melographus

// Package aggregate computes ranked artist totals from raw play events
// and paginates result lists for display.
package aggregate

import (
	"errors"
	"sort"

	"github.com/tomtom215/melographus/internal/models"
)

// ErrInvalidPageSize is returned when a pagination request asks for a
// non-positive page size.
var ErrInvalidPageSize = errors.New("page size must be positive")

// TopArtists folds play events into per-artist totals, ranked by
// playcount descending. Artist names are normalized before counting, so
// "Radiohead" and "radiohead " fold into one row. Ties rank
// alphabetically on the normalized name.
func TopArtists(events []models.PlayEvent) []models.ArtistTotal {
	counts := make(map[string]int, len(events))
	for _, ev := range events {
		name := models.NormalizeArtist(ev.ArtistName)
		if name == "" {
			continue
		}
		counts[name]++
	}

	totals := make([]models.ArtistTotal, 0, len(counts))
	for name, count := range counts {
		totals = append(totals, models.ArtistTotal{ArtistName: name, Playcount: count})
	}

	sort.Slice(totals, func(i, j int) bool {
		if totals[i].Playcount != totals[j].Playcount {
			return totals[i].Playcount > totals[j].Playcount
		}
		return totals[i].ArtistName < totals[j].ArtistName
	})
	return totals
}

// Paginate splits items into fixed-size pages. The final page holds the
// remainder. An empty input yields no pages.
func Paginate[T any](items []T, pageSize int) ([][]T, error) {
	if pageSize < 1 {
		return nil, ErrInvalidPageSize
	}

	if len(items) == 0 {
		return nil, nil
	}

	pages := make([][]T, 0, (len(items)+pageSize-1)/pageSize)
	for start := 0; start < len(items); start += pageSize {
		end := start + pageSize
		if end > len(items) {
			end = len(items)
		}
		pages = append(pages, items[start:end])
	}
	return pages, nil
}

// Page extracts a single 1-based page from items, along with paging
// metadata. A page past the end yields an empty slice.
func Page[T any](items []T, page, pageSize int) ([]T, models.PageMeta, error) {
	if pageSize < 1 {
		return nil, models.PageMeta{}, ErrInvalidPageSize
	}
	if page < 1 {
		page = 1
	}

	total := len(items)
	totalPages := (total + pageSize - 1) / pageSize
	meta := models.PageMeta{
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		TotalItems: total,
	}

	start := (page - 1) * pageSize
	if start >= total {
		return []T{}, meta, nil
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return items[start:end], meta, nil
}
