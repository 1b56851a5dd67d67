// Alpenpath - Immigration Consulting Website and Request Analytics
// Copyright 2026 Alpenpath Consulting
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/alpenpath/alpenpath

package referrer

import (
	"fmt"
	"sort"
)

// CategoryEntry is one distinct referrer within a category breakdown.
type CategoryEntry struct {
	Referrer   string `json:"referrer"`
	Domain     string `json:"domain"`
	Platform   string `json:"platform"`
	Count      int    `json:"count"`
	Percentage string `json:"percentage"`
}

// QueryEntry is one extracted search query with its originating engine.
type QueryEntry struct {
	Query      string `json:"query"`
	Engine     string `json:"engine"`
	Count      int    `json:"count"`
	Percentage string `json:"percentage"`
}

// Category aggregates all referrers of one type.
type Category struct {
	Count      int             `json:"count"`
	Percentage string          `json:"percentage"`
	Referrers  []CategoryEntry `json:"referrers"`
	Queries    []QueryEntry    `json:"queries,omitempty"`
}

// Categories is the full six-way breakdown of a referrer count map.
type Categories struct {
	Direct   Category `json:"direct"`
	Search   Category `json:"search"`
	Social   Category `json:"social"`
	Content  Category `json:"content"`
	Email    Category `json:"email"`
	External Category `json:"external"`
}

// ByType returns a pointer to the category bucket for t.
func (c *Categories) ByType(t Type) *Category {
	switch t {
	case TypeSearch:
		return &c.Search
	case TypeSocial:
		return &c.Social
	case TypeContent:
		return &c.Content
	case TypeEmail:
		return &c.Email
	case TypeExternal:
		return &c.External
	default:
		return &c.Direct
	}
}

// Categorize buckets every distinct referrer string in counts into one of
// the six categories, sums per-category counts, and annotates everything
// with percentages of the grand total. Referrer lists and search queries
// are sorted by count descending; ordering among equal counts is
// unspecified. An empty input yields zero counts and "0.0%" throughout.
func Categorize(counts map[string]int) Categories {
	var categories Categories

	total := 0
	for _, count := range counts {
		total += count
	}

	for raw, count := range counts {
		parsed := Parse(raw)
		percentage := formatPercentage(count, total)

		bucket := categories.ByType(parsed.Type)
		bucket.Count += count
		bucket.Referrers = append(bucket.Referrers, CategoryEntry{
			Referrer:   raw,
			Domain:     parsed.Domain,
			Platform:   parsed.Platform,
			Count:      count,
			Percentage: percentage,
		})

		if parsed.SearchQuery != "" {
			categories.Search.Queries = append(categories.Search.Queries, QueryEntry{
				Query:      parsed.SearchQuery,
				Engine:     parsed.Platform,
				Count:      count,
				Percentage: percentage,
			})
		}
	}

	for _, t := range Types {
		bucket := categories.ByType(t)
		bucket.Percentage = formatPercentage(bucket.Count, total)
		sort.SliceStable(bucket.Referrers, func(i, j int) bool {
			return bucket.Referrers[i].Count > bucket.Referrers[j].Count
		})
	}
	sort.SliceStable(categories.Search.Queries, func(i, j int) bool {
		return categories.Search.Queries[i].Count > categories.Search.Queries[j].Count
	})

	return categories
}

// formatPercentage renders count/total as "12.3%". A zero total renders
// as "0.0%" rather than propagating a division by zero.
func formatPercentage(count, total int) string {
	if total == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(count)/float64(total)*100)
}
