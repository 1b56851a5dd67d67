// Alpenpath - Immigration Consulting Website and Request Analytics
// Copyright 2026 Alpenpath Consulting
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/alpenpath/alpenpath

package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/alpenpath/alpenpath/internal/metrics"
	"github.com/alpenpath/alpenpath/internal/referrer"
)

// Report formats. An unrecognized format falls back to FormatDetailed
// rather than failing the request.
const (
	FormatDetailed = "detailed"
	FormatSummary  = "summary"
	FormatMinimal  = "minimal"
)

// Limit bounds for ranked lists.
const (
	MinLimit     = 1
	MaxLimit     = 50
	DefaultLimit = 10
)

// dailyStatsWindow caps the dailyStats section to the most recent days.
const dailyStatsWindow = 30

// Options selects the report shape.
type Options struct {
	// Format is one of FormatDetailed, FormatSummary, FormatMinimal.
	Format string

	// Limit caps ranked lists in the detailed format. It is clamped to
	// [MinLimit, MaxLimit]; a zero value clamps to MinLimit, so callers
	// that want the default must pass DefaultLimit explicitly.
	Limit int
}

// Report is the generated analytics document. Sections not present in the
// selected format are omitted from the JSON output.
type Report struct {
	Metadata            ReportMetadata               `json:"metadata"`
	Summary             Summary                      `json:"summary"`
	TopBrowsers         []BrowserEntry               `json:"topBrowsers,omitempty"`
	TopOperatingSystems []OSEntry                    `json:"topOperatingSystems,omitempty"`
	TopPages            []PageEntry                  `json:"topPages,omitempty"`
	TopReferrers        []ReferrerEntry              `json:"topReferrers,omitempty"`
	ReferrerCategories  map[string]referrer.Category `json:"referrerCategories,omitempty"`
	HourlyDistribution  []HourlyEntry                `json:"hourlyDistribution,omitempty"`
	DailyStats          []DailyEntry                 `json:"dailyStats,omitempty"`
}

type ReportMetadata struct {
	GeneratedAt time.Time `json:"generatedAt"`
	Format      string    `json:"format"`
	Version     string    `json:"version"`
}

type Summary struct {
	TotalRequests             int       `json:"totalRequests"`
	UniqueVisitors            int       `json:"uniqueVisitors"`
	LastUpdated               time.Time `json:"lastUpdated"`
	AverageRequestsPerVisitor string    `json:"averageRequestsPerVisitor"`
}

type BrowserEntry struct {
	Browser    string `json:"browser"`
	Count      int    `json:"count"`
	Percentage string `json:"percentage"`
}

type OSEntry struct {
	OS         string `json:"os"`
	Count      int    `json:"count"`
	Percentage string `json:"percentage"`
}

type PageEntry struct {
	Page       string `json:"page"`
	Count      int    `json:"count"`
	Percentage string `json:"percentage"`
}

type ReferrerEntry struct {
	Referrer   string `json:"referrer"`
	Domain     string `json:"domain"`
	Category   string `json:"category"`
	Count      int    `json:"count"`
	Percentage string `json:"percentage"`
}

type HourlyEntry struct {
	Hour       int    `json:"hour"`
	Time       string `json:"time"`
	Count      int    `json:"count"`
	Percentage string `json:"percentage"`
}

type DailyEntry struct {
	Date          string `json:"date"`
	FormattedDate string `json:"formattedDate"`
	Count         int    `json:"count"`
	Percentage    string `json:"percentage"`
}

// BuildReport persists the current aggregates, then builds a report from a
// snapshot. The pre-build save means the on-disk files always reflect at
// least the state a served report was computed from; a save failure is
// logged but does not fail the report.
func (s *Store) BuildReport(opts Options) *Report {
	if err := s.Save(); err != nil {
		s.log.Warn().Err(err).Msg("pre-report analytics save failed")
	}

	format := normalizeFormat(opts.Format)
	limit := clampLimit(opts.Limit)
	snap := s.Snapshot()

	report := &Report{
		Metadata: ReportMetadata{
			GeneratedAt: time.Now(),
			Format:      format,
			Version:     documentVersion,
		},
		Summary: buildSummary(snap),
	}

	switch format {
	case FormatMinimal:
		n := min(5, limit)
		report.TopBrowsers = topBrowsers(snap, n)
		report.TopPages = topPages(snap, n)
		report.ReferrerCategories = categoriesView(snap.Referrers, false)
	case FormatSummary:
		n := min(3, limit)
		report.TopBrowsers = topBrowsers(snap, n)
		report.TopOperatingSystems = topOperatingSystems(snap, n)
		report.TopPages = topPages(snap, n)
		report.ReferrerCategories = categoriesView(snap.Referrers, true)
	default:
		report.TopBrowsers = topBrowsers(snap, limit)
		report.TopOperatingSystems = topOperatingSystems(snap, limit)
		report.TopPages = topPages(snap, limit)
		report.TopReferrers = topReferrers(snap, limit)
		report.ReferrerCategories = categoriesView(snap.Referrers, true)
		report.HourlyDistribution = hourlyDistribution(snap)
		report.DailyStats = dailyStats(snap)
	}

	metrics.RecordReportBuilt(format)
	return report
}

func normalizeFormat(format string) string {
	switch format {
	case FormatSummary, FormatMinimal:
		return format
	default:
		return FormatDetailed
	}
}

func clampLimit(limit int) int {
	if limit < MinLimit {
		return MinLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

func buildSummary(snap Counters) Summary {
	visitors := len(snap.UniqueIPs)
	average := "0.00"
	if visitors > 0 {
		average = fmt.Sprintf("%.2f", float64(snap.TotalRequests)/float64(visitors))
	}
	return Summary{
		TotalRequests:             snap.TotalRequests,
		UniqueVisitors:            visitors,
		LastUpdated:               snap.LastUpdated,
		AverageRequestsPerVisitor: average,
	}
}

// rankedPair is an intermediate label/count pair used to order the labeled
// dimensions before shaping them into their typed entries.
type rankedPair struct {
	label string
	count int
}

func rankCounts(counts map[string]int, limit int) []rankedPair {
	pairs := make([]rankedPair, 0, len(counts))
	for label, count := range counts {
		pairs = append(pairs, rankedPair{label: label, count: count})
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].count > pairs[j].count
	})
	if len(pairs) > limit {
		pairs = pairs[:limit]
	}
	return pairs
}

func topBrowsers(snap Counters, limit int) []BrowserEntry {
	pairs := rankCounts(snap.Browsers, limit)
	out := make([]BrowserEntry, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, BrowserEntry{
			Browser:    p.label,
			Count:      p.count,
			Percentage: percentage(p.count, snap.TotalRequests),
		})
	}
	return out
}

func topOperatingSystems(snap Counters, limit int) []OSEntry {
	pairs := rankCounts(snap.OperatingSystems, limit)
	out := make([]OSEntry, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, OSEntry{
			OS:         p.label,
			Count:      p.count,
			Percentage: percentage(p.count, snap.TotalRequests),
		})
	}
	return out
}

func topPages(snap Counters, limit int) []PageEntry {
	pairs := rankCounts(snap.Pages, limit)
	out := make([]PageEntry, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, PageEntry{
			Page:       p.label,
			Count:      p.count,
			Percentage: percentage(p.count, snap.TotalRequests),
		})
	}
	return out
}

func topReferrers(snap Counters, limit int) []ReferrerEntry {
	pairs := rankCounts(snap.Referrers, limit)
	out := make([]ReferrerEntry, 0, len(pairs))
	for _, p := range pairs {
		parsed := referrer.Parse(p.label)
		out = append(out, ReferrerEntry{
			Referrer:   p.label,
			Domain:     parsed.Domain,
			Category:   parsed.Category,
			Count:      p.count,
			Percentage: percentage(p.count, snap.TotalRequests),
		})
	}
	return out
}

// categoriesView shapes classified referrer totals for a report. The full
// view carries all six categories; the reduced view used by the minimal
// format keeps only direct, search, and social.
func categoriesView(counts map[string]int, full bool) map[string]referrer.Category {
	cats := referrer.Categorize(counts)
	types := referrer.Types
	if !full {
		types = []referrer.Type{referrer.TypeDirect, referrer.TypeSearch, referrer.TypeSocial}
	}
	out := make(map[string]referrer.Category, len(types))
	for _, t := range types {
		out[string(t)] = *cats.ByType(t)
	}
	return out
}

// hourlyDistribution lists only hours that saw at least one request,
// ascending.
func hourlyDistribution(snap Counters) []HourlyEntry {
	out := make([]HourlyEntry, 0, len(snap.HourlyStats))
	for hour := 0; hour < 24; hour++ {
		count := snap.HourlyStats[hour]
		if count == 0 {
			continue
		}
		out = append(out, HourlyEntry{
			Hour:       hour,
			Time:       formatHour(hour),
			Count:      count,
			Percentage: percentage(count, snap.TotalRequests),
		})
	}
	return out
}

func dailyStats(snap Counters) []DailyEntry {
	dates := make([]string, 0, len(snap.DailyStats))
	for date := range snap.DailyStats {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	if len(dates) > dailyStatsWindow {
		dates = dates[len(dates)-dailyStatsWindow:]
	}
	out := make([]DailyEntry, 0, len(dates))
	for _, date := range dates {
		count := snap.DailyStats[date]
		out = append(out, DailyEntry{
			Date:          date,
			FormattedDate: formatDate(date),
			Count:         count,
			Percentage:    percentage(count, snap.TotalRequests),
		})
	}
	return out
}

func percentage(count, total int) string {
	if total == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(count)/float64(total)*100)
}

// formatHour renders a 24-hour bucket index as a 12-hour clock label.
func formatHour(hour int) string {
	period := "AM"
	display := hour
	switch {
	case hour == 0:
		display = 12
	case hour == 12:
		period = "PM"
	case hour > 12:
		display = hour - 12
		period = "PM"
	}
	return fmt.Sprintf("%d:00 %s", display, period)
}

// formatDate renders a date key as a long-form label, passing the raw key
// through when it does not parse.
func formatDate(date string) string {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return date
	}
	return t.Format("Monday, January 2, 2006")
}
