// Alpenpath - Immigration Consulting Website and Request Analytics
// Copyright 2026 Alpenpath Consulting
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/alpenpath/alpenpath

package analytics

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	json "github.com/goccy/go-json"

	"github.com/alpenpath/alpenpath/internal/metrics"
)

// documentVersion is stamped into the metadata envelope of saved files.
const documentVersion = "1.0.0"

// document is the wrapped on-disk form of the cumulative aggregate.
// Load also tolerates a bare dataDocument with no envelope, which is the
// shape earlier deployments wrote.
type document struct {
	Metadata documentMetadata `json:"metadata"`
	Data     *dataDocument    `json:"data"`
}

type documentMetadata struct {
	Version        string    `json:"version"`
	LastUpdated    time.Time `json:"lastUpdated"`
	TotalRecords   int       `json:"totalRecords"`
	UniqueVisitors int       `json:"uniqueVisitors"`
}

// dataDocument mirrors Counters with the unique-client set flattened to
// an array so the file stays a plain JSON value.
type dataDocument struct {
	TotalRequests    int            `json:"totalRequests"`
	UniqueIPs        []string       `json:"uniqueIPs"`
	Browsers         map[string]int `json:"browsers"`
	OperatingSystems map[string]int `json:"operatingSystems"`
	Referrers        map[string]int `json:"referrers"`
	Pages            map[string]int `json:"pages"`
	HourlyStats      map[int]int    `json:"hourlyStats"`
	DailyStats       map[string]int `json:"dailyStats"`
	LastUpdated      time.Time      `json:"lastUpdated"`
}

// dailyDocument is an older wrapped form of the per-day buckets, still
// accepted on read. Writes emit the bare date-keyed map.
type dailyDocument struct {
	Metadata documentMetadata            `json:"metadata"`
	Data     map[string]*dayDataDocument `json:"data"`
}

type dayDataDocument struct {
	TotalRequests    int            `json:"totalRequests"`
	UniqueIPs        []string       `json:"uniqueIPs"`
	Browsers         map[string]int `json:"browsers"`
	OperatingSystems map[string]int `json:"operatingSystems"`
	Pages            map[string]int `json:"pages"`
	HourlyStats      map[int]int    `json:"hourlyStats"`
}

// Load hydrates the store from its configured files. Missing or corrupt
// files are logged and skipped; the store keeps whatever state it already
// has. Load never fails the process: analytics is best-effort by design
// of the tracking path, and that extends to startup.
func (s *Store) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadCumulativeLocked()
	s.loadDailyLocked()
}

func (s *Store) loadCumulativeLocked() {
	raw, err := os.ReadFile(s.cfg.DataFile)
	if err != nil {
		if os.IsNotExist(err) {
			s.log.Info().Str("path", s.cfg.DataFile).Msg("no analytics file, starting fresh")
		} else {
			s.log.Warn().Err(err).Str("path", s.cfg.DataFile).Msg("failed to read analytics file")
		}
		return
	}

	data, err := decodeCumulative(raw)
	if err != nil {
		s.log.Warn().Err(err).Str("path", s.cfg.DataFile).Msg("failed to parse analytics file")
		return
	}

	s.lifetime = data.toCounters()
	s.log.Info().
		Int("total_requests", s.lifetime.TotalRequests).
		Int("unique_visitors", len(s.lifetime.UniqueIPs)).
		Msg("loaded analytics data")
}

func (s *Store) loadDailyLocked() {
	raw, err := os.ReadFile(s.cfg.DailyFile)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn().Err(err).Str("path", s.cfg.DailyFile).Msg("failed to read daily analytics file")
		}
		return
	}

	days, err := decodeDaily(raw)
	if err != nil {
		s.log.Warn().Err(err).Str("path", s.cfg.DailyFile).Msg("failed to parse daily analytics file")
		return
	}

	s.daily = make(map[string]*DayCounters, len(days))
	for date, day := range days {
		if day == nil {
			continue
		}
		s.daily[date] = day.toDayCounters()
	}
	s.log.Info().Int("days", len(s.daily)).Msg("loaded daily analytics data")
}

// decodeCumulative accepts both the wrapped {metadata,data} envelope and a
// bare data document.
func decodeCumulative(raw []byte) (*dataDocument, error) {
	var wrapped document
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Data != nil {
		return wrapped.Data, nil
	}
	var bare dataDocument
	if err := json.Unmarshal(raw, &bare); err != nil {
		return nil, err
	}
	return &bare, nil
}

func decodeDaily(raw []byte) (map[string]*dayDataDocument, error) {
	var wrapped dailyDocument
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Data != nil {
		return wrapped.Data, nil
	}
	var bare map[string]*dayDataDocument
	if err := json.Unmarshal(raw, &bare); err != nil {
		return nil, err
	}
	return bare, nil
}

// Save writes both aggregates to disk. Errors are logged and returned so
// shutdown can report them; request-path callers ignore the result.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked()
}

func (s *Store) saveLocked() error {
	start := time.Now()
	err := s.writeCumulativeLocked()
	if err == nil {
		err = s.writeDailyLocked()
	}
	metrics.ObservePersistSave(time.Since(start), err)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to save analytics data")
		return err
	}
	s.log.Debug().
		Int("total_requests", s.lifetime.TotalRequests).
		Dur("duration", time.Since(start)).
		Msg("analytics data saved")
	return nil
}

func (s *Store) writeCumulativeLocked() error {
	doc := document{
		Metadata: s.metadataLocked(),
		Data:     s.lifetime.toDocument(),
	}
	return writeJSONFile(s.cfg.DataFile, doc)
}

// The daily file is a bare date-keyed map; only the cumulative file
// carries the metadata envelope.
func (s *Store) writeDailyLocked() error {
	doc := make(map[string]*dayDataDocument, len(s.daily))
	for date, day := range s.daily {
		doc[date] = day.toDocument()
	}
	return writeJSONFile(s.cfg.DailyFile, doc)
}

func (s *Store) metadataLocked() documentMetadata {
	return documentMetadata{
		Version:        documentVersion,
		LastUpdated:    time.Now(),
		TotalRecords:   s.lifetime.TotalRequests,
		UniqueVisitors: len(s.lifetime.UniqueIPs),
	}
}

func writeJSONFile(path string, v any) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create data directory: %w", err)
		}
	}
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func (c Counters) toDocument() *dataDocument {
	return &dataDocument{
		TotalRequests:    c.TotalRequests,
		UniqueIPs:        setToSlice(c.UniqueIPs),
		Browsers:         c.Browsers,
		OperatingSystems: c.OperatingSystems,
		Referrers:        c.Referrers,
		Pages:            c.Pages,
		HourlyStats:      c.HourlyStats,
		DailyStats:       c.DailyStats,
		LastUpdated:      c.LastUpdated,
	}
}

func (d *dataDocument) toCounters() Counters {
	return Counters{
		TotalRequests:    d.TotalRequests,
		UniqueIPs:        sliceToSet(d.UniqueIPs),
		Browsers:         orEmpty(d.Browsers),
		OperatingSystems: orEmpty(d.OperatingSystems),
		Referrers:        orEmpty(d.Referrers),
		Pages:            orEmpty(d.Pages),
		HourlyStats:      orEmptyHourly(d.HourlyStats),
		DailyStats:       orEmpty(d.DailyStats),
		LastUpdated:      d.LastUpdated,
	}
}

func (d *DayCounters) toDocument() *dayDataDocument {
	return &dayDataDocument{
		TotalRequests:    d.TotalRequests,
		UniqueIPs:        setToSlice(d.UniqueIPs),
		Browsers:         d.Browsers,
		OperatingSystems: d.OperatingSystems,
		Pages:            d.Pages,
		HourlyStats:      d.HourlyStats,
	}
}

func (d *dayDataDocument) toDayCounters() *DayCounters {
	return &DayCounters{
		TotalRequests:    d.TotalRequests,
		UniqueIPs:        sliceToSet(d.UniqueIPs),
		Browsers:         orEmpty(d.Browsers),
		OperatingSystems: orEmpty(d.OperatingSystems),
		Pages:            orEmpty(d.Pages),
		HourlyStats:      orEmptyHourly(d.HourlyStats),
	}
}

func setToSlice(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for ip := range set {
		out = append(out, ip)
	}
	return out
}

func sliceToSet(in []string) map[string]struct{} {
	out := make(map[string]struct{}, len(in))
	for _, ip := range in {
		out[ip] = struct{}{}
	}
	return out
}

func orEmpty(in map[string]int) map[string]int {
	if in == nil {
		return make(map[string]int)
	}
	return in
}

func orEmptyHourly(in map[int]int) map[int]int {
	if in == nil {
		return make(map[int]int)
	}
	return in
}
