// Alpenpath - Immigration Consulting Website and Request Analytics
// Copyright 2026 Alpenpath Consulting
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/alpenpath/alpenpath

// Package analytics implements the in-process request-analytics engine:
// cumulative and per-day aggregation of classified requests, flat-file
// persistence of both aggregates, and on-demand report generation.
//
// One Store instance is created at process start, hydrated from disk via
// Load, mutated only through Record, and flushed through Save. All state
// lives behind a single RWMutex; request handling in net/http is
// concurrent, so every read and write path takes the lock.
package analytics

import (
	"sync"
	"time"

	"github.com/alpenpath/alpenpath/internal/logging"
	"github.com/alpenpath/alpenpath/internal/metrics"
	"github.com/alpenpath/alpenpath/internal/referrer"
	"github.com/alpenpath/alpenpath/internal/useragent"
	"github.com/rs/zerolog"
)

// DefaultSaveEvery is the persistence throttle: one save per this many
// recorded requests. A crash loses at most DefaultSaveEvery-1 requests.
const DefaultSaveEvery = 10

// dateLayout is the calendar-date key format, in server-local time.
const dateLayout = "2006-01-02"

// Counters holds the lifetime aggregate. Every recorded request increments
// exactly one entry in each labeled dimension, so TotalRequests always
// equals the sum of any single dimension's counts.
type Counters struct {
	TotalRequests    int
	UniqueIPs        map[string]struct{}
	Browsers         map[string]int
	OperatingSystems map[string]int
	Referrers        map[string]int
	Pages            map[string]int
	HourlyStats      map[int]int
	DailyStats       map[string]int
	LastUpdated      time.Time
}

// DayCounters is one calendar day's aggregate. It intentionally has no
// DailyStats field: the bucket is a single day.
type DayCounters struct {
	TotalRequests    int
	UniqueIPs        map[string]struct{}
	Browsers         map[string]int
	OperatingSystems map[string]int
	Pages            map[string]int
	HourlyStats      map[int]int
}

// Config controls persistence paths and the save throttle.
type Config struct {
	// DataFile is the cumulative document path.
	DataFile string `koanf:"data_file"`

	// DailyFile is the per-day document path.
	DailyFile string `koanf:"daily_file"`

	// SaveEvery triggers a save on every Nth recorded request.
	SaveEvery int `koanf:"save_every" validate:"omitempty,min=1"`
}

// Store is the process-wide aggregation engine.
type Store struct {
	mu       sync.RWMutex
	lifetime Counters
	daily    map[string]*DayCounters
	cfg      Config
	log      zerolog.Logger
}

// NewStore creates an empty Store. Call Load to hydrate it from disk.
func NewStore(cfg Config) *Store {
	if cfg.SaveEvery <= 0 {
		cfg.SaveEvery = DefaultSaveEvery
	}
	return &Store{
		lifetime: newCounters(),
		daily:    make(map[string]*DayCounters),
		cfg:      cfg,
		log:      logging.WithComponent("analytics"),
	}
}

func newCounters() Counters {
	return Counters{
		UniqueIPs:        make(map[string]struct{}),
		Browsers:         make(map[string]int),
		OperatingSystems: make(map[string]int),
		Referrers:        make(map[string]int),
		Pages:            make(map[string]int),
		HourlyStats:      make(map[int]int),
		DailyStats:       make(map[string]int),
	}
}

func newDayCounters() *DayCounters {
	return &DayCounters{
		UniqueIPs:        make(map[string]struct{}),
		Browsers:         make(map[string]int),
		OperatingSystems: make(map[string]int),
		Pages:            make(map[string]int),
		HourlyStats:      make(map[int]int),
	}
}

// Record aggregates one request into the lifetime counters and the day
// bucket for now's calendar date. It never fails; classification degrades
// to "Unknown"/"Direct" labels. Every cfg.SaveEvery-th request triggers a
// best-effort save while the lock is held.
func (s *Store) Record(clientAddr, userAgent, referrerValue, path string, now time.Time) {
	ua := useragent.Classify(userAgent)
	browserLabel := ua.BrowserLabel()
	osLabel := ua.OSLabel()

	if referrerValue == "" {
		referrerValue = "Direct"
	}

	hour := now.Hour()
	date := now.Format(dateLayout)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.lifetime.TotalRequests++
	s.lifetime.UniqueIPs[clientAddr] = struct{}{}
	s.lifetime.Browsers[browserLabel]++
	s.lifetime.OperatingSystems[osLabel]++
	s.lifetime.Referrers[referrerValue]++
	s.lifetime.Pages[path]++
	s.lifetime.HourlyStats[hour]++
	s.lifetime.DailyStats[date]++
	s.lifetime.LastUpdated = now

	day, ok := s.daily[date]
	if !ok {
		day = newDayCounters()
		s.daily[date] = day
	}
	day.TotalRequests++
	day.UniqueIPs[clientAddr] = struct{}{}
	day.Browsers[browserLabel]++
	day.OperatingSystems[osLabel]++
	day.Pages[path]++
	day.HourlyStats[hour]++

	metrics.RecordRequestTracked(string(referrer.Parse(referrerValue).Type))
	metrics.SetUniqueVisitors(len(s.lifetime.UniqueIPs))

	if s.lifetime.TotalRequests%s.cfg.SaveEvery == 0 {
		if err := s.saveLocked(); err != nil {
			s.log.Error().Err(err).Msg("throttled analytics save failed")
		}
	}
}

// Snapshot returns a deep copy of the lifetime counters. The caller may
// read it freely without holding the store lock.
func (s *Store) Snapshot() Counters {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lifetime.clone()
}

// TotalRequests returns the lifetime request count.
func (s *Store) TotalRequests() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lifetime.TotalRequests
}

// UniqueVisitors returns the lifetime unique-client cardinality.
func (s *Store) UniqueVisitors() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.lifetime.UniqueIPs)
}

// DayCount returns the number of day buckets currently held.
func (s *Store) DayCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.daily)
}

func (c Counters) clone() Counters {
	out := Counters{
		TotalRequests:    c.TotalRequests,
		UniqueIPs:        make(map[string]struct{}, len(c.UniqueIPs)),
		Browsers:         cloneCounts(c.Browsers),
		OperatingSystems: cloneCounts(c.OperatingSystems),
		Referrers:        cloneCounts(c.Referrers),
		Pages:            cloneCounts(c.Pages),
		HourlyStats:      make(map[int]int, len(c.HourlyStats)),
		DailyStats:       cloneCounts(c.DailyStats),
		LastUpdated:      c.LastUpdated,
	}
	for ip := range c.UniqueIPs {
		out.UniqueIPs[ip] = struct{}{}
	}
	for hour, count := range c.HourlyStats {
		out.HourlyStats[hour] = count
	}
	return out
}

func cloneCounts(in map[string]int) map[string]int {
	out := make(map[string]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
