// Alpenpath - Immigration Consulting Website and Request Analytics
// Copyright 2026 Alpenpath Consulting
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/alpenpath/alpenpath

package analytics

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

const chromeWindowsUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/115.0.0.0 Safari/537.36"

func testStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	return NewStore(Config{
		DataFile:  filepath.Join(dir, "analytics.json"),
		DailyFile: filepath.Join(dir, "daily-analytics.json"),
		SaveEvery: DefaultSaveEvery,
	})
}

func TestRecordAggregatesAllDimensions(t *testing.T) {
	s := testStore(t)
	now := time.Date(2026, 3, 14, 15, 9, 0, 0, time.Local)

	s.Record("203.0.113.7", chromeWindowsUA, "", "/", now)

	snap := s.Snapshot()
	if snap.TotalRequests != 1 {
		t.Fatalf("TotalRequests = %d, want 1", snap.TotalRequests)
	}
	if got := snap.Browsers["Chrome 115.0"]; got != 1 {
		t.Errorf("Browsers[Chrome 115.0] = %d, want 1", got)
	}
	if got := snap.OperatingSystems["Windows 10"]; got != 1 {
		t.Errorf("OperatingSystems[Windows 10] = %d, want 1", got)
	}
	if got := snap.Referrers["Direct"]; got != 1 {
		t.Errorf("empty referrer should count as Direct, got %d", got)
	}
	if got := snap.Pages["/"]; got != 1 {
		t.Errorf("Pages[/] = %d, want 1", got)
	}
	if got := snap.HourlyStats[15]; got != 1 {
		t.Errorf("HourlyStats[15] = %d, want 1", got)
	}
	if got := snap.DailyStats["2026-03-14"]; got != 1 {
		t.Errorf("DailyStats[2026-03-14] = %d, want 1", got)
	}
	if !snap.LastUpdated.Equal(now) {
		t.Errorf("LastUpdated = %v, want %v", snap.LastUpdated, now)
	}
	if _, ok := snap.UniqueIPs["203.0.113.7"]; !ok {
		t.Error("client address missing from unique set")
	}
}

func TestRecordDimensionSumsEqualTotal(t *testing.T) {
	s := testStore(t)
	now := time.Now()
	uas := []string{
		chromeWindowsUA,
		"Mozilla/5.0 (X11; Linux x86_64; rv:109.0) Gecko/20100101 Firefox/117.0",
		"not a real browser",
	}
	for i := 0; i < 27; i++ {
		s.Record("10.0.0.1", uas[i%len(uas)], "https://www.google.com/", "/services", now)
	}

	snap := s.Snapshot()
	if snap.TotalRequests != 27 {
		t.Fatalf("TotalRequests = %d, want 27", snap.TotalRequests)
	}
	for name, dim := range map[string]map[string]int{
		"Browsers":         snap.Browsers,
		"OperatingSystems": snap.OperatingSystems,
		"Referrers":        snap.Referrers,
		"Pages":            snap.Pages,
		"DailyStats":       snap.DailyStats,
	} {
		sum := 0
		for _, c := range dim {
			sum += c
		}
		if sum != 27 {
			t.Errorf("%s counts sum to %d, want 27", name, sum)
		}
	}
	sum := 0
	for _, c := range snap.HourlyStats {
		sum += c
	}
	if sum != 27 {
		t.Errorf("HourlyStats counts sum to %d, want 27", sum)
	}
}

func TestRecordUniqueVisitorsDeduplicated(t *testing.T) {
	s := testStore(t)
	now := time.Now()
	for i := 0; i < 5; i++ {
		s.Record("198.51.100.1", chromeWindowsUA, "", "/", now)
	}
	s.Record("198.51.100.2", chromeWindowsUA, "", "/", now)

	if got := s.UniqueVisitors(); got != 2 {
		t.Errorf("UniqueVisitors = %d, want 2", got)
	}
	if got := s.TotalRequests(); got != 6 {
		t.Errorf("TotalRequests = %d, want 6", got)
	}
}

func TestRecordDayBuckets(t *testing.T) {
	s := testStore(t)
	day1 := time.Date(2026, 3, 14, 8, 0, 0, 0, time.Local)
	day2 := time.Date(2026, 3, 15, 8, 0, 0, 0, time.Local)

	s.Record("10.0.0.1", chromeWindowsUA, "", "/", day1)
	s.Record("10.0.0.1", chromeWindowsUA, "", "/about", day2)
	s.Record("10.0.0.2", chromeWindowsUA, "", "/about", day2)

	if got := s.DayCount(); got != 2 {
		t.Fatalf("DayCount = %d, want 2", got)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	bucket := s.daily["2026-03-15"]
	if bucket == nil {
		t.Fatal("missing bucket for 2026-03-15")
	}
	if bucket.TotalRequests != 2 {
		t.Errorf("day TotalRequests = %d, want 2", bucket.TotalRequests)
	}
	if len(bucket.UniqueIPs) != 2 {
		t.Errorf("day unique set size = %d, want 2", len(bucket.UniqueIPs))
	}
	if got := bucket.Pages["/about"]; got != 2 {
		t.Errorf("day Pages[/about] = %d, want 2", got)
	}
}

func TestRecordSaveThrottle(t *testing.T) {
	s := testStore(t)
	now := time.Now()

	for i := 0; i < DefaultSaveEvery-1; i++ {
		s.Record("10.0.0.1", chromeWindowsUA, "", "/", now)
	}
	if _, err := os.Stat(s.cfg.DataFile); !os.IsNotExist(err) {
		t.Fatalf("file should not exist after %d requests", DefaultSaveEvery-1)
	}

	s.Record("10.0.0.1", chromeWindowsUA, "", "/", now)
	if _, err := os.Stat(s.cfg.DataFile); err != nil {
		t.Fatalf("file should exist after %d requests: %v", DefaultSaveEvery, err)
	}
	if _, err := os.Stat(s.cfg.DailyFile); err != nil {
		t.Fatalf("daily file should exist after %d requests: %v", DefaultSaveEvery, err)
	}
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	s := testStore(t)
	s.Record("10.0.0.1", chromeWindowsUA, "", "/", time.Now())

	snap := s.Snapshot()
	snap.Browsers["Chrome 115.0"] = 99
	snap.UniqueIPs["tampered"] = struct{}{}
	snap.HourlyStats[3] = 99

	fresh := s.Snapshot()
	if fresh.Browsers["Chrome 115.0"] != 1 {
		t.Error("mutating a snapshot leaked into the store's browser counts")
	}
	if _, ok := fresh.UniqueIPs["tampered"]; ok {
		t.Error("mutating a snapshot leaked into the store's unique set")
	}
	if fresh.HourlyStats[3] != 0 {
		t.Error("mutating a snapshot leaked into the store's hourly counts")
	}
}

func TestRecordConcurrent(t *testing.T) {
	s := testStore(t)
	now := time.Now()

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				s.Record("10.0.0.1", chromeWindowsUA, "https://duckduckgo.com/?q=visa", "/", now)
				_ = s.Snapshot()
			}
		}()
	}
	wg.Wait()

	if got := s.TotalRequests(); got != 400 {
		t.Errorf("TotalRequests = %d, want 400", got)
	}
}
