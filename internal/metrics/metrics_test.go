// Alpenpath - Immigration Consulting Website and Request Analytics
// Copyright 2026 Alpenpath Consulting
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/alpenpath/alpenpath

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordHTTPRequest(t *testing.T) {
	RecordHTTPRequest("GET", "/api/v1/analytics", "200", 12*time.Millisecond)
	if got := testutil.CollectAndCount(HTTPRequestDuration); got < 1 {
		t.Errorf("expected at least one HTTPRequestDuration series, got %d", got)
	}
}

func TestTrackInFlight(t *testing.T) {
	base := testutil.ToFloat64(HTTPRequestsInFlight)
	TrackInFlight(true)
	if got := testutil.ToFloat64(HTTPRequestsInFlight); got != base+1 {
		t.Errorf("after increment: got %v, want %v", got, base+1)
	}
	TrackInFlight(false)
	if got := testutil.ToFloat64(HTTPRequestsInFlight); got != base {
		t.Errorf("after decrement: got %v, want %v", got, base)
	}
}

func TestRecordRequestTracked(t *testing.T) {
	before := testutil.ToFloat64(RequestsTracked.WithLabelValues("search"))
	RecordRequestTracked("search")
	after := testutil.ToFloat64(RequestsTracked.WithLabelValues("search"))
	if after != before+1 {
		t.Errorf("got %v, want %v", after, before+1)
	}
}

func TestSetUniqueVisitors(t *testing.T) {
	SetUniqueVisitors(42)
	if got := testutil.ToFloat64(UniqueVisitors); got != 42 {
		t.Errorf("got %v, want 42", got)
	}
}

func TestObservePersistSave(t *testing.T) {
	errBefore := testutil.ToFloat64(PersistSaveErrors)

	ObservePersistSave(5*time.Millisecond, nil)
	if got := testutil.ToFloat64(PersistSaveErrors); got != errBefore {
		t.Errorf("successful save should not count an error: got %v, want %v", got, errBefore)
	}

	ObservePersistSave(5*time.Millisecond, errors.New("disk full"))
	if got := testutil.ToFloat64(PersistSaveErrors); got != errBefore+1 {
		t.Errorf("failed save should count an error: got %v, want %v", got, errBefore+1)
	}
}

func TestRecordReportBuilt(t *testing.T) {
	before := testutil.ToFloat64(ReportsBuilt.WithLabelValues("minimal"))
	RecordReportBuilt("minimal")
	after := testutil.ToFloat64(ReportsBuilt.WithLabelValues("minimal"))
	if after != before+1 {
		t.Errorf("got %v, want %v", after, before+1)
	}
}
