// Alpenpath - Immigration Consulting Website and Request Analytics
// Copyright 2026 Alpenpath Consulting
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/alpenpath/alpenpath

// Package metrics exposes Prometheus instrumentation for the HTTP surface
// and the analytics engine. All collectors are registered on the default
// registry via promauto and served on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP Metrics
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "alpenpath_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "alpenpath_http_requests_in_flight",
			Help: "Current number of HTTP requests being served",
		},
	)

	// Analytics Metrics
	RequestsTracked = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "alpenpath_analytics_requests_tracked_total",
			Help: "Total number of requests recorded by the analytics engine",
		},
		[]string{"referrer_type"}, // "direct", "search", "social", "content", "email", "external"
	)

	UniqueVisitors = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "alpenpath_analytics_unique_visitors",
			Help: "Lifetime unique visitor cardinality",
		},
	)

	PersistSaveDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "alpenpath_analytics_save_duration_seconds",
			Help:    "Duration of analytics flat-file saves in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	PersistSaveErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "alpenpath_analytics_save_errors_total",
			Help: "Total number of failed analytics saves",
		},
	)

	ReportsBuilt = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "alpenpath_analytics_reports_built_total",
			Help: "Total number of analytics reports generated",
		},
		[]string{"format"}, // "detailed", "summary", "minimal"
	)
)

// RecordHTTPRequest records one served HTTP request.
func RecordHTTPRequest(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// TrackInFlight adjusts the in-flight request gauge.
func TrackInFlight(inc bool) {
	if inc {
		HTTPRequestsInFlight.Inc()
	} else {
		HTTPRequestsInFlight.Dec()
	}
}

// RecordRequestTracked counts one request recorded by the analytics engine.
func RecordRequestTracked(referrerType string) {
	RequestsTracked.WithLabelValues(referrerType).Inc()
}

// SetUniqueVisitors updates the unique-visitor gauge.
func SetUniqueVisitors(count int) {
	UniqueVisitors.Set(float64(count))
}

// ObservePersistSave records the outcome of one analytics save.
func ObservePersistSave(duration time.Duration, err error) {
	PersistSaveDuration.Observe(duration.Seconds())
	if err != nil {
		PersistSaveErrors.Inc()
	}
}

// RecordReportBuilt counts one generated report.
func RecordReportBuilt(format string) {
	ReportsBuilt.WithLabelValues(format).Inc()
}
