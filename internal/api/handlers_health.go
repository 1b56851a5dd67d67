// Alpenpath - Immigration Consulting Website and Request Analytics
// Copyright 2026 Alpenpath Consulting
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/alpenpath/alpenpath

package api

import (
	"net/http"
	"time"

	"github.com/alpenpath/alpenpath/internal/models"
)

// Version is the reported application version. Overridden at build time
// via -ldflags "-X github.com/alpenpath/alpenpath/internal/api.Version=...".
var Version = "dev"

// handleHealth serves GET /api/v1/health with uptime and component checks.
func (router *Router) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, models.HealthStatus{
		Status:    "healthy",
		Version:   Version,
		Uptime:    time.Since(router.startedAt).Round(time.Second).String(),
		Timestamp: time.Now(),
		Checks: map[string]string{
			"analytics": "ok",
		},
	})
}

// handleHealthLive is the liveness probe: 200 whenever the process runs.
func (router *Router) handleHealthLive(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// handleHealthReady is the readiness probe. The store is in-process, so
// readiness follows liveness once startup completed.
func (router *Router) handleHealthReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("READY"))
}
