// Alpenpath - Immigration Consulting Website and Request Analytics
// Copyright 2026 Alpenpath Consulting
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/alpenpath/alpenpath

package api

import (
	"net/http"

	"github.com/alpenpath/alpenpath/internal/analytics"
)

// handleAnalytics serves GET /api/v1/analytics.
//
// Query parameters degrade rather than reject: an unknown format renders
// the detailed report, and an out-of-range limit is clamped. The report
// is wrapped in the standard response envelope.
func (router *Router) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	opts := analytics.Options{
		Format: r.URL.Query().Get("format"),
		Limit:  getIntParam(r, "limit", analytics.DefaultLimit),
	}
	respondSuccess(w, router.store.BuildReport(opts))
}
