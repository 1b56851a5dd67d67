// Alpenpath - Immigration Consulting Website and Request Analytics
// Copyright 2026 Alpenpath Consulting
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/alpenpath/alpenpath

package middleware

import (
	"net/http"
	"time"

	"github.com/alpenpath/alpenpath/internal/logging"
)

// AccessLog emits one structured log line per completed request. It picks
// the request ID out of the context, so it should sit after RequestID.
func AccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapper := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapper, r)

		logging.Ctx(r.Context()).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", wrapper.statusCode).
			Str("remote_addr", clientAddr(r)).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}
