// Alpenpath - Immigration Consulting Website and Request Analytics
// Copyright 2026 Alpenpath Consulting
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/alpenpath/alpenpath

package middleware

import (
	"net"
	"net/http"
	"time"
)

// Recorder is the part of the analytics store the tracking middleware
// needs. Record must never fail and must be safe for concurrent use.
type Recorder interface {
	Record(clientAddr, userAgent, referrer, path string, now time.Time)
}

// Tracking records every request into the analytics store before handing
// it downstream. It must sit after any real-IP resolution so RemoteAddr
// carries the client address rather than a proxy's. An absent Referer
// header is recorded as "Direct".
func Tracking(store Recorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			referrerValue := r.Referer()
			if referrerValue == "" {
				referrerValue = "Direct"
			}
			store.Record(
				clientAddr(r),
				r.UserAgent(),
				referrerValue,
				r.URL.Path,
				time.Now(),
			)
			next.ServeHTTP(w, r)
		})
	}
}

// clientAddr strips the port from RemoteAddr. chi's RealIP middleware has
// already replaced RemoteAddr with the forwarded client address when the
// request came through a proxy.
func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
