// Alpenpath - Immigration Consulting Website and Request Analytics
// Copyright 2026 Alpenpath Consulting
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/alpenpath/alpenpath

// Package api assembles the HTTP surface: the versioned JSON API, the
// Prometheus scrape endpoint, and the static site with SPA fallback.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/alpenpath/alpenpath/internal/analytics"
	"github.com/alpenpath/alpenpath/internal/config"
	"github.com/alpenpath/alpenpath/internal/middleware"
)

// Router owns the handler tree and its dependencies.
type Router struct {
	store     *analytics.Store
	cfg       *config.Config
	startedAt time.Time
}

// NewRouter creates a Router around the analytics store.
func NewRouter(store *analytics.Store, cfg *config.Config) *Router {
	return &Router{
		store:     store,
		cfg:       cfg,
		startedAt: time.Now(),
	}
}

// Handler builds the chi handler tree.
//
// Middleware order matters: request IDs and real-IP resolution come
// first so tracking and access logs see the resolved client address;
// tracking sits before routing so every request is counted, including
// 404s on unknown paths.
func (router *Router) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: router.cfg.API.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))
	r.Use(middleware.AccessLog)
	if router.cfg.API.TrackingEnabled {
		r.Use(middleware.Tracking(router.store))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(httprate.LimitByIP(router.cfg.API.RateLimit, router.cfg.API.RateWindow))
		r.Use(middleware.PrometheusMetrics)
		r.Use(chimiddleware.Timeout(router.cfg.API.RequestTimeout))

		r.Get("/analytics", router.handleAnalytics)
		r.Get("/health", router.handleHealth)
		r.Get("/health/live", router.handleHealthLive)
		r.Get("/health/ready", router.handleHealthReady)

		// API clients get the JSON error envelope, not the SPA fallback.
		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			respondError(w, http.StatusNotFound, "NOT_FOUND", "unknown API endpoint", nil)
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	r.NotFound(router.serveStaticOrIndex)

	return r
}
