// Alpenpath - Immigration Consulting Website and Request Analytics
// Copyright 2026 Alpenpath Consulting
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/alpenpath/alpenpath

// Command server runs the Alpenpath web server: the static marketing
// site, the request-analytics engine, and the JSON API on one port.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/alpenpath/alpenpath/internal/analytics"
	"github.com/alpenpath/alpenpath/internal/api"
	"github.com/alpenpath/alpenpath/internal/backup"
	"github.com/alpenpath/alpenpath/internal/config"
	"github.com/alpenpath/alpenpath/internal/logging"
	"github.com/alpenpath/alpenpath/internal/supervisor"
	"github.com/alpenpath/alpenpath/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("addr", cfg.Server.Addr()).
		Str("static_dir", cfg.Static.Dir).
		Str("data_file", cfg.Analytics.DataFile).
		Int("save_every", cfg.Analytics.SaveEvery).
		Msg("starting alpenpath")

	store := analytics.NewStore(cfg.Analytics)
	store.Load()

	router := api.NewRouter(store, cfg)
	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	tree.AddDataService(services.NewFlushService(store, cfg.API.FlushInterval))

	if cfg.Backup.Enabled {
		mgr := backup.NewManager(cfg.Backup, cfg.Analytics.DataFile, cfg.Analytics.DailyFile)
		tree.AddDataService(services.NewBackupService(mgr, cfg.Backup.Interval, func(err error) {
			logging.Error().Err(err).Msg("analytics backup failed")
		}))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logging.Info().Msg("supervisor tree starting")
	err = tree.Serve(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("supervisor tree stopped with error")
	}

	// Final save: the flush service already flushed on cancel, but a save
	// here also covers the path where the tree exits before it ran.
	if err := store.Save(); err != nil {
		logging.Error().Err(err).Msg("final analytics save failed")
	}
	logging.Info().Msg("shutdown complete")
}
