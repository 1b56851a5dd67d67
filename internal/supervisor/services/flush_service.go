// Alpenpath - Immigration Consulting Website and Request Analytics
// Copyright 2026 Alpenpath Consulting
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/alpenpath/alpenpath

package services

import (
	"context"
	"time"
)

// Saver is the persistence hook the flush loop drives.
type Saver interface {
	Save() error
}

// FlushService periodically saves the analytics store. The per-request
// save throttle already bounds data loss under traffic; this loop covers
// quiet periods where the throttle never fires.
type FlushService struct {
	store    Saver
	interval time.Duration
	name     string
}

// NewFlushService creates a flush loop with the given interval.
func NewFlushService(store Saver, interval time.Duration) *FlushService {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &FlushService{
		store:    store,
		interval: interval,
		name:     "analytics-flush",
	}
}

// Serve implements suture.Service. Save errors are swallowed here: the
// store logs and counts them, and a transient disk error should not put
// the service into restart backoff.
func (f *FlushService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			// Final flush so a graceful stop persists the tail.
			_ = f.store.Save()
			return ctx.Err()
		case <-ticker.C:
			_ = f.store.Save()
		}
	}
}

// String identifies the service in supervisor logs.
func (f *FlushService) String() string {
	return f.name
}
