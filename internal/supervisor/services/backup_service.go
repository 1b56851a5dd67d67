// Alpenpath - Immigration Consulting Website and Request Analytics
// Copyright 2026 Alpenpath Consulting
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/alpenpath/alpenpath

package services

import (
	"context"
	"time"
)

// SnapshotRunner is the backup hook the loop drives.
type SnapshotRunner interface {
	Run() error
}

// BackupService periodically snapshots the analytics files.
type BackupService struct {
	manager  SnapshotRunner
	interval time.Duration
	onError  func(error)
	name     string
}

// NewBackupService creates a snapshot loop with the given interval.
// onError receives snapshot failures; pass nil to ignore them.
func NewBackupService(manager SnapshotRunner, interval time.Duration, onError func(error)) *BackupService {
	if interval <= 0 {
		interval = time.Hour
	}
	if onError == nil {
		onError = func(error) {}
	}
	return &BackupService{
		manager:  manager,
		interval: interval,
		onError:  onError,
		name:     "analytics-backup",
	}
}

// Serve implements suture.Service.
func (b *BackupService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := b.manager.Run(); err != nil {
				b.onError(err)
			}
		}
	}
}

// String identifies the service in supervisor logs.
func (b *BackupService) String() string {
	return b.name
}
