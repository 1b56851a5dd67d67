// Alpenpath - Immigration Consulting Website and Request Analytics
// Copyright 2026 Alpenpath Consulting
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/alpenpath/alpenpath

// Package backup snapshots the analytics flat files into a backup
// directory and enforces a count-based retention policy. The analytics
// store saves in place; a bad deploy or disk hiccup mid-write is
// recoverable from the newest snapshot.
package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/alpenpath/alpenpath/internal/logging"
	"github.com/rs/zerolog"
)

// timestampLayout names snapshot files sortably, e.g.
// analytics-20260314T150405.json.
const timestampLayout = "20060102T150405"

// Config controls the backup manager.
type Config struct {
	// Enabled gates the whole subsystem.
	Enabled bool `koanf:"enabled"`

	// Dir is the snapshot directory.
	Dir string `koanf:"dir"`

	// Interval is how often the supervised loop snapshots.
	Interval time.Duration `koanf:"interval"`

	// Keep is the number of snapshots retained per source file.
	Keep int `koanf:"keep" validate:"omitempty,min=1"`
}

// Manager copies a fixed set of source files into the backup directory.
type Manager struct {
	cfg     Config
	sources []string
	mu      sync.Mutex
	log     zerolog.Logger
	now     func() time.Time
}

// NewManager creates a Manager for the given source files. The backup
// directory is created on first run.
func NewManager(cfg Config, sources ...string) *Manager {
	if cfg.Keep <= 0 {
		cfg.Keep = 7
	}
	return &Manager{
		cfg:     cfg,
		sources: sources,
		log:     logging.WithComponent("backup"),
		now:     time.Now,
	}
}

// Run snapshots every source file and prunes old snapshots. Sources that
// do not exist yet are skipped; the analytics store may not have saved
// for the first time.
func (m *Manager) Run() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := os.MkdirAll(m.cfg.Dir, 0o750); err != nil {
		return fmt.Errorf("create backup directory: %w", err)
	}

	stamp := m.now().Format(timestampLayout)
	for _, source := range m.sources {
		if err := m.snapshot(source, stamp); err != nil {
			return err
		}
		if err := m.prune(source); err != nil {
			return err
		}
	}
	return nil
}

func (m *Manager) snapshot(source, stamp string) error {
	raw, err := os.ReadFile(source)
	if err != nil {
		if os.IsNotExist(err) {
			m.log.Debug().Str("source", source).Msg("source missing, skipping snapshot")
			return nil
		}
		return fmt.Errorf("read %s: %w", source, err)
	}

	dest := filepath.Join(m.cfg.Dir, snapshotName(source, stamp))
	if err := os.WriteFile(dest, raw, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", dest, err)
	}
	m.log.Debug().Str("snapshot", dest).Int("bytes", len(raw)).Msg("snapshot written")
	return nil
}

// prune removes the oldest snapshots of a source beyond the retention
// count. Timestamped names sort lexically in time order.
func (m *Manager) prune(source string) error {
	prefix := snapshotPrefix(source)
	entries, err := os.ReadDir(m.cfg.Dir)
	if err != nil {
		return fmt.Errorf("read backup directory: %w", err)
	}

	var matches []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasPrefix(entry.Name(), prefix) {
			matches = append(matches, entry.Name())
		}
	}
	if len(matches) <= m.cfg.Keep {
		return nil
	}

	sort.Strings(matches)
	for _, name := range matches[:len(matches)-m.cfg.Keep] {
		if err := os.Remove(filepath.Join(m.cfg.Dir, name)); err != nil {
			return fmt.Errorf("prune %s: %w", name, err)
		}
		m.log.Debug().Str("snapshot", name).Msg("snapshot pruned")
	}
	return nil
}

// Snapshots lists the retained snapshot file names for a source, oldest
// first.
func (m *Manager) Snapshots(source string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries, err := os.ReadDir(m.cfg.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	prefix := snapshotPrefix(source)
	var matches []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasPrefix(entry.Name(), prefix) {
			matches = append(matches, entry.Name())
		}
	}
	sort.Strings(matches)
	return matches, nil
}

func snapshotPrefix(source string) string {
	base := filepath.Base(source)
	return strings.TrimSuffix(base, filepath.Ext(base)) + "-"
}

func snapshotName(source, stamp string) string {
	base := filepath.Base(source)
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext) + "-" + stamp + ext
}
