// Alpenpath - Immigration Consulting Website and Request Analytics
// Copyright 2026 Alpenpath Consulting
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/alpenpath/alpenpath

// Package config loads layered application configuration: struct defaults,
// then an optional YAML file, then environment variables. Precedence is
// ENV > file > defaults.
package config

import (
	"fmt"
	"time"

	"github.com/alpenpath/alpenpath/internal/analytics"
	"github.com/alpenpath/alpenpath/internal/backup"
	"github.com/alpenpath/alpenpath/internal/validation"
)

// Config is the full application configuration tree.
type Config struct {
	Server    ServerConfig     `koanf:"server"`
	Analytics analytics.Config `koanf:"analytics"`
	Backup    backup.Config    `koanf:"backup"`
	Static    StaticConfig     `koanf:"static"`
	API       APIConfig        `koanf:"api"`
	Logging   LoggingConfig    `koanf:"logging"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Host            string        `koanf:"host" validate:"required"`
	Port            int           `koanf:"port" validate:"required,gte=1,lte=65535"`
	ReadTimeout     time.Duration `koanf:"read_timeout" validate:"required"`
	WriteTimeout    time.Duration `koanf:"write_timeout" validate:"required"`
	IdleTimeout     time.Duration `koanf:"idle_timeout" validate:"required"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"required"`
}

// Addr returns the host:port listen address.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// StaticConfig controls the single-page-application file server.
type StaticConfig struct {
	Dir string `koanf:"dir" validate:"required"`
}

// APIConfig controls the API route group.
type APIConfig struct {
	RateLimit       int           `koanf:"rate_limit" validate:"gte=1"`
	RateWindow      time.Duration `koanf:"rate_window" validate:"required"`
	CORSOrigins     []string      `koanf:"cors_origins"`
	RequestTimeout  time.Duration `koanf:"request_timeout" validate:"required"`
	FlushInterval   time.Duration `koanf:"flush_interval" validate:"required"`
	TrackingEnabled bool          `koanf:"tracking_enabled"`
}

// LoggingConfig controls the global zerolog logger.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"omitempty,oneof=trace debug info warn error fatal panic"`
	Format string `koanf:"format" validate:"omitempty,oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// defaultConfig returns the built-in defaults, applied before the config
// file and environment layers.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            3000,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Analytics: analytics.Config{
			DataFile:  "data/analytics.json",
			DailyFile: "data/daily-analytics.json",
			SaveEvery: analytics.DefaultSaveEvery,
		},
		Backup: backup.Config{
			Enabled:  true,
			Dir:      "data/backups",
			Interval: time.Hour,
			Keep:     7,
		},
		Static: StaticConfig{
			Dir: "public",
		},
		API: APIConfig{
			RateLimit:       100,
			RateWindow:      time.Minute,
			CORSOrigins:     []string{"*"},
			RequestTimeout:  30 * time.Second,
			FlushInterval:   5 * time.Minute,
			TrackingEnabled: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Validate checks the configuration tree after all layers are applied.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
