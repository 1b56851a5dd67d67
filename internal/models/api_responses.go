// Alpenpath - Immigration Consulting Website and Request Analytics
// Copyright 2026 Alpenpath Consulting
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/alpenpath/alpenpath

// Package models defines the shared wire types of the HTTP API.
package models

import "time"

// APIResponse is the standardized wrapper used by all HTTP endpoints.
// Status is "success" or "error"; Error is populated only on "error".
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": { ... },
//	  "metadata": { "timestamp": "2026-03-14T15:04:05Z" }
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata carries per-response observability fields.
type Metadata struct {
	Timestamp  time.Time `json:"timestamp"`
	DurationMS int64     `json:"duration_ms,omitempty"`
}

// APIError is the structured error payload. Code is machine-readable
// (e.g. "VALIDATION_ERROR", "NOT_FOUND"); Message is for humans.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// HealthStatus is the /api/v1/health payload.
type HealthStatus struct {
	Status    string            `json:"status"`
	Version   string            `json:"version"`
	Uptime    string            `json:"uptime"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}
