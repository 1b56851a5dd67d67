// Alpenpath - Immigration Consulting Website and Request Analytics
// Copyright 2026 Alpenpath Consulting
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/alpenpath/alpenpath

package api

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// serveStaticOrIndex serves files from the static directory, falling back
// to index.html for paths that do not match a file. The fallback keeps
// client-side routes working on hard refresh.
func (router *Router) serveStaticOrIndex(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	dir := router.cfg.Static.Dir
	path := r.URL.Path

	setCacheHeaders(w, path)

	if path != "/" && fileExists(dir, path) {
		http.FileServer(http.Dir(dir)).ServeHTTP(w, r)
		return
	}

	index := filepath.Join(dir, "index.html")
	if _, err := os.Stat(index); err != nil {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, index)
}

func setCacheHeaders(w http.ResponseWriter, path string) {
	switch {
	case strings.HasSuffix(path, ".js") || strings.HasSuffix(path, ".css"):
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	case strings.HasSuffix(path, ".png") || strings.HasSuffix(path, ".svg") ||
		strings.HasSuffix(path, ".jpg") || strings.HasSuffix(path, ".webp"):
		w.Header().Set("Cache-Control", "public, max-age=604800")
	default:
		w.Header().Set("Cache-Control", "public, max-age=300")
	}
}

// fileExists reports whether the request path maps to a regular file
// inside dir. Paths that escape the directory are rejected.
func fileExists(dir, path string) bool {
	clean := filepath.Clean(strings.TrimPrefix(path, "/"))
	if clean == "." || strings.HasPrefix(clean, "..") {
		return false
	}
	info, err := os.Stat(filepath.Join(dir, clean))
	return err == nil && info.Mode().IsRegular()
}
