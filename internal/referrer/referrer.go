// Alpenpath - Immigration Consulting Website and Request Analytics
// Copyright 2026 Alpenpath Consulting
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/alpenpath/alpenpath

// Package referrer classifies HTTP Referer values into a traffic-source
// taxonomy: direct, search, social, content, email, or external.
//
// Classification walks three static domain tables in a fixed order
// (search engines, social platforms, content platforms); the first table
// with a matching entry wins. A hostname matches a table domain exactly
// or as a dot-separated suffix, so "www.google.com" matches "google.com"
// while "t.co" does not match "twitter.com" and stays external. Absent,
// placeholder, and unparseable referrers are all classified as direct;
// this package never returns an error.
package referrer

import (
	"net/url"
	"strings"
)

// Type is the top-level traffic-source bucket.
type Type string

// The six referrer types, in classification precedence order.
const (
	TypeDirect   Type = "direct"
	TypeSearch   Type = "search"
	TypeSocial   Type = "social"
	TypeContent  Type = "content"
	TypeEmail    Type = "email"
	TypeExternal Type = "external"
)

// Types lists all referrer types in a stable order for aggregate output.
var Types = []Type{TypeDirect, TypeSearch, TypeSocial, TypeContent, TypeEmail, TypeExternal}

// Result describes one classified referrer value.
type Result struct {
	Type           Type   `json:"type"`
	Category       string `json:"category"`
	Domain         string `json:"domain"`
	Platform       string `json:"platform"`
	SearchQuery    string `json:"searchQuery,omitempty"`
	OriginalDomain string `json:"originalDomain,omitempty"`
}

// searchEngine names a known search engine and its query parameter.
type searchEngine struct {
	domain     string
	name       string
	queryParam string
}

// Table order within each list is insertion order; across lists the
// precedence is search, then social, then content.
var searchEngines = []searchEngine{
	{"google.com", "Google", "q"},
	{"google.co.uk", "Google UK", "q"},
	{"google.de", "Google DE", "q"},
	{"google.ch", "Google CH", "q"},
	{"google.fr", "Google FR", "q"},
	{"bing.com", "Bing", "q"},
	{"yahoo.com", "Yahoo", "p"},
	{"duckduckgo.com", "DuckDuckGo", "q"},
	{"baidu.com", "Baidu", "wd"},
	{"yandex.com", "Yandex", "text"},
}

type platformEntry struct {
	domain string
	name   string
}

var socialPlatforms = []platformEntry{
	{"facebook.com", "Facebook"},
	{"twitter.com", "Twitter"},
	{"x.com", "X (Twitter)"},
	{"linkedin.com", "LinkedIn"},
	{"instagram.com", "Instagram"},
	{"youtube.com", "YouTube"},
	{"tiktok.com", "TikTok"},
	{"reddit.com", "Reddit"},
	{"pinterest.com", "Pinterest"},
	{"snapchat.com", "Snapchat"},
}

var contentPlatforms = []platformEntry{
	{"medium.com", "Medium"},
	{"substack.com", "Substack"},
	{"dev.to", "Dev.to"},
	{"hackernews.ycombinator.com", "Hacker News"},
	{"github.com", "GitHub"},
	{"stackoverflow.com", "Stack Overflow"},
}

// webmailMarkers flag common webmail hostnames for the email heuristic.
var webmailMarkers = []string{"mail.", "outlook.", "gmail.", "yahoo.", "hotmail."}

// direct is the shared result for all direct-traffic classifications.
func direct() Result {
	return Result{
		Type:     TypeDirect,
		Category: "Direct",
		Domain:   "Direct",
		Platform: "Direct",
	}
}

// Parse classifies a raw Referer header value. It is a pure function and
// never fails: empty values, the "Direct" placeholder, "-", and anything
// that does not parse as an absolute URL all come back as direct traffic.
func Parse(raw string) Result {
	if raw == "" || raw == "Direct" || raw == "-" {
		return direct()
	}

	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return direct()
	}
	hostname := strings.ToLower(u.Hostname())

	for _, engine := range searchEngines {
		if !domainMatch(hostname, engine.domain) {
			continue
		}
		query := u.Query().Get(engine.queryParam)
		if query == "" {
			query = u.Query().Get("q")
		}
		return Result{
			Type:           TypeSearch,
			Category:       "Search Engine",
			Domain:         engine.name,
			Platform:       engine.name,
			SearchQuery:    query,
			OriginalDomain: hostname,
		}
	}

	for _, platform := range socialPlatforms {
		if domainMatch(hostname, platform.domain) {
			return Result{
				Type:           TypeSocial,
				Category:       "Social Media",
				Domain:         platform.name,
				Platform:       platform.name,
				OriginalDomain: hostname,
			}
		}
	}

	for _, platform := range contentPlatforms {
		if domainMatch(hostname, platform.domain) {
			return Result{
				Type:           TypeContent,
				Category:       "Content Platform",
				Domain:         platform.name,
				Platform:       platform.name,
				OriginalDomain: hostname,
			}
		}
	}

	for _, marker := range webmailMarkers {
		if strings.Contains(hostname, marker) {
			return Result{
				Type:           TypeEmail,
				Category:       "Email",
				Domain:         "Email Client",
				Platform:       "Email",
				OriginalDomain: hostname,
			}
		}
	}

	return Result{
		Type:           TypeExternal,
		Category:       "External Website",
		Domain:         hostname,
		Platform:       hostname,
		OriginalDomain: hostname,
	}
}

// domainMatch reports whether hostname equals domain or is a subdomain of it.
func domainMatch(hostname, domain string) bool {
	return hostname == domain || strings.HasSuffix(hostname, "."+domain)
}
