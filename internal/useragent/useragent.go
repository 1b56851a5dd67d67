// Alpenpath - Immigration Consulting Website and Request Analytics
// Copyright 2026 Alpenpath Consulting
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/alpenpath/alpenpath

// Package useragent classifies raw User-Agent strings into browser and
// operating-system labels for the analytics subsystem.
//
// Classification is a fixed, ordered list of substring rules evaluated
// first-match-wins. The order matters: Chrome user agents also contain
// "Safari", so the Safari rule must come later and explicitly exclude
// "Chrome". Unrecognized or absent input degrades to "Unknown" fields,
// never to an error.
package useragent

import (
	"regexp"
	"strings"
)

// Product identifies a browser or operating system by name and version.
// Both fields default to "Unknown".
type Product struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Classification is the result of parsing one User-Agent string.
type Classification struct {
	Browser Product `json:"browser"`
	OS      Product `json:"os"`
}

const unknown = "Unknown"

// browserRule matches a browser by substring and extracts its version.
type browserRule struct {
	contains string
	excludes string
	name     string
	version  *regexp.Regexp
}

// osRule matches an operating system by substring. Either a fixed version
// table (Windows NT markers) or a version pattern applies.
type osRule struct {
	contains       string
	name           string
	version        *regexp.Regexp
	versionTable   []versionMarker
	underscoreDots bool
}

type versionMarker struct {
	marker  string
	version string
}

// Rule order is load-bearing; do not reorder.
var browserRules = []browserRule{
	{contains: "Chrome", name: "Chrome", version: regexp.MustCompile(`Chrome/(\d+\.\d+)`)},
	{contains: "Firefox", name: "Firefox", version: regexp.MustCompile(`Firefox/(\d+\.\d+)`)},
	{contains: "Safari", excludes: "Chrome", name: "Safari", version: regexp.MustCompile(`Version/(\d+\.\d+)`)},
	{contains: "Edge", name: "Edge", version: regexp.MustCompile(`Edge/(\d+\.\d+)`)},
}

var osRules = []osRule{
	{
		contains: "Windows",
		name:     "Windows",
		versionTable: []versionMarker{
			{"Windows NT 10.0", "10"},
			{"Windows NT 6.3", "8.1"},
			{"Windows NT 6.1", "7"},
		},
	},
	{
		contains:       "Mac OS X",
		name:           "macOS",
		version:        regexp.MustCompile(`Mac OS X (\d+[._]\d+)`),
		underscoreDots: true,
	},
	{contains: "Linux", name: "Linux"},
	{contains: "Android", name: "Android", version: regexp.MustCompile(`Android (\d+\.\d+)`)},
	{
		contains:       "iOS",
		name:           "iOS",
		version:        regexp.MustCompile(`OS (\d+[._]\d+)`),
		underscoreDots: true,
	},
}

// Classify parses a raw User-Agent string. It is a pure function: the same
// input always yields the same result, and it never fails.
func Classify(userAgent string) Classification {
	result := Classification{
		Browser: Product{Name: unknown, Version: unknown},
		OS:      Product{Name: unknown, Version: unknown},
	}
	if userAgent == "" {
		return result
	}

	for _, rule := range browserRules {
		if !strings.Contains(userAgent, rule.contains) {
			continue
		}
		if rule.excludes != "" && strings.Contains(userAgent, rule.excludes) {
			continue
		}
		result.Browser.Name = rule.name
		if m := rule.version.FindStringSubmatch(userAgent); m != nil {
			result.Browser.Version = m[1]
		}
		break
	}

	for _, rule := range osRules {
		if !strings.Contains(userAgent, rule.contains) {
			continue
		}
		result.OS.Name = rule.name
		if rule.versionTable != nil {
			for _, vm := range rule.versionTable {
				if strings.Contains(userAgent, vm.marker) {
					result.OS.Version = vm.version
					break
				}
			}
		} else if rule.version != nil {
			if m := rule.version.FindStringSubmatch(userAgent); m != nil {
				version := m[1]
				if rule.underscoreDots {
					version = strings.Replace(version, "_", ".", 1)
				}
				result.OS.Version = version
			}
		}
		break
	}

	return result
}

// BrowserLabel renders the composite "<name> <version>" counter key.
func (c Classification) BrowserLabel() string {
	return c.Browser.Name + " " + c.Browser.Version
}

// OSLabel renders the composite "<name> <version>" counter key.
func (c Classification) OSLabel() string {
	return c.OS.Name + " " + c.OS.Version
}
