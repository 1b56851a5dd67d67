// Alpenpath - Immigration Consulting Website and Request Analytics
// Copyright 2026 Alpenpath Consulting
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/alpenpath/alpenpath

package useragent

import "testing"

const (
	chromeWindowsUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/115.0.0.0 Safari/537.36"
	firefoxLinuxUA  = "Mozilla/5.0 (X11; Linux x86_64; rv:109.0) Gecko/20100101 Firefox/118.0"
	safariMacUA     = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/16.5 Safari/605.1.15"
	androidUA       = "Mozilla/5.0 (Linux; Android 13.0; Pixel 7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/114.0.0.0 Mobile Safari/537.36"
)

func TestClassifyBrowsers(t *testing.T) {
	tests := []struct {
		name        string
		userAgent   string
		wantBrowser Product
	}{
		{"chrome with version", chromeWindowsUA, Product{"Chrome", "115.0"}},
		{"firefox with version", firefoxLinuxUA, Product{"Firefox", "118.0"}},
		{"safari only without chrome", safariMacUA, Product{"Safari", "16.5"}},
		{"chrome wins over safari token", chromeWindowsUA, Product{"Chrome", "115.0"}},
		{"edge legacy", "Mozilla/5.0 (Windows NT 10.0) AppleWebKit/537.36 Edge/18.19041", Product{"Edge", "18.19041"}},
		{"unrecognized", "curl/8.1.2", Product{"Unknown", "Unknown"}},
		{"empty", "", Product{"Unknown", "Unknown"}},
		{"chrome without version pattern", "SomethingChromeSomething", Product{"Chrome", "Unknown"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.userAgent).Browser
			if got != tt.wantBrowser {
				t.Errorf("Classify(%q).Browser = %+v, want %+v", tt.userAgent, got, tt.wantBrowser)
			}
		})
	}
}

func TestClassifyOperatingSystems(t *testing.T) {
	tests := []struct {
		name      string
		userAgent string
		wantOS    Product
	}{
		{"windows 10", chromeWindowsUA, Product{"Windows", "10"}},
		{"windows 8.1", "Mozilla/5.0 (Windows NT 6.3; Win64) Chrome/100.0", Product{"Windows", "8.1"}},
		{"windows 7", "Mozilla/5.0 (Windows NT 6.1; WOW64) Chrome/90.0", Product{"Windows", "7"}},
		{"windows unknown nt", "Mozilla/5.0 (Windows NT 5.1) Chrome/49.0", Product{"Windows", "Unknown"}},
		{"macos underscores to dots", safariMacUA, Product{"macOS", "10.15"}},
		{"linux has no version", firefoxLinuxUA, Product{"Linux", "Unknown"}},
		// Android user agents carry a "Linux" token, so the earlier Linux
		// rule wins. The Android rule only fires without that token.
		{"android ua matches linux first", androidUA, Product{"Linux", "Unknown"}},
		{"android without linux token", "Dalvik/2.1.0 (Android 13.0; Pixel 7)", Product{"Android", "13.0"}},
		{"ios underscores to dots", "Mozilla/5.0 (iPhone; iOS; CPU iPhone OS 16_6 like Mac OS) Version/16.6", Product{"iOS", "16.6"}},
		{"unrecognized", "curl/8.1.2", Product{"Unknown", "Unknown"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.userAgent).OS
			if got != tt.wantOS {
				t.Errorf("Classify(%q).OS = %+v, want %+v", tt.userAgent, got, tt.wantOS)
			}
		})
	}
}

func TestClassifyIsPure(t *testing.T) {
	first := Classify(chromeWindowsUA)
	second := Classify(chromeWindowsUA)
	if first != second {
		t.Errorf("classification is not idempotent: %+v vs %+v", first, second)
	}
}

func TestCompositeLabels(t *testing.T) {
	c := Classify(chromeWindowsUA)
	if got := c.BrowserLabel(); got != "Chrome 115.0" {
		t.Errorf("BrowserLabel() = %q, want %q", got, "Chrome 115.0")
	}
	if got := c.OSLabel(); got != "Windows 10" {
		t.Errorf("OSLabel() = %q, want %q", got, "Windows 10")
	}

	u := Classify("")
	if got := u.BrowserLabel(); got != "Unknown Unknown" {
		t.Errorf("BrowserLabel() = %q, want %q", got, "Unknown Unknown")
	}
}
