// Alpenpath - Immigration Consulting Website and Request Analytics
// Copyright 2026 Alpenpath Consulting
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/alpenpath/alpenpath

package referrer

import "testing"

func TestParseDirectPlaceholders(t *testing.T) {
	for _, raw := range []string{"", "Direct", "-"} {
		result := Parse(raw)
		if result.Type != TypeDirect {
			t.Errorf("Parse(%q).Type = %s, want direct", raw, result.Type)
		}
		if result.Domain != "Direct" || result.Platform != "Direct" {
			t.Errorf("Parse(%q) = %+v, want Direct labels", raw, result)
		}
	}
}

func TestParseUnparseableIsDirect(t *testing.T) {
	// Relative and scheme-less values have no hostname and degrade to direct.
	for _, raw := range []string{"not a url at all", "/relative/path", "%%%", "www.google.com/search"} {
		if got := Parse(raw).Type; got != TypeDirect {
			t.Errorf("Parse(%q).Type = %s, want direct", raw, got)
		}
	}
}

func TestParseSearchEngines(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		platform string
		query    string
		origin   string
	}{
		{"google with query", "https://www.google.com/search?q=swiss+citizenship", "Google", "swiss citizenship", "www.google.com"},
		{"google exact host", "https://google.com/search?q=visa", "Google", "visa", "google.com"},
		{"yahoo uses p param", "https://search.yahoo.com/search?p=work+permit", "Yahoo", "work permit", "search.yahoo.com"},
		{"yahoo falls back to q", "https://search.yahoo.com/search?q=fallback", "Yahoo", "fallback", "search.yahoo.com"},
		{"baidu wd param", "https://www.baidu.com/s?wd=term", "Baidu", "term", "www.baidu.com"},
		{"yandex text param", "https://yandex.com/search/?text=term", "Yandex", "term", "yandex.com"},
		{"duckduckgo", "https://duckduckgo.com/?q=residence+permit", "DuckDuckGo", "residence permit", "duckduckgo.com"},
		{"google without query", "https://www.google.com/", "Google", "", "www.google.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Parse(tt.raw)
			if result.Type != TypeSearch {
				t.Fatalf("Parse(%q).Type = %s, want search", tt.raw, result.Type)
			}
			if result.Platform != tt.platform {
				t.Errorf("Platform = %q, want %q", result.Platform, tt.platform)
			}
			if result.SearchQuery != tt.query {
				t.Errorf("SearchQuery = %q, want %q", result.SearchQuery, tt.query)
			}
			if result.OriginalDomain != tt.origin {
				t.Errorf("OriginalDomain = %q, want %q", result.OriginalDomain, tt.origin)
			}
			if result.Category != "Search Engine" {
				t.Errorf("Category = %q, want %q", result.Category, "Search Engine")
			}
		})
	}
}

func TestParseSocialPlatforms(t *testing.T) {
	tests := []struct {
		raw      string
		platform string
	}{
		{"https://www.facebook.com/somepage", "Facebook"},
		{"https://twitter.com/user/status/1", "Twitter"},
		{"https://x.com/user", "X (Twitter)"},
		{"https://www.linkedin.com/feed/", "LinkedIn"},
		{"https://m.youtube.com/watch?v=abc", "YouTube"},
	}

	for _, tt := range tests {
		result := Parse(tt.raw)
		if result.Type != TypeSocial {
			t.Errorf("Parse(%q).Type = %s, want social", tt.raw, result.Type)
		}
		if result.Platform != tt.platform {
			t.Errorf("Parse(%q).Platform = %q, want %q", tt.raw, result.Platform, tt.platform)
		}
	}
}

func TestParseShortenerStaysExternal(t *testing.T) {
	// t.co is deliberately absent from the social table; the suffix rule
	// must not associate it with twitter.com.
	result := Parse("https://t.co/abc")
	if result.Type != TypeExternal {
		t.Fatalf("Parse(t.co).Type = %s, want external", result.Type)
	}
	if result.Domain != "t.co" {
		t.Errorf("Domain = %q, want %q", result.Domain, "t.co")
	}
}

func TestParseContentAndEmail(t *testing.T) {
	if got := Parse("https://medium.com/@author/post"); got.Type != TypeContent || got.Platform != "Medium" {
		t.Errorf("medium.com = %+v, want content/Medium", got)
	}
	if got := Parse("https://github.com/org/repo"); got.Type != TypeContent || got.Platform != "GitHub" {
		t.Errorf("github.com = %+v, want content/GitHub", got)
	}
	if got := Parse("https://mail.proton.me/inbox"); got.Type != TypeEmail {
		t.Errorf("mail.proton.me = %+v, want email", got)
	}
	if got := Parse("https://outlook.live.com/mail"); got.Type != TypeEmail {
		t.Errorf("outlook.live.com = %+v, want email", got)
	}
}

func TestParseExternalFallback(t *testing.T) {
	result := Parse("https://www.example.org/page?x=1")
	if result.Type != TypeExternal {
		t.Fatalf("Type = %s, want external", result.Type)
	}
	if result.Domain != "www.example.org" || result.Platform != "www.example.org" {
		t.Errorf("external labels = %q/%q, want hostname", result.Domain, result.Platform)
	}
	if result.Category != "External Website" {
		t.Errorf("Category = %q", result.Category)
	}
}

func TestParseHostCaseInsensitive(t *testing.T) {
	if got := Parse("https://WWW.GOOGLE.COM/search?q=x").Type; got != TypeSearch {
		t.Errorf("uppercase host Type = %s, want search", got)
	}
}

func TestParseIsPure(t *testing.T) {
	raw := "https://www.google.com/search?q=swiss+citizenship"
	first := Parse(raw)
	second := Parse(raw)
	if first != second {
		t.Errorf("classification is not idempotent: %+v vs %+v", first, second)
	}
}
