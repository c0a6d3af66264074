package scrape

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/avasant/docuchat/internal/domain"
)

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"example.com", "https://example.com"},
		{"  example.com/page  ", "https://example.com/page"},
		{"http://example.com", "http://example.com"},
		{"https://example.com", "https://example.com"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeURL(tt.in); got != tt.expected {
			t.Errorf("NormalizeURL(%q) = %q; want %q", tt.in, got, tt.expected)
		}
	}
}

func TestURLHash_StableAndDistinct(t *testing.T) {
	h1 := URLHash("https://example.com")
	h2 := URLHash("https://example.com")
	h3 := URLHash("https://example.org")

	if h1 != h2 {
		t.Error("hash must be stable for the same url")
	}
	if h1 == h3 {
		t.Error("different urls must not collide")
	}
	if len(h1) != 64 {
		t.Errorf("expected hex sha256, got %d chars", len(h1))
	}
}

func TestFetch_CleansPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("User-Agent"), "Mozilla") {
			t.Errorf("expected browser user agent, got %q", r.Header.Get("User-Agent"))
		}
		w.Write([]byte(`<html><head><title>Docs</title><script>nope()</script></head>
			<body><nav>menu</nav><p>Install   with one command.</p><footer>legal</footer></body></html>`))
	}))
	defer srv.Close()

	page, err := NewScraper().Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if page.Title != "Docs" {
		t.Errorf("title = %q; want Docs", page.Title)
	}
	if !strings.Contains(page.Text, "Install with one command.") {
		t.Errorf("whitespace not collapsed: %q", page.Text)
	}
	for _, dropped := range []string{"nope()", "menu", "legal"} {
		if strings.Contains(page.Text, dropped) {
			t.Errorf("boilerplate %q survived cleanup", dropped)
		}
	}
}

func TestFetch_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewScraper().Fetch(context.Background(), srv.URL)
	if err == nil {
		t.Fatal("expected error for 404")
	}
	var scrapeErr *domain.ScrapeError
	if !errors.As(err, &scrapeErr) {
		t.Errorf("expected ScrapeError, got %T", err)
	}
}

func TestFetch_Unreachable(t *testing.T) {
	_, err := NewScraper().Fetch(context.Background(), "http://127.0.0.1:1")
	var scrapeErr *domain.ScrapeError
	if !errors.As(err, &scrapeErr) {
		t.Errorf("expected ScrapeError, got %v", err)
	}
}
