package scrape

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"

	"github.com/avasant/docuchat/internal/config"
	"github.com/avasant/docuchat/internal/domain"
	"github.com/avasant/docuchat/internal/rag/extract"
	"github.com/avasant/docuchat/pkg/logger_i"
)

var customTransport = &http.Transport{
	MaxIdleConns:        config.MaxIdleConns,
	MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
	IdleConnTimeout:     config.IdleConnTimeout,
}

// Page is the fetched and cleaned content of one URL.
type Page struct {
	URL   string
	Title string
	Text  string
}

type Scraper struct {
	client *http.Client
	logger *logger_i.Logger
}

func NewScraper() *Scraper {
	return &Scraper{
		client: &http.Client{
			Timeout:   config.ScrapeTimeout,
			Transport: customTransport,
		},
		logger: logger_i.NewLogger("Scraper "),
	}
}

// NormalizeURL prepends https:// when the scheme is missing and trims
// surrounding whitespace. The normalized form is what gets hashed and stored.
func NormalizeURL(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return ""
	}
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		rawURL = "https://" + rawURL
	}
	return rawURL
}

// URLHash is the stable identity of a URL across add/remove/re-add cycles.
func URLHash(normalizedURL string) string {
	sum := sha256.Sum256([]byte(normalizedURL))
	return hex.EncodeToString(sum[:])
}

// Fetch downloads a page and returns its cleaned visible text. Any failure
// (network, status, markup) comes back as a *domain.ScrapeError for the URL.
func (s *Scraper) Fetch(ctx context.Context, rawURL string) (*Page, error) {
	target := NormalizeURL(rawURL)
	if target == "" {
		return nil, &domain.ScrapeError{URL: rawURL, Err: fmt.Errorf("empty url")}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &domain.ScrapeError{URL: target, Err: err}
	}
	req.Header.Set("User-Agent", config.ScrapeUA)

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Error("fetch failed", "url", target, "error", err)
		return nil, &domain.ScrapeError{URL: target, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.ScrapeError{URL: target, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	title, text, err := extract.HTML(resp.Body)
	if err != nil {
		return nil, &domain.ScrapeError{URL: target, Err: err}
	}
	if strings.TrimSpace(text) == "" {
		return nil, &domain.ScrapeError{URL: target, Err: fmt.Errorf("no extractable text")}
	}

	s.logger.Debug("fetched page", "url", target, "title", title, "chars", len(text))
	return &Page{URL: target, Title: title, Text: text}, nil
}
