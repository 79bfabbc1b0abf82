package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/desertthunder/amsync/internal/shared"
)

const (
	// DefaultUserAgent identifies requests as a desktop browser; Apple Music serves a stripped page otherwise.
	DefaultUserAgent    = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	DefaultFetchTimeout = 30 * time.Second
	appleMusicHost      = "music.apple.com"
)

// AppleMusicService fetches public Apple Music playlist pages.
type AppleMusicService struct {
	client    *http.Client
	userAgent string
}

// NewAppleMusicService creates a page fetcher. A nil client gets a default one with a 30s timeout.
func NewAppleMusicService(client *http.Client) *AppleMusicService {
	if client == nil {
		client = &http.Client{Timeout: DefaultFetchTimeout}
	}
	return &AppleMusicService{client: client, userAgent: DefaultUserAgent}
}

// Name returns the service name.
func (s *AppleMusicService) Name() string {
	return "Apple Music"
}

// FetchPage performs a GET for pageURL and parses the body as HTML.
func (s *AppleMusicService) FetchPage(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrFetchFailed, err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %d %s for url: %s",
			shared.ErrFetchFailed, resp.StatusCode, http.StatusText(resp.StatusCode), pageURL)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", shared.ErrFetchFailed, err)
	}
	return doc, nil
}

// IsAppleMusicURL reports whether raw is non-empty and mentions the Apple Music host.
func IsAppleMusicURL(raw string) bool {
	raw = strings.TrimSpace(raw)
	return raw != "" && strings.Contains(raw, appleMusicHost)
}
