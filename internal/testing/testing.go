// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/desertthunder/amsync/internal/models"
	"golang.org/x/oauth2"
)

// MockService is a test double for [services.Service].
//
// Search results are keyed by the exact query string. Playlist items are served from Existing in pages.
type MockService struct {
	Results  map[string][]models.Candidate
	Existing []models.Candidate
	Meta     *models.Playlist

	SearchErr error
	ItemsErr  error
	AddErr    error

	mu       sync.Mutex
	Queries  []string
	Batches  [][]string
	Pages    int
	Searches int
}

func (m *MockService) Name() string { return "mock" }

func (m *MockService) SearchTracks(ctx context.Context, query string, limit int) ([]models.Candidate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Searches++
	m.Queries = append(m.Queries, query)
	if m.SearchErr != nil {
		return nil, m.SearchErr
	}
	results := m.Results[query]
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func (m *MockService) PlaylistItems(ctx context.Context, playlistID string, offset, limit int) (*models.CandidatePage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Pages++
	if m.ItemsErr != nil {
		return nil, m.ItemsErr
	}
	if offset >= len(m.Existing) {
		return &models.CandidatePage{Items: []models.Candidate{}}, nil
	}
	end := min(offset+limit, len(m.Existing))
	return &models.CandidatePage{Items: m.Existing[offset:end], HasNext: end < len(m.Existing)}, nil
}

func (m *MockService) AddTracks(ctx context.Context, playlistID string, ids []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.AddErr != nil {
		return m.AddErr
	}
	m.Batches = append(m.Batches, append([]string(nil), ids...))
	return nil
}

func (m *MockService) Playlist(ctx context.Context, playlistID string) (*models.Playlist, error) {
	if m.Meta == nil {
		return &models.Playlist{ID: playlistID, TrackCount: len(m.Existing)}, nil
	}
	return m.Meta, nil
}

// MockCatalog extends [MockService] with the OAuth and account methods of the Spotify client.
//
// Exchange issues "token-<code>" and Authenticate records the token it is given.
type MockCatalog struct {
	MockService

	User        string
	UserErr     error
	ExchangeErr error

	Auth  *oauth2.Token
	Codes []string
}

func (m *MockCatalog) AuthURL(state string) string {
	return "https://accounts.example.com/authorize?state=" + state
}

func (m *MockCatalog) Exchange(ctx context.Context, code string, opts ...oauth2.AuthCodeOption) (*oauth2.Token, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Codes = append(m.Codes, code)
	if m.ExchangeErr != nil {
		return nil, m.ExchangeErr
	}
	return &oauth2.Token{AccessToken: "token-" + code, RefreshToken: "refresh-" + code, TokenType: "Bearer"}, nil
}

func (m *MockCatalog) Authenticate(ctx context.Context, token *oauth2.Token) error {
	if token == nil {
		return errors.New("no token")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Auth = token
	return nil
}

func (m *MockCatalog) CurrentUser(ctx context.Context) (string, error) {
	return m.User, m.UserErr
}

func (m *MockCatalog) Token() (*oauth2.Token, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Auth == nil {
		return nil, errors.New("not authenticated")
	}
	return m.Auth, nil
}

// MockFetcher is a test double for [services.PageFetcher] serving a fixed HTML body.
type MockFetcher struct {
	HTML  string
	Err   error
	Calls int
}

func (f *MockFetcher) FetchPage(ctx context.Context, pageURL string) (*goquery.Document, error) {
	f.Calls++
	if f.Err != nil {
		return nil, f.Err
	}
	return goquery.NewDocumentFromReader(strings.NewReader(f.HTML))
}

// Candidate builds a [models.Candidate] with a single artist.
func Candidate(id, name, artist string) models.Candidate {
	return models.Candidate{ID: id, Name: name, ArtistNames: []string{artist}}
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
