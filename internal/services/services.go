// package services defines interface Service for the destination catalog and the source page fetcher
//
// Spotify (catalog), Apple Music (public playlist pages)
package services

import (
	"context"

	"github.com/PuerkitoBio/goquery"
	"github.com/desertthunder/amsync/internal/models"
	"golang.org/x/oauth2"
)

// Service defines the destination catalog a sync run searches and appends to.
type Service interface {
	// Name returns the name of the service (e.g., "Spotify")
	Name() string

	// SearchTracks runs a catalog search and returns up to limit candidates in rank order.
	SearchTracks(ctx context.Context, query string, limit int) ([]models.Candidate, error)

	// PlaylistItems returns one page of a playlist's tracks starting at offset.
	PlaylistItems(ctx context.Context, playlistID string, offset, limit int) (*models.CandidatePage, error)

	// AddTracks appends ids, in order, to the end of the playlist in a single request.
	AddTracks(ctx context.Context, playlistID string, ids []string) error

	// Playlist retrieves playlist metadata by ID.
	Playlist(ctx context.Context, playlistID string) (*models.Playlist, error)
}

// OAuthService is implemented by services that authorize through the OAuth2 authorization code flow.
type OAuthService interface {
	AuthURL(state string) string
	Exchange(ctx context.Context, code string, opts ...oauth2.AuthCodeOption) (*oauth2.Token, error)
	Authenticate(ctx context.Context, token *oauth2.Token) error
}

// PageFetcher retrieves and parses a public web page.
type PageFetcher interface {
	FetchPage(ctx context.Context, pageURL string) (*goquery.Document, error)
}
