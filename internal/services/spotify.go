// Spotify Web API implementation of [Service] backed by github.com/zmb3/spotify/v2
package services

import (
	"context"
	"fmt"

	"github.com/desertthunder/amsync/internal/models"
	"github.com/desertthunder/amsync/internal/shared"
	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

// DefaultSearchRate is the number of search requests per second sent to Spotify.
const DefaultSearchRate = 10.0

// Scopes requested during authorization.
var spotifyScopes = []string{
	spotifyauth.ScopePlaylistReadPrivate,
	spotifyauth.ScopePlaylistModifyPublic,
	spotifyauth.ScopePlaylistModifyPrivate,
}

// SpotifyService implements [Service] and [OAuthService] for the Spotify Web API.
type SpotifyService struct {
	auth    *spotifyauth.Authenticator
	client  *spotify.Client
	limiter *rate.Limiter
}

// SpotifyOption configures a [SpotifyService].
type SpotifyOption func(*SpotifyService)

// WithSpotifyClient uses an already authenticated client.
func WithSpotifyClient(c *spotify.Client) SpotifyOption {
	return func(s *SpotifyService) { s.client = c }
}

// WithSearchRate limits searches to perSecond requests. Values <= 0 disable the limit.
func WithSearchRate(perSecond float64) SpotifyOption {
	return func(s *SpotifyService) {
		if perSecond <= 0 {
			s.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		s.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}

// NewSpotifyService creates a SpotifyService from the configured client credentials.
func NewSpotifyService(cfg shared.SpotifyConfig, opts ...SpotifyOption) (*SpotifyService, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, fmt.Errorf("%w: spotify client id and secret are required", shared.ErrMissingCredentials)
	}

	redirectURI := cfg.RedirectURI
	if redirectURI == "" {
		redirectURI = shared.DefaultRedirectURI
	}

	s := &SpotifyService{
		auth: spotifyauth.New(
			spotifyauth.WithClientID(cfg.ClientID),
			spotifyauth.WithClientSecret(cfg.ClientSecret),
			spotifyauth.WithRedirectURL(redirectURI),
			spotifyauth.WithScopes(spotifyScopes...),
		),
		limiter: rate.NewLimiter(rate.Limit(DefaultSearchRate), 1),
	}

	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Name returns the service name.
func (s *SpotifyService) Name() string {
	return "Spotify"
}

// AuthURL returns the authorization page URL for the given state.
func (s *SpotifyService) AuthURL(state string) string {
	return s.auth.AuthURL(state)
}

// Exchange trades an authorization code for a token.
func (s *SpotifyService) Exchange(ctx context.Context, code string, opts ...oauth2.AuthCodeOption) (*oauth2.Token, error) {
	token, err := s.auth.Exchange(ctx, code, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}
	return token, nil
}

// Authenticate builds the API client around token. The token is refreshed automatically when it expires.
func (s *SpotifyService) Authenticate(ctx context.Context, token *oauth2.Token) error {
	if token == nil {
		return fmt.Errorf("%w: no token", shared.ErrNotAuthenticated)
	}
	s.client = spotify.New(s.auth.Client(ctx, token))
	return nil
}

// Token returns the client's current token, which differs from the one passed to
// Authenticate once it has been refreshed.
func (s *SpotifyService) Token() (*oauth2.Token, error) {
	if s.client == nil {
		return nil, shared.ErrNotAuthenticated
	}
	return s.client.Token()
}

// CurrentUser returns the display name of the authorized user.
func (s *SpotifyService) CurrentUser(ctx context.Context) (string, error) {
	if s.client == nil {
		return "", shared.ErrNotAuthenticated
	}
	user, err := s.client.CurrentUser(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: current user: %v", shared.ErrAPIRequest, err)
	}
	if user.DisplayName != "" {
		return user.DisplayName, nil
	}
	return user.ID, nil
}

// SearchTracks searches the track catalog.
func (s *SpotifyService) SearchTracks(ctx context.Context, query string, limit int) ([]models.Candidate, error) {
	if s.client == nil {
		return nil, shared.ErrNotAuthenticated
	}
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	result, err := s.client.Search(ctx, query, spotify.SearchTypeTrack, spotify.Limit(limit))
	if err != nil {
		return nil, fmt.Errorf("%w: search %q: %v", shared.ErrAPIRequest, query, err)
	}
	if result.Tracks == nil {
		return []models.Candidate{}, nil
	}

	candidates := make([]models.Candidate, 0, len(result.Tracks.Tracks))
	for _, t := range result.Tracks.Tracks {
		candidates = append(candidates, toCandidate(t))
	}
	return candidates, nil
}

// PlaylistItems returns one page of playlist tracks. Local files and removed tracks come back with an empty ID.
func (s *SpotifyService) PlaylistItems(ctx context.Context, playlistID string, offset, limit int) (*models.CandidatePage, error) {
	if s.client == nil {
		return nil, shared.ErrNotAuthenticated
	}

	page, err := s.client.GetPlaylistTracks(ctx, spotify.ID(playlistID), spotify.Offset(offset), spotify.Limit(limit))
	if err != nil {
		return nil, fmt.Errorf("%w: playlist %s items: %v", shared.ErrAPIRequest, playlistID, err)
	}

	items := make([]models.Candidate, 0, len(page.Tracks))
	for _, item := range page.Tracks {
		items = append(items, toCandidate(item.Track))
	}
	return &models.CandidatePage{Items: items, HasNext: page.Next != ""}, nil
}

// AddTracks appends ids to the playlist.
func (s *SpotifyService) AddTracks(ctx context.Context, playlistID string, ids []string) error {
	if s.client == nil {
		return shared.ErrNotAuthenticated
	}

	trackIDs := make([]spotify.ID, len(ids))
	for i, id := range ids {
		trackIDs[i] = spotify.ID(id)
	}

	if _, err := s.client.AddTracksToPlaylist(ctx, spotify.ID(playlistID), trackIDs...); err != nil {
		return fmt.Errorf("%w: add %d tracks to %s: %v", shared.ErrAPIRequest, len(ids), playlistID, err)
	}
	return nil
}

// Playlist retrieves playlist metadata.
func (s *SpotifyService) Playlist(ctx context.Context, playlistID string) (*models.Playlist, error) {
	if s.client == nil {
		return nil, shared.ErrNotAuthenticated
	}

	pl, err := s.client.GetPlaylist(ctx, spotify.ID(playlistID))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", shared.ErrPlaylistNotFound, playlistID, err)
	}
	return &models.Playlist{
		ID:         string(pl.ID),
		Name:       pl.Name,
		TrackCount: int(pl.Tracks.Total),
	}, nil
}

func toCandidate(t spotify.FullTrack) models.Candidate {
	artists := make([]string, 0, len(t.Artists))
	for _, a := range t.Artists {
		artists = append(artists, a.Name)
	}
	return models.Candidate{ID: string(t.ID), Name: t.Name, ArtistNames: artists}
}
