// Package services defines the [Service] interface for the destination catalog and the [PageFetcher]
// interface for source pages, with implementations for Spotify and Apple Music.
//
// # Spotify Implementation
//
// [SpotifyService] wraps the zmb3/spotify client. Authorization uses the OAuth2 authorization code
// flow through [OAuthService]; the token's refresh is handled by the oauth2 transport. Searches pass
// through a token-bucket limiter.
//
// [CachedService] memoizes search results so repeated identical queries within a process cost one
// round trip.
//
// # Apple Music Implementation
//
// [AppleMusicService] fetches public playlist pages with a desktop browser User-Agent and a bounded
// timeout and parses them into a goquery document. There is no Apple Music API involved.
//
// # Error Handling
//
// Services use typed errors from the shared package:
//   - [shared.ErrNotAuthenticated] : Authenticate() not called
//   - [shared.ErrMissingCredentials] : client id or secret missing
//   - [shared.ErrAPIRequest] : catalog request failed
//   - [shared.ErrFetchFailed] : page fetch failed or returned a non-2xx status
package services
