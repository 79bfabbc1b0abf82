// Package server provides HTTP routing, middleware, the playlist scrape endpoint and OAuth handling.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # Scrape Endpoint
//
// [ScrapeHandler] serves POST /api/scrape. The body is {"url": "..."}; the reply carries the extracted
// tracks and the playlist name. Status codes:
//   - 200 : tracks found, or none found (with an "error" note)
//   - 400 : the URL is empty or not an Apple Music URL
//   - 502 : the page could not be fetched
//   - 500 : anything else, including undecodable bodies and recovered panics
//
// [CORS] answers preflight requests and marks every response as callable from any origin.
// [NewAPI] assembles the router used by the serve command.
//
// # OAuth Callback Handler
//
// OAuthHandler implements the OAuth2 authorization code callback flow.
//
// The handler validates the state parameter (CSRF protection), exchanges the authorization code for tokens,
// and sends the result through a channel.
//
// It only processes one callback to prevent replay attacks.
//
// When the user runs the auth command (or sync without a stored token), a temporary HTTP server starts on the
// redirect URI's host and port, handles the callback, and shuts down after receiving the OAuth token.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
