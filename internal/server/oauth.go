package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/desertthunder/amsync/internal/shared"
	"golang.org/x/oauth2"
)

const authorizedPage = `<!DOCTYPE html>
<html>
<head><title>amsync</title></head>
<body style="font-family: sans-serif; text-align: center; margin-top: 20vh">
<h1 style="color: #1DB954">Spotify authorized</h1>
<p>Return to the terminal; the sync continues there.</p>
</body>
</html>
`

// OAuthResult contains the result of an OAuth authorization flow.
type OAuthResult struct {
	Token *oauth2.Token
	err   error
}

func (o *OAuthResult) Error() error {
	return o.err
}

// Exchanger trades an authorization code for a token (services.SpotifyService).
type Exchanger interface {
	Exchange(ctx context.Context, code string, opts ...oauth2.AuthCodeOption) (*oauth2.Token, error)
}

// OAuthHandler serves the redirect URI of the authorization code flow. It accepts exactly one callback.
type OAuthHandler struct {
	exchanger Exchanger
	path      string
	state     string

	mu     sync.Mutex
	served bool
	once   sync.Once
	result chan OAuthResult
}

// NewOAuthHandler creates a handler for path (the redirect URI's path, "/callback" when empty) expecting state.
func NewOAuthHandler(exchanger Exchanger, path, state string) *OAuthHandler {
	if path == "" {
		path = "/callback"
	}
	return &OAuthHandler{
		exchanger: exchanger,
		path:      path,
		state:     state,
		result:    make(chan OAuthResult, 1),
	}
}

// Routes returns the HTTP routes this handler serves.
func (h *OAuthHandler) Routes() []string {
	return []string{h.path}
}

// claim reports whether this is the first callback.
func (h *OAuthHandler) claim() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.served {
		return false
	}
	h.served = true
	return true
}

// ServeHTTP checks the state, exchanges the code and publishes the outcome on [OAuthHandler.Result].
func (h *OAuthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !h.claim() {
		http.Error(w, "Callback already processed", http.StatusBadRequest)
		return
	}

	q := r.URL.Query()
	if q.Get("state") != h.state {
		h.fail(w, http.StatusBadRequest, "Invalid state parameter", fmt.Errorf("%w: invalid state parameter", shared.ErrAuthFailed))
		return
	}

	code := q.Get("code")
	if code == "" {
		err := fmt.Errorf("%w: %s - %s", shared.ErrAuthFailed, q.Get("error"), q.Get("error_description"))
		h.fail(w, http.StatusBadRequest, "Authorization failed", err)
		return
	}

	token, err := h.exchanger.Exchange(r.Context(), code)
	if err != nil {
		h.fail(w, http.StatusInternalServerError, "Token exchange failed", err)
		return
	}

	h.Send(OAuthResult{Token: token})
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, authorizedPage)
}

func (h *OAuthHandler) fail(w http.ResponseWriter, status int, msg string, err error) {
	h.Send(OAuthResult{err: err})
	http.Error(w, msg, status)
}

// Send publishes result. Only the first call has any effect.
func (h *OAuthHandler) Send(result OAuthResult) {
	h.once.Do(func() {
		h.result <- result
		close(h.result)
	})
}

// Result returns the channel that receives exactly one result and is then closed.
func (h *OAuthHandler) Result() <-chan OAuthResult {
	return h.result
}
