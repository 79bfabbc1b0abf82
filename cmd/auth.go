package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/desertthunder/amsync/internal/server"
	"github.com/desertthunder/amsync/internal/services"
	"github.com/desertthunder/amsync/internal/shared"
	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"
)

// authTimeout bounds how long the callback server waits for the browser.
var authTimeout = 2 * time.Minute

// Auth performs the OAuth2 authorization flow for Spotify and saves the token.
//
// Starts a local HTTP server on the redirect URI, opens the browser for user authorization, and exchanges the code for tokens.
func (r *Runner) Auth(ctx context.Context, cmd *cli.Command) error {
	catalog, err := r.catalog()
	if err != nil {
		return err
	}

	token, err := r.doOAuth(ctx, catalog)
	if err != nil {
		return err
	}

	if err := r.saveTokens(token); err != nil {
		return err
	}

	if err := catalog.Authenticate(ctx, token); err != nil {
		return err
	}
	user, err := catalog.CurrentUser(ctx)
	if err != nil {
		return err
	}

	r.writePlainln("✓ Authorization successful")
	r.writePlain("Logged in as: %s\n", user)
	if r.configPath != "" {
		r.writePlain("✓ Tokens saved to %s\n", r.configPath)
	}
	return nil
}

// doOAuth executes the OAuth2 authorization flow with a local HTTP server listening on the redirect URI.
func (r *Runner) doOAuth(ctx context.Context, oauthSrv services.OAuthService) (*oauth2.Token, error) {
	state, err := shared.GenerateState()
	if err != nil {
		return nil, fmt.Errorf("failed to generate state token: %w", err)
	}

	addr, path, err := r.config.Credentials.Spotify.CallbackAddr()
	if err != nil {
		return nil, err
	}

	oauthHandler := server.NewOAuthHandler(oauthSrv, path, state)
	router := server.NewBasicRouter()
	router.Use(server.Logging(r.logger))
	router.Handler(oauthHandler)

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	httpServer := &http.Server{Handler: router, ReadHeaderTimeout: 10 * time.Second}
	serverErrors := make(chan error, 1)
	go func() {
		r.logger.Debugf("starting OAuth callback server at %v", addr)
		if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			r.logger.Warn("error shutting down server", "error", err)
		}
	}()

	authURL := oauthSrv.AuthURL(state)
	r.writePlain("→ Opening browser for Spotify authorization...\n")
	if err := r.openBrowser(authURL); err != nil {
		r.logger.Warnf("failed to open browser automatically %v", err)
		r.writePlainln("⚠ Could not open browser automatically.")
		r.writePlain("Please open this URL in your browser:\n%s\n\n", authURL)
	}

	r.writePlain("→ Waiting for authorization (%v timeout)...\n", authTimeout)

	timeout := time.NewTimer(authTimeout)
	defer timeout.Stop()

	var result server.OAuthResult
	select {
	case result = <-oauthHandler.Result():
	case err := <-serverErrors:
		return nil, fmt.Errorf("server error: %w", err)
	case <-timeout.C:
		return nil, fmt.Errorf("%w: authorization timed out after %v", shared.ErrTimeout, authTimeout)
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	if result.Error() != nil {
		return nil, fmt.Errorf("authorization failed: %w", result.Error())
	}
	if result.Token == nil {
		return nil, fmt.Errorf("%w: no token received", shared.ErrAuthFailed)
	}

	return result.Token, nil
}
