package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/desertthunder/amsync/internal/extract"
	"github.com/desertthunder/amsync/internal/server"
	"github.com/desertthunder/amsync/internal/services"
	"github.com/desertthunder/amsync/internal/shared"
	"github.com/urfave/cli/v3"
)

// Scrape fetches a playlist page and prints its tracks.
//
// Falls back to the configured source URL when no argument is given.
func (r *Runner) Scrape(ctx context.Context, cmd *cli.Command) error {
	pageURL := cmd.StringArg("url")
	if pageURL == "" {
		pageURL = r.config.Sync.SourceURL
	}
	if !services.IsAppleMusicURL(pageURL) {
		return fmt.Errorf("%w: %q", shared.ErrInvalidURL, pageURL)
	}

	r.logger.Debug("scraping playlist", "url", pageURL)
	doc, err := r.fetcher.FetchPage(ctx, pageURL)
	if err != nil {
		return err
	}
	result := extract.Extract(doc)

	if cmd.Bool("json") {
		resp := server.ScrapeResponse{Tracks: result.Tracks, PlaylistName: result.PlaylistName}
		if len(result.Tracks) == 0 {
			resp.Error = server.NoTracksMessage
		}
		return r.writeJSON(resp, cmd.Bool("pretty"))
	}

	if len(result.Tracks) == 0 {
		return r.writePlain("%s\n", server.NoTracksMessage)
	}

	if result.PlaylistName != "" {
		r.writePlain("Playlist: %s\n", result.PlaylistName)
	}
	r.writePlain("Found %d tracks (%s):\n\n", len(result.Tracks), result.Strategy)
	for i, track := range result.Tracks {
		r.writePlain("%d. %s\n", i+1, track)
	}
	return nil
}

// Serve runs the scrape endpoint until the context is cancelled.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	host := r.config.Server.Host
	if h := cmd.String("host"); h != "" {
		host = h
	}
	port := r.config.Server.Port
	if p := cmd.Int("port"); p > 0 {
		port = p
	}
	addr := net.JoinHostPort(host, strconv.Itoa(port))

	logger := shared.WithLogger(r.logger, "addr", addr)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           server.NewAPI(r.fetcher, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("serving scrape endpoint", "route", "/api/scrape")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
		close(serverErrors)
	}()

	select {
	case err := <-serverErrors:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}
