package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/desertthunder/amsync/internal/services"
	"github.com/desertthunder/amsync/internal/shared"
	"github.com/desertthunder/amsync/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Sync scrapes the configured Apple Music page and adds the tracks missing from the Spotify playlist.
//
// Credentials are validated before any network call.
func (r *Runner) Sync(ctx context.Context, cmd *cli.Command) error {
	if source := cmd.String("source"); source != "" {
		r.config.Sync.SourceURL = source
	}
	if playlist := cmd.String("playlist"); playlist != "" {
		r.config.Sync.PlaylistID = playlist
	}

	if err := r.config.Validate(); err != nil {
		if errors.Is(err, shared.ErrMissingConfig) {
			r.writePlain("Error: Missing environment variables: %s\n", missingVariables(err))
			r.writePlain("Copy .env.example to .env and fill in your Spotify credentials.\n")
		}
		return err
	}

	catalog, err := r.catalog()
	if err != nil {
		return err
	}

	logger := shared.WithLogger(r.logger, "playlist", r.config.Sync.PlaylistID)
	opts := []tasks.EngineOption{
		tasks.WithLogger(logger),
		tasks.WithConnector(r.connector(catalog)),
	}

	if !cmd.Bool("no-history") {
		db, repo, err := r.openHistory()
		if err != nil {
			logger.Warn("run history disabled", "error", err)
		} else {
			defer db.Close()
			opts = append(opts, tasks.WithRecorder(repo))
		}
	}

	engine := tasks.NewPlaylistEngine(r.fetcher, services.NewCachedService(catalog, r.searchCacheTTL()), opts...)

	progress := make(chan tasks.ProgressUpdate)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			r.report.Progress(update)
		}
	}()

	result, err := engine.Run(ctx, tasks.Request{
		SourceURL:  r.config.Sync.SourceURL,
		PlaylistID: r.config.Sync.PlaylistID,
		DryRun:     cmd.Bool("dry-run"),
	}, progress)
	close(progress)
	<-done

	if token, tokenErr := catalog.Token(); tokenErr == nil {
		if err := r.saveTokens(token); err != nil {
			logger.Warn("failed to save refreshed token", "error", err)
		}
	}

	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}
	if result.RunID != "" {
		logger.Debug("run recorded", "id", result.RunID)
	}
	if result.Found == 0 {
		return nil
	}

	r.report.Summary(result)
	r.report.Review(result)
	return nil
}

// connector authenticates catalog with the stored token, or interactively when there is none
// or the stored one is rejected.
func (r *Runner) connector(catalog Catalog) tasks.Connector {
	return tasks.ConnectorFunc(func(ctx context.Context) (string, error) {
		if token := r.config.Credentials.Spotify.Token(); token != nil {
			if err := catalog.Authenticate(ctx, token); err != nil {
				return "", err
			}
			user, err := catalog.CurrentUser(ctx)
			if err == nil {
				return user, nil
			}
			r.logger.Warn("stored token rejected, starting authorization", "error", err)
		}

		token, err := r.doOAuth(ctx, catalog)
		if err != nil {
			return "", err
		}
		if err := r.saveTokens(token); err != nil {
			r.logger.Warn("failed to save token", "error", err)
		}
		if err := catalog.Authenticate(ctx, token); err != nil {
			return "", err
		}
		return catalog.CurrentUser(ctx)
	})
}

// missingVariables returns the variable list of a [shared.ErrMissingConfig] error.
func missingVariables(err error) string {
	_, names, ok := strings.Cut(err.Error(), shared.ErrMissingConfig.Error()+": ")
	if !ok {
		return err.Error()
	}
	return names
}
