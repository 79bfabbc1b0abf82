// submodule cmd contains command definitions
package main

import (
	"github.com/desertthunder/amsync/internal/shared"
	"github.com/urfave/cli/v3"
)

// newApp builds the root command. Configuration is loaded once before any subcommand runs.
func newApp(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "amsync",
		Usage:   "Sync an Apple Music playlist page into a Spotify playlist",
		Version: "0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   shared.DefaultConfigPath,
			},
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "Path to .env file",
				Value: shared.DefaultEnvPath,
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Enable debug logging",
			},
		},
		Before:   r.Load,
		Commands: r.register(),
	}
}

// syncCommand scrapes the source page and appends missing tracks to the Spotify playlist
func syncCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "sync",
		Usage: "Add the tracks of an Apple Music playlist page to a Spotify playlist",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "source",
				Aliases: []string{"s"},
				Usage:   "Apple Music playlist URL (overrides APPLE_MUSIC_URL)",
			},
			&cli.StringFlag{
				Name:    "playlist",
				Aliases: []string{"p"},
				Usage:   "Spotify playlist ID (overrides SPOTIFY_PLAYLIST_ID)",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Match and deduplicate without adding tracks",
			},
			&cli.BoolFlag{
				Name:  "no-history",
				Usage: "Do not record the run in the history database",
			},
		},
		Action: r.Sync,
	}
}

// scrapeCommand prints the track listing of a playlist page
func scrapeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "scrape",
		Usage: "Print the tracks found on an Apple Music playlist page",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "url",
			},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output the scrape endpoint's JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
				Value: true,
			},
		},
		Action: r.Scrape,
	}
}

// serveCommand runs the scrape endpoint
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve POST /api/scrape",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Address to listen on (defaults to server.host)",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "Port to listen on (defaults to server.port)",
			},
		},
		Action: r.Serve,
	}
}

// authCommand performs the Spotify OAuth flow
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "auth",
		Usage:  "Authorize with Spotify and save the token to the config file",
		Action: r.Auth,
	}
}

// setupCommand creates the config file and the history database
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "setup",
		Usage:  "Create config.toml from the template and run database migrations",
		Action: r.Setup,
	}
}

// historyCommand inspects recorded sync runs
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Inspect recorded sync runs",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List runs, newest first",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of runs to show",
						Value: 20,
					},
					&cli.StringFlag{
						Name:  "status",
						Usage: "Only show runs with this status (running, completed, failed)",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.HistoryList,
			},
			{
				Name:  "show",
				Usage: "Show one run with its track outcomes",
				Arguments: []cli.Argument{
					&cli.IntArg{
						Name: "run",
					},
				},
				Action: r.HistoryShow,
			},
			{
				Name:  "export",
				Usage: "Export the tracks of a run that were not found on Spotify",
				Arguments: []cli.Argument{
					&cli.IntArg{
						Name: "run",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format (csv or json)",
						Value:   "csv",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path",
					},
				},
				Action: r.HistoryExport,
			},
			{
				Name:  "delete",
				Usage: "Delete a run",
				Arguments: []cli.Argument{
					&cli.IntArg{
						Name: "run",
					},
				},
				Action: r.HistoryDelete,
			},
		},
	}
}
