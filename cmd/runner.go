package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/amsync/internal/formatter"
	"github.com/desertthunder/amsync/internal/repositories"
	"github.com/desertthunder/amsync/internal/services"
	"github.com/desertthunder/amsync/internal/shared"
	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"
)

// Catalog is the authenticated destination catalog used by sync and auth.
type Catalog interface {
	services.Service
	services.OAuthService
	CurrentUser(ctx context.Context) (string, error)
	Token() (*oauth2.Token, error)
}

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config      *shared.Config
	configPath  string
	fetcher     services.PageFetcher
	spotify     Catalog
	httpClient  *http.Client
	logger      *log.Logger
	output      io.Writer
	report      *formatter.Reporter
	openBrowser func(string) error
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Fetcher    services.PageFetcher
	Spotify    Catalog
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: services.DefaultFetchTimeout}
	}
	if opts.Fetcher == nil {
		opts.Fetcher = services.NewAppleMusicService(opts.HTTPClient)
	}

	return &Runner{
		config:      opts.Config,
		configPath:  opts.ConfigPath,
		fetcher:     opts.Fetcher,
		spotify:     opts.Spotify,
		httpClient:  opts.HTTPClient,
		logger:      opts.Logger,
		output:      opts.Output,
		report:      formatter.NewReporter(opts.Output),
		openBrowser: shared.OpenBrowser,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		syncCommand, scrapeCommand, serveCommand, authCommand, setupCommand, historyCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// Load reads the configuration file, the .env file and the environment before any command runs.
func (r *Runner) Load(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if cmd.Bool("verbose") {
		shared.SetLogLevel(r.logger, log.DebugLevel)
	}

	r.configPath = cmd.String("config")
	config, err := shared.Load(r.configPath, cmd.String("env-file"))
	if err != nil {
		return ctx, err
	}
	r.config = config
	r.logger.Debug("configuration loaded", "path", r.configPath, "playlist", config.Sync.PlaylistID)
	return ctx, nil
}

// catalog returns the injected catalog or builds a Spotify client from the configured credentials.
func (r *Runner) catalog() (Catalog, error) {
	if r.spotify != nil {
		return r.spotify, nil
	}
	svc, err := services.NewSpotifyService(r.config.Credentials.Spotify, services.WithSearchRate(r.config.Sync.SearchRate))
	if err != nil {
		return nil, fmt.Errorf("failed to create Spotify service: %w", err)
	}
	r.spotify = svc
	return svc, nil
}

// openHistory opens the run history database and applies pending migrations.
func (r *Runner) openHistory() (*sql.DB, *repositories.SyncRunRepository, error) {
	path := r.config.Database.Path
	if path == "" {
		return nil, nil, fmt.Errorf("%w: database path is empty", shared.ErrInvalidConfig)
	}

	db, err := shared.NewDatabase(path)
	if err != nil {
		return nil, nil, err
	}
	if path != ":memory:" {
		shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)
	}

	if n, err := shared.RunMigrations(db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	} else if n > 0 {
		r.logger.Debug("applied migrations", "count", n)
	}

	return db, repositories.NewSyncRunRepository(db), nil
}

// saveTokens stores token in the in-memory config and, when a config path is known, writes the file.
func (r *Runner) saveTokens(token *oauth2.Token) error {
	if r.config == nil {
		return fmt.Errorf("config is nil")
	}
	if err := r.config.Credentials.Spotify.Update(token); err != nil {
		return fmt.Errorf("failed to update spotify configuration: %w", err)
	}
	if r.configPath == "" {
		return nil
	}
	if err := shared.SaveConfig(r.configPath, r.config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	r.logger.Debug("tokens saved", "path", r.configPath)
	return nil
}

func (r *Runner) searchCacheTTL() time.Duration {
	return time.Duration(r.config.Sync.SearchCacheMinutes) * time.Minute
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
