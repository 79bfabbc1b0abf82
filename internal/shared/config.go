package shared

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"golang.org/x/oauth2"
)

//go:embed config.example.toml
var exampleConf []byte

const (
	DefaultConfigPath  = "config.toml"
	DefaultEnvPath     = ".env"
	DefaultRedirectURI = "http://127.0.0.1:8080/callback"
)

// Environment variable names read by [Config.ApplyEnv].
const (
	EnvClientID     = "SPOTIPY_CLIENT_ID"
	EnvClientSecret = "SPOTIPY_CLIENT_SECRET"
	EnvRedirectURI  = "SPOTIPY_REDIRECT_URI"
	EnvSourceURL    = "APPLE_MUSIC_URL"
	EnvPlaylistID   = "SPOTIFY_PLAYLIST_ID"
	EnvDatabasePath = "AMSYNC_DB_PATH"
)

// Config represents the application configuration loaded from a TOML file and the environment.
type Config struct {
	Credentials CredentialsConfig `toml:"credentials"`
	Sync        SyncConfig        `toml:"sync"`
	Database    DatabaseConfig    `toml:"database"`
	Server      ServerConfig      `toml:"server"`
}

// CredentialsConfig contains service-specific credentials.
type CredentialsConfig struct {
	Spotify SpotifyConfig `toml:"spotify"`
}

// SpotifyConfig contains Spotify API credentials and the cached OAuth token.
type SpotifyConfig struct {
	ClientID     string    `toml:"client_id"`
	ClientSecret string    `toml:"client_secret"`
	RedirectURI  string    `toml:"redirect_uri"`
	AccessToken  string    `toml:"access_token,omitempty"`
	RefreshToken string    `toml:"refresh_token,omitempty"`
	TokenType    string    `toml:"token_type,omitempty"`
	Expiry       time.Time `toml:"expiry,omitempty"`
}

// SyncConfig names the source page and destination playlist of a sync run.
type SyncConfig struct {
	SourceURL          string  `toml:"source_url"`
	PlaylistID         string  `toml:"playlist_id"`
	SearchRate         float64 `toml:"search_rate"`
	SearchCacheMinutes int     `toml:"search_cache_minutes"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// ServerConfig contains HTTP server settings for the scrape endpoint.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// Update stores the given OAuth token.
func (s *SpotifyConfig) Update(token *oauth2.Token) error {
	if token == nil {
		return fmt.Errorf("%w: token is nil", ErrInvalidInput)
	}
	s.AccessToken = token.AccessToken
	if token.RefreshToken != "" {
		s.RefreshToken = token.RefreshToken
	}
	s.TokenType = token.TokenType
	s.Expiry = token.Expiry
	return nil
}

// Token returns the stored OAuth token, or nil when none has been saved.
func (s SpotifyConfig) Token() *oauth2.Token {
	if s.AccessToken == "" && s.RefreshToken == "" {
		return nil
	}
	return &oauth2.Token{
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		TokenType:    s.TokenType,
		Expiry:       s.Expiry,
	}
}

// CallbackAddr returns the host:port and path the OAuth redirect URI points at.
func (s SpotifyConfig) CallbackAddr() (addr, path string, err error) {
	u, err := url.Parse(s.RedirectURI)
	if err != nil {
		return "", "", fmt.Errorf("%w: redirect URI: %v", ErrInvalidConfig, err)
	}
	if u.Host == "" {
		return "", "", fmt.Errorf("%w: redirect URI %q has no host", ErrInvalidConfig, s.RedirectURI)
	}
	path = u.Path
	if path == "" {
		path = "/"
	}
	return u.Host, path, nil
}

// ApplyEnv overrides configuration values with the environment variables that lookup reports as set.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	for name, target := range map[string]*string{
		EnvClientID:     &c.Credentials.Spotify.ClientID,
		EnvClientSecret: &c.Credentials.Spotify.ClientSecret,
		EnvRedirectURI:  &c.Credentials.Spotify.RedirectURI,
		EnvSourceURL:    &c.Sync.SourceURL,
		EnvPlaylistID:   &c.Sync.PlaylistID,
		EnvDatabasePath: &c.Database.Path,
	} {
		if v, ok := lookup(name); ok && strings.TrimSpace(v) != "" {
			*target = strings.TrimSpace(v)
		}
	}
}

// Validate reports every missing required credential, named by its environment variable.
func (c *Config) Validate() error {
	var missing []string
	if c.Credentials.Spotify.ClientID == "" {
		missing = append(missing, EnvClientID)
	}
	if c.Credentials.Spotify.ClientSecret == "" {
		missing = append(missing, EnvClientSecret)
	}
	if c.Credentials.Spotify.RedirectURI == "" {
		missing = append(missing, EnvRedirectURI)
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingConfig, strings.Join(missing, ", "))
	}
	if c.Sync.PlaylistID == "" {
		return fmt.Errorf("%w: playlist id is empty", ErrInvalidConfig)
	}
	return nil
}

// Load builds the effective configuration: embedded defaults, then the TOML file at path when it exists,
// then the .env file at envPath (never overriding variables already set), then the process environment.
func Load(path, envPath string) (*Config, error) {
	config := DefaultConfig()
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			loaded, err := LoadConfig(path)
			if err != nil {
				return nil, err
			}
			config = loaded
		}
	}

	if envPath != "" {
		if err := godotenv.Load(envPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envPath, err)
		}
	}

	config.ApplyEnv(os.LookupEnv)
	return config, nil
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// SaveConfig writes the configuration to path as TOML.
//
// The file holds OAuth tokens so it is written with owner-only permissions.
func SaveConfig(path string, config *Config) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(config); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}
