package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/amsync/internal/shared"
	"github.com/urfave/cli/v3"
)

// Setup creates the config file from the embedded template when missing, then initializes the
// history database and runs migrations.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := r.configPath
	if configPath == "" {
		configPath = shared.DefaultConfigPath
	}

	if _, err := os.Stat(configPath); err == nil {
		r.logger.Info("using existing config file", "path", configPath)
	} else {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			return fmt.Errorf("failed to create config file: %w", err)
		}
		r.writePlain("✓ Created %s\n", configPath)
	}

	r.logger.Info("initializing database", "path", r.config.Database.Path)
	db, _, err := r.openHistory()
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	version, err := shared.CurrentVersion(db)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	r.writePlain("✓ Database ready at %s (schema version %d)\n", r.config.Database.Path, version)
	if err := r.config.Validate(); err != nil {
		r.writePlainln("Next steps:")
		r.writePlain("1. Set %s in %s or the environment\n", missingVariables(err), configPath)
		r.writePlain("2. Run 'amsync auth' to authorize with Spotify\n")
	}
	return nil
}
