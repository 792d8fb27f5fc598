package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/mymusic/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupDatabase creates the config file from the embedded template when it is missing,
// then initializes the database and runs migrations.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if !r.configFixed {
		if _, err := os.Stat(configPath); err != nil {
			r.logger.Info("config file not found, creating from template", "path", configPath)
			if err := shared.CreateConfigFile(configPath); err != nil {
				return fmt.Errorf("failed to create config file: %w", err)
			}
			config, err := shared.LoadConfig(configPath)
			if err != nil {
				return fmt.Errorf("failed to load created config: %w", err)
			}
			r.config = config
			r.logger.Info("config file created", "path", configPath)
		}
	}

	r.logger.Info("initializing database", "path", r.config.Database.Path)
	if err := r.open(); err != nil {
		return err
	}

	applied, err := shared.AppliedVersions(r.db)
	if err != nil {
		return err
	}

	r.logger.Infof("setup complete for database: %v", r.config.Database.Path)
	return r.writePlain("✓ Database ready at %s (%d migrations applied)\n", r.config.Database.Path, len(applied))
}
