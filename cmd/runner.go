package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/mymusic/internal/repositories"
	"github.com/desertthunder/mymusic/internal/services"
	"github.com/desertthunder/mymusic/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
//
// The database is opened lazily by the commands that need it and closed when the app exits.
type Runner struct {
	config      *shared.Config
	configFixed bool
	logger      *log.Logger
	output      io.Writer
	db          *sql.DB
	ownsDB      bool
	store       *repositories.Store
	service     *services.PlaylistService
}

// RunnerOpts contains configuration options for creating a Runner.
//
// A non-nil Config is used as is and the --config flag is ignored. A non-nil DB is used instead of
// opening config.Database.Path and is never closed by the Runner.
type RunnerOpts struct {
	Config *shared.Config
	Logger *log.Logger
	Output io.Writer
	DB     *sql.DB
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	r := &Runner{config: opts.Config, configFixed: opts.Config != nil, logger: opts.Logger, output: opts.Output}
	if r.config == nil {
		r.config = shared.DefaultConfig()
	}
	if r.logger == nil {
		r.logger = shared.NewLogger(nil)
	}
	if r.output == nil {
		r.output = os.Stdout
	}
	if opts.DB != nil {
		r.setDB(opts.DB)
	}
	return r
}

// Command builds the root command of the mymusic binary.
func (r *Runner) Command() *cli.Command {
	return &cli.Command{
		Name:      "mymusic",
		Usage:     "Manage playlists and their musics",
		Version:   "0.1.0",
		Writer:    r.output,
		ErrWriter: r.output,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Before:   r.before,
		After:    r.after,
		Commands: r.register(),
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, serveCommand, playlistCommand, musicCommand, artistCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// before loads the configuration named by --config, falling back to defaults when the file is missing.
func (r *Runner) before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if !r.configFixed {
		path := cmd.String("config")
		if _, err := os.Stat(path); err == nil {
			config, err := shared.LoadConfig(path)
			if err != nil {
				return ctx, err
			}
			r.config = config
		} else {
			r.logger.Debug("config file not found, using defaults", "path", path)
		}
	}

	if err := shared.ConfigureLogger(r.logger, r.config.Log.Level); err != nil {
		return ctx, err
	}
	return ctx, nil
}

func (r *Runner) after(ctx context.Context, cmd *cli.Command) error {
	return r.Close()
}

// Close releases the database when the Runner opened it.
func (r *Runner) Close() error {
	if r.db == nil || !r.ownsDB {
		return nil
	}
	err := r.db.Close()
	r.db, r.store, r.service = nil, nil, nil
	return err
}

// open connects to the configured database and applies pending migrations.
func (r *Runner) open() error {
	if r.db != nil {
		return nil
	}

	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	r.setDB(db)
	r.ownsDB = true
	r.logger.Debug("database ready", "path", r.config.Database.Path)
	return nil
}

func (r *Runner) setDB(db *sql.DB) {
	r.db = db
	r.store = repositories.NewStore(db)
	r.service = services.NewPlaylistService(r.store, r.config.Service.Timeout())
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

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
