package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/desertthunder/mymusic/internal/server"
	"github.com/desertthunder/mymusic/internal/services"
	"github.com/desertthunder/mymusic/internal/shared"
	"github.com/urfave/cli/v3"
)

// Serve starts the HTTP API and blocks until SIGINT or SIGTERM.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	if host := cmd.String("host"); host != "" {
		r.config.Server.Host = host
	}
	if port := cmd.Int("port"); port > 0 {
		r.config.Server.Port = int(port)
	}

	router, err := r.router(ctx)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := shared.WithLogger(r.logger, "component", "server")
	return server.NewServer(r.config.Server.Addr(), router, logger).Run(ctx)
}

// router opens the database and wires the API routes, authenticating through the token
// provider when one is configured.
func (r *Runner) router(ctx context.Context) (*server.BasicRouter, error) {
	if err := r.open(); err != nil {
		return nil, err
	}

	opts := server.RouterOptions{
		Logger:    shared.WithLogger(r.logger, "component", "api"),
		RateLimit: r.config.Server.RateLimit,
		Burst:     r.config.Server.Burst,
	}

	if r.config.Auth.Enabled() {
		provider, err := services.NewTokenProviderFromConfig(ctx, r.config.Auth)
		if err != nil {
			return nil, fmt.Errorf("failed to configure token provider: %w", err)
		}
		opts.Auth = provider
		r.logger.Info("token authentication enabled", "provider", r.config.Auth.TokenProviderURL)
	}

	return server.NewAPIRouter(r.service, opts), nil
}
