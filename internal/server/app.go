// Package server assembles and runs the todo API: storage, credential
// services and the HTTP surface, with graceful shutdown on SIGINT/SIGTERM.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/todokeeper/internal/logging"
	"github.com/dmitrijs2005/todokeeper/internal/server/auth"
	"github.com/dmitrijs2005/todokeeper/internal/server/config"
	"github.com/dmitrijs2005/todokeeper/internal/server/httpapi"
	"github.com/dmitrijs2005/todokeeper/internal/server/pagination"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/todokeeper/internal/server/services"
	"golang.org/x/sync/errgroup"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	storage repomanager.RepositoryManager
	server  *httpapi.Server
}

// NewApp opens storage, applies migrations and builds the HTTP server.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, err := logging.New(c.LogFormat, os.Stdout)
	if err != nil {
		return nil, err
	}

	storage, err := repomanager.Open(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := storage.RunMigrations(ctx); err != nil {
		_ = storage.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	handler, err := NewHandler(c, storage, logger)
	if err != nil {
		_ = storage.Close()
		return nil, err
	}

	srv := httpapi.NewServer(c.EndpointAddrHTTP, handler, c.ShutdownTimeout, logger)
	return &App{config: c, logger: logger, storage: storage, server: srv}, nil
}

// NewHandler wires hasher, signer and services over storage into the router.
func NewHandler(c *config.Config, storage repomanager.RepositoryManager, logger logging.Logger) (http.Handler, error) {
	hasher, err := auth.NewHasher(c.PasswordHasher, c.BcryptCost)
	if err != nil {
		return nil, err
	}

	signer, err := auth.NewSigner(
		[]byte(c.AccessTokenSecret),
		[]byte(c.RefreshTokenSecret),
		c.AccessTokenValidityDuration,
		c.RefreshTokenValidityDuration,
	)
	if err != nil {
		return nil, err
	}

	return httpapi.NewRouter(httpapi.Deps{
		Users:    services.NewUserService(storage, hasher, signer, logger),
		Todos:    services.NewTodoService(storage, logger),
		Verifier: signer,
		Pages: pagination.Defaults{
			Size: c.PaginationDefaultSize,
			Page: c.PaginationDefaultPage,
		},
		Health:  storage,
		Metrics: httpapi.NewMetrics(),
		Log:     logger,
	}), nil
}

// Run serves until ctx is cancelled or a termination signal arrives, then
// closes storage.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	app.logger.Info(ctx, "Starting app...", "addr", app.config.EndpointAddrHTTP)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return app.server.Run(ctx) })

	err := g.Wait()
	if cerr := app.storage.Close(); cerr != nil {
		app.logger.Error(ctx, "storage close failed", "error", cerr)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		app.logger.Error(ctx, "app exited with error", "error", err)
		return err
	}

	app.logger.Info(ctx, "app shut down cleanly")
	return nil
}
