// Package server initializes and runs the application: it opens and migrates
// the database, builds the account services and serves the GraphQL API over
// HTTP with a gRPC health endpoint alongside, shutting both down on SIGINT or
// SIGTERM.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/gqlauth/internal/cryptox"
	"github.com/dmitrijs2005/gqlauth/internal/logging"
	"github.com/dmitrijs2005/gqlauth/internal/server/auth"
	"github.com/dmitrijs2005/gqlauth/internal/server/config"
	"github.com/dmitrijs2005/gqlauth/internal/server/graph"
	"github.com/dmitrijs2005/gqlauth/internal/server/httpserver"
	"github.com/dmitrijs2005/gqlauth/internal/server/metrics"
	"github.com/dmitrijs2005/gqlauth/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gqlauth/internal/server/services"
	"github.com/gin-gonic/gin"

	gs "github.com/dmitrijs2005/gqlauth/internal/server/grpc"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	db         *sql.DB
	httpServer *httpserver.Server
	grpcServer *gs.GRPCServer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	db, dialect, err := repomanager.Open(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	app, err := build(ctx, c, logger, db, dialect)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return app, nil
}

func build(ctx context.Context, c *config.Config, logger logging.Logger, db *sql.DB, dialect repomanager.Dialect) (*App, error) {
	rm, err := repomanager.NewRepositoryManager(dialect, repomanager.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, err
	}

	tokens, err := auth.NewTokenService(c.SecretKey, c.TokenValidityDuration)
	if err != nil {
		return nil, err
	}

	us := services.NewUserService(db, rm, tokens, cryptox.NewPasswordHasher(cryptox.DefaultArgon2Params))
	authn := auth.NewAuthenticator(tokens, us, logger)

	exec, err := graph.NewExecutor(us, logger)
	if err != nil {
		return nil, err
	}

	gin.SetMode(gin.ReleaseMode)
	hs := httpserver.New(c.EndpointAddrHTTP, exec, authn, db, metrics.New(), logger,
		httpserver.Options{StrictAuth: c.StrictAuth})

	app := &App{config: c, logger: logger, db: db, httpServer: hs}
	if c.EndpointAddrGRPC != "" {
		app.grpcServer = gs.NewGRPCServer(c.EndpointAddrGRPC, logger, db)
	}

	return app, nil
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case <-sigs:
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

// runServer runs one listener; a failure stops the whole app.
func (app *App) runServer(ctx context.Context, cancelFunc context.CancelFunc, name string, run func(context.Context) error) {
	if err := run(ctx); err != nil {
		app.logger.Error(ctx, "server failed", "server", name, "error", err)
		cancelFunc()
	}
}

// Run serves until ctx is cancelled or a signal arrives, then waits for the
// listeners to drain and closes the database.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(ctx, cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.runServer(ctx, cancelFunc, "http", app.httpServer.Run)
	}()

	if app.grpcServer != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.runServer(ctx, cancelFunc, "grpc", app.grpcServer.Run)
		}()
	}

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}

	app.logger.Info(context.Background(), "App stopped")
}
