// Package server wires configuration, storage, services and transports into
// a runnable application and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/libhub/internal/logging"
	"github.com/dmitrijs2005/libhub/internal/server/auth"
	"github.com/dmitrijs2005/libhub/internal/server/config"
	"github.com/dmitrijs2005/libhub/internal/server/httpapi"
	"github.com/dmitrijs2005/libhub/internal/server/repositories/memory"
	"github.com/dmitrijs2005/libhub/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/libhub/internal/server/services"
	"github.com/dmitrijs2005/libhub/internal/server/storage"

	gs "github.com/dmitrijs2005/libhub/internal/server/grpc"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	api    *httpapi.API
}

// openDatabase connects to PostgreSQL, or to the in-memory repositories
// when the DSN is memory.DSN. The latter still gets a single-connection
// *sql.DB (see memory.OpenDB) so transactions stay serialized.
func openDatabase(dsn string) (*sql.DB, repomanager.RepositoryManager, error) {
	if dsn == memory.DSN {
		db, err := memory.OpenDB()
		if err != nil {
			return nil, nil, err
		}
		return db, memory.NewInMemoryRepositoryManager(), nil
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, nil, err
	}
	return db, repomanager.NewPostgresRepositoryManager(), nil
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	db, rm, err := openDatabase(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	tokens, err := auth.NewTokenService(c.SecretKey, c.TokenValidityDuration)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("token service error: %w", err)
	}

	store, err := storage.New(ctx, c)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	opts := httpapi.Options{CORSOrigins: c.CORSOrigins}
	if ds, ok := store.(*storage.DiskStore); ok {
		opts.UploadDir = ds.Root()
	}

	api := httpapi.NewAPI(
		services.NewUserService(db, rm, tokens, c),
		services.NewLibraryService(db, rm),
		services.NewUploadService(store, c.MaxUploadSize),
		tokens,
		logger,
		opts,
	)

	if c.SecretKey == config.DefaultSecretKey {
		logger.Warn(ctx, "using the default JWT secret; set JWT_SECRET in production")
	}

	return &App{config: c, logger: logger, db: db, api: api}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// runServer runs one transport; its failure stops the whole app.
func (app *App) runServer(ctx context.Context, cancelFunc context.CancelFunc, name string, run func(context.Context) error) {
	if err := run(ctx); err != nil {
		app.logger.Error(ctx, "server failed", "server", name, "error", err)
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	httpServer := httpapi.NewServer(app.config.EndpointAddrHTTP, app.api)
	grpcServer := gs.NewHealthServer(app.config.EndpointAddrGRPC, app.logger, app.db)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.runServer(ctx, cancelFunc, "http", httpServer.Run)
	}()
	go func() {
		defer wg.Done()
		app.runServer(ctx, cancelFunc, "grpc", grpcServer.Run)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "error closing database", "error", err)
	}

	app.logger.Info(context.WithoutCancel(ctx), "App stopped")
}
