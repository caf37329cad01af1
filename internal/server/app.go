// Package server initializes and runs the contacts API server.
// It opens the database, applies migrations, wires the services and runs the
// HTTP server until a termination signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/contactkeeper/internal/logging"
	"github.com/dmitrijs2005/contactkeeper/internal/server/config"
	"github.com/dmitrijs2005/contactkeeper/internal/server/metrics"
	"github.com/dmitrijs2005/contactkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/contactkeeper/internal/server/rest"
	"github.com/dmitrijs2005/contactkeeper/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *rest.Server
}

// openDB is a seam for tests.
var openDB = repomanager.Open

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)
	return newApp(ctx, c, logger, repomanager.NewPostgresRepositoryManager())
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger, rm repomanager.RepositoryManager) (*App, error) {
	db, err := openDB(ctx, c.DatabaseDriver, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if c.RunMigrations {
		if err := rm.RunMigrations(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("db init error: %w", err)
		}
		logger.Info(ctx, "Migrations applied")
	}

	us, err := services.NewUserService(db, rm, c.BcryptCost)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("user service init error: %w", err)
	}
	cs := services.NewContactService(db, rm)
	as := services.NewAddressService(db, rm)

	srv := rest.NewServer(c, logger, metrics.New(), us, cs, as)

	return &App{config: c, logger: logger, db: db, server: srv}, nil
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

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run blocks until ctx is cancelled or a termination signal arrives, then
// stops the HTTP server and closes the database.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
