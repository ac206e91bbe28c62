// Package server wires the personal data store together: it opens the
// database, applies migrations, builds the services and runs the HTTP API
// next to the gRPC health service until the process is signaled to stop.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/pdstore/internal/dbx"
	"github.com/dmitrijs2005/pdstore/internal/logging"
	"github.com/dmitrijs2005/pdstore/internal/server/auth"
	"github.com/dmitrijs2005/pdstore/internal/server/config"
	"github.com/dmitrijs2005/pdstore/internal/server/httpapi"
	"github.com/dmitrijs2005/pdstore/internal/server/metrics"
	"github.com/dmitrijs2005/pdstore/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/pdstore/internal/server/services"
	_ "github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/sync/errgroup"

	gs "github.com/dmitrijs2005/pdstore/internal/server/grpc"
)

type runner interface {
	Run(ctx context.Context) error
}

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	http   runner
	health runner
}

// openDB is replaced in tests.
var openDB = func(dsn string) (*sql.DB, error) {
	return sql.Open("pgx", dsn)
}

// NewApp opens and migrates the database described by c and builds the
// servers. The returned App owns the connection pool.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {

	db, err := openDB(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	return newApp(c, logger, db, rm), nil
}

func newApp(c *config.Config, logger logging.Logger, db *sql.DB, rm repomanager.RepositoryManager) *App {
	store := dbx.NewSQLDB(db)
	m := metrics.New()

	hasher := auth.NewHasher(c.BcryptCost)
	tokens := auth.NewTokenService([]byte(c.SecretKey), c.TokenTTL)

	us := services.NewUserService(store, rm, hasher, tokens, logger)
	ps := services.NewProfileService(store, rm, logger)

	h := httpapi.NewHandler(us, ps, tokens, m, logger, c.MaxBodyBytes)

	return &App{
		config: c,
		logger: logger,
		db:     db,
		http:   httpapi.NewHTTPServer(c.HTTPAddr, h.Routes(), logger, c.ShutdownTimeout),
		health: gs.NewHealthServer(c.GRPCHealthAddr, logger, db, c.HealthCheckInterval, m),
	}
}

// Run serves until ctx is canceled, SIGINT or SIGTERM arrives, or one of the
// servers fails. Both servers are stopped before Run returns.
func (app *App) Run(ctx context.Context) error {

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	defer app.db.Close()

	app.logger.Info(ctx, "Starting app...")

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := app.http.Run(ctx); err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := app.health.Run(ctx); err != nil {
			return fmt.Errorf("health server: %w", err)
		}
		return nil
	})

	err := g.Wait()
	app.logger.Info(context.WithoutCancel(ctx), "App stopped")
	return err
}
