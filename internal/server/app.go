// Package server initializes and runs the account backend: PostgreSQL
// storage with migrations, the Redis sign-in throttle, outbound mail and the
// HTTP API, with graceful shutdown on OS signals.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"

	"github.com/kampanlabs/sawari/internal/logging"
	"github.com/kampanlabs/sawari/internal/server/config"
	"github.com/kampanlabs/sawari/internal/server/httpapi"
	"github.com/kampanlabs/sawari/internal/server/mailer"
	"github.com/kampanlabs/sawari/internal/server/ratelimit"
	"github.com/kampanlabs/sawari/internal/server/repositories/repomanager"
	"github.com/kampanlabs/sawari/internal/server/services"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	redis  *redis.Client
	api    *httpapi.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm, err := repomanager.NewPostgresRepositoryManager(db)
	if err != nil {
		return nil, fmt.Errorf("repository init error: %w", err)
	}
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	throttle := ratelimit.NewLimiter(redisClient, cfg.LoginMaxAttempts, cfg.LoginWindow)

	mail := mailer.NewLogMailer(logger)

	identity := services.NewIdentityService(db, rm, throttle, mail, cfg)
	profiles := services.NewProfileService(db, rm)
	avatars := services.NewAvatarService(cfg)

	api := httpapi.NewServer(cfg, logger, identity, profiles, avatars)

	return &App{
		config: cfg,
		logger: logger,
		db:     db,
		redis:  redisClient,
		api:    api,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves the HTTP API until ctx is cancelled or an OS signal arrives,
// then shuts down gracefully.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting server", "addr", app.config.EndpointAddr)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.api.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.api.Shutdown(shutdownCtx); err != nil {
		app.logger.Error(shutdownCtx, err.Error())
	}

	wg.Wait()

	if err := app.redis.Close(); err != nil {
		app.logger.Error(context.Background(), err.Error())
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error(context.Background(), err.Error())
	}

	app.logger.Info(context.Background(), "server stopped")
}
