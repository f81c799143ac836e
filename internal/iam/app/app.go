package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // драйвер database/sql для goose
	"github.com/pressly/goose/v3"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	iamhttp "github.com/MaruthamSatishReddy/easyToBuy/internal/iam/api/http"
	"github.com/MaruthamSatishReddy/easyToBuy/internal/iam/config"
	"github.com/MaruthamSatishReddy/easyToBuy/internal/iam/repository/postgres"
	redisrepo "github.com/MaruthamSatishReddy/easyToBuy/internal/iam/repository/redis"
	"github.com/MaruthamSatishReddy/easyToBuy/internal/iam/service"
	"github.com/MaruthamSatishReddy/easyToBuy/platform/observability"
	"github.com/MaruthamSatishReddy/easyToBuy/platform/shutdown"
)

// App собранный сервис аутентификации
type App struct {
	cfg      *config.Config
	logger   *zap.Logger
	server   *http.Server
	shutdown *shutdown.Manager
}

// Build собирает сервис: миграции, пул PostgreSQL, Redis, HTTP-сервер
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	manager := shutdown.New(cfg.ShutdownTimeout, logger)

	otelShutdown, err := observability.Init(ctx, observability.Config{
		Enabled:               cfg.OTELEnabled,
		OTLPEndpoint:          cfg.OTELEndpoint,
		SamplingRatio:         1.0,
		ServiceName:           "iam",
		DeploymentEnvironment: cfg.Env,
	})
	if err != nil {
		return nil, fmt.Errorf("init observability: %w", err)
	}
	manager.Add("observability", otelShutdown)

	if err := runMigrations(cfg.PostgresDSN, cfg.MigrationsDir); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	manager.Add("postgres pool", shutdown.ClosePool(pool))

	redisClient := goredis.NewClient(&goredis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	manager.Add("redis client", shutdown.CloseCloser(redisClient))

	users := postgres.NewRepository(pool)
	sessions := redisrepo.NewSessionRepository(redisClient)
	svc := service.New(users, sessions, cfg.SessionTTL, logger)
	handler := iamhttp.NewHandler(svc, logger)

	readiness := func() bool {
		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return pool.Ping(pingCtx) == nil && redisClient.Ping(pingCtx).Err() == nil
	}
	router := iamhttp.NewRouter(handler, logger, readiness)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	manager.Add("http server", shutdown.ShutdownHTTPServer(server))

	return &App{
		cfg:      cfg,
		logger:   logger,
		server:   server,
		shutdown: manager,
	}, nil
}

// Run запускает HTTP-сервер и блокируется до сигнала остановки
func (a *App) Run() error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http server starting", zap.String("addr", a.cfg.HTTPAddr))
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	done := make(chan struct{})
	go func() {
		a.shutdown.Wait()
		close(done)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-done:
		return nil
	}
}

func runMigrations(dsn, dir string) error {
	db, err := goose.OpenDBWithDriver("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open db for migrations: %w", err)
	}
	defer db.Close()

	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}
