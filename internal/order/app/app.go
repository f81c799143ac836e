package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // драйвер database/sql для goose
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"

	orderhttp "github.com/MaruthamSatishReddy/easyToBuy/internal/order/api/http"
	"github.com/MaruthamSatishReddy/easyToBuy/internal/order/config"
	orderkafka "github.com/MaruthamSatishReddy/easyToBuy/internal/order/event/kafka"
	"github.com/MaruthamSatishReddy/easyToBuy/internal/order/repository/postgres"
	"github.com/MaruthamSatishReddy/easyToBuy/internal/order/service"
	"github.com/MaruthamSatishReddy/easyToBuy/platform/observability"
	"github.com/MaruthamSatishReddy/easyToBuy/platform/shutdown"
)

// App собранный сервис заказов
type App struct {
	cfg      *config.Config
	logger   *zap.Logger
	server   *http.Server
	shutdown *shutdown.Manager
}

// Build собирает сервис: миграции, пул PostgreSQL, Kafka-продюсер, HTTP-сервер
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	manager := shutdown.New(cfg.ShutdownTimeout, logger)

	// Телеметрия
	otelShutdown, err := observability.Init(ctx, observability.Config{
		Enabled:               cfg.OTELEnabled,
		OTLPEndpoint:          cfg.OTELEndpoint,
		SamplingRatio:         1.0,
		ServiceName:           "order",
		DeploymentEnvironment: cfg.Env,
	})
	if err != nil {
		return nil, fmt.Errorf("init observability: %w", err)
	}
	manager.Add("observability", otelShutdown)

	// Миграции перед открытием пула
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

	publisher := orderkafka.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger)
	manager.Add("kafka publisher", shutdown.CloseCloser(publisher))

	repo := postgres.NewRepository(pool)
	svc := service.New(repo, publisher, logger)
	handler := orderhttp.NewHandler(svc, logger)

	readiness := func() bool {
		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return pool.Ping(pingCtx) == nil
	}
	router := orderhttp.NewRouter(handler, logger, readiness)

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

// runMigrations применяет goose-миграции через database/sql поверх pgx
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
