package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/MaruthamSatishReddy/easyToBuy/internal/notification/config"
	"github.com/MaruthamSatishReddy/easyToBuy/internal/notification/email"
	notificationkafka "github.com/MaruthamSatishReddy/easyToBuy/internal/notification/event/kafka"
	"github.com/MaruthamSatishReddy/easyToBuy/internal/notification/service"
	"github.com/MaruthamSatishReddy/easyToBuy/internal/notification/templates"
	healthhttp "github.com/MaruthamSatishReddy/easyToBuy/platform/health/http"
	"github.com/MaruthamSatishReddy/easyToBuy/platform/observability"
	"github.com/MaruthamSatishReddy/easyToBuy/platform/shutdown"
)

// App собранный сервис уведомлений
type App struct {
	cfg      *config.Config
	logger   *zap.Logger
	server   *http.Server
	consumer *notificationkafka.Consumer
	shutdown *shutdown.Manager
}

// Build собирает сервис: отправитель писем, рендерер, Kafka-консьюмер, health endpoint
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	manager := shutdown.New(cfg.ShutdownTimeout, logger)

	otelShutdown, err := observability.Init(ctx, observability.Config{
		Enabled:               cfg.OTELEnabled,
		OTLPEndpoint:          cfg.OTELEndpoint,
		SamplingRatio:         1.0,
		ServiceName:           "notification",
		DeploymentEnvironment: cfg.Env,
	})
	if err != nil {
		return nil, fmt.Errorf("init observability: %w", err)
	}
	manager.Add("observability", otelShutdown)

	var sender email.Sender
	if cfg.SMTPAddr != "" {
		sender = email.NewSMTPSender(cfg.SMTPAddr, cfg.SMTPFrom, cfg.SMTPUsername, cfg.SMTPPassword)
	} else {
		logger.Warn("SMTP_ADDR not set, using noop email sender")
		sender = email.NewNoOpSender(logger)
	}

	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("create template renderer: %w", err)
	}

	svc := service.New(sender, renderer, logger)

	consumer := notificationkafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.Topic, cfg.KafkaGroupID, svc, logger)
	manager.Add("kafka consumer", shutdown.CloseCloser(consumer))

	router := chi.NewRouter()
	router.Use(chimiddleware.Recoverer)
	router.Get("/health", healthhttp.Handler(func() bool { return true }))

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
		consumer: consumer,
		shutdown: manager,
	}, nil
}

// Run запускает консьюмера и HTTP-сервер, блокируется до сигнала остановки
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 2)

	go func() {
		if err := a.consumer.Run(ctx); err != nil {
			errCh <- fmt.Errorf("kafka consumer: %w", err)
		}
	}()

	go func() {
		a.logger.Info("http server starting", zap.String("addr", a.cfg.HTTPAddr))
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	done := make(chan struct{})
	go func() {
		a.shutdown.Wait()
		close(done)
	}()

	select {
	case err := <-errCh:
		return err
	case <-done:
		return nil
	}
}
