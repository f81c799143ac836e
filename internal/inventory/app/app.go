package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	inventoryhttp "github.com/MaruthamSatishReddy/easyToBuy/internal/inventory/api/http"
	"github.com/MaruthamSatishReddy/easyToBuy/internal/inventory/config"
	inventorykafka "github.com/MaruthamSatishReddy/easyToBuy/internal/inventory/event/kafka"
	mongorepo "github.com/MaruthamSatishReddy/easyToBuy/internal/inventory/repository/mongo"
	"github.com/MaruthamSatishReddy/easyToBuy/internal/inventory/service"
	"github.com/MaruthamSatishReddy/easyToBuy/platform/observability"
	"github.com/MaruthamSatishReddy/easyToBuy/platform/shutdown"
)

// App собранный сервис остатков
type App struct {
	cfg      *config.Config
	logger   *zap.Logger
	server   *http.Server
	consumer *inventorykafka.Consumer
	shutdown *shutdown.Manager
}

// Build собирает сервис: MongoDB, Kafka-консьюмер, HTTP-сервер
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	manager := shutdown.New(cfg.ShutdownTimeout, logger)

	otelShutdown, err := observability.Init(ctx, observability.Config{
		Enabled:               cfg.OTELEnabled,
		OTLPEndpoint:          cfg.OTELEndpoint,
		SamplingRatio:         1.0,
		ServiceName:           "inventory",
		DeploymentEnvironment: cfg.Env,
	})
	if err != nil {
		return nil, fmt.Errorf("init observability: %w", err)
	}
	manager.Add("observability", otelShutdown)

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	manager.Add("mongo client", shutdown.DisconnectMongo(client))

	repo, err := mongorepo.NewRepository(ctx, client.Database(cfg.MongoDatabase))
	if err != nil {
		return nil, fmt.Errorf("create inventory repository: %w", err)
	}

	svc := service.New(repo, logger)

	dlq := inventorykafka.NewDLQPublisher(cfg.Kafka.Brokers, cfg.KafkaDLQTopic, logger)
	manager.Add("dlq publisher", shutdown.CloseCloser(dlq))

	consumer := inventorykafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.Topic, cfg.KafkaGroupID, svc, dlq, logger)
	manager.Add("kafka consumer", shutdown.CloseCloser(consumer))

	handler := inventoryhttp.NewHandler(svc, logger)
	readiness := func() bool {
		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return client.Ping(pingCtx, readpref.Primary()) == nil
	}
	router := inventoryhttp.NewRouter(handler, logger, readiness)

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
