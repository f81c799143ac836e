package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"github.com/MaruthamSatishReddy/easyToBuy/internal/product/app"
	"github.com/MaruthamSatishReddy/easyToBuy/internal/product/config"
	"github.com/MaruthamSatishReddy/easyToBuy/platform/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := logging.New(logging.Config{
		ServiceName: "product",
		Env:         cfg.Env,
		Level:       cfg.LogLevel,
		Format:      "json",
		AddCaller:   true,
	})
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logging.Sync(logger)

	cfg.Log(logger)

	application, err := app.Build(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatal("build application", zap.Error(err))
	}

	if err := application.Run(); err != nil {
		logger.Fatal("run application", zap.Error(err))
	}
}
