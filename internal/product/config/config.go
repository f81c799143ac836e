package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"go.uber.org/zap"

	platformkafka "github.com/MaruthamSatishReddy/easyToBuy/platform/kafka"
)

// Config конфигурация каталога товаров
type Config struct {
	// Env окружение: local или docker
	Env string
	// HTTPAddr адрес HTTP-сервера
	HTTPAddr string
	// MongoURI строка подключения к MongoDB
	MongoURI string
	// MongoDatabase имя базы данных
	MongoDatabase string
	// Kafka настройки подключения к Kafka
	Kafka platformkafka.Config
	// KafkaGroupID группа консьюмера
	KafkaGroupID string
	// RecommendationTTL время жизни кеша рекомендаций
	RecommendationTTL time.Duration
	// ShutdownTimeout таймаут на graceful shutdown каждого компонента
	ShutdownTimeout time.Duration
	// OTELEnabled включить экспорт телеметрии
	OTELEnabled bool
	// OTELEndpoint адрес OTLP collector
	OTELEndpoint string
	// LogLevel уровень логирования
	LogLevel string
}

// Load читает конфигурацию из переменных окружения
func Load() (*Config, error) {
	env := getString("APP_ENV", "local", "docker")

	cfg := &Config{
		Env:      env,
		HTTPAddr: getString("HTTP_ADDR", ":8085", ":8085"),
		MongoURI: getString("MONGO_URI",
			"mongodb://localhost:27017",
			"mongodb://mongo:27017",
		),
		MongoDatabase:     getString("MONGO_DATABASE", "products", "products"),
		KafkaGroupID:      getString("KAFKA_GROUP_ID", "product-service", "product-service"),
		RecommendationTTL: 5 * time.Minute,
		ShutdownTimeout:   10 * time.Second,
		OTELEnabled:       os.Getenv("OTEL_ENABLED") == "true",
		OTELEndpoint:      getString("OTEL_ENDPOINT", "localhost:4317", "otel-collector:4317"),
		LogLevel:          getString("LOG_LEVEL", "debug", "info"),
	}

	if v := os.Getenv("RECOMMENDATION_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("parse RECOMMENDATION_TTL: %w", err)
		}
		cfg.RecommendationTTL = ttl
	}

	kafkaCfg := platformkafka.Config{
		Brokers: []string{getString("KAFKA_BROKER", "localhost:19092", "kafka:9092")},
		Topic:   getString("KAFKA_TOPIC", "rating-events", "rating-events"),
	}
	if err := platformkafka.LoadEnv(&kafkaCfg); err != nil {
		return nil, fmt.Errorf("load kafka config: %w", err)
	}
	cfg.Kafka = kafkaCfg

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет обязательные поля
func (c *Config) Validate() error {
	if c.HTTPAddr == "" {
		return fmt.Errorf("HTTP_ADDR must not be empty")
	}
	if c.MongoURI == "" {
		return fmt.Errorf("MONGO_URI must not be empty")
	}
	if c.MongoDatabase == "" {
		return fmt.Errorf("MONGO_DATABASE must not be empty")
	}
	if len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("KAFKA_BROKER must not be empty")
	}
	if c.Kafka.Topic == "" {
		return fmt.Errorf("KAFKA_TOPIC must not be empty")
	}
	if c.KafkaGroupID == "" {
		return fmt.Errorf("KAFKA_GROUP_ID must not be empty")
	}
	return nil
}

// Log выводит конфигурацию в лог (URI с замаскированным паролем)
func (c *Config) Log(logger *zap.Logger) {
	logger.Info("configuration loaded",
		zap.String("env", c.Env),
		zap.String("http_addr", c.HTTPAddr),
		zap.String("mongo_uri", maskDSN(c.MongoURI)),
		zap.String("mongo_database", c.MongoDatabase),
		zap.Strings("kafka_brokers", c.Kafka.Brokers),
		zap.String("kafka_topic", c.Kafka.Topic),
		zap.String("kafka_group_id", c.KafkaGroupID),
		zap.Duration("recommendation_ttl", c.RecommendationTTL),
		zap.Bool("otel_enabled", c.OTELEnabled),
		zap.String("log_level", c.LogLevel),
	)
}

func getString(name, localDefault, dockerDefault string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	if os.Getenv("APP_ENV") == "docker" {
		return dockerDefault
	}
	return localDefault
}

var dsnPasswordRe = regexp.MustCompile(`(://[^:]+:)[^@]+(@)`)

// maskDSN маскирует пароль в строке подключения
func maskDSN(dsn string) string {
	return dsnPasswordRe.ReplaceAllString(dsn, "$1***$2")
}
