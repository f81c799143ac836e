package config

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	platformkafka "github.com/MaruthamSatishReddy/easyToBuy/platform/kafka"
)

// Config конфигурация сервиса уведомлений
type Config struct {
	// Env окружение: local или docker
	Env string
	// HTTPAddr адрес HTTP-сервера (health endpoint)
	HTTPAddr string
	// Kafka настройки подключения к Kafka
	Kafka platformkafka.Config
	// KafkaGroupID группа консьюмера
	KafkaGroupID string
	// SMTPAddr хост:порт SMTP-сервера; пустое значение включает NoOp-отправителя
	SMTPAddr string
	// SMTPFrom адрес отправителя
	SMTPFrom string
	// SMTPUsername логин SMTP (пустой для серверов без аутентификации)
	SMTPUsername string
	// SMTPPassword пароль SMTP
	SMTPPassword string
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
		Env:             env,
		HTTPAddr:        getString("HTTP_ADDR", ":8083", ":8083"),
		KafkaGroupID:    getString("KAFKA_GROUP_ID", "notification-group", "notification-group"),
		SMTPAddr:        os.Getenv("SMTP_ADDR"),
		SMTPFrom:        getString("SMTP_FROM", "noreply@easytobuy.local", "noreply@easytobuy.local"),
		SMTPUsername:    os.Getenv("SMTP_USERNAME"),
		SMTPPassword:    os.Getenv("SMTP_PASSWORD"),
		ShutdownTimeout: 10 * time.Second,
		OTELEnabled:     os.Getenv("OTEL_ENABLED") == "true",
		OTELEndpoint:    getString("OTEL_ENDPOINT", "localhost:4317", "otel-collector:4317"),
		LogLevel:        getString("LOG_LEVEL", "debug", "info"),
	}

	kafkaCfg := platformkafka.Config{
		Brokers: []string{getString("KAFKA_BROKER", "localhost:19092", "kafka:9092")},
		Topic:   getString("KAFKA_TOPIC", "order-events", "order-events"),
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
	if len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("KAFKA_BROKER must not be empty")
	}
	if c.Kafka.Topic == "" {
		return fmt.Errorf("KAFKA_TOPIC must not be empty")
	}
	if c.KafkaGroupID == "" {
		return fmt.Errorf("KAFKA_GROUP_ID must not be empty")
	}
	if c.SMTPAddr != "" && c.SMTPFrom == "" {
		return fmt.Errorf("SMTP_FROM must not be empty when SMTP_ADDR is set")
	}
	return nil
}

// Log выводит конфигурацию в лог (без SMTP-пароля)
func (c *Config) Log(logger *zap.Logger) {
	logger.Info("configuration loaded",
		zap.String("env", c.Env),
		zap.String("http_addr", c.HTTPAddr),
		zap.Strings("kafka_brokers", c.Kafka.Brokers),
		zap.String("kafka_topic", c.Kafka.Topic),
		zap.String("kafka_group_id", c.KafkaGroupID),
		zap.String("smtp_addr", c.SMTPAddr),
		zap.String("smtp_from", c.SMTPFrom),
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
