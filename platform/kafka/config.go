package kafka

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// Config содержит конфигурацию для подключения к Kafka
type Config struct {
	// Brokers — список брокеров Kafka, через который подключаются сервисы.
	// Значение зависит от среды выполнения:
	//   - локальная разработка (go run): localhost:19092
	//   - запуск в Docker: kafka:9092
	// Можно указать несколько брокеров через запятую: "broker1:9092,broker2:9092"
	Brokers []string `env:"KAFKA_BROKERS" envSeparator:","`
	// Topic — топик сервиса (order-events, rating-events).
	// Значение по умолчанию задаёт конфигурация конкретного сервиса,
	// KAFKA_TOPIC переопределяет его.
	Topic string `env:"KAFKA_TOPIC"`
}

// DefaultConfig возвращает конфигурацию с дефолтными значениями для локальной разработки.
// Сервисы должны получать актуальные значения через переменные окружения (KAFKA_BROKERS, KAFKA_TOPIC).
func DefaultConfig() Config {
	return Config{
		Brokers: []string{"localhost:19092"},
		Topic:   "order-events",
	}
}

// LoadEnv накладывает переменные окружения (KAFKA_BROKERS, KAFKA_TOPIC)
// поверх уже заполненной конфигурации
func LoadEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse kafka env: %w", err)
	}
	return nil
}
