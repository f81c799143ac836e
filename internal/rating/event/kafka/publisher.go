package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/MaruthamSatishReddy/easyToBuy/internal/rating/service"
	"github.com/MaruthamSatishReddy/easyToBuy/platform/observability"
)

// envelope конверт события в канале событий
type envelope struct {
	EventID      string          `json:"event_id"`
	EventType    string          `json:"event_type"`
	EventVersion int             `json:"event_version"`
	OccurredAt   string          `json:"occurred_at"`
	Payload      json.RawMessage `json:"payload"`
}

// ratingChangedPayload полезная нагрузка события RatingChanged
type ratingChangedPayload struct {
	ProductID     string  `json:"product_id"`
	AverageRating float64 `json:"average_rating"`
	TotalRatings  int64   `json:"total_ratings"`
	EventType     string  `json:"event_type"`
}

// Publisher публикует события изменения рейтинга в Kafka
type Publisher struct {
	writer *kafka.Writer
	logger *zap.Logger
}

// NewPublisher создаёт продюсера для топика рейтингов.
// Ключ сообщения — product_id: события одного товара обрабатываются по порядку.
func NewPublisher(brokers []string, topic string, logger *zap.Logger) *Publisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireAll,
	}
	return &Publisher{writer: writer, logger: logger}
}

// PublishRatingChanged публикует событие RatingChanged с ключом product_id
func (p *Publisher) PublishRatingChanged(ctx context.Context, event service.RatingChangedEvent) error {
	payload, err := json.Marshal(ratingChangedPayload{
		ProductID:     event.ProductID,
		AverageRating: event.AverageRating,
		TotalRatings:  event.TotalRatings,
		EventType:     event.EventType,
	})
	if err != nil {
		return fmt.Errorf("marshal RatingChanged payload: %w", err)
	}

	value, err := json.Marshal(envelope{
		EventID:      uuid.New().String(),
		EventType:    "RatingChanged",
		EventVersion: 1,
		OccurredAt:   time.Now().UTC().Format(time.RFC3339),
		Payload:      payload,
	})
	if err != nil {
		return fmt.Errorf("marshal RatingChanged envelope: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.ProductID),
		Value: value,
	}
	observability.InjectKafka(ctx, &msg)

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write RatingChanged message: %w", err)
	}

	observability.L(ctx, p.logger).Debug("RatingChanged event published",
		zap.String("product_id", event.ProductID),
		zap.String("change_type", event.EventType),
	)
	return nil
}

// Close закрывает продюсера
func (p *Publisher) Close() error {
	return p.writer.Close()
}
