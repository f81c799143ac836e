package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/MaruthamSatishReddy/easyToBuy/internal/order/service"
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

// orderPlacedPayload полезная нагрузка события OrderPlaced
type orderPlacedPayload struct {
	OrderNumber string  `json:"order_number"`
	SkuCode     string  `json:"sku_code"`
	Price       float64 `json:"price"`
	Quantity    int32   `json:"quantity"`
	Email       string  `json:"email"`
}

// Publisher публикует события заказов в Kafka
type Publisher struct {
	writer *kafka.Writer
	logger *zap.Logger
}

// NewPublisher создаёт продюсера для топика заказов.
// Ключ сообщения — sku_code: события по одному артикулу попадают в одну партицию
// и обрабатываются по порядку.
func NewPublisher(brokers []string, topic string, logger *zap.Logger) *Publisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireAll,
	}
	return &Publisher{
		writer: writer,
		logger: logger,
	}
}

// PublishOrderPlaced публикует событие OrderPlaced с ключом sku_code
func (p *Publisher) PublishOrderPlaced(ctx context.Context, event service.OrderPlacedEvent) error {
	payload, err := json.Marshal(orderPlacedPayload{
		OrderNumber: event.OrderNumber,
		SkuCode:     event.SkuCode,
		Price:       event.Price,
		Quantity:    event.Quantity,
		Email:       event.Email,
	})
	if err != nil {
		return fmt.Errorf("marshal OrderPlaced payload: %w", err)
	}

	value, err := json.Marshal(envelope{
		EventID:      uuid.New().String(),
		EventType:    "OrderPlaced",
		EventVersion: 1,
		OccurredAt:   event.OccurredAt.UTC().Format(time.RFC3339),
		Payload:      payload,
	})
	if err != nil {
		return fmt.Errorf("marshal OrderPlaced envelope: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.SkuCode),
		Value: value,
	}
	observability.InjectKafka(ctx, &msg)

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write OrderPlaced message: %w", err)
	}

	observability.L(ctx, p.logger).Debug("OrderPlaced event published",
		zap.String("order_number", event.OrderNumber),
		zap.String("sku_code", event.SkuCode),
	)
	return nil
}

// Close закрывает продюсера
func (p *Publisher) Close() error {
	return p.writer.Close()
}
