package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/MaruthamSatishReddy/easyToBuy/internal/notification/service"
	"github.com/MaruthamSatishReddy/easyToBuy/platform/observability"
)

// OrderPlacedHandler обработчик события OrderPlaced
type OrderPlacedHandler interface {
	HandleOrderPlaced(ctx context.Context, event service.OrderPlacedEvent) error
}

// Consumer консьюмер топика заказов для сервиса уведомлений.
// Уведомления best-effort: offset коммитится всегда, и после успеха,
// и после ошибки. Повторных доставок нет, потерянное письмо допустимо.
type Consumer struct {
	reader  *kafka.Reader
	handler OrderPlacedHandler
	logger  *zap.Logger
}

// NewConsumer создаёт консьюмера группы notification-group
func NewConsumer(brokers []string, topic, groupID string, handler OrderPlacedHandler, logger *zap.Logger) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		GroupID:  groupID,
		Topic:    topic,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	return &Consumer{reader: reader, handler: handler, logger: logger}
}

// Run запускает цикл потребления. Блокируется до отмены контекста.
func (c *Consumer) Run(ctx context.Context) error {
	c.logger.Info("notification consumer started",
		zap.String("topic", c.reader.Config().Topic),
		zap.String("group_id", c.reader.Config().GroupID),
	)
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}

		msgCtx := observability.ExtractKafka(ctx, msg)
		logger := observability.L(msgCtx, c.logger).With(
			zap.String("key", string(msg.Key)),
			zap.Int64("offset", msg.Offset),
		)

		event, err := parseOrderPlaced(msg.Value)
		if err != nil {
			logger.Error("unparseable order event, skipping", zap.Error(err))
		} else if err := c.handler.HandleOrderPlaced(msgCtx, event); err != nil {
			logger.Error("order event handling failed", zap.Error(err))
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			logger.Error("failed to commit offset", zap.Error(err))
		}
	}
}

// Close закрывает reader
func (c *Consumer) Close() error {
	return c.reader.Close()
}

// parseOrderPlaced разбирает конверт и payload события OrderPlaced
func parseOrderPlaced(value []byte) (service.OrderPlacedEvent, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal(value, &raw); err != nil {
		return service.OrderPlacedEvent{}, fmt.Errorf("unmarshal envelope: %w", err)
	}

	eventType, ok := raw["event_type"].(string)
	if !ok || eventType != "OrderPlaced" {
		return service.OrderPlacedEvent{}, fmt.Errorf("unexpected event_type %v", raw["event_type"])
	}

	payload, ok := raw["payload"].(map[string]interface{})
	if !ok {
		return service.OrderPlacedEvent{}, errors.New("payload missing or not an object")
	}

	orderNumber, _ := payload["order_number"].(string)
	if orderNumber == "" {
		return service.OrderPlacedEvent{}, errors.New("order_number missing")
	}
	skuCode, _ := payload["sku_code"].(string)
	price, _ := payload["price"].(float64)
	quantity, _ := payload["quantity"].(float64)
	emailAddr, _ := payload["email"].(string)

	return service.OrderPlacedEvent{
		OrderNumber: orderNumber,
		SkuCode:     skuCode,
		Price:       price,
		Quantity:    int64(quantity),
		Email:       emailAddr,
	}, nil
}
