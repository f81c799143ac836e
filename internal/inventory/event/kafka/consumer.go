package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/MaruthamSatishReddy/easyToBuy/internal/inventory/service"
	"github.com/MaruthamSatishReddy/easyToBuy/platform/observability"
)

// OrderPlacedHandler обработчик события OrderPlaced
type OrderPlacedHandler interface {
	HandleOrderPlaced(ctx context.Context, event service.OrderPlacedEvent) error
}

// Consumer консьюмер топика заказов для сервиса остатков.
// Семантика at-least-once: offset коммитится только после успешной обработки.
// Неразбираемые сообщения уходят в DLQ и коммитятся.
// Ошибки обработчика ретраятся с экспоненциальным backoff; после исчерпания
// попыток offset не коммитится и сообщение доставляется повторно.
type Consumer struct {
	reader      *kafka.Reader
	handler     OrderPlacedHandler
	dlq         *DLQPublisher
	logger      *zap.Logger
	maxRetries  int
	backoffBase time.Duration
}

// NewConsumer создаёт консьюмера группы inventory-group
func NewConsumer(brokers []string, topic, groupID string, handler OrderPlacedHandler, dlq *DLQPublisher, logger *zap.Logger) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		GroupID:  groupID,
		Topic:    topic,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	return &Consumer{
		reader:      reader,
		handler:     handler,
		dlq:         dlq,
		logger:      logger,
		maxRetries:  3,
		backoffBase: 500 * time.Millisecond,
	}
}

// Run запускает цикл потребления. Блокируется до отмены контекста.
func (c *Consumer) Run(ctx context.Context) error {
	c.logger.Info("order events consumer started",
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
		c.processMessage(msgCtx, msg)
	}
}

// processMessage обрабатывает одно сообщение; решает, коммитить ли offset
func (c *Consumer) processMessage(ctx context.Context, msg kafka.Message) {
	logger := observability.L(ctx, c.logger).With(
		zap.String("key", string(msg.Key)),
		zap.Int64("offset", msg.Offset),
	)

	event, err := parseOrderPlaced(msg.Value)
	if err != nil {
		var parseErr *ParseError
		if errors.As(err, &parseErr) {
			logger.Error("unparseable order event, sending to DLQ", zap.Error(err))
			if dlqErr := c.dlq.Publish(ctx, msg, parseErr.Error()); dlqErr != nil {
				// DLQ недоступен: offset не коммитим, сообщение придёт снова
				logger.Error("failed to publish to DLQ", zap.Error(dlqErr))
				return
			}
			c.commit(ctx, msg, logger)
			return
		}
		logger.Error("unexpected parse failure", zap.Error(err))
		return
	}

	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		err = c.handler.HandleOrderPlaced(ctx, event)
		if err == nil {
			c.commit(ctx, msg, logger)
			return
		}
		logger.Warn("order event handling failed",
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		if attempt < c.maxRetries {
			select {
			case <-ctx.Done():
				return
			case <-time.After(c.backoffBase * (1 << (attempt - 1))):
			}
		}
	}

	// Попытки исчерпаны: не коммитим, брокер доставит сообщение повторно
	logger.Error("order event handling exhausted retries, message will be redelivered",
		zap.Error(err),
	)
}

func (c *Consumer) commit(ctx context.Context, msg kafka.Message, logger *zap.Logger) {
	if err := c.reader.CommitMessages(ctx, msg); err != nil {
		logger.Error("failed to commit offset", zap.Error(err))
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
		return service.OrderPlacedEvent{}, &ParseError{Field: "envelope", Message: err.Error()}
	}

	eventType, ok := raw["event_type"].(string)
	if !ok {
		return service.OrderPlacedEvent{}, &ParseError{Field: "event_type", Message: "missing or not a string"}
	}
	if eventType != "OrderPlaced" {
		return service.OrderPlacedEvent{}, &ParseError{Field: "event_type", Message: "unexpected type " + eventType}
	}

	payload, ok := raw["payload"].(map[string]interface{})
	if !ok {
		return service.OrderPlacedEvent{}, &ParseError{Field: "payload", Message: "missing or not an object"}
	}

	orderNumber, ok := payload["order_number"].(string)
	if !ok || orderNumber == "" {
		return service.OrderPlacedEvent{}, &ParseError{Field: "order_number", Message: "missing or not a string"}
	}
	skuCode, ok := payload["sku_code"].(string)
	if !ok || skuCode == "" {
		return service.OrderPlacedEvent{}, &ParseError{Field: "sku_code", Message: "missing or not a string"}
	}
	quantity, ok := payload["quantity"].(float64)
	if !ok {
		return service.OrderPlacedEvent{}, &ParseError{Field: "quantity", Message: "missing or not a number"}
	}
	if quantity <= 0 || quantity != float64(int64(quantity)) {
		return service.OrderPlacedEvent{}, &ParseError{Field: "quantity", Message: "must be a positive integer"}
	}

	return service.OrderPlacedEvent{
		OrderNumber: orderNumber,
		SkuCode:     skuCode,
		Quantity:    int64(quantity),
	}, nil
}
