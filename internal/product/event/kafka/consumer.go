package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/MaruthamSatishReddy/easyToBuy/internal/product/service"
	"github.com/MaruthamSatishReddy/easyToBuy/platform/observability"
)

// RatingChangedHandler обработчик события RatingChanged
type RatingChangedHandler interface {
	ApplyRatingUpdate(ctx context.Context, event service.RatingChangedEvent) error
}

// Consumer консьюмер топика рейтингов для каталога товаров.
// Неразбираемые сообщения логируются и коммитятся: DLQ здесь не нужен,
// рейтинг восстановится следующим корректным событием того же товара.
// Ошибки хранилища не коммитятся и приводят к повторной доставке.
type Consumer struct {
	reader  *kafka.Reader
	handler RatingChangedHandler
	logger  *zap.Logger
}

// NewConsumer создаёт консьюмера группы product-service
func NewConsumer(brokers []string, topic, groupID string, handler RatingChangedHandler, logger *zap.Logger) *Consumer {
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
	c.logger.Info("rating events consumer started",
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

		event, err := parseRatingChanged(msg.Value)
		if err != nil {
			logger.Warn("unparseable rating event, discarded", zap.Error(err))
			c.commit(ctx, msg, logger)
			continue
		}

		if err := c.handler.ApplyRatingUpdate(msgCtx, event); err != nil {
			// offset не коммитим, брокер доставит сообщение повторно
			logger.Error("rating event handling failed, message will be redelivered", zap.Error(err))
			continue
		}

		c.commit(ctx, msg, logger)
	}
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

// parseRatingChanged разбирает конверт и payload события RatingChanged
func parseRatingChanged(value []byte) (service.RatingChangedEvent, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal(value, &raw); err != nil {
		return service.RatingChangedEvent{}, fmt.Errorf("unmarshal envelope: %w", err)
	}

	eventType, ok := raw["event_type"].(string)
	if !ok || eventType != "RatingChanged" {
		return service.RatingChangedEvent{}, fmt.Errorf("unexpected event_type %v", raw["event_type"])
	}

	payload, ok := raw["payload"].(map[string]interface{})
	if !ok {
		return service.RatingChangedEvent{}, errors.New("payload missing or not an object")
	}

	productID, _ := payload["product_id"].(string)
	if productID == "" {
		return service.RatingChangedEvent{}, errors.New("product_id missing")
	}
	averageRating, ok := payload["average_rating"].(float64)
	if !ok {
		return service.RatingChangedEvent{}, errors.New("average_rating missing or not a number")
	}
	totalRatings, ok := payload["total_ratings"].(float64)
	if !ok || totalRatings < 0 || totalRatings != float64(int64(totalRatings)) {
		return service.RatingChangedEvent{}, errors.New("total_ratings missing or not a non-negative integer")
	}
	changeType, _ := payload["event_type"].(string)
	switch changeType {
	case "CREATED", "UPDATED", "DELETED":
	default:
		return service.RatingChangedEvent{}, fmt.Errorf("unknown change type %q", changeType)
	}

	return service.RatingChangedEvent{
		ProductID:     productID,
		AverageRating: averageRating,
		TotalRatings:  int64(totalRatings),
		EventType:     changeType,
	}, nil
}
