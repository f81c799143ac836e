package kafka

import (
	"context"
	"fmt"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// DLQPublisher отправляет неисправимые сообщения в dead letter топик
type DLQPublisher struct {
	writer *kafka.Writer
	logger *zap.Logger
}

// NewDLQPublisher создаёт продюсера для DLQ
func NewDLQPublisher(brokers []string, topic string, logger *zap.Logger) *DLQPublisher {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
	return &DLQPublisher{writer: writer, logger: logger}
}

// Publish отправляет исходное сообщение в DLQ с заголовком причины
func (p *DLQPublisher) Publish(ctx context.Context, original kafka.Message, reason string) error {
	msg := kafka.Message{
		Key:   original.Key,
		Value: original.Value,
		Headers: append(original.Headers, kafka.Header{
			Key:   "x-dlq-reason",
			Value: []byte(reason),
		}),
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write DLQ message: %w", err)
	}
	p.logger.Warn("message sent to DLQ",
		zap.String("key", string(original.Key)),
		zap.String("reason", reason),
	)
	return nil
}

// Close закрывает продюсера
func (p *DLQPublisher) Close() error {
	return p.writer.Close()
}
