// Утилита для ручной проверки канала событий: публикует тестовое событие
// OrderPlaced и/или читает топик с начала.
//
//	go run ./cmd/kafka-playground -mode=produce -sku=iphone_15
//	go run ./cmd/kafka-playground -mode=consume
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	platformkafka "github.com/MaruthamSatishReddy/easyToBuy/platform/kafka"
)

func main() {
	mode := flag.String("mode", "produce", "produce или consume")
	sku := flag.String("sku", "iphone_15", "артикул для тестового события")
	quantity := flag.Int("quantity", 1, "количество для тестового события")
	flag.Parse()

	cfg := platformkafka.DefaultConfig()
	if err := platformkafka.LoadEnv(&cfg); err != nil {
		log.Fatalf("load kafka config: %v", err)
	}
	if cfg.Topic == "" {
		cfg.Topic = "order-events"
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	switch *mode {
	case "produce":
		produce(ctx, cfg, *sku, *quantity)
	case "consume":
		consume(ctx, cfg)
	default:
		log.Fatalf("unknown mode %q", *mode)
	}
}

func produce(ctx context.Context, cfg platformkafka.Config, sku string, quantity int) {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(cfg.Brokers...),
		Topic:    cfg.Topic,
		Balancer: &kafka.LeastBytes{},
	}
	defer writer.Close()

	value, err := json.Marshal(map[string]any{
		"event_id":      uuid.New().String(),
		"event_type":    "OrderPlaced",
		"event_version": 1,
		"occurred_at":   time.Now().UTC().Format(time.RFC3339),
		"payload": map[string]any{
			"order_number": uuid.New().String(),
			"sku_code":     sku,
			"price":        99.99,
			"quantity":     quantity,
			"email":        "playground@example.com",
		},
	})
	if err != nil {
		log.Fatalf("marshal event: %v", err)
	}

	err = writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(sku),
		Value: value,
	})
	if err != nil {
		log.Fatalf("write message: %v", err)
	}
	fmt.Printf("published OrderPlaced to %s (sku=%s quantity=%d)\n", cfg.Topic, sku, quantity)
}

func consume(ctx context.Context, cfg platformkafka.Config) {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		Topic:       cfg.Topic,
		StartOffset: kafka.FirstOffset,
		MinBytes:    1,
		MaxBytes:    10e6,
	})
	defer reader.Close()

	fmt.Printf("consuming %s, Ctrl+C to stop\n", cfg.Topic)
	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Fatalf("read message: %v", err)
		}
		fmt.Printf("partition=%d offset=%d key=%s value=%s\n",
			msg.Partition, msg.Offset, string(msg.Key), string(msg.Value))
	}
}
