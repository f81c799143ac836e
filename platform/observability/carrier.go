package observability

import (
	"context"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
)

// kafkaHeaderCarrier адаптирует []kafka.Header к propagation.TextMapCarrier.
// Через него trace context переезжает из producer-а в consumer вместе с сообщением.
type kafkaHeaderCarrier struct {
	headers *[]kafka.Header
}

// NewKafkaHeaderCarrier создаёт carrier поверх заголовков Kafka-сообщения
func NewKafkaHeaderCarrier(headers *[]kafka.Header) kafkaHeaderCarrier {
	return kafkaHeaderCarrier{headers: headers}
}

// Get возвращает значение заголовка по ключу
func (c kafkaHeaderCarrier) Get(key string) string {
	for _, h := range *c.headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

// Set устанавливает пару key-value (заменяет существующий заголовок)
func (c kafkaHeaderCarrier) Set(key, value string) {
	for i, h := range *c.headers {
		if h.Key == key {
			(*c.headers)[i].Value = []byte(value)
			return
		}
	}
	*c.headers = append(*c.headers, kafka.Header{Key: key, Value: []byte(value)})
}

// Keys возвращает все ключи заголовков
func (c kafkaHeaderCarrier) Keys() []string {
	out := make([]string, 0, len(*c.headers))
	for _, h := range *c.headers {
		out = append(out, h.Key)
	}
	return out
}

// InjectKafka записывает trace context из ctx в заголовки сообщения (вызывается producer-ом перед WriteMessages)
func InjectKafka(ctx context.Context, msg *kafka.Message) {
	otel.GetTextMapPropagator().Inject(ctx, NewKafkaHeaderCarrier(&msg.Headers))
}

// ExtractKafka восстанавливает trace context из заголовков полученного сообщения (вызывается consumer-ом)
func ExtractKafka(ctx context.Context, msg kafka.Message) context.Context {
	headers := msg.Headers
	return otel.GetTextMapPropagator().Extract(ctx, NewKafkaHeaderCarrier(&headers))
}
