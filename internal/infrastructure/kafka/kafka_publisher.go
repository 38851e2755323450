package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/LavaJover/shvark-pricing-service/internal/domain"
	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// DefaultKafkaPublisher writes to one topic.
type DefaultKafkaPublisher struct {
	writer messageWriter
	topic  string
}

func NewDefaultKafkaPublisher(brokers []string, topic string) *DefaultKafkaPublisher {
	return &DefaultKafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.LeastBytes{},
			AllowAutoTopicCreation: true,
		},
		topic: topic,
	}
}

func (k *DefaultKafkaPublisher) Publish(ctx context.Context, msgs ...domain.Message) error {
	if len(msgs) == 0 {
		return nil
	}
	now := time.Now()
	km := make([]kafka.Message, 0, len(msgs))
	for _, m := range msgs {
		km = append(km, kafka.Message{
			Key:   m.Key,
			Value: m.Value,
			Time:  now,
		})
	}
	if err := k.writer.WriteMessages(ctx, km...); err != nil {
		return fmt.Errorf("write %d messages to %s: %w", len(km), k.topic, err)
	}
	return nil
}

func (k *DefaultKafkaPublisher) Close() error {
	return k.writer.Close()
}

// QuotePublisher emits quote events keyed by hotel so one hotel's quotes
// stay ordered within a partition.
type QuotePublisher struct {
	publisher domain.PublisherPort
}

func NewQuotePublisher(p domain.PublisherPort) *QuotePublisher {
	return &QuotePublisher{publisher: p}
}

func (q *QuotePublisher) PublishQuote(ctx context.Context, event domain.QuoteEvent) error {
	v, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return q.publisher.Publish(ctx, domain.Message{Key: []byte(event.HotelID), Value: v})
}
