package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// publishTimeout bounds a single write so a slow broker cannot hold a request open.
const publishTimeout = 5 * time.Second

// KafkaPublisher writes notifications to a Kafka topic, keyed by resource ID
// so that all changes to one trip or event land on the same partition.
type KafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafkaPublisher returns a publisher writing to topic on brokers.
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			BatchTimeout: 10 * time.Millisecond,
			RequiredAcks: kafka.RequireOne,
			Compression:  kafka.Snappy,
		},
	}
}

// Publish encodes n and writes it synchronously.
func (p *KafkaPublisher) Publish(ctx context.Context, n Notification) error {
	msg, err := encode(n)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("messaging.KafkaPublisher.Publish: %w", err)
	}
	return nil
}

// Close flushes pending writes and closes the underlying connections.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// encode builds the Kafka message for n.
func encode(n Notification) (kafka.Message, error) {
	value, err := json.Marshal(n)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("messaging: marshal notification: %w", err)
	}
	return kafka.Message{
		Key:   []byte(n.ResourceID.String()),
		Value: value,
		Time:  n.OccurredAt,
		Headers: []kafka.Header{
			{Key: "notification-type", Value: []byte(n.Type)},
		},
	}, nil
}
