package messaging

import (
	"context"
	"time"

	"github.com/hari-p8-io/clearpathgateway/internal/sender/domain/port"
	"github.com/hari-p8-io/clearpathgateway/pkg/kafka"
)

// Compile-time interface check.
var _ port.StatusEventPublisher = (*KafkaStatusEventPublisher)(nil)

// KafkaStatusEventPublisher emits status events on the shared event topic.
type KafkaStatusEventPublisher struct {
	producer *kafka.Producer
	topic    string
	timeout  time.Duration
}

func NewKafkaStatusEventPublisher(producer *kafka.Producer, topic string, timeout time.Duration) *KafkaStatusEventPublisher {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &KafkaStatusEventPublisher{producer: producer, topic: topic, timeout: timeout}
}

func (p *KafkaStatusEventPublisher) PublishStatusEvent(ctx context.Context, puid string, eventJSON []byte) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	return p.producer.Publish(ctx, p.topic, kafka.Message{
		Key:   []byte(puid),
		Value: eventJSON,
		Headers: map[string]string{
			"contentType": "application/json",
		},
	})
}
