package messaging

import (
	"context"
	"time"

	"github.com/hari-p8-io/clearpathgateway/internal/router/domain/model"
	"github.com/hari-p8-io/clearpathgateway/internal/router/domain/port"
	"github.com/hari-p8-io/clearpathgateway/pkg/kafka"
)

// Compile-time interface check.
var _ port.OutcomePublisher = (*KafkaOutcomePublisher)(nil)

// KafkaOutcomePublisher routes pipeline outcomes to their Kafka topics.
// Every publish is bounded by the configured timeout so a slow broker
// cannot stall the inbound consumer loop.
type KafkaOutcomePublisher struct {
	producer *kafka.Producer
	topics   TopicSet
	timeout  time.Duration
}

// TopicSet names the outcome destinations.
type TopicSet struct {
	Valid            string
	Exception        string
	RejectionRequest string
	Notification     string
}

func NewKafkaOutcomePublisher(producer *kafka.Producer, topics TopicSet, timeout time.Duration) *KafkaOutcomePublisher {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &KafkaOutcomePublisher{producer: producer, topics: topics, timeout: timeout}
}

func (p *KafkaOutcomePublisher) PublishValid(ctx context.Context, puid, unifiedJSON string) error {
	return p.publish(ctx, p.topics.Valid, puid, []byte(unifiedJSON), map[string]string{
		"contentType": "application/json",
	})
}

func (p *KafkaOutcomePublisher) PublishException(ctx context.Context, puid, rawXML string) error {
	return p.publish(ctx, p.topics.Exception, puid, []byte(rawXML), map[string]string{
		"contentType": "application/xml",
	})
}

func (p *KafkaOutcomePublisher) PublishRejectionRequest(ctx context.Context, puid string, payload []byte) error {
	return p.publish(ctx, p.topics.RejectionRequest, puid, payload, map[string]string{
		"contentType": "application/json",
	})
}

func (p *KafkaOutcomePublisher) PublishNotification(ctx context.Context, event model.NotificationEvent) error {
	payload, err := event.JSON()
	if err != nil {
		return err
	}
	return p.publish(ctx, p.topics.Notification, event.PUID, payload, map[string]string{
		"contentType": "application/json",
		"eventCode":   event.EventCode,
	})
}

func (p *KafkaOutcomePublisher) publish(ctx context.Context, topic, key string, value []byte, headers map[string]string) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	return p.producer.Publish(ctx, topic, kafka.Message{
		Key:     []byte(key),
		Value:   value,
		Headers: headers,
	})
}
