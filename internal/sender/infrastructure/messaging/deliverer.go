package messaging

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/hari-p8-io/clearpathgateway/internal/sender/domain/port"
	"github.com/hari-p8-io/clearpathgateway/pkg/kafka"
	"github.com/hari-p8-io/clearpathgateway/pkg/observability"
)

// Compile-time interface check.
var _ port.Deliverer = (*KafkaDeliverer)(nil)

// KafkaDeliverer pushes pacs.002 documents to the outbound topic with a
// bounded constant-backoff retry. Exhausting the attempts abandons the
// delivery and surfaces an error; the caller records the loss and still
// acknowledges the request, so the failure counter is the signal.
type KafkaDeliverer struct {
	producer    *kafka.Producer
	topic       string
	maxAttempts int
	interval    time.Duration
	timeout     time.Duration
	metrics     *observability.SenderMetrics // optional, may be nil
	logger      *slog.Logger
}

func NewKafkaDeliverer(
	producer *kafka.Producer,
	topic string,
	maxAttempts int,
	interval, timeout time.Duration,
	metrics *observability.SenderMetrics,
	logger *slog.Logger,
) *KafkaDeliverer {
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	if interval <= 0 {
		interval = time.Second
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &KafkaDeliverer{
		producer:    producer,
		topic:       topic,
		maxAttempts: maxAttempts,
		interval:    interval,
		timeout:     timeout,
		metrics:     metrics,
		logger:      logger,
	}
}

func (d *KafkaDeliverer) Deliver(ctx context.Context, puid, pacs002XML string) error {
	attempt := 0
	operation := func() error {
		attempt++
		publishCtx, cancel := context.WithTimeout(ctx, d.timeout)
		defer cancel()

		err := d.producer.Publish(publishCtx, d.topic, kafka.Message{
			Key:   []byte(puid),
			Value: []byte(pacs002XML),
			Headers: map[string]string{
				"contentType": "application/xml",
				"messageType": "pacs.002",
			},
		})
		if err != nil {
			d.logger.Warn("outbound delivery attempt failed",
				"puid", puid, "attempt", attempt, "error", err)
		}
		return err
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(d.interval), uint64(d.maxAttempts-1)),
		ctx,
	)
	if err := backoff.Retry(operation, policy); err != nil {
		if d.metrics != nil {
			d.metrics.SendFailure.Inc()
		}
		return fmt.Errorf("deliver to %s after %d attempts: %w", d.topic, attempt, err)
	}

	if d.metrics != nil {
		d.metrics.SendSuccess.Inc()
	}
	return nil
}
