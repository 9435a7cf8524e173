package port

import (
	"context"

	"github.com/hari-p8-io/clearpathgateway/internal/router/domain/model"
)

// OutcomePublisher pushes pipeline outcomes to the downstream transports.
// Every call blocks at most the configured publish timeout; a timeout is a
// publish failure, which the router treats as non-fatal.
type OutcomePublisher interface {
	// PublishValid sends the canonical JSON envelope to the valid topic.
	PublishValid(ctx context.Context, puid, unifiedJSON string) error

	// PublishException sends the original raw XML to the exception topic.
	PublishException(ctx context.Context, puid, rawXML string) error

	// PublishRejectionRequest sends the rejection-request payload for the
	// pacs.002 pipeline.
	PublishRejectionRequest(ctx context.Context, puid string, payload []byte) error

	// PublishNotification sends a structured notification event.
	PublishNotification(ctx context.Context, event model.NotificationEvent) error
}
