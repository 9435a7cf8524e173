package port

import (
	"context"

	"github.com/hari-p8-io/clearpathgateway/internal/sender/domain/model"
)

// RejectionRepository is the puid-keyed idempotency store for issued
// reports. Save must be a conflict-tolerant insert: a second save for the
// same puid is not an error.
type RejectionRepository interface {
	Exists(ctx context.Context, puid string) (bool, error)
	Save(ctx context.Context, record model.RejectionRecord) error
}

// Deliverer pushes a finished pacs.002 document to the clearing network
// queue. Implementations own their retry policy; a returned error means
// delivery was abandoned.
type Deliverer interface {
	Deliver(ctx context.Context, puid, pacs002XML string) error
}

// StatusEventPublisher emits the status event describing an issued report.
type StatusEventPublisher interface {
	PublishStatusEvent(ctx context.Context, puid string, eventJSON []byte) error
}
