package port

import (
	"context"

	"github.com/hari-p8-io/clearpathgateway/internal/router/domain/model"
	"github.com/hari-p8-io/clearpathgateway/pkg/iso20022"
)

// InboundMessageRepository persists the per-message audit trail. Saves are
// id-keyed upserts so concurrent redelivery of the same puid is safe.
// The repository is an optional collaborator: the router runs without one.
type InboundMessageRepository interface {
	Save(ctx context.Context, msg model.InboundMessage) error
}

// UnifiedMessageRepository persists canonical envelopes, append-only.
type UnifiedMessageRepository interface {
	Save(ctx context.Context, msg model.UnifiedMessage) error
}

// RouterEventRepository audits every notification publish.
type RouterEventRepository interface {
	Save(ctx context.Context, event model.RouterEvent) error
}

// DuplicateGuard is the idempotency checkpoint keyed by (type, uniqueId),
// falling back to a content hash when uniqueId is blank. Implementations
// must check and record atomically: recording happens only when the verdict
// is "not duplicate", and two concurrent callers with the same key must not
// both see "not duplicate".
type DuplicateGuard interface {
	IsDuplicate(ctx context.Context, messageType iso20022.MessageType, uniqueID, xml string) (bool, error)
}
