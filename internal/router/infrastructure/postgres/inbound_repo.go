package postgres

import (
	"context"
	"fmt"

	"github.com/hari-p8-io/clearpathgateway/internal/router/domain/model"
	"github.com/hari-p8-io/clearpathgateway/internal/router/domain/port"
	pgpkg "github.com/hari-p8-io/clearpathgateway/pkg/postgres"
)

// Compile-time interface check.
var _ port.InboundMessageRepository = (*InboundMessageRepo)(nil)

// InboundMessageRepo persists the inbound audit trail using PostgreSQL.
// Saves are puid-keyed upserts: later pipeline stages overwrite the status
// of the row the first stage created.
type InboundMessageRepo struct {
	db pgpkg.Querier
}

func NewInboundMessageRepo(db pgpkg.Querier) *InboundMessageRepo {
	return &InboundMessageRepo{db: db}
}

func (r *InboundMessageRepo) Save(ctx context.Context, msg model.InboundMessage) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO inbound_messages (
			puid, channel_id, message_type, received_at, raw_xml, status, error_code
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (puid) DO UPDATE SET
			status = EXCLUDED.status,
			error_code = EXCLUDED.error_code
	`,
		msg.PUID(), msg.ChannelID(), string(msg.MessageType()), msg.ReceivedAt(),
		msg.RawXML(), msg.Status().String(), msg.ErrorCode(),
	)
	if err != nil {
		return fmt.Errorf("upsert inbound message: %w", err)
	}
	return nil
}
