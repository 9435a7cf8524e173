package postgres

import (
	"context"
	"fmt"

	"github.com/hari-p8-io/clearpathgateway/internal/router/domain/model"
	"github.com/hari-p8-io/clearpathgateway/internal/router/domain/port"
	pgpkg "github.com/hari-p8-io/clearpathgateway/pkg/postgres"
)

// Compile-time interface check.
var _ port.UnifiedMessageRepository = (*UnifiedMessageRepo)(nil)

// UnifiedMessageRepo persists canonical envelopes using PostgreSQL. The
// table is append-only; a replayed puid leaves the original row untouched.
type UnifiedMessageRepo struct {
	db pgpkg.Querier
}

func NewUnifiedMessageRepo(db pgpkg.Querier) *UnifiedMessageRepo {
	return &UnifiedMessageRepo{db: db}
}

func (r *UnifiedMessageRepo) Save(ctx context.Context, msg model.UnifiedMessage) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO unified_messages (puid, message_type, created_at, payload)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (puid) DO NOTHING
	`,
		msg.PUID(), string(msg.MessageType()), msg.CreatedAt(), msg.JSON(),
	)
	if err != nil {
		return fmt.Errorf("insert unified message: %w", err)
	}
	return nil
}
