package postgres

import (
	"context"
	"fmt"

	"github.com/hari-p8-io/clearpathgateway/internal/sender/domain/model"
	"github.com/hari-p8-io/clearpathgateway/internal/sender/domain/port"
	pgpkg "github.com/hari-p8-io/clearpathgateway/pkg/postgres"
)

// Compile-time interface check.
var _ port.RejectionRepository = (*RejectionRepo)(nil)

// RejectionRepo is the puid-keyed idempotency store for issued reports.
type RejectionRepo struct {
	db pgpkg.Querier
}

func NewRejectionRepo(db pgpkg.Querier) *RejectionRepo {
	return &RejectionRepo{db: db}
}

func (r *RejectionRepo) Exists(ctx context.Context, puid string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM rejection_records WHERE puid = $1)
	`, puid).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check rejection record: %w", err)
	}
	return exists, nil
}

func (r *RejectionRepo) Save(ctx context.Context, record model.RejectionRecord) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO rejection_records (
			puid, status_id, original_message_id, original_end_to_end_id,
			reason, pacs002_xml, event_json, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		record.PUID(), record.StatusID(), record.OriginalMessageID(), record.OriginalEndToEndID(),
		record.Reason(), record.Pacs002XML(), record.EventJSON(), record.CreatedAt(),
	)
	if pgpkg.IsUniqueViolation(err) {
		// Concurrent redelivery raced us past the Exists check; the first
		// writer's row stands.
		return nil
	}
	if err != nil {
		return fmt.Errorf("insert rejection record: %w", err)
	}
	return nil
}
