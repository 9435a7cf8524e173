package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/hari-p8-io/clearpathgateway/internal/router/domain/port"
	"github.com/hari-p8-io/clearpathgateway/internal/router/domain/service"
	"github.com/hari-p8-io/clearpathgateway/pkg/iso20022"
	pgpkg "github.com/hari-p8-io/clearpathgateway/pkg/postgres"
)

// Compile-time interface check.
var _ port.DuplicateGuard = (*DedupStore)(nil)

// DedupStore is the shared duplicate checkpoint for multi-instance
// deployments. The insert is the check: exactly one of N concurrent
// inserts for a key lands, so the atomicity contract holds across
// processes without explicit locking.
type DedupStore struct {
	db pgpkg.Querier
}

func NewDedupStore(db pgpkg.Querier) *DedupStore {
	return &DedupStore{db: db}
}

func (s *DedupStore) IsDuplicate(ctx context.Context, messageType iso20022.MessageType, uniqueID, xml string) (bool, error) {
	key := service.DedupKey(messageType, uniqueID, xml)

	tag, err := s.db.Exec(ctx, `
		INSERT INTO dedup_keys (dedup_key, seen_at)
		VALUES ($1, $2)
		ON CONFLICT (dedup_key) DO NOTHING
	`, key, time.Now().UTC())
	if err != nil {
		return false, fmt.Errorf("record dedup key: %w", err)
	}
	return tag.RowsAffected() == 0, nil
}
