package postgres

import (
	"context"
	"fmt"

	"github.com/hari-p8-io/clearpathgateway/internal/router/domain/model"
	"github.com/hari-p8-io/clearpathgateway/internal/router/domain/port"
	pgpkg "github.com/hari-p8-io/clearpathgateway/pkg/postgres"
)

// Compile-time interface check.
var _ port.RouterEventRepository = (*RouterEventRepo)(nil)

// RouterEventRepo audits notification publishes using PostgreSQL.
type RouterEventRepo struct {
	db pgpkg.Querier
}

func NewRouterEventRepo(db pgpkg.Querier) *RouterEventRepo {
	return &RouterEventRepo{db: db}
}

func (r *RouterEventRepo) Save(ctx context.Context, event model.RouterEvent) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO router_events (puid, topic, created_at, payload)
		VALUES ($1, $2, $3, $4)
	`,
		event.PUID, event.Topic, event.CreatedAt, event.JSON,
	)
	if err != nil {
		return fmt.Errorf("insert router event: %w", err)
	}
	return nil
}
