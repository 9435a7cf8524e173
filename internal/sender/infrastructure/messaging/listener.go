package messaging

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hari-p8-io/clearpathgateway/internal/sender/application/dto"
	"github.com/hari-p8-io/clearpathgateway/internal/sender/application/usecase"
	"github.com/hari-p8-io/clearpathgateway/pkg/kafka"
)

// RejectionListener adapts the rejection-request topic to the pacs.002
// pipeline.
type RejectionListener struct {
	issuer *usecase.IssueRejection
	logger *slog.Logger
}

func NewRejectionListener(issuer *usecase.IssueRejection, logger *slog.Logger) *RejectionListener {
	return &RejectionListener{issuer: issuer, logger: logger}
}

// Handle processes one rejection request. Malformed payloads are dropped
// with a warning rather than redelivered forever; pipeline errors are
// propagated so the offset stays uncommitted.
func (l *RejectionListener) Handle(ctx context.Context, msg kafka.Message) error {
	var req dto.IssueRejectionRequest
	if err := json.Unmarshal(msg.Value, &req); err != nil {
		l.logger.Warn("malformed rejection request dropped", "error", err)
		return nil
	}
	if req.PUID == "" {
		l.logger.Warn("rejection request without puid dropped")
		return nil
	}

	resp, err := l.issuer.Execute(ctx, req)
	if err != nil {
		return err
	}

	l.logger.Info("rejection request handled",
		"puid", resp.PUID,
		"statusId", resp.StatusID,
		"alreadyIssued", resp.AlreadyIssued,
	)
	return nil
}
