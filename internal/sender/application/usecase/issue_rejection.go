package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hari-p8-io/clearpathgateway/internal/sender/application/dto"
	"github.com/hari-p8-io/clearpathgateway/internal/sender/domain/model"
	"github.com/hari-p8-io/clearpathgateway/internal/sender/domain/port"
	"github.com/hari-p8-io/clearpathgateway/internal/sender/domain/service"
)

// IssueRejection turns one rejection request into an issued pacs.002:
// idempotency check, build, persist, deliver, status event. The
// idempotency store is advisory on the read side: a failed Exists check is
// logged and the pipeline proceeds, because issuing a rare duplicate report
// is preferred over silently issuing none. Every non-exceptional path ends
// accepted: delivery exhaustion is logged and counted, never raised.
type IssueRejection struct {
	builder   *service.Pacs002Builder
	repo      port.RejectionRepository // optional, may be nil
	deliverer port.Deliverer
	events    port.StatusEventPublisher // optional, may be nil
	logger    *slog.Logger
	now       func() time.Time
}

func NewIssueRejection(
	builder *service.Pacs002Builder,
	repo port.RejectionRepository,
	deliverer port.Deliverer,
	events port.StatusEventPublisher,
	logger *slog.Logger,
) *IssueRejection {
	return &IssueRejection{
		builder:   builder,
		repo:      repo,
		deliverer: deliverer,
		events:    events,
		logger:    logger,
		now:       time.Now,
	}
}

func (uc *IssueRejection) Execute(ctx context.Context, req dto.IssueRejectionRequest) (dto.IssueRejectionResponse, error) {
	if req.PUID == "" {
		return dto.IssueRejectionResponse{}, fmt.Errorf("rejection request without puid")
	}
	log := uc.logger.With("puid", req.PUID, "messageType", req.MessageType)

	if uc.repo != nil {
		issued, err := uc.repo.Exists(ctx, req.PUID)
		if err != nil {
			log.Warn("idempotency check failed, proceeding", "error", err)
		} else if issued {
			log.Info("report already issued, request acknowledged")
			return dto.IssueRejectionResponse{
				PUID:          req.PUID,
				StatusID:      "SR-" + req.PUID,
				Accepted:      true,
				AlreadyIssued: true,
			}, nil
		}
	}

	uniqueID := ""
	if req.UniqueID != nil {
		uniqueID = *req.UniqueID
	}

	report, err := uc.builder.Build(req.PUID, uniqueID, req.Error, req.OriginalXML)
	if err != nil {
		return dto.IssueRejectionResponse{}, err
	}

	if uc.repo != nil {
		record, recErr := model.NewRejectionRecord(req.PUID, report.OriginalMessageID, report.OriginalEndToEndID,
			req.Error, report.XML, string(report.Event), uc.now())
		if recErr != nil {
			log.Warn("rejection record rejected, proceeding", "error", recErr)
		} else if saveErr := uc.repo.Save(ctx, record); saveErr != nil {
			log.Warn("rejection record save failed, proceeding", "error", saveErr)
		}
	}

	if err := uc.deliverer.Deliver(ctx, req.PUID, report.XML); err != nil {
		// The record is already persisted, so a broker redelivery of this
		// request would only be acknowledged as already issued. Exhausted
		// delivery is an observability signal, not a synchronous failure.
		log.Error("report delivery abandoned", "error", err)
	}

	if uc.events != nil {
		if err := uc.events.PublishStatusEvent(ctx, req.PUID, report.Event); err != nil {
			log.Warn("status event publish failed", "error", err)
		}
	}

	log.Info("rejection report issued", "statusId", "SR-"+req.PUID)
	return dto.IssueRejectionResponse{
		PUID:     req.PUID,
		StatusID: "SR-" + req.PUID,
		Accepted: true,
	}, nil
}
