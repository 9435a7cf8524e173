package usecase

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/hari-p8-io/clearpathgateway/internal/router/application/dto"
	"github.com/hari-p8-io/clearpathgateway/internal/router/domain/model"
	"github.com/hari-p8-io/clearpathgateway/internal/router/domain/port"
	"github.com/hari-p8-io/clearpathgateway/internal/router/domain/service"
	"github.com/hari-p8-io/clearpathgateway/pkg/iso20022"
	"github.com/hari-p8-io/clearpathgateway/pkg/observability"
)

const (
	errCodeXSDFail       = "XSD_FAIL"
	errCodeTransformFail = "TRANSFORM_FAIL"
)

// Topics names the destinations outcomes are tagged with in notifications
// and audit rows.
type Topics struct {
	Valid        string
	Exception    string
	Notification string
}

// rejectionRequest is the payload handed to the pacs.002 pipeline when an
// inbound document fails schema validation.
type rejectionRequest struct {
	PUID        string  `json:"puid"`
	MessageType string  `json:"messageType"`
	UniqueID    *string `json:"uniqueId"`
	Error       string  `json:"error"`
	OriginalXML string  `json:"originalXml"`
}

// ProcessInbound drives one document through classify, validate,
// deduplicate, transform and publish. Persistence and notification
// collaborators are best-effort: their failures are logged and never stall
// the pipeline.
type ProcessInbound struct {
	puids       *service.PUIDGenerator
	validator   *service.SchemaValidator
	extractor   *service.UniqueIDExtractor
	transformer *service.Transformer
	dedup       port.DuplicateGuard
	publisher   port.OutcomePublisher
	inboundRepo port.InboundMessageRepository // optional, may be nil
	unifiedRepo port.UnifiedMessageRepository // optional, may be nil
	eventRepo   port.RouterEventRepository    // optional, may be nil
	metrics     *observability.RouterMetrics  // optional, may be nil
	topics      Topics
	logger      *slog.Logger
	now         func() time.Time
}

func NewProcessInbound(
	puids *service.PUIDGenerator,
	validator *service.SchemaValidator,
	extractor *service.UniqueIDExtractor,
	transformer *service.Transformer,
	dedup port.DuplicateGuard,
	publisher port.OutcomePublisher,
	inboundRepo port.InboundMessageRepository,
	unifiedRepo port.UnifiedMessageRepository,
	eventRepo port.RouterEventRepository,
	metrics *observability.RouterMetrics,
	topics Topics,
	logger *slog.Logger,
) *ProcessInbound {
	return &ProcessInbound{
		puids:       puids,
		validator:   validator,
		extractor:   extractor,
		transformer: transformer,
		dedup:       dedup,
		publisher:   publisher,
		inboundRepo: inboundRepo,
		unifiedRepo: unifiedRepo,
		eventRepo:   eventRepo,
		metrics:     metrics,
		topics:      topics,
		logger:      logger,
		now:         time.Now,
	}
}

func (uc *ProcessInbound) Execute(ctx context.Context, req dto.ProcessInboundRequest) (dto.ProcessInboundResponse, error) {
	if err := ctx.Err(); err != nil {
		return dto.ProcessInboundResponse{}, err
	}

	puid := uc.puids.NextPUID()
	messageType := iso20022.Detect(req.RawXML)
	log := uc.logger.With("puid", puid, "messageType", string(messageType))

	msg, err := model.NewInboundMessage(puid, req.ChannelID, messageType, req.RawXML, uc.now())
	if err != nil {
		return dto.ProcessInboundResponse{}, err
	}
	uc.saveInbound(ctx, log, msg)

	// Schema validation. A failure is a terminal business outcome, not a
	// processing error: the raw document goes to the exception topic and a
	// rejection request is raised for the pacs.002 pipeline.
	start := uc.now()
	validationErr := uc.validator.Validate(req.RawXML, messageType)
	uc.observe(func(m *observability.RouterMetrics) { m.ValidateDuration.Observe(uc.now().Sub(start).Seconds()) })

	if validationErr != nil {
		uc.observe(func(m *observability.RouterMetrics) { m.XSDFailures.Inc() })
		log.Warn("schema validation failed", "error", validationErr)
		uc.reject(ctx, log, msg, validationErr)
		return dto.ProcessInboundResponse{
			PUID:        puid,
			MessageType: string(messageType),
			Outcome:     dto.OutcomeRejected,
			ErrorCode:   errCodeXSDFail,
		}, nil
	}

	msg = uc.mark(log, msg, model.InboundMessage.MarkValidated)
	uc.saveInbound(ctx, log, msg)

	// Duplicate check, fail-open: a guard error is logged and the message
	// proceeds rather than being dropped on infrastructure trouble.
	uniqueID := uc.extractor.ExtractUniqueID(req.RawXML, messageType)
	if duplicate, dupErr := uc.dedup.IsDuplicate(ctx, messageType, uniqueID, req.RawXML); dupErr != nil {
		log.Warn("duplicate check failed, continuing", "error", dupErr)
	} else if duplicate {
		log.Info("duplicate message discarded", "uniqueId", uniqueID)
		return dto.ProcessInboundResponse{
			PUID:        puid,
			MessageType: string(messageType),
			Outcome:     dto.OutcomeDuplicate,
		}, nil
	}

	start = uc.now()
	unifiedJSON, transformErr := uc.transformer.Transform(puid, req.RawXML, messageType)
	uc.observe(func(m *observability.RouterMetrics) { m.TransformDuration.Observe(uc.now().Sub(start).Seconds()) })

	if transformErr != nil {
		uc.observe(func(m *observability.RouterMetrics) { m.TransformFailures.Inc() })
		log.Error("transformation failed", "error", transformErr)
		// Exception topic only: no rejection request and no notification
		// event for this stop.
		uc.publishException(ctx, log, msg)
		uc.saveInbound(ctx, log, uc.mark(log, msg, func(m model.InboundMessage) (model.InboundMessage, error) {
			return m.MarkError(errCodeTransformFail)
		}))
		return dto.ProcessInboundResponse{
			PUID:        puid,
			MessageType: string(messageType),
			Outcome:     dto.OutcomeError,
			ErrorCode:   errCodeTransformFail,
		}, nil
	}

	start = uc.now()
	publishErr := uc.publisher.PublishValid(ctx, puid, string(unifiedJSON))
	uc.observe(func(m *observability.RouterMetrics) { m.PublishDuration.Observe(uc.now().Sub(start).Seconds()) })

	if publishErr != nil {
		// Only the topic publish is lost. Raising here would re-trigger
		// inbound redelivery of a message the dedup store has already
		// recorded, so the pipeline completes its remaining stages.
		log.Error("valid-topic publish failed, continuing", "error", publishErr)
	}

	uc.saveUnified(ctx, log, puid, messageType, string(unifiedJSON))
	uc.notify(ctx, log, msg, uc.topics.Valid)

	msg = uc.mark(log, msg, model.InboundMessage.MarkPublished)
	uc.saveInbound(ctx, log, msg)

	log.Info("message routed", "topic", uc.topics.Valid, "uniqueId", uniqueID)
	return dto.ProcessInboundResponse{
		PUID:        puid,
		MessageType: string(messageType),
		Outcome:     dto.OutcomePublished,
	}, nil
}

// reject fans the validation failure out to the exception topic, the
// pacs.002 pipeline and the notification stream, then records ERROR.
func (uc *ProcessInbound) reject(ctx context.Context, log *slog.Logger, msg model.InboundMessage, cause error) {
	uc.publishException(ctx, log, msg)

	var uniqueID *string
	if id := uc.extractor.ExtractUniqueID(msg.RawXML(), msg.MessageType()); id != "" {
		uniqueID = &id
	}
	payload, err := json.Marshal(rejectionRequest{
		PUID:        msg.PUID(),
		MessageType: string(msg.MessageType()),
		UniqueID:    uniqueID,
		Error:       cause.Error(),
		OriginalXML: msg.RawXML(),
	})
	if err != nil {
		log.Error("rejection request encoding failed", "error", err)
	} else if err := uc.publisher.PublishRejectionRequest(ctx, msg.PUID(), payload); err != nil {
		log.Error("rejection request publish failed", "error", err)
	}

	uc.notify(ctx, log, msg, uc.topics.Exception)
	uc.saveInbound(ctx, log, uc.mark(log, msg, func(m model.InboundMessage) (model.InboundMessage, error) {
		return m.MarkError(errCodeXSDFail)
	}))
}

func (uc *ProcessInbound) publishException(ctx context.Context, log *slog.Logger, msg model.InboundMessage) {
	if err := uc.publisher.PublishException(ctx, msg.PUID(), msg.RawXML()); err != nil {
		log.Error("exception publish failed", "error", err)
	}
}

func (uc *ProcessInbound) notify(ctx context.Context, log *slog.Logger, msg model.InboundMessage, topic string) {
	event := model.NewNotificationEvent(msg.PUID(), msg.ChannelID(), topic, uc.now())
	if err := uc.publisher.PublishNotification(ctx, event); err != nil {
		log.Warn("notification publish failed", "error", err)
		return
	}
	if uc.eventRepo == nil {
		return
	}
	body, err := event.JSON()
	if err != nil {
		log.Warn("notification encoding failed", "error", err)
		return
	}
	audit := model.RouterEvent{PUID: msg.PUID(), Topic: topic, CreatedAt: uc.now(), JSON: string(body)}
	if err := uc.eventRepo.Save(ctx, audit); err != nil {
		log.Warn("event audit save failed", "error", err)
	}
}

// mark applies a status transition, logging rather than failing when the
// transition is illegal. The returned copy carries the new status.
func (uc *ProcessInbound) mark(log *slog.Logger, msg model.InboundMessage, fn func(model.InboundMessage) (model.InboundMessage, error)) model.InboundMessage {
	next, err := fn(msg)
	if err != nil {
		log.Warn("status transition skipped", "error", err)
		return msg
	}
	return next
}

func (uc *ProcessInbound) saveInbound(ctx context.Context, log *slog.Logger, msg model.InboundMessage) {
	if uc.inboundRepo == nil {
		return
	}
	if err := uc.inboundRepo.Save(ctx, msg); err != nil {
		log.Warn("inbound audit save failed", "error", err)
	}
}

func (uc *ProcessInbound) saveUnified(ctx context.Context, log *slog.Logger, puid string, messageType iso20022.MessageType, unifiedJSON string) {
	if uc.unifiedRepo == nil {
		return
	}
	record, err := model.NewUnifiedMessage(puid, messageType, unifiedJSON, uc.now())
	if err != nil {
		log.Warn("unified record rejected", "error", err)
		return
	}
	if err := uc.unifiedRepo.Save(ctx, record); err != nil {
		log.Warn("unified record save failed", "error", err)
	}
}

func (uc *ProcessInbound) observe(fn func(*observability.RouterMetrics)) {
	if uc.metrics != nil {
		fn(uc.metrics)
	}
}
