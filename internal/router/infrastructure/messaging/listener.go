package messaging

import (
	"context"
	"log/slog"
	"strings"
	"unicode"

	"github.com/hari-p8-io/clearpathgateway/internal/router/application/dto"
	"github.com/hari-p8-io/clearpathgateway/internal/router/application/usecase"
	"github.com/hari-p8-io/clearpathgateway/pkg/kafka"
)

const previewLimit = 120

// InboundListener adapts the raw inbound topic to the router pipeline.
type InboundListener struct {
	processor *usecase.ProcessInbound
	channelID string
	logger    *slog.Logger
}

func NewInboundListener(processor *usecase.ProcessInbound, channelID string, logger *slog.Logger) *InboundListener {
	return &InboundListener{processor: processor, channelID: channelID, logger: logger}
}

// Handle processes one consumed inbound message. Blank payloads are
// dropped here, before a puid is minted. Errors from the pipeline are
// propagated so the offset stays uncommitted and the document is
// redelivered.
func (l *InboundListener) Handle(ctx context.Context, msg kafka.Message) error {
	payload := string(msg.Value)
	if strings.TrimSpace(payload) == "" {
		l.logger.Warn("empty inbound payload skipped")
		return nil
	}

	l.logger.Info("inbound message received",
		"bytes", len(payload),
		"preview", maskedPreview(payload),
	)

	resp, err := l.processor.Execute(ctx, dto.ProcessInboundRequest{
		ChannelID: l.channelID,
		RawXML:    payload,
	})
	if err != nil {
		return err
	}

	l.logger.Info("inbound message handled",
		"puid", resp.PUID,
		"messageType", resp.MessageType,
		"outcome", resp.Outcome,
	)
	return nil
}

// maskedPreview returns a short log-safe excerpt of the payload with every
// digit replaced, so account numbers and IBANs never reach the logs.
func maskedPreview(payload string) string {
	excerpt := payload
	if len(excerpt) > previewLimit {
		excerpt = excerpt[:previewLimit]
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return '*'
		}
		return r
	}, excerpt)
}
