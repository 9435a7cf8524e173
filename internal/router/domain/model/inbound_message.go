package model

import (
	"fmt"
	"time"

	"github.com/hari-p8-io/clearpathgateway/internal/router/domain/valueobject"
	"github.com/hari-p8-io/clearpathgateway/pkg/iso20022"
)

// InboundMessage is the audit record for one inbound XML document. One row
// per receipt, created on arrival and updated as the pipeline progresses;
// rows are never deleted.
type InboundMessage struct {
	puid        string
	channelID   string
	messageType iso20022.MessageType
	receivedAt  time.Time
	rawXML      string
	status      valueobject.MessageStatus
	errorCode   string
}

// NewInboundMessage creates the RECEIVED audit record for a raw document.
func NewInboundMessage(puid, channelID string, messageType iso20022.MessageType, rawXML string, receivedAt time.Time) (InboundMessage, error) {
	if puid == "" {
		return InboundMessage{}, fmt.Errorf("puid is required")
	}
	if channelID == "" {
		return InboundMessage{}, fmt.Errorf("channel ID is required")
	}
	return InboundMessage{
		puid:        puid,
		channelID:   channelID,
		messageType: messageType,
		receivedAt:  receivedAt,
		rawXML:      rawXML,
		status:      valueobject.StatusReceived,
	}, nil
}

// Reconstruct recreates an InboundMessage from persistence (no validation).
func Reconstruct(puid, channelID string, messageType iso20022.MessageType, receivedAt time.Time, rawXML string, status valueobject.MessageStatus, errorCode string) InboundMessage {
	return InboundMessage{
		puid:        puid,
		channelID:   channelID,
		messageType: messageType,
		receivedAt:  receivedAt,
		rawXML:      rawXML,
		status:      status,
		errorCode:   errorCode,
	}
}

// MarkValidated transitions the message to VALIDATED (returns a new copy).
func (m InboundMessage) MarkValidated() (InboundMessage, error) {
	return m.transition(valueobject.StatusValidated, "")
}

// MarkPublished transitions the message to PUBLISHED (returns a new copy).
func (m InboundMessage) MarkPublished() (InboundMessage, error) {
	return m.transition(valueobject.StatusPublished, "")
}

// MarkError transitions the message to ERROR with a failure code such as
// "XSD_FAIL" or "TRANSFORM_FAIL" (returns a new copy).
func (m InboundMessage) MarkError(code string) (InboundMessage, error) {
	return m.transition(valueobject.StatusError, code)
}

func (m InboundMessage) transition(next valueobject.MessageStatus, errorCode string) (InboundMessage, error) {
	if !m.status.CanTransitionTo(next) {
		return InboundMessage{}, fmt.Errorf("illegal status transition %s -> %s for puid %s", m.status, next, m.puid)
	}
	updated := m
	updated.status = next
	updated.errorCode = errorCode
	return updated, nil
}

// Accessors

func (m InboundMessage) PUID() string                        { return m.puid }
func (m InboundMessage) ChannelID() string                   { return m.channelID }
func (m InboundMessage) MessageType() iso20022.MessageType   { return m.messageType }
func (m InboundMessage) ReceivedAt() time.Time               { return m.receivedAt }
func (m InboundMessage) RawXML() string                      { return m.rawXML }
func (m InboundMessage) Status() valueobject.MessageStatus   { return m.status }
func (m InboundMessage) ErrorCode() string                   { return m.errorCode }
