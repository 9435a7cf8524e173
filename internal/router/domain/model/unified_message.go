package model

import (
	"fmt"
	"time"

	"github.com/hari-p8-io/clearpathgateway/pkg/iso20022"
)

// UnifiedMessage is the canonical JSON envelope produced by a successful
// transformation. Created exactly once per puid; append-only.
type UnifiedMessage struct {
	puid        string
	messageType iso20022.MessageType
	createdAt   time.Time
	json        string
}

// NewUnifiedMessage creates the append-only record for a transformed document.
func NewUnifiedMessage(puid string, messageType iso20022.MessageType, json string, createdAt time.Time) (UnifiedMessage, error) {
	if puid == "" {
		return UnifiedMessage{}, fmt.Errorf("puid is required")
	}
	if json == "" {
		return UnifiedMessage{}, fmt.Errorf("canonical json is required")
	}
	return UnifiedMessage{
		puid:        puid,
		messageType: messageType,
		createdAt:   createdAt,
		json:        json,
	}, nil
}

func (m UnifiedMessage) PUID() string                      { return m.puid }
func (m UnifiedMessage) MessageType() iso20022.MessageType { return m.messageType }
func (m UnifiedMessage) CreatedAt() time.Time              { return m.createdAt }
func (m UnifiedMessage) JSON() string                      { return m.json }
