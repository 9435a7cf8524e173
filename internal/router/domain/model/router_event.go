package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventCodePaymentReceived tags the notification emitted once an inbound
// message has been classified, whichever topic its payload landed on.
const EventCodePaymentReceived = "P.PSP.STS.M.OP_RPI.100"

// NotificationEvent is the structured payload published to the
// event-notification topic and audited as a RouterEvent row.
type NotificationEvent struct {
	PUID           string `json:"puid"`
	EventID        string `json:"eventId"`
	EventCode      string `json:"eventCode"`
	EventTimestamp string `json:"eventTimestamp"`
	Topic          string `json:"topic"`
	Channel        string `json:"channel"`
	Producer       string `json:"producer"`
}

// NewNotificationEvent builds the payment-received notification for a puid,
// tagged with the topic the message outcome was published to.
func NewNotificationEvent(puid, channel, topic string, at time.Time) NotificationEvent {
	return NotificationEvent{
		PUID:           puid,
		EventID:        uuid.NewString(),
		EventCode:      EventCodePaymentReceived,
		EventTimestamp: at.UTC().Format(time.RFC3339),
		Topic:          topic,
		Channel:        channel,
		Producer:       "Clear Path Gateway",
	}
}

// JSON renders the event payload.
func (e NotificationEvent) JSON() ([]byte, error) {
	return json.Marshal(e)
}

// RouterEvent is the audit row persisted for every notification publish.
type RouterEvent struct {
	PUID      string
	Topic     string
	CreatedAt time.Time
	JSON      string
}
