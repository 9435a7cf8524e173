package model

import (
	"fmt"
	"time"
)

// RejectionRecord is the idempotency anchor of the pacs.002 pipeline: one
// row per rejected puid, holding the exact report XML and status event
// that were issued for it. A redelivered rejection request for a recorded
// puid is acknowledged without issuing a second report.
type RejectionRecord struct {
	puid               string
	statusID           string
	originalMessageID  string
	originalEndToEndID string
	reason             string
	pacs002XML         string
	eventJSON          string
	createdAt          time.Time
}

// NewRejectionRecord creates the record for a freshly built report.
func NewRejectionRecord(puid, originalMessageID, originalEndToEndID, reason, pacs002XML, eventJSON string, createdAt time.Time) (RejectionRecord, error) {
	if puid == "" {
		return RejectionRecord{}, fmt.Errorf("puid is required")
	}
	if pacs002XML == "" {
		return RejectionRecord{}, fmt.Errorf("report XML is required")
	}
	return RejectionRecord{
		puid:               puid,
		statusID:           "SR-" + puid,
		originalMessageID:  originalMessageID,
		originalEndToEndID: originalEndToEndID,
		reason:             reason,
		pacs002XML:         pacs002XML,
		eventJSON:          eventJSON,
		createdAt:          createdAt,
	}, nil
}

// Reconstruct recreates a RejectionRecord from persistence (no validation).
func Reconstruct(puid, statusID, originalMessageID, originalEndToEndID, reason, pacs002XML, eventJSON string, createdAt time.Time) RejectionRecord {
	return RejectionRecord{
		puid:               puid,
		statusID:           statusID,
		originalMessageID:  originalMessageID,
		originalEndToEndID: originalEndToEndID,
		reason:             reason,
		pacs002XML:         pacs002XML,
		eventJSON:          eventJSON,
		createdAt:          createdAt,
	}
}

func (r RejectionRecord) PUID() string               { return r.puid }
func (r RejectionRecord) StatusID() string           { return r.statusID }
func (r RejectionRecord) OriginalMessageID() string  { return r.originalMessageID }
func (r RejectionRecord) OriginalEndToEndID() string { return r.originalEndToEndID }
func (r RejectionRecord) Reason() string             { return r.reason }
func (r RejectionRecord) Pacs002XML() string         { return r.pacs002XML }
func (r RejectionRecord) EventJSON() string          { return r.eventJSON }
func (r RejectionRecord) CreatedAt() time.Time       { return r.createdAt }
