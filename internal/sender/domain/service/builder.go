package service

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hari-p8-io/clearpathgateway/pkg/iso20022"
)

// statusEvent is the downstream notification describing an issued report.
type statusEvent struct {
	MessageType      string         `json:"messageType"`
	MessageID        string         `json:"messageId"`
	CreationDateTime string         `json:"creationDateTime"`
	StatusReports    []statusReport `json:"statusReports"`
}

type statusReport struct {
	StatusID           string `json:"statusId"`
	OriginalEndToEndID string `json:"originalEndToEndId"`
	TransactionStatus  string `json:"transactionStatus"`
	StatusReason       string `json:"statusReason"`
}

// Pacs002Builder assembles the negative status report and its status
// event from a rejection request. Correlation ids are best-effort: they
// come from the failed document when it yields them, and fall back to the
// puid so the report always references something traceable.
type Pacs002Builder struct {
	now func() time.Time
}

func NewPacs002Builder() *Pacs002Builder {
	return &Pacs002Builder{now: time.Now}
}

// BuiltReport is a finished report with its status event.
type BuiltReport struct {
	XML                string
	Event              []byte
	OriginalMessageID  string
	OriginalEndToEndID string
}

// Build returns the pacs.002 XML and the status event payload.
func (b *Pacs002Builder) Build(puid, uniqueID, reason, originalXML string) (BuiltReport, error) {
	originalMsgID := b.originalMessageID(puid, originalXML)
	createdAt := b.now().UTC()

	report := iso20022.PaymentStatusReport{
		PUID:               puid,
		OriginalMessageID:  originalMsgID,
		OriginalEndToEndID: uniqueID,
		Reason:             reason,
		CreatedAt:          createdAt,
	}
	body, err := report.ToXML()
	if err != nil {
		return BuiltReport{}, fmt.Errorf("build status report for %s: %w", puid, err)
	}

	event, err := json.Marshal(statusEvent{
		MessageType:      "PACS_002",
		MessageID:        "SR-" + puid,
		CreationDateTime: createdAt.Format(time.RFC3339),
		StatusReports: []statusReport{{
			StatusID:           "SR-" + puid,
			OriginalEndToEndID: uniqueID,
			TransactionStatus:  "RJCT",
			StatusReason:       reason,
		}},
	})
	if err != nil {
		return BuiltReport{}, fmt.Errorf("build status event for %s: %w", puid, err)
	}

	return BuiltReport{
		XML:                string(body),
		Event:              event,
		OriginalMessageID:  originalMsgID,
		OriginalEndToEndID: uniqueID,
	}, nil
}

// originalMessageID pulls the referenced original message id when the
// failed document still parses. Only OrgnlMsgId qualifies: a reversal or
// cancellation carries its own GrpHdr MsgId too, and echoing that back
// would misattribute the rejection. Rejected documents are often
// malformed, so any parse trouble falls back to the puid.
func (b *Pacs002Builder) originalMessageID(puid, originalXML string) string {
	if originalXML == "" {
		return puid
	}
	doc, err := iso20022.ParseUntrusted(originalXML)
	if err != nil {
		return puid
	}
	if id := iso20022.FirstText(doc, "//*[local-name()='OrgnlMsgId']"); id != "" {
		return id
	}
	return puid
}
