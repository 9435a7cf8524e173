package service

import (
	"encoding/json"
	"time"

	"github.com/antchfx/xmlquery"
	"github.com/shopspring/decimal"

	"github.com/hari-p8-io/clearpathgateway/pkg/iso20022"
)

// unifiedEnvelope is the canonical JSON shape published for every
// successfully transformed message. Amounts are carried as json.Number so
// the lexical form from the wire ("1000.00") survives re-encoding.
type unifiedEnvelope struct {
	PUID             string      `json:"puid"`
	MessageType      string      `json:"messageType"`
	UnifiedType      string      `json:"unifiedType"`
	Version          string      `json:"version"`
	MessageID        string      `json:"messageId,omitempty"`
	CreationDateTime string      `json:"creationDateTime,omitempty"`
	EndToEndID       string      `json:"endToEndId,omitempty"`
	TransactionID    string      `json:"transactionId,omitempty"`
	InstructionID    string      `json:"instructionId,omitempty"`
	OriginalMsgID    string      `json:"originalMessageId,omitempty"`
	Amount           json.Number `json:"amount,omitempty"`
	Currency         string      `json:"currency,omitempty"`
	DebtorName       string      `json:"debtorName,omitempty"`
	CreditorName     string      `json:"creditorName,omitempty"`
	TransformedAt    string      `json:"transformedAt"`
}

// passthroughEnvelope wraps payloads whose type has no dedicated mapping.
type passthroughEnvelope struct {
	PUID        string `json:"puid"`
	MessageType string `json:"messageType"`
	Raw         string `json:"raw"`
	Passthrough bool   `json:"passthrough"`
}

type mappingFunc func(doc *xmlquery.Node, env *unifiedEnvelope)

// Transformer converts validated ISO 20022 XML into the canonical JSON
// representation downstream consumers operate on.
type Transformer struct {
	now      func() time.Time
	mappings map[iso20022.MessageType]mappingFunc
}

// NewTransformer creates a transformer with all supported type mappings
// registered.
func NewTransformer() *Transformer {
	return &Transformer{
		now: time.Now,
		mappings: map[iso20022.MessageType]mappingFunc{
			iso20022.Pacs008: mapCreditTransfer,
			iso20022.Pacs003: mapDirectDebit,
			iso20022.Pacs007: mapReversal,
			iso20022.Camt056: mapCancellationRequest,
		},
	}
}

// Transform produces canonical JSON for the payload. A type without a
// registered mapping yields a passthrough envelope rather than an error.
// Parse failures on a mapped type return TransformFailure.
func (t *Transformer) Transform(puid, xml string, messageType iso20022.MessageType) ([]byte, error) {
	mapping, ok := t.mappings[messageType]
	if !ok {
		return t.passthrough(puid, xml, messageType)
	}

	doc, err := iso20022.ParseUntrusted(xml)
	if err != nil {
		return nil, &TransformFailure{MessageType: messageType, cause: err}
	}

	desc, _ := iso20022.Lookup(messageType)
	env := unifiedEnvelope{
		PUID:          puid,
		MessageType:   string(messageType),
		UnifiedType:   desc.UnifiedType,
		Version:       desc.Version,
		TransformedAt: t.now().UTC().Format(time.RFC3339),
	}
	mapping(doc, &env)

	if env.Amount != "" {
		if _, err := decimal.NewFromString(env.Amount.String()); err != nil {
			return nil, &TransformFailure{MessageType: messageType, cause: err}
		}
	}

	out, err := json.Marshal(env)
	if err != nil {
		return nil, &TransformFailure{MessageType: messageType, cause: err}
	}
	return out, nil
}

func (t *Transformer) passthrough(puid, xml string, messageType iso20022.MessageType) ([]byte, error) {
	out, err := json.Marshal(passthroughEnvelope{
		PUID:        puid,
		MessageType: string(messageType),
		Raw:         xml,
		Passthrough: true,
	})
	if err != nil {
		return nil, &TransformFailure{MessageType: messageType, cause: err}
	}
	return out, nil
}

func text(doc *xmlquery.Node, local string) string {
	return iso20022.FirstText(doc, "//*[local-name()='"+local+"']")
}

func amount(doc *xmlquery.Node, local string) (json.Number, string) {
	expr := "//*[local-name()='" + local + "']"
	val := iso20022.FirstText(doc, expr)
	ccy := iso20022.FirstAttr(doc, expr, "Ccy")
	return json.Number(val), ccy
}

func mapCommonHeader(doc *xmlquery.Node, env *unifiedEnvelope) {
	env.MessageID = text(doc, "MsgId")
	env.CreationDateTime = text(doc, "CreDtTm")
}

func mapCreditTransfer(doc *xmlquery.Node, env *unifiedEnvelope) {
	mapCommonHeader(doc, env)
	env.EndToEndID = text(doc, "EndToEndId")
	env.TransactionID = text(doc, "TxId")
	env.InstructionID = text(doc, "InstrId")
	env.Amount, env.Currency = amount(doc, "IntrBkSttlmAmt")
	env.DebtorName = iso20022.FirstText(doc, "//*[local-name()='Dbtr']/*[local-name()='Nm']")
	env.CreditorName = iso20022.FirstText(doc, "//*[local-name()='Cdtr']/*[local-name()='Nm']")
}

func mapDirectDebit(doc *xmlquery.Node, env *unifiedEnvelope) {
	mapCommonHeader(doc, env)
	env.EndToEndID = text(doc, "EndToEndId")
	env.TransactionID = text(doc, "TxId")
	env.Amount, env.Currency = amount(doc, "InstdAmt")
}

func mapReversal(doc *xmlquery.Node, env *unifiedEnvelope) {
	mapCommonHeader(doc, env)
	env.EndToEndID = text(doc, "OrgnlEndToEndId")
	env.OriginalMsgID = text(doc, "OrgnlMsgId")
	env.Amount, env.Currency = amount(doc, "RvsdIntrBkSttlmAmt")
}

func mapCancellationRequest(doc *xmlquery.Node, env *unifiedEnvelope) {
	// camt.056 carries its header under Assgnmt rather than GrpHdr.
	env.MessageID = iso20022.FirstText(doc, "//*[local-name()='Assgnmt']/*[local-name()='Id']")
	env.CreationDateTime = iso20022.FirstText(doc, "//*[local-name()='Assgnmt']/*[local-name()='CreDtTm']")
	env.OriginalMsgID = text(doc, "OrgnlMsgId")
	env.EndToEndID = text(doc, "OrgnlEndToEndId")
}
