package service

import (
	"fmt"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/hari-p8-io/clearpathgateway/pkg/iso20022"
)

// inboundIDFields is the correlation id fallback chain for the pacs.008
// family of inbound messages; first non-blank wins.
var inboundIDFields = []string{"EndToEndId", "InstrId", "TxId"}

// statusReportIDFields is the symmetric chain for pacs.002-style inputs.
var statusReportIDFields = []string{"OrgnlEndToEndId", "OrgnlTxId", "OrgnlMsgId"}

// UniqueIDExtractor pulls the business correlation id out of a document.
// Extraction is namespace-aware and entity-hardened. The result is never
// nil: unknown types and extraction failures yield "", and callers fall
// back to the PUID for correlation.
type UniqueIDExtractor struct{}

// NewUniqueIDExtractor creates an extractor.
func NewUniqueIDExtractor() *UniqueIDExtractor {
	return &UniqueIDExtractor{}
}

// ExtractUniqueID returns the correlation id for the document, or "".
func (e *UniqueIDExtractor) ExtractUniqueID(xml string, messageType iso20022.MessageType) string {
	fields := inboundIDFields
	namespace := ""

	switch {
	case strings.HasPrefix(string(messageType), "pacs.002"):
		fields = statusReportIDFields
		if desc, ok := iso20022.Lookup(messageType); ok {
			namespace = desc.Namespace
		}
	default:
		desc, ok := iso20022.Lookup(messageType)
		if !ok {
			return ""
		}
		namespace = desc.Namespace
	}

	doc, err := iso20022.ParseUntrusted(xml)
	if err != nil {
		return ""
	}

	for _, field := range fields {
		if v := lookupField(doc, namespace, field); v != "" {
			return v
		}
	}
	return ""
}

// lookupField tries exact namespace, then wildcard namespace, then no
// namespace, in that order.
func lookupField(doc *xmlquery.Node, namespace, local string) string {
	if namespace != "" {
		expr := fmt.Sprintf("//*[namespace-uri()=%q and local-name()=%q]", namespace, local)
		if v := iso20022.FirstText(doc, expr); v != "" {
			return v
		}
	}
	if v := iso20022.FirstText(doc, fmt.Sprintf("//*[local-name()=%q]", local)); v != "" {
		return v
	}
	return iso20022.FirstText(doc, "//"+local)
}
