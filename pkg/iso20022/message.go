package iso20022

import (
	"embed"
)

// MessageType identifies an ISO 20022 message schema version.
type MessageType string

const (
	// Inbound clearing types accepted by the router.
	Pacs008 MessageType = "pacs.008.001.13" // FIToFICustomerCreditTransfer
	Pacs003 MessageType = "pacs.003.001.11" // FIToFICustomerDirectDebit
	Pacs007 MessageType = "pacs.007.001.13" // FIToFIPaymentReversal
	Camt056 MessageType = "camt.056.001.11" // FIToFIPaymentCancellationRequest

	// Pacs002 is the outbound payment status report, used to carry RJCT.
	Pacs002 MessageType = "pacs.002.001.15"

	// Unknown is returned for anything outside the closed inbound set.
	// It never passes schema validation, forcing the rejection path.
	Unknown MessageType = "unknown"
)

// Message is the base interface for ISO 20022 messages the gateway emits.
type Message interface {
	Type() MessageType
	ToXML() ([]byte, error)
}

// Descriptor carries everything the pipeline needs to know about one
// inbound message type. Adding a type to the gateway is one registry entry
// plus its transform mapping.
type Descriptor struct {
	Type        MessageType
	Namespace   string // document namespace, exact-match first in id extraction
	UnifiedType string // canonical envelope tag, e.g. "PACS_008"
	Version     string // schema minor version, e.g. "13"
	SchemaFile  string // bundled XSD, relative to the schema dir
}

//go:embed schema/*.xsd
var schemaFS embed.FS

var registry = map[MessageType]Descriptor{
	Pacs008: {
		Type:        Pacs008,
		Namespace:   "urn:iso:std:iso:20022:tech:xsd:pacs.008.001.13",
		UnifiedType: "PACS_008",
		Version:     "13",
		SchemaFile:  "schema/pacs.008.001.13.xsd",
	},
	Pacs003: {
		Type:        Pacs003,
		Namespace:   "urn:iso:std:iso:20022:tech:xsd:pacs.003.001.11",
		UnifiedType: "PACS_003",
		Version:     "11",
		SchemaFile:  "schema/pacs.003.001.11.xsd",
	},
	Pacs007: {
		Type:        Pacs007,
		Namespace:   "urn:iso:std:iso:20022:tech:xsd:pacs.007.001.13",
		UnifiedType: "PACS_007",
		Version:     "13",
		SchemaFile:  "schema/pacs.007.001.13.xsd",
	},
	Camt056: {
		Type:        Camt056,
		Namespace:   "urn:iso:std:iso:20022:tech:xsd:camt.056.001.11",
		UnifiedType: "CAMT_056",
		Version:     "11",
		SchemaFile:  "schema/camt.056.001.11.xsd",
	},
}

// Lookup returns the registry entry for a message type.
func Lookup(t MessageType) (Descriptor, bool) {
	d, ok := registry[t]
	return d, ok
}

// SchemaBytes returns the bundled XSD for a message type. Schemas are only
// ever loaded from the embedded bundle; there is no external resolution.
func SchemaBytes(t MessageType) ([]byte, bool) {
	d, ok := registry[t]
	if !ok {
		return nil, false
	}
	buf, err := schemaFS.ReadFile(d.SchemaFile)
	if err != nil {
		return nil, false
	}
	return buf, true
}

// InboundTypes returns the closed set of accepted inbound types in
// detection priority order.
func InboundTypes() []MessageType {
	return []MessageType{Pacs008, Pacs003, Pacs007, Camt056}
}
