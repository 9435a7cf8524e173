package service

import (
	"fmt"
	"strings"

	"github.com/lestrrat-go/libxml2/parser"
	"github.com/lestrrat-go/libxml2/xsd"

	"github.com/hari-p8-io/clearpathgateway/pkg/iso20022"
)

// SchemaValidator validates whole documents against the bundled XSD for
// their detected type. Schemas are compiled once at construction from the
// embedded bundle; there is no external DTD, entity, or schema resolution
// anywhere in the validation path.
type SchemaValidator struct {
	schemas map[iso20022.MessageType]*xsd.Schema
}

// NewSchemaValidator compiles the bundled schemas for all accepted inbound
// types.
func NewSchemaValidator() (*SchemaValidator, error) {
	schemas := make(map[iso20022.MessageType]*xsd.Schema, len(iso20022.InboundTypes()))
	for _, mt := range iso20022.InboundTypes() {
		buf, ok := iso20022.SchemaBytes(mt)
		if !ok {
			return nil, fmt.Errorf("no bundled schema for type %s", mt)
		}
		schema, err := xsd.Parse(buf)
		if err != nil {
			return nil, fmt.Errorf("compile schema for type %s: %w", mt, err)
		}
		schemas[mt] = schema
	}
	return &SchemaValidator{schemas: schemas}, nil
}

// Close releases the compiled schemas.
func (v *SchemaValidator) Close() {
	for _, s := range v.schemas {
		s.Free()
	}
}

// Validate checks xml against the XSD for messageType. It returns
// ErrUnsupportedType for unmapped types and a SchemaViolation for any
// parse or validation failure, with the cause preserved.
func (v *SchemaValidator) Validate(xml string, messageType iso20022.MessageType) error {
	schema, ok := v.schemas[messageType]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedType, messageType)
	}

	if err := iso20022.CheckUntrusted(xml); err != nil {
		return &SchemaViolation{MessageType: messageType, Detail: err.Error(), cause: err}
	}

	p := parser.New(parser.XMLParseNoNet)
	doc, err := p.ParseString(xml)
	if err != nil {
		return &SchemaViolation{MessageType: messageType, Detail: "document is not well-formed", cause: err}
	}
	defer doc.Free()

	if err := schema.Validate(doc); err != nil {
		return &SchemaViolation{MessageType: messageType, Detail: validationDetail(err), cause: err}
	}
	return nil
}

// validationDetail flattens libxml2's per-line errors into one message.
func validationDetail(err error) string {
	sverr, ok := err.(xsd.SchemaValidationError)
	if !ok {
		return err.Error()
	}
	parts := make([]string, 0, len(sverr.Errors()))
	for _, e := range sverr.Errors() {
		parts = append(parts, strings.TrimSpace(e.Error()))
	}
	if len(parts) == 0 {
		return err.Error()
	}
	return strings.Join(parts, "; ")
}
