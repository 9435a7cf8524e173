package service

import (
	"errors"
	"fmt"

	"github.com/hari-p8-io/clearpathgateway/pkg/iso20022"
)

// ErrUnsupportedType is returned when validation is requested for a type
// with no bundled schema, including "unknown".
var ErrUnsupportedType = errors.New("unsupported message type for schema validation")

// SchemaViolation reports that a document failed XSD validation for its
// detected type. The underlying validation error is preserved as the cause.
type SchemaViolation struct {
	MessageType iso20022.MessageType
	Detail      string
	cause       error
}

func (e *SchemaViolation) Error() string {
	return fmt.Sprintf("document does not conform to schema for type %s: %s", e.MessageType, e.Detail)
}

func (e *SchemaViolation) Unwrap() error { return e.cause }

// TransformFailure reports that a schema-valid document could not be mapped
// to the canonical envelope.
type TransformFailure struct {
	MessageType iso20022.MessageType
	cause       error
}

func (e *TransformFailure) Error() string {
	return fmt.Sprintf("transform failed for type %s: %v", e.MessageType, e.cause)
}

func (e *TransformFailure) Unwrap() error { return e.cause }
