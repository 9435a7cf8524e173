package valueobject

import "fmt"

// MessageStatus represents the lifecycle state of an inbound message.
// Transitions are monotone: RECEIVED -> VALIDATED -> PUBLISHED, or
// RECEIVED -> ERROR. There are no back-transitions.
type MessageStatus struct {
	value string
}

var (
	StatusReceived  = MessageStatus{"RECEIVED"}
	StatusValidated = MessageStatus{"VALIDATED"}
	StatusPublished = MessageStatus{"PUBLISHED"}
	StatusError     = MessageStatus{"ERROR"}
)

var validStatuses = map[string]MessageStatus{
	"RECEIVED":  StatusReceived,
	"VALIDATED": StatusValidated,
	"PUBLISHED": StatusPublished,
	"ERROR":     StatusError,
}

var allowedTransitions = map[string][]MessageStatus{
	"RECEIVED":  {StatusValidated, StatusError},
	"VALIDATED": {StatusPublished, StatusError},
	"PUBLISHED": {},
	"ERROR":     {},
}

// NewMessageStatus validates and creates a MessageStatus from a string.
func NewMessageStatus(s string) (MessageStatus, error) {
	if status, ok := validStatuses[s]; ok {
		return status, nil
	}
	return MessageStatus{}, fmt.Errorf("invalid message status: %q", s)
}

// String returns the string representation of the status.
func (s MessageStatus) String() string {
	return s.value
}

// CanTransitionTo reports whether moving to next is a legal transition.
func (s MessageStatus) CanTransitionTo(next MessageStatus) bool {
	for _, allowed := range allowedTransitions[s.value] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal returns true for PUBLISHED and ERROR.
func (s MessageStatus) IsTerminal() bool {
	return s == StatusPublished || s == StatusError
}

// IsZero returns true if the status is uninitialized.
func (s MessageStatus) IsZero() bool {
	return s.value == ""
}
