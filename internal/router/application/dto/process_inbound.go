package dto

// Outcome values for a processed inbound message.
const (
	OutcomePublished = "PUBLISHED"
	OutcomeRejected  = "REJECTED"
	OutcomeDuplicate = "DUPLICATE"
	OutcomeError     = "ERROR"
)

// ProcessInboundRequest carries one raw inbound XML document.
type ProcessInboundRequest struct {
	ChannelID string
	RawXML    string
}

// ProcessInboundResponse reports what the router did with the document.
type ProcessInboundResponse struct {
	PUID        string
	MessageType string
	Outcome     string
	ErrorCode   string
}
