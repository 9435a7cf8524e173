package dto

// IssueRejectionRequest mirrors the rejection-request payload produced by
// the router for a document that failed validation.
type IssueRejectionRequest struct {
	PUID        string  `json:"puid"`
	MessageType string  `json:"messageType"`
	UniqueID    *string `json:"uniqueId"`
	Error       string  `json:"error"`
	OriginalXML string  `json:"originalXml"`
}

// IssueRejectionResponse reports the outcome of one rejection request.
// Accepted is true whenever the request reached a terminal state, report
// issued or recognized as already issued.
type IssueRejectionResponse struct {
	PUID          string
	StatusID      string
	Accepted      bool
	AlreadyIssued bool
}
