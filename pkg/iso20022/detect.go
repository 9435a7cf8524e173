package iso20022

import "strings"

// Detect classifies raw XML into one of the known inbound message types by
// a case-insensitive scan for the schema identifier. First match wins in
// priority order; anything else is Unknown.
func Detect(xml string) MessageType {
	if xml == "" {
		return Unknown
	}
	lower := strings.ToLower(xml)
	for _, t := range InboundTypes() {
		if strings.Contains(lower, string(t)) {
			return t
		}
	}
	return Unknown
}
