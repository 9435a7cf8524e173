package iso20022

import (
	"errors"
	"strings"

	"github.com/antchfx/xmlquery"
)

// ErrDoctypeForbidden is returned for untrusted XML carrying a DOCTYPE
// declaration. Clearing-network payloads never legitimately contain one,
// and rejecting them up front closes off entity-expansion and XXE tricks
// at every parse site uniformly.
var ErrDoctypeForbidden = errors.New("iso20022: DOCTYPE declarations are not allowed")

// CheckUntrusted screens raw XML before any parser sees it.
func CheckUntrusted(xml string) error {
	if strings.Contains(strings.ToLower(xml), "<!doctype") {
		return ErrDoctypeForbidden
	}
	return nil
}

// ParseUntrusted parses untrusted XML into a query-able document. The
// underlying decoder never resolves external entities, and DOCTYPE payloads
// are rejected before parsing.
func ParseUntrusted(xml string) (*xmlquery.Node, error) {
	if err := CheckUntrusted(xml); err != nil {
		return nil, err
	}
	doc, err := xmlquery.Parse(strings.NewReader(xml))
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// FirstText evaluates an XPath expression against a parsed document and
// returns the trimmed text of the first match, or "" when there is none.
func FirstText(doc *xmlquery.Node, expr string) string {
	n := xmlquery.FindOne(doc, expr)
	if n == nil {
		return ""
	}
	return strings.TrimSpace(n.InnerText())
}

// FirstAttr returns the named attribute of the first XPath match, or "".
func FirstAttr(doc *xmlquery.Node, expr, attr string) string {
	n := xmlquery.FindOne(doc, expr)
	if n == nil {
		return ""
	}
	return strings.TrimSpace(n.SelectAttr(attr))
}
