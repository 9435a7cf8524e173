package iso20022

import (
	"encoding/xml"
	"time"
)

// PaymentStatusReport represents an outbound pacs.002 carrying a rejection
// (RJCT) status for one original message.
type PaymentStatusReport struct {
	PUID               string
	OriginalMessageID  string // OrgnlMsgId; empty omits the element
	OriginalEndToEndID string // OrgnlEndToEndId; empty omits the element
	Reason             string
	CreatedAt          time.Time
}

func (r PaymentStatusReport) Type() MessageType { return Pacs002 }

// ToXML renders the report as a pacs.002 document. All interpolated text is
// entity-escaped by the XML encoder.
func (r PaymentStatusReport) ToXML() ([]byte, error) {
	reason := r.Reason
	if reason == "" {
		reason = "Validation failure"
	}
	stsRsn := pacs002StsRsnInf{
		Rsn:      pacs002Rsn{Prtry: "VALD"},
		AddtlInf: reason,
	}

	doc := pacs002Document{
		Xmlns: "urn:iso:std:iso:20022:tech:xsd:pacs.002.001.15",
		FIToFIPmtStsRpt: pacs002FIToFIPmtStsRpt{
			GrpHdr: pacs002GrpHdr{
				MsgID:   "P002-" + r.PUID,
				CreDtTm: r.CreatedAt.Format(time.RFC3339),
			},
			OrgnlGrpInfAndSts: pacs002OrgnlGrpInfAndSts{
				OrgnlMsgID: r.OriginalMessageID,
				GrpSts:     "RJCT",
				StsRsnInf:  stsRsn,
			},
			TxInfAndSts: pacs002TxInfAndSts{
				OrgnlEndToEndID: r.OriginalEndToEndID,
				TxSts:           "RJCT",
				StsRsnInf:       stsRsn,
			},
		},
	}

	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}

// XML marshaling structs

type pacs002Document struct {
	XMLName         xml.Name               `xml:"Document"`
	Xmlns           string                 `xml:"xmlns,attr"`
	FIToFIPmtStsRpt pacs002FIToFIPmtStsRpt `xml:"FIToFIPmtStsRpt"`
}

type pacs002FIToFIPmtStsRpt struct {
	GrpHdr            pacs002GrpHdr            `xml:"GrpHdr"`
	OrgnlGrpInfAndSts pacs002OrgnlGrpInfAndSts `xml:"OrgnlGrpInfAndSts"`
	TxInfAndSts       pacs002TxInfAndSts       `xml:"TxInfAndSts"`
}

type pacs002GrpHdr struct {
	MsgID   string `xml:"MsgId"`
	CreDtTm string `xml:"CreDtTm"`
}

type pacs002OrgnlGrpInfAndSts struct {
	OrgnlMsgID string           `xml:"OrgnlMsgId,omitempty"`
	GrpSts     string           `xml:"GrpSts"`
	StsRsnInf  pacs002StsRsnInf `xml:"StsRsnInf"`
}

type pacs002TxInfAndSts struct {
	OrgnlEndToEndID string           `xml:"OrgnlEndToEndId,omitempty"`
	TxSts           string           `xml:"TxSts"`
	StsRsnInf       pacs002StsRsnInf `xml:"StsRsnInf"`
}

type pacs002StsRsnInf struct {
	Rsn      pacs002Rsn `xml:"Rsn"`
	AddtlInf string     `xml:"AddtlInf"`
}

type pacs002Rsn struct {
	Prtry string `xml:"Prtry"`
}
