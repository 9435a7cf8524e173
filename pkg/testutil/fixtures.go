package testutil

// Sample ISO 20022 documents used across the gateway test suites. The valid
// fixtures conform to the bundled clearing-profile schemas.

// ValidPacs008 is a schema-valid credit transfer with a single transaction.
const ValidPacs008 = `<?xml version="1.0" encoding="UTF-8"?>
<Document xmlns="urn:iso:std:iso:20022:tech:xsd:pacs.008.001.13">
  <FIToFICstmrCdtTrf>
    <GrpHdr>
      <MsgId>MSG-20250115-001</MsgId>
      <CreDtTm>2025-01-15T09:30:00Z</CreDtTm>
      <NbOfTxs>1</NbOfTxs>
      <SttlmInf>
        <SttlmMtd>CLRG</SttlmMtd>
      </SttlmInf>
    </GrpHdr>
    <CdtTrfTxInf>
      <PmtId>
        <InstrId>INSTR-001</InstrId>
        <EndToEndId>E2E-001</EndToEndId>
        <TxId>TX-001</TxId>
      </PmtId>
      <IntrBkSttlmAmt Ccy="SGD">1000.00</IntrBkSttlmAmt>
      <Dbtr>
        <Nm>Alpha Trading Pte Ltd</Nm>
      </Dbtr>
      <Cdtr>
        <Nm>Beta Holdings Pte Ltd</Nm>
      </Cdtr>
    </CdtTrfTxInf>
  </FIToFICstmrCdtTrf>
</Document>`

// InvalidPacs008 is well-formed XML in the pacs.008 namespace but missing
// the mandatory EndToEndId, so schema validation fails.
const InvalidPacs008 = `<?xml version="1.0" encoding="UTF-8"?>
<Document xmlns="urn:iso:std:iso:20022:tech:xsd:pacs.008.001.13">
  <FIToFICstmrCdtTrf>
    <GrpHdr>
      <MsgId>MSG-BAD-001</MsgId>
      <CreDtTm>2025-01-15T09:30:00Z</CreDtTm>
    </GrpHdr>
    <CdtTrfTxInf>
      <PmtId>
        <InstrId>INSTR-BAD</InstrId>
      </PmtId>
      <IntrBkSttlmAmt Ccy="SGD">55.00</IntrBkSttlmAmt>
    </CdtTrfTxInf>
  </FIToFICstmrCdtTrf>
</Document>`

// ValidPacs003 is a schema-valid direct debit.
const ValidPacs003 = `<?xml version="1.0" encoding="UTF-8"?>
<Document xmlns="urn:iso:std:iso:20022:tech:xsd:pacs.003.001.11">
  <FIToFICstmrDrctDbt>
    <GrpHdr>
      <MsgId>DD-20250115-001</MsgId>
      <CreDtTm>2025-01-15T10:00:00Z</CreDtTm>
      <NbOfTxs>1</NbOfTxs>
    </GrpHdr>
    <DrctDbtTxInf>
      <PmtId>
        <EndToEndId>DD-E2E-001</EndToEndId>
      </PmtId>
      <InstdAmt Ccy="SGD">250.50</InstdAmt>
      <ReqdColltnDt>2025-01-16</ReqdColltnDt>
    </DrctDbtTxInf>
  </FIToFICstmrDrctDbt>
</Document>`

// ValidPacs007 is a schema-valid payment reversal.
const ValidPacs007 = `<?xml version="1.0" encoding="UTF-8"?>
<Document xmlns="urn:iso:std:iso:20022:tech:xsd:pacs.007.001.13">
  <FIToFIPmtRvsl>
    <GrpHdr>
      <MsgId>RVSL-20250115-001</MsgId>
      <CreDtTm>2025-01-15T11:00:00Z</CreDtTm>
    </GrpHdr>
    <OrgnlGrpInf>
      <OrgnlMsgId>MSG-20250114-042</OrgnlMsgId>
      <OrgnlMsgNmId>pacs.008.001.13</OrgnlMsgNmId>
    </OrgnlGrpInf>
    <TxInf>
      <RvslId>RVSL-001</RvslId>
      <OrgnlEndToEndId>E2E-OLD-042</OrgnlEndToEndId>
      <RvsdIntrBkSttlmAmt Ccy="SGD">75.25</RvsdIntrBkSttlmAmt>
    </TxInf>
  </FIToFIPmtRvsl>
</Document>`

// ValidCamt056 is a schema-valid cancellation request.
const ValidCamt056 = `<?xml version="1.0" encoding="UTF-8"?>
<Document xmlns="urn:iso:std:iso:20022:tech:xsd:camt.056.001.11">
  <FIToFIPmtCxlReq>
    <Assgnmt>
      <Id>CASE-001</Id>
      <CreDtTm>2025-01-15T12:00:00Z</CreDtTm>
    </Assgnmt>
    <Undrlyg>
      <OrgnlGrpInfAndCxl>
        <OrgnlMsgId>MSG-20250114-042</OrgnlMsgId>
        <OrgnlMsgNmId>pacs.008.001.13</OrgnlMsgNmId>
      </OrgnlGrpInfAndCxl>
    </Undrlyg>
  </FIToFIPmtCxlReq>
</Document>`

// UnknownXML matches none of the accepted schema identifiers.
const UnknownXML = `<?xml version="1.0" encoding="UTF-8"?>
<Payment><Id>42</Id><Amount>100</Amount></Payment>`
