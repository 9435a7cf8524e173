package iso20022

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		xml  string
		want MessageType
	}{
		{
			name: "pacs008 by namespace",
			xml:  `<Document xmlns="urn:iso:std:iso:20022:tech:xsd:pacs.008.001.13"><FIToFICstmrCdtTrf/></Document>`,
			want: Pacs008,
		},
		{
			name: "pacs003 by namespace",
			xml:  `<Document xmlns="urn:iso:std:iso:20022:tech:xsd:pacs.003.001.11"/>`,
			want: Pacs003,
		},
		{
			name: "pacs007 by namespace",
			xml:  `<Document xmlns="urn:iso:std:iso:20022:tech:xsd:pacs.007.001.13"/>`,
			want: Pacs007,
		},
		{
			name: "camt056 by namespace",
			xml:  `<Document xmlns="urn:iso:std:iso:20022:tech:xsd:camt.056.001.11"/>`,
			want: Camt056,
		},
		{
			name: "case insensitive match",
			xml:  `<Document xmlns="URN:ISO:STD:ISO:20022:TECH:XSD:PACS.008.001.13"/>`,
			want: Pacs008,
		},
		{
			name: "priority order when multiple identifiers present",
			xml:  `<x>pacs.003.001.11 pacs.008.001.13</x>`,
			want: Pacs008,
		},
		{
			name: "unrelated xml is unknown",
			xml:  `<order><id>42</id></order>`,
			want: Unknown,
		},
		{
			name: "different schema version is unknown",
			xml:  `<Document xmlns="urn:iso:std:iso:20022:tech:xsd:pacs.008.001.12"/>`,
			want: Unknown,
		},
		{
			name: "empty input is unknown",
			xml:  "",
			want: Unknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(tt.xml))
		})
	}
}

func TestRegistryCoversAllInboundTypes(t *testing.T) {
	for _, mt := range InboundTypes() {
		d, ok := Lookup(mt)
		assert.True(t, ok, "missing registry entry for %s", mt)
		assert.Equal(t, mt, d.Type)
		assert.NotEmpty(t, d.Namespace)
		assert.NotEmpty(t, d.UnifiedType)

		buf, ok := SchemaBytes(mt)
		assert.True(t, ok, "missing bundled schema for %s", mt)
		assert.NotEmpty(t, buf)
	}
}

func TestLookupUnknown(t *testing.T) {
	_, ok := Lookup(Unknown)
	assert.False(t, ok)

	_, ok = SchemaBytes(Unknown)
	assert.False(t, ok)
}
