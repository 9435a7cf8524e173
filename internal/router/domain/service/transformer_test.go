package service_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hari-p8-io/clearpathgateway/internal/router/domain/service"
	"github.com/hari-p8-io/clearpathgateway/pkg/iso20022"
	"github.com/hari-p8-io/clearpathgateway/pkg/testutil"
)

func TestTransformCreditTransfer(t *testing.T) {
	tr := service.NewTransformer()

	out, err := tr.Transform("G3I2501150000042", testutil.ValidPacs008, iso20022.Pacs008)
	require.NoError(t, err)

	// The lexical amount must survive re-encoding untouched.
	assert.Contains(t, string(out), `"amount":1000.00`)

	var env map[string]any
	require.NoError(t, json.Unmarshal(out, &env))
	assert.Equal(t, "G3I2501150000042", env["puid"])
	assert.Equal(t, "pacs.008.001.13", env["messageType"])
	assert.Equal(t, "MSG-20250115-001", env["messageId"])
	assert.Equal(t, "E2E-001", env["endToEndId"])
	assert.Equal(t, "TX-001", env["transactionId"])
	assert.Equal(t, "INSTR-001", env["instructionId"])
	assert.Equal(t, "SGD", env["currency"])
	assert.Equal(t, "Alpha Trading Pte Ltd", env["debtorName"])
	assert.Equal(t, "Beta Holdings Pte Ltd", env["creditorName"])
	assert.NotEmpty(t, env["transformedAt"])
}

func TestTransformDirectDebit(t *testing.T) {
	tr := service.NewTransformer()

	out, err := tr.Transform("G3I2501150000001", testutil.ValidPacs003, iso20022.Pacs003)
	require.NoError(t, err)

	var env map[string]any
	require.NoError(t, json.Unmarshal(out, &env))
	assert.Equal(t, "DD-20250115-001", env["messageId"])
	assert.Equal(t, "DD-E2E-001", env["endToEndId"])
	assert.Equal(t, "SGD", env["currency"])
	assert.Contains(t, string(out), `"amount":250.50`)
}

func TestTransformReversal(t *testing.T) {
	tr := service.NewTransformer()

	out, err := tr.Transform("G3I2501150000002", testutil.ValidPacs007, iso20022.Pacs007)
	require.NoError(t, err)

	var env map[string]any
	require.NoError(t, json.Unmarshal(out, &env))
	assert.Equal(t, "E2E-OLD-042", env["endToEndId"])
	assert.Equal(t, "MSG-20250114-042", env["originalMessageId"])
	assert.Contains(t, string(out), `"amount":75.25`)
}

func TestTransformCancellationRequest(t *testing.T) {
	tr := service.NewTransformer()

	out, err := tr.Transform("G3I2501150000003", testutil.ValidCamt056, iso20022.Camt056)
	require.NoError(t, err)

	var env map[string]any
	require.NoError(t, json.Unmarshal(out, &env))
	assert.Equal(t, "CASE-001", env["messageId"])
	assert.Equal(t, "MSG-20250114-042", env["originalMessageId"])
	_, hasAmount := env["amount"]
	assert.False(t, hasAmount)
}

func TestTransformUnmappedTypePassesThrough(t *testing.T) {
	tr := service.NewTransformer()

	out, err := tr.Transform("G3I2501150000004", testutil.UnknownXML, iso20022.Unknown)
	require.NoError(t, err)

	var env map[string]any
	require.NoError(t, json.Unmarshal(out, &env))
	assert.Equal(t, true, env["passthrough"])
	assert.Equal(t, testutil.UnknownXML, env["raw"])
}

func TestTransformMalformedMappedPayloadFails(t *testing.T) {
	tr := service.NewTransformer()

	_, err := tr.Transform("G3I2501150000005", "<Document><GrpHdr>", iso20022.Pacs008)
	require.Error(t, err)

	var failure *service.TransformFailure
	assert.ErrorAs(t, err, &failure)
}

func TestTransformNonNumericAmountFails(t *testing.T) {
	tr := service.NewTransformer()

	xml := strings.Replace(testutil.ValidPacs008, ">1000.00<", ">not-a-number<", 1)
	_, err := tr.Transform("G3I2501150000006", xml, iso20022.Pacs008)
	require.Error(t, err)

	var failure *service.TransformFailure
	assert.ErrorAs(t, err, &failure)
}
