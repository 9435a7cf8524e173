package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hari-p8-io/clearpathgateway/internal/router/application/dto"
	"github.com/hari-p8-io/clearpathgateway/internal/router/application/usecase"
	"github.com/hari-p8-io/clearpathgateway/internal/router/domain/model"
	"github.com/hari-p8-io/clearpathgateway/internal/router/domain/port"
	"github.com/hari-p8-io/clearpathgateway/internal/router/domain/service"
	"github.com/hari-p8-io/clearpathgateway/pkg/iso20022"
	"github.com/hari-p8-io/clearpathgateway/pkg/testutil"
)

type mockPublisher struct {
	valid         []string
	exceptions    []string
	rejections    [][]byte
	notifications []model.NotificationEvent
	validErr      error
}

func (m *mockPublisher) PublishValid(_ context.Context, _ string, unifiedJSON string) error {
	if m.validErr != nil {
		return m.validErr
	}
	m.valid = append(m.valid, unifiedJSON)
	return nil
}

func (m *mockPublisher) PublishException(_ context.Context, _ string, rawXML string) error {
	m.exceptions = append(m.exceptions, rawXML)
	return nil
}

func (m *mockPublisher) PublishRejectionRequest(_ context.Context, _ string, payload []byte) error {
	m.rejections = append(m.rejections, payload)
	return nil
}

func (m *mockPublisher) PublishNotification(_ context.Context, event model.NotificationEvent) error {
	m.notifications = append(m.notifications, event)
	return nil
}

type mockGuard struct {
	isDuplicateFn func(ctx context.Context, messageType iso20022.MessageType, uniqueID, xml string) (bool, error)
}

func (m *mockGuard) IsDuplicate(ctx context.Context, messageType iso20022.MessageType, uniqueID, xml string) (bool, error) {
	return m.isDuplicateFn(ctx, messageType, uniqueID, xml)
}

type mockInboundRepo struct {
	saved []model.InboundMessage
}

func (m *mockInboundRepo) Save(_ context.Context, msg model.InboundMessage) error {
	m.saved = append(m.saved, msg)
	return nil
}

type mockUnifiedRepo struct {
	saved []model.UnifiedMessage
}

func (m *mockUnifiedRepo) Save(_ context.Context, msg model.UnifiedMessage) error {
	m.saved = append(m.saved, msg)
	return nil
}

var (
	_ port.OutcomePublisher         = (*mockPublisher)(nil)
	_ port.DuplicateGuard           = (*mockGuard)(nil)
	_ port.InboundMessageRepository = (*mockInboundRepo)(nil)
	_ port.UnifiedMessageRepository = (*mockUnifiedRepo)(nil)
)

var testTopics = usecase.Topics{
	Valid:        "payment-messages",
	Exception:    "exception-queue",
	Notification: "payment-events",
}

type fixture struct {
	uc        *usecase.ProcessInbound
	publisher *mockPublisher
	inbound   *mockInboundRepo
	unified   *mockUnifiedRepo
}

func newFixture(t *testing.T, guard port.DuplicateGuard, publisher *mockPublisher) fixture {
	t.Helper()

	validator, err := service.NewSchemaValidator()
	require.NoError(t, err)
	t.Cleanup(validator.Close)

	if guard == nil {
		guard = service.NewMemoryDuplicateGuard()
	}

	inbound := &mockInboundRepo{}
	unified := &mockUnifiedRepo{}
	uc := usecase.NewProcessInbound(
		service.NewPUIDGenerator(),
		validator,
		service.NewUniqueIDExtractor(),
		service.NewTransformer(),
		guard,
		publisher,
		inbound,
		unified,
		nil,
		nil,
		testTopics,
		slog.Default(),
	)
	return fixture{uc: uc, publisher: publisher, inbound: inbound, unified: unified}
}

func TestProcessInboundPublishesValidMessage(t *testing.T) {
	publisher := &mockPublisher{}
	f := newFixture(t, nil, publisher)

	resp, err := f.uc.Execute(context.Background(), dto.ProcessInboundRequest{
		ChannelID: "G3I",
		RawXML:    testutil.ValidPacs008,
	})
	require.NoError(t, err)

	assert.Equal(t, dto.OutcomePublished, resp.Outcome)
	assert.Equal(t, "pacs.008.001.13", resp.MessageType)
	assert.Len(t, resp.PUID, 16)

	require.Len(t, publisher.valid, 1)
	assert.Contains(t, publisher.valid[0], `"amount":1000.00`)
	assert.Empty(t, publisher.exceptions)
	assert.Empty(t, publisher.rejections)

	require.Len(t, publisher.notifications, 1)
	assert.Equal(t, testTopics.Valid, publisher.notifications[0].Topic)
	assert.Equal(t, model.EventCodePaymentReceived, publisher.notifications[0].EventCode)

	require.Len(t, f.unified.saved, 1)
	assert.Equal(t, resp.PUID, f.unified.saved[0].PUID())

	// RECEIVED, VALIDATED, PUBLISHED audit trail.
	require.Len(t, f.inbound.saved, 3)
	assert.Equal(t, "PUBLISHED", f.inbound.saved[2].Status().String())
}

func TestProcessInboundRejectsInvalidMessage(t *testing.T) {
	publisher := &mockPublisher{}
	f := newFixture(t, nil, publisher)

	resp, err := f.uc.Execute(context.Background(), dto.ProcessInboundRequest{
		ChannelID: "G3I",
		RawXML:    testutil.InvalidPacs008,
	})
	require.NoError(t, err)

	assert.Equal(t, dto.OutcomeRejected, resp.Outcome)
	assert.Equal(t, "XSD_FAIL", resp.ErrorCode)

	assert.Empty(t, publisher.valid)
	require.Len(t, publisher.exceptions, 1)
	assert.Equal(t, testutil.InvalidPacs008, publisher.exceptions[0])

	require.Len(t, publisher.rejections, 1)
	var rejection map[string]any
	require.NoError(t, json.Unmarshal(publisher.rejections[0], &rejection))
	assert.Equal(t, resp.PUID, rejection["puid"])
	assert.Equal(t, "pacs.008.001.13", rejection["messageType"])
	assert.Equal(t, "INSTR-BAD", rejection["uniqueId"])
	assert.NotEmpty(t, rejection["error"])
	assert.Equal(t, testutil.InvalidPacs008, rejection["originalXml"])

	require.Len(t, publisher.notifications, 1)
	assert.Equal(t, testTopics.Exception, publisher.notifications[0].Topic)

	last := f.inbound.saved[len(f.inbound.saved)-1]
	assert.Equal(t, "ERROR", last.Status().String())
	assert.Equal(t, "XSD_FAIL", last.ErrorCode())
}

func TestProcessInboundRejectionWithoutUniqueID(t *testing.T) {
	publisher := &mockPublisher{}
	f := newFixture(t, nil, publisher)

	xml := `<?xml version="1.0"?>
<Document xmlns="urn:iso:std:iso:20022:tech:xsd:pacs.008.001.13">
  <FIToFICstmrCdtTrf><GrpHdr><MsgId>M1</MsgId></GrpHdr></FIToFICstmrCdtTrf>
</Document>`

	_, err := f.uc.Execute(context.Background(), dto.ProcessInboundRequest{ChannelID: "G3I", RawXML: xml})
	require.NoError(t, err)

	require.Len(t, publisher.rejections, 1)
	var rejection map[string]any
	require.NoError(t, json.Unmarshal(publisher.rejections[0], &rejection))
	v, present := rejection["uniqueId"]
	assert.True(t, present)
	assert.Nil(t, v)
}

func TestProcessInboundDiscardsDuplicates(t *testing.T) {
	publisher := &mockPublisher{}
	f := newFixture(t, nil, publisher)

	first, err := f.uc.Execute(context.Background(), dto.ProcessInboundRequest{ChannelID: "G3I", RawXML: testutil.ValidPacs008})
	require.NoError(t, err)
	assert.Equal(t, dto.OutcomePublished, first.Outcome)

	second, err := f.uc.Execute(context.Background(), dto.ProcessInboundRequest{ChannelID: "G3I", RawXML: testutil.ValidPacs008})
	require.NoError(t, err)
	assert.Equal(t, dto.OutcomeDuplicate, second.Outcome)
	assert.NotEqual(t, first.PUID, second.PUID)

	// The duplicate produced no second publish and no rejection.
	assert.Len(t, publisher.valid, 1)
	assert.Empty(t, publisher.rejections)
}

func TestProcessInboundFailsOpenWhenGuardErrors(t *testing.T) {
	publisher := &mockPublisher{}
	guard := &mockGuard{isDuplicateFn: func(context.Context, iso20022.MessageType, string, string) (bool, error) {
		return false, errors.New("connection refused")
	}}
	f := newFixture(t, guard, publisher)

	resp, err := f.uc.Execute(context.Background(), dto.ProcessInboundRequest{ChannelID: "G3I", RawXML: testutil.ValidPacs008})
	require.NoError(t, err)
	assert.Equal(t, dto.OutcomePublished, resp.Outcome)
	assert.Len(t, publisher.valid, 1)
}

func TestProcessInboundContinuesOnPublishFailure(t *testing.T) {
	publisher := &mockPublisher{validErr: errors.New("broker unavailable")}
	f := newFixture(t, nil, publisher)

	resp, err := f.uc.Execute(context.Background(), dto.ProcessInboundRequest{ChannelID: "G3I", RawXML: testutil.ValidPacs008})
	require.NoError(t, err)

	// Only the valid-topic publish is lost; persistence, notification and
	// the PUBLISHED audit state still happen.
	assert.Equal(t, dto.OutcomePublished, resp.Outcome)
	assert.Empty(t, resp.ErrorCode)
	assert.Empty(t, publisher.valid)

	require.Len(t, f.unified.saved, 1)
	require.Len(t, publisher.notifications, 1)
	assert.Equal(t, testTopics.Valid, publisher.notifications[0].Topic)

	last := f.inbound.saved[len(f.inbound.saved)-1]
	assert.Equal(t, "PUBLISHED", last.Status().String())
}

func TestProcessInboundTransformFailureSkipsNotification(t *testing.T) {
	publisher := &mockPublisher{}
	f := newFixture(t, nil, publisher)

	// Schema-valid: xs:decimal collapses surrounding whitespace, but the
	// lexical amount no longer parses, so transformation fails.
	padded := strings.Replace(testutil.ValidPacs008, `>1000.00<`, `> 1000.00 <`, 1)
	require.Contains(t, padded, `> 1000.00 <`)

	resp, err := f.uc.Execute(context.Background(), dto.ProcessInboundRequest{ChannelID: "G3I", RawXML: padded})
	require.NoError(t, err)

	assert.Equal(t, dto.OutcomeError, resp.Outcome)
	assert.Equal(t, "TRANSFORM_FAIL", resp.ErrorCode)

	require.Len(t, publisher.exceptions, 1)
	assert.Empty(t, publisher.valid)
	assert.Empty(t, publisher.rejections)
	assert.Empty(t, publisher.notifications)

	last := f.inbound.saved[len(f.inbound.saved)-1]
	assert.Equal(t, "ERROR", last.Status().String())
	assert.Equal(t, "TRANSFORM_FAIL", last.ErrorCode())
}

func TestProcessInboundStopsOnCancelledContext(t *testing.T) {
	publisher := &mockPublisher{}
	f := newFixture(t, nil, publisher)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.uc.Execute(ctx, dto.ProcessInboundRequest{ChannelID: "G3I", RawXML: testutil.ValidPacs008})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, publisher.valid)
}
