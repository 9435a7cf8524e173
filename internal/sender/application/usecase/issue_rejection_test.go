package usecase_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hari-p8-io/clearpathgateway/internal/sender/application/dto"
	"github.com/hari-p8-io/clearpathgateway/internal/sender/application/usecase"
	"github.com/hari-p8-io/clearpathgateway/internal/sender/domain/model"
	"github.com/hari-p8-io/clearpathgateway/internal/sender/domain/port"
	"github.com/hari-p8-io/clearpathgateway/internal/sender/domain/service"
	"github.com/hari-p8-io/clearpathgateway/pkg/testutil"
)

type mockRepo struct {
	existsFn func(ctx context.Context, puid string) (bool, error)
	saved    []model.RejectionRecord
	saveErr  error
}

func (m *mockRepo) Exists(ctx context.Context, puid string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, puid)
	}
	return false, nil
}

func (m *mockRepo) Save(_ context.Context, record model.RejectionRecord) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, record)
	return nil
}

type mockDeliverer struct {
	delivered []string
	err       error
}

func (m *mockDeliverer) Deliver(_ context.Context, _ string, pacs002XML string) error {
	if m.err != nil {
		return m.err
	}
	m.delivered = append(m.delivered, pacs002XML)
	return nil
}

type mockEvents struct {
	published [][]byte
}

func (m *mockEvents) PublishStatusEvent(_ context.Context, _ string, eventJSON []byte) error {
	m.published = append(m.published, eventJSON)
	return nil
}

var (
	_ port.RejectionRepository  = (*mockRepo)(nil)
	_ port.Deliverer            = (*mockDeliverer)(nil)
	_ port.StatusEventPublisher = (*mockEvents)(nil)
)

func uniqueID(id string) *string { return &id }

func newRequest() dto.IssueRejectionRequest {
	return dto.IssueRejectionRequest{
		PUID:        "G3I2501150000099",
		MessageType: "pacs.008.001.13",
		UniqueID:    uniqueID("E2E-123"),
		Error:       "cvc-complex-type.2.4.a: Invalid content",
		OriginalXML: testutil.InvalidPacs008,
	}
}

func TestIssueRejectionHappyPath(t *testing.T) {
	repo := &mockRepo{}
	deliverer := &mockDeliverer{}
	events := &mockEvents{}
	uc := usecase.NewIssueRejection(service.NewPacs002Builder(), repo, deliverer, events, slog.Default())

	resp, err := uc.Execute(context.Background(), newRequest())
	require.NoError(t, err)

	assert.True(t, resp.Accepted)
	assert.False(t, resp.AlreadyIssued)
	assert.Equal(t, "SR-G3I2501150000099", resp.StatusID)

	require.Len(t, deliverer.delivered, 1)
	assert.Contains(t, deliverer.delivered[0], "<TxSts>RJCT</TxSts>")
	assert.Contains(t, deliverer.delivered[0], "<OrgnlEndToEndId>E2E-123</OrgnlEndToEndId>")

	require.Len(t, repo.saved, 1)
	assert.Equal(t, "G3I2501150000099", repo.saved[0].PUID())
	assert.Equal(t, "SR-G3I2501150000099", repo.saved[0].StatusID())
	assert.NotEmpty(t, repo.saved[0].EventJSON())

	require.Len(t, events.published, 1)
}

func TestIssueRejectionIsIdempotent(t *testing.T) {
	repo := &mockRepo{existsFn: func(context.Context, string) (bool, error) { return true, nil }}
	deliverer := &mockDeliverer{}
	uc := usecase.NewIssueRejection(service.NewPacs002Builder(), repo, deliverer, nil, slog.Default())

	resp, err := uc.Execute(context.Background(), newRequest())
	require.NoError(t, err)

	assert.True(t, resp.Accepted)
	assert.True(t, resp.AlreadyIssued)
	assert.Empty(t, deliverer.delivered)
	assert.Empty(t, repo.saved)
}

func TestIssueRejectionProceedsWhenIdempotencyCheckFails(t *testing.T) {
	repo := &mockRepo{existsFn: func(context.Context, string) (bool, error) {
		return false, errors.New("connection refused")
	}}
	deliverer := &mockDeliverer{}
	uc := usecase.NewIssueRejection(service.NewPacs002Builder(), repo, deliverer, nil, slog.Default())

	resp, err := uc.Execute(context.Background(), newRequest())
	require.NoError(t, err)
	assert.True(t, resp.Accepted)
	assert.Len(t, deliverer.delivered, 1)
}

func TestIssueRejectionProceedsWhenSaveFails(t *testing.T) {
	repo := &mockRepo{saveErr: errors.New("disk full")}
	deliverer := &mockDeliverer{}
	uc := usecase.NewIssueRejection(service.NewPacs002Builder(), repo, deliverer, nil, slog.Default())

	resp, err := uc.Execute(context.Background(), newRequest())
	require.NoError(t, err)
	assert.True(t, resp.Accepted)
	assert.Len(t, deliverer.delivered, 1)
}

func TestIssueRejectionAcceptsWhenDeliveryAbandoned(t *testing.T) {
	repo := &mockRepo{}
	events := &mockEvents{}
	deliverer := &mockDeliverer{err: errors.New("queue unavailable after 5 attempts")}
	uc := usecase.NewIssueRejection(service.NewPacs002Builder(), repo, deliverer, events, slog.Default())

	resp, err := uc.Execute(context.Background(), newRequest())
	require.NoError(t, err)

	// Permanent delivery loss stays an observability signal: the record is
	// durable and the request is acknowledged so it is not redelivered.
	assert.True(t, resp.Accepted)
	assert.Equal(t, "SR-G3I2501150000099", resp.StatusID)
	require.Len(t, repo.saved, 1)
	require.Len(t, events.published, 1)
}

func TestIssueRejectionRequiresPUID(t *testing.T) {
	uc := usecase.NewIssueRejection(service.NewPacs002Builder(), nil, &mockDeliverer{}, nil, slog.Default())

	req := newRequest()
	req.PUID = ""
	_, err := uc.Execute(context.Background(), req)
	require.Error(t, err)
}
