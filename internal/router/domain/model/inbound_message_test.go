package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hari-p8-io/clearpathgateway/internal/router/domain/valueobject"
	"github.com/hari-p8-io/clearpathgateway/pkg/iso20022"
)

func newReceived(t *testing.T) InboundMessage {
	t.Helper()
	m, err := NewInboundMessage("G3I2501150012345", "G3I", iso20022.Pacs008, "<x/>", time.Now().UTC())
	require.NoError(t, err)
	return m
}

func TestNewInboundMessage(t *testing.T) {
	m := newReceived(t)
	assert.Equal(t, valueobject.StatusReceived, m.Status())
	assert.Equal(t, "G3I2501150012345", m.PUID())
	assert.Equal(t, iso20022.Pacs008, m.MessageType())
	assert.Empty(t, m.ErrorCode())
}

func TestNewInboundMessageRequiresPUID(t *testing.T) {
	_, err := NewInboundMessage("", "G3I", iso20022.Pacs008, "<x/>", time.Now())
	assert.ErrorContains(t, err, "puid is required")
}

func TestHappyPathTransitions(t *testing.T) {
	m := newReceived(t)

	validated, err := m.MarkValidated()
	require.NoError(t, err)
	assert.Equal(t, valueobject.StatusValidated, validated.Status())

	published, err := validated.MarkPublished()
	require.NoError(t, err)
	assert.Equal(t, valueobject.StatusPublished, published.Status())
	assert.True(t, published.Status().IsTerminal())

	// Original copies are untouched.
	assert.Equal(t, valueobject.StatusReceived, m.Status())
}

func TestErrorTransitions(t *testing.T) {
	m := newReceived(t)

	failed, err := m.MarkError("XSD_FAIL")
	require.NoError(t, err)
	assert.Equal(t, valueobject.StatusError, failed.Status())
	assert.Equal(t, "XSD_FAIL", failed.ErrorCode())

	validated, err := m.MarkValidated()
	require.NoError(t, err)
	txFailed, err := validated.MarkError("TRANSFORM_FAIL")
	require.NoError(t, err)
	assert.Equal(t, "TRANSFORM_FAIL", txFailed.ErrorCode())
}

func TestNoBackTransitions(t *testing.T) {
	m := newReceived(t)

	// RECEIVED cannot jump straight to PUBLISHED.
	_, err := m.MarkPublished()
	assert.ErrorContains(t, err, "illegal status transition")

	validated, err := m.MarkValidated()
	require.NoError(t, err)
	published, err := validated.MarkPublished()
	require.NoError(t, err)

	_, err = published.MarkError("XSD_FAIL")
	assert.Error(t, err)
	_, err = published.MarkValidated()
	assert.Error(t, err)

	failed, err := validated.MarkError("TRANSFORM_FAIL")
	require.NoError(t, err)
	_, err = failed.MarkPublished()
	assert.Error(t, err)
}
