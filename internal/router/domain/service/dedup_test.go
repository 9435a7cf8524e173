package service_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hari-p8-io/clearpathgateway/internal/router/domain/service"
	"github.com/hari-p8-io/clearpathgateway/pkg/iso20022"
)

func TestDedupKey(t *testing.T) {
	withID := service.DedupKey(iso20022.Pacs008, "E2E-001", "<Document/>")
	assert.Equal(t, "pacs.008.001.13::E2E-001", withID)

	hashed := service.DedupKey(iso20022.Pacs008, "", "<Document/>")
	assert.Contains(t, hashed, "pacs.008.001.13::sha256:")
	assert.Equal(t, hashed, service.DedupKey(iso20022.Pacs008, "", "<Document/>"))
	assert.NotEqual(t, hashed, service.DedupKey(iso20022.Pacs008, "", "<Document></Document>"))
}

func TestMemoryDuplicateGuard(t *testing.T) {
	g := service.NewMemoryDuplicateGuard()
	ctx := context.Background()

	dup, err := g.IsDuplicate(ctx, iso20022.Pacs008, "E2E-001", "<a/>")
	require.NoError(t, err)
	assert.False(t, dup)

	dup, err = g.IsDuplicate(ctx, iso20022.Pacs008, "E2E-001", "<a/>")
	require.NoError(t, err)
	assert.True(t, dup)

	// Same id under a different type is a distinct key.
	dup, err = g.IsDuplicate(ctx, iso20022.Pacs003, "E2E-001", "<a/>")
	require.NoError(t, err)
	assert.False(t, dup)
}

func TestMemoryDuplicateGuardConcurrent(t *testing.T) {
	g := service.NewMemoryDuplicateGuard()
	ctx := context.Background()

	const workers = 32
	var wg sync.WaitGroup
	fresh := make(chan bool, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			dup, err := g.IsDuplicate(ctx, iso20022.Pacs008, "RACE-1", "<a/>")
			assert.NoError(t, err)
			if !dup {
				fresh <- true
			}
		}()
	}
	wg.Wait()
	close(fresh)

	assert.Len(t, fresh, 1)
}
