package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"github.com/hari-p8-io/clearpathgateway/internal/router/domain/port"
	"github.com/hari-p8-io/clearpathgateway/pkg/iso20022"
)

var _ port.DuplicateGuard = (*MemoryDuplicateGuard)(nil)

// DedupKey derives the stable duplicate-detection key for a message. When
// the business correlation id is known the key is "type::uniqueId";
// otherwise the full payload is hashed so byte-identical replays are still
// caught.
func DedupKey(messageType iso20022.MessageType, uniqueID, xml string) string {
	if uniqueID != "" {
		return string(messageType) + "::" + uniqueID
	}
	sum := sha256.Sum256([]byte(xml))
	return string(messageType) + "::sha256:" + hex.EncodeToString(sum[:])
}

// MemoryDuplicateGuard tracks seen dedup keys in process memory. It backs
// single-instance deployments and tests; multi-instance deployments use
// the Postgres-backed guard.
type MemoryDuplicateGuard struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// NewMemoryDuplicateGuard creates an empty guard.
func NewMemoryDuplicateGuard() *MemoryDuplicateGuard {
	return &MemoryDuplicateGuard{seen: make(map[string]struct{})}
}

// IsDuplicate reports whether the key was seen before, recording it as
// seen atomically when it was not.
func (g *MemoryDuplicateGuard) IsDuplicate(_ context.Context, messageType iso20022.MessageType, uniqueID, xml string) (bool, error) {
	key := DedupKey(messageType, uniqueID, xml)

	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.seen[key]; ok {
		return true, nil
	}
	g.seen[key] = struct{}{}
	return false, nil
}
