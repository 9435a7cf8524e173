package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// ChannelPrefix is the 3-letter channel identifier carried as the first
// three characters of every PUID.
const ChannelPrefix = "G3I"

var puidRandMax = big.NewInt(10_000_000)

// PUIDGenerator produces the 16-character internal tracking key for every
// inbound message: channel prefix + YYMMDD + 7 zero-padded random decimal
// digits from a cryptographically secure source. Pure generator, no shared
// state; uniqueness under collision is enforced at the store layer.
type PUIDGenerator struct {
	now func() time.Time
}

// NewPUIDGenerator creates a generator using the system clock.
func NewPUIDGenerator() *PUIDGenerator {
	return &PUIDGenerator{now: time.Now}
}

// NextPUID returns a fresh PUID, e.g. "G3I2501150012345".
func (g *PUIDGenerator) NextPUID() string {
	date := g.now().Format("060102")
	n, err := rand.Int(rand.Reader, puidRandMax)
	if err != nil {
		// crypto/rand only fails when the OS entropy source is broken;
		// there is no usable fallback for an identifier we promise to be
		// unpredictable.
		panic(fmt.Sprintf("puid: secure random source unavailable: %v", err))
	}
	return fmt.Sprintf("%s%s%07d", ChannelPrefix, date, n.Int64())
}
