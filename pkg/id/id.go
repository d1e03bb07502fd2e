// Package id mints identifiers for ledger entries.
package id

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var entries = newMinter()

type minter struct {
	mu      sync.Mutex
	entropy io.Reader
}

func newMinter() *minter {
	// Seed a PRNG from crypto/rand so id entropy is unpredictable.
	// ulid.Monotonic keeps ids minted within the same millisecond in
	// mint order.
	var seed int64
	_ = binary.Read(cryptoRand.Reader, binary.LittleEndian, &seed)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &minter{entropy: ulid.Monotonic(rand.New(rand.NewSource(seed)), 0)}
}

// NewEntryID returns a ULID string for a ledger entry.
//
// Entries are append-only, so time-sortable ids keep journal tables and
// any later export naturally ordered by creation time.
func NewEntryID() string {
	entries.mu.Lock()
	defer entries.mu.Unlock()

	u, err := ulid.New(ulid.Timestamp(time.Now().UTC()), entries.entropy)
	if err != nil {
		// Fails only if time goes backwards or entropy is exhausted.
		panic(err)
	}
	return u.String()
}
