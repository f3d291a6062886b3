package models

import (
	"encoding/json"
	"sync"
)

// SetupRecord is written right before the browser leaves for the provider
// and consumed once when it comes back. At most one exists.
type SetupRecord struct {
	Provider            Provider `json:"provider"`
	MaxEpoch            uint64   `json:"maxEpoch"`
	Randomness          string   `json:"randomness"`
	EphemeralPrivateKey string   `json:"ephemeralPrivateKey"`
}

// ProofBlob is the proving service response, stored and forwarded verbatim.
type ProofBlob = json.RawMessage

// AccountRecord is a completed login. UserAddr is its identity key.
type AccountRecord struct {
	Provider            Provider  `json:"provider"`
	UserAddr            string    `json:"userAddr"`
	ZkProofs            ProofBlob `json:"zkProofs"`
	EphemeralPrivateKey string    `json:"ephemeralPrivateKey"`
	UserSalt            string    `json:"userSalt"`
	Sub                 string    `json:"sub"`
	Aud                 string    `json:"aud"`
	MaxEpoch            uint64    `json:"maxEpoch"`
}

// TxIntent describes the transfer the user wants to make. Amounts are in MIST.
type TxIntent struct {
	Recipient string
	Amount    uint64
	GasBudget uint64
}

// Receipt is the ledger's answer to a successful submission.
type Receipt struct {
	Digest string
	Status string
}

// BalanceMap caches balances in MIST per address. A missing entry means the
// balance has not been loaded yet, which is different from zero.
type BalanceMap struct {
	mu sync.RWMutex
	m  map[string]uint64
}

func NewBalanceMap() *BalanceMap {
	return &BalanceMap{m: make(map[string]uint64)}
}

func (b *BalanceMap) Get(addr string) (uint64, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	v, ok := b.m[addr]
	return v, ok
}

// Set records a balance; the last write for an address wins.
func (b *BalanceMap) Set(addr string, v uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.m[addr] = v
}

// Merge writes every entry of fresh, leaving other addresses untouched.
func (b *BalanceMap) Merge(fresh map[string]uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for k, v := range fresh {
		b.m[k] = v
	}
}

// Reset forgets every balance.
func (b *BalanceMap) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	clear(b.m)
}

func (b *BalanceMap) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.m)
}
