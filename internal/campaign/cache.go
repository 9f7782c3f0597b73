package campaign

import (
	"sync"

	"github.com/luizlenharo/crowdfundingBlockchain/internal/domain"
)

// DonationCache holds display-only records of donations submitted by this
// process, keyed by donor name plus a transaction hash prefix. It lets a
// client show its own donation before the ledger reflects it on the next
// poll. Stats computation never consults it.
type DonationCache struct {
	mu      sync.RWMutex
	records map[string]domain.DonationRecord
}

func NewDonationCache() *DonationCache {
	return &DonationCache{records: make(map[string]domain.DonationRecord)}
}

// Put stores a record. Safe for concurrent use; entries are insert-only.
func (c *DonationCache) Put(key string, record domain.DonationRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records[key] = record
}

// Get returns the record for key, if present.
func (c *DonationCache) Get(key string) (domain.DonationRecord, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	record, ok := c.records[key]
	return record, ok
}

// Len reports the number of cached records.
func (c *DonationCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records)
}
