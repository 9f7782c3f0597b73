package campaign

import (
	"fmt"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/luizlenharo/crowdfundingBlockchain/internal/domain"
)

func TestDonationCache_PutGet(t *testing.T) {
	cache := NewDonationCache()

	record := domain.DonationRecord{
		DonorName:       "Ana",
		Amount:          decimal.RequireFromString("5.5"),
		TransactionHash: "abcdef1234567890",
	}
	cache.Put("Ana_abcdef12", record)

	got, ok := cache.Get("Ana_abcdef12")
	assert.True(t, ok)
	assert.Equal(t, "Ana", got.DonorName)

	_, ok = cache.Get("missing")
	assert.False(t, ok)
}

func TestDonationCache_ConcurrentInsert(t *testing.T) {
	cache := NewDonationCache()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			cache.Put(fmt.Sprintf("donor-%d", i), domain.DonationRecord{
				DonorName: fmt.Sprintf("donor-%d", i),
				Amount:    decimal.NewFromInt(int64(i + 1)),
			})
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 100, cache.Len())
}
