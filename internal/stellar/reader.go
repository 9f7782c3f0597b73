package stellar

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stellar/go/clients/horizonclient"
	"github.com/stellar/go/protocols/horizon/operations"

	"github.com/luizlenharo/crowdfundingBlockchain/internal/domain"
	"github.com/luizlenharo/crowdfundingBlockchain/internal/memo"
	pkgerrors "github.com/luizlenharo/crowdfundingBlockchain/pkg/errors"
)

// fetchLimit caps how far back a single stats derivation looks.
const fetchLimit = 200

// FetchDonationEvents lists the most recent transactions involving the
// campaign account and emits one event per native-asset payment into it.
// A transaction whose operations cannot be fetched is logged and skipped;
// a failure listing transactions is fatal for the whole call.
func (c *Client) FetchDonationEvents(ctx context.Context) ([]domain.DonationEvent, error) {
	page, err := c.horizon.Transactions(horizonclient.TransactionRequest{
		ForAccount: c.campaignKP.Address(),
		Order:      horizonclient.OrderDesc,
		Limit:      fetchLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", pkgerrors.ErrLedgerUnavailable, err)
	}

	events := make([]domain.DonationEvent, 0, len(page.Embedded.Records))
	for _, tx := range page.Embedded.Records {
		ops, err := c.horizon.Operations(horizonclient.OperationRequest{
			ForTransaction: tx.Hash,
		})
		if err != nil {
			c.logger.Warn("Skipping transaction: operations fetch failed", map[string]interface{}{
				"transaction_hash": tx.Hash,
				"error":            err.Error(),
			})
			continue
		}

		for _, op := range ops.Embedded.Records {
			payment, ok := op.(operations.Payment)
			if !ok {
				continue
			}
			if payment.To != c.campaignKP.Address() || payment.Asset.Type != "native" {
				continue
			}

			amount, err := decimal.NewFromString(payment.Amount)
			if err != nil {
				c.logger.Warn("Skipping payment with unparseable amount", map[string]interface{}{
					"transaction_hash": tx.Hash,
					"amount":           payment.Amount,
				})
				continue
			}

			events = append(events, domain.DonationEvent{
				DonorName:       memo.Decode(tx.Memo),
				Amount:          amount,
				TransactionHash: tx.Hash,
				Timestamp:       tx.LedgerCloseTime.UTC().Format(time.RFC3339),
				Memo:            tx.Memo,
			})
		}
	}

	// RFC3339 timestamps order lexicographically.
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp > events[j].Timestamp
	})

	return events, nil
}
