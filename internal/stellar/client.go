// Package stellar provides ledger access for the campaign account through
// the Horizon API.
package stellar

import (
	"context"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/stellar/go/clients/horizonclient"
	"github.com/stellar/go/keypair"
	"github.com/stellar/go/protocols/horizon"
	"github.com/stellar/go/protocols/horizon/operations"
	"github.com/stellar/go/txnbuild"

	"github.com/luizlenharo/crowdfundingBlockchain/internal/domain"
	"github.com/luizlenharo/crowdfundingBlockchain/pkg/config"
	pkgerrors "github.com/luizlenharo/crowdfundingBlockchain/pkg/errors"
	"github.com/luizlenharo/crowdfundingBlockchain/pkg/logger"
)

// horizonAPI is the subset of the Horizon client this package uses.
// Narrowed for test doubles.
type horizonAPI interface {
	Transactions(request horizonclient.TransactionRequest) (horizon.TransactionsPage, error)
	Operations(request horizonclient.OperationRequest) (operations.OperationsPage, error)
	AccountDetail(request horizonclient.AccountRequest) (horizon.Account, error)
	SubmitTransaction(tx *txnbuild.Transaction) (horizon.Transaction, error)
}

// Client reads campaign donations from Horizon and submits payments signed
// with the configured donor key.
type Client struct {
	horizon           horizonAPI
	campaignKP        *keypair.Full
	donorKP           *keypair.Full
	networkPassphrase string
	logger            logger.Logger
}

func NewClient(cfg config.StellarConfig, log logger.Logger) (*Client, error) {
	campaignKP, err := keypair.ParseFull(cfg.CampaignSecret)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "parse campaign account secret")
	}
	donorKP, err := keypair.ParseFull(cfg.DonorSecret)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "parse donor account secret")
	}

	return &Client{
		// The HTTP timeout bounds every Horizon call; a timeout surfaces as
		// a retrieval failure upstream.
		horizon: &horizonclient.Client{
			HorizonURL: cfg.HorizonURL,
			HTTP:       &http.Client{Timeout: cfg.RequestTimeout},
		},
		campaignKP:        campaignKP,
		donorKP:           donorKP,
		networkPassphrase: cfg.NetworkPassphrase,
		logger:            log,
	}, nil
}

// CampaignAddress returns the donation destination account.
func (c *Client) CampaignAddress() string { return c.campaignKP.Address() }

// DonorAddress returns the account donations are paid from.
func (c *Client) DonorAddress() string { return c.donorKP.Address() }

// SubmitDonation builds, signs, and submits a native-asset payment to the
// campaign account carrying the given text memo. Returns the transaction
// hash assigned by the network.
func (c *Client) SubmitDonation(ctx context.Context, amount decimal.Decimal, memoText string) (string, error) {
	donorAccount, err := c.horizon.AccountDetail(horizonclient.AccountRequest{
		AccountID: c.donorKP.Address(),
	})
	if err != nil {
		return "", pkgerrors.Wrap(err, "load donor account")
	}

	tx, err := txnbuild.NewTransaction(txnbuild.TransactionParams{
		SourceAccount:        &donorAccount,
		IncrementSequenceNum: true,
		Operations: []txnbuild.Operation{
			&txnbuild.Payment{
				Destination: c.campaignKP.Address(),
				Amount:      amount.String(),
				Asset:       txnbuild.NativeAsset{},
			},
		},
		BaseFee: txnbuild.MinBaseFee,
		Memo:    txnbuild.MemoText(memoText),
		Preconditions: txnbuild.Preconditions{
			TimeBounds: txnbuild.NewTimeout(30),
		},
	})
	if err != nil {
		return "", pkgerrors.Wrap(err, "build transaction")
	}

	tx, err = tx.Sign(c.networkPassphrase, c.donorKP)
	if err != nil {
		return "", pkgerrors.Wrap(err, "sign transaction")
	}

	resp, err := c.horizon.SubmitTransaction(tx)
	if err != nil {
		return "", pkgerrors.Wrap(err, "submit transaction")
	}

	return resp.Hash, nil
}

// AccountInfo loads balance and sequence for an account.
func (c *Client) AccountInfo(ctx context.Context, accountID string) (*domain.AccountInfo, error) {
	account, err := c.horizon.AccountDetail(horizonclient.AccountRequest{AccountID: accountID})
	if err != nil {
		if horizonclient.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: %s", pkgerrors.ErrAccountNotFound, accountID)
		}
		return nil, pkgerrors.Wrap(err, "load account")
	}

	balance, err := account.GetNativeBalance()
	if err != nil {
		balance = "0"
	}
	sequence, err := account.GetSequenceNumber()
	if err != nil {
		return nil, pkgerrors.Wrap(err, "parse account sequence")
	}

	return &domain.AccountInfo{
		PublicKey: accountID,
		Balance:   balance,
		Sequence:  sequence,
	}, nil
}
