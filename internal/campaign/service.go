// Package campaign derives authoritative campaign state from the ledger.
//
// The ledger is the single source of truth: every read re-fetches the
// donation history and recomputes statistics. The only local state is the
// advisory cache of donations submitted by this process.
package campaign

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/luizlenharo/crowdfundingBlockchain/internal/domain"
	"github.com/luizlenharo/crowdfundingBlockchain/internal/memo"
	pkgerrors "github.com/luizlenharo/crowdfundingBlockchain/pkg/errors"
	"github.com/luizlenharo/crowdfundingBlockchain/pkg/logger"
)

// Ledger is the ledger-access capability the service consumes. Signing and
// submission mechanics live behind it.
type Ledger interface {
	// FetchDonationEvents returns qualifying incoming payments for the
	// campaign account, newest first.
	FetchDonationEvents(ctx context.Context) ([]domain.DonationEvent, error)

	// SubmitDonation submits a native-asset payment to the campaign account
	// and returns the ledger-assigned transaction hash.
	SubmitDonation(ctx context.Context, amount decimal.Decimal, memoText string) (string, error)

	// AccountInfo loads balance and sequence for an account.
	AccountInfo(ctx context.Context, accountID string) (*domain.AccountInfo, error)

	CampaignAddress() string
	DonorAddress() string
}

// Service is the single entry point the HTTP layer calls.
type Service struct {
	ledger      Ledger
	cache       *DonationCache
	logger      logger.Logger
	title       string
	description string
	goal        decimal.Decimal
	createdAt   time.Time
}

func NewService(ledger Ledger, title, description string, goal decimal.Decimal, log logger.Logger) *Service {
	return &Service{
		ledger:      ledger,
		cache:       NewDonationCache(),
		logger:      log,
		title:       title,
		description: description,
		goal:        goal,
		createdAt:   time.Now().UTC(),
	}
}

// Stats re-derives campaign statistics from the ledger. A failed fetch
// degrades to a zero snapshot so read endpoints stay available.
func (s *Service) Stats(ctx context.Context) domain.CampaignStats {
	stats, err := s.freshStats(ctx)
	if err != nil {
		s.logger.Error("Failed to fetch donation events, serving zero stats", map[string]interface{}{
			"error": err.Error(),
		})
		return ComputeStats(nil, s.goal)
	}
	return stats
}

// freshStats fetches and aggregates without degrading. The submission
// pre-check uses it directly so a fetch failure fails closed.
func (s *Service) freshStats(ctx context.Context) (domain.CampaignStats, error) {
	events, err := s.ledger.FetchDonationEvents(ctx)
	if err != nil {
		return domain.CampaignStats{}, pkgerrors.Wrap(err, "fetch donation events")
	}
	return ComputeStats(events, s.goal), nil
}

// CampaignInfo returns the public campaign summary.
func (s *Service) CampaignInfo(ctx context.Context) domain.CampaignInfo {
	stats := s.Stats(ctx)
	return domain.CampaignInfo{
		Title:              s.title,
		Description:        s.description,
		Goal:               s.goal,
		TotalRaised:        stats.TotalRaised,
		ProgressPercentage: stats.ProgressPercentage,
		IsActive:           stats.IsActive,
		DonorsCount:        stats.DonorsCount,
		CreatedAt:          s.createdAt.Format(time.RFC3339),
	}
}

// TopDonors returns up to limit donors ranked by total donated.
func (s *Service) TopDonors(ctx context.Context, limit int) domain.TopDonorsResponse {
	stats := s.Stats(ctx)
	top, unique := ComputeTopDonors(stats.Donations, limit)
	return domain.TopDonorsResponse{TopDonors: top, TotalUniqueDonors: unique}
}

// Donate runs the full submission protocol: validate, re-check freshly
// fetched stats, encode the memo, submit, cache the record.
//
// The active and remaining checks are advisory: they read fresh stats but
// take no cross-request lock, so two concurrent donations can both pass and
// jointly overshoot the goal.
func (s *Service) Donate(ctx context.Context, donorName string, amount decimal.Decimal) (*domain.DonationResponse, error) {
	if err := ValidateDonation(donorName, amount); err != nil {
		return nil, err
	}

	stats, err := s.freshStats(ctx)
	if err != nil {
		// Never submit against assumed-zero stats.
		s.logger.Error("Refusing donation: stats unavailable", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}

	if !stats.IsActive {
		return &domain.DonationResponse{
			Success:   false,
			Message:   "campaign already reached its goal, donations are closed",
			DonorName: donorName,
			Amount:    amount,
		}, nil
	}

	remaining := s.goal.Sub(stats.TotalRaised)
	if amount.GreaterThan(remaining) {
		return &domain.DonationResponse{
			Success:   false,
			Message:   fmt.Sprintf("donation too high: only %s XLM needed to reach the goal", remaining.Round(2)),
			DonorName: donorName,
			Amount:    amount,
		}, nil
	}

	memoText := memo.Encode(donorName, amount)

	hash, err := s.ledger.SubmitDonation(ctx, amount, memoText)
	if err != nil {
		s.logger.Error("Donation submission failed", map[string]interface{}{
			"donor_name": donorName,
			"amount":     amount.String(),
			"error":      err.Error(),
		})
		return nil, fmt.Errorf("%w: %v", pkgerrors.ErrSubmissionFailed, err)
	}

	s.cache.Put(cacheKey(donorName, hash), domain.DonationRecord{
		DonorName:       donorName,
		Amount:          amount,
		TransactionHash: hash,
		Timestamp:       time.Now().UTC().Format(time.RFC3339),
		Memo:            memoText,
	})

	s.logger.Info("Donation submitted", map[string]interface{}{
		"donor_name":       donorName,
		"amount":           amount.String(),
		"transaction_hash": hash,
	})

	return &domain.DonationResponse{
		Success:         true,
		TransactionHash: hash,
		Message:         fmt.Sprintf("donation of %s XLM registered successfully", amount),
		DonorName:       donorName,
		Amount:          amount,
	}, nil
}

// RecentDonation returns the cached record for a donor and hash prefix, if
// this process submitted it.
func (s *Service) RecentDonation(donorName, hashPrefix string) (domain.DonationRecord, bool) {
	return s.cache.Get(donorName + "_" + hashPrefix)
}

// AccountDebugInfo loads both configured accounts for the debug surface.
func (s *Service) AccountDebugInfo(ctx context.Context) (campaignAcct, donorAcct *domain.AccountInfo) {
	var err error
	campaignAcct, err = s.ledger.AccountInfo(ctx, s.ledger.CampaignAddress())
	if err != nil {
		s.logger.Warn("Failed to load campaign account", map[string]interface{}{"error": err.Error()})
	}
	donorAcct, err = s.ledger.AccountInfo(ctx, s.ledger.DonorAddress())
	if err != nil {
		s.logger.Warn("Failed to load donor account", map[string]interface{}{"error": err.Error()})
	}
	return campaignAcct, donorAcct
}

// Title and Goal expose campaign config to the debug handler.
func (s *Service) Title() string         { return s.title }
func (s *Service) Goal() decimal.Decimal { return s.goal }

func cacheKey(donorName, hash string) string {
	prefix := hash
	if len(prefix) > 8 {
		prefix = prefix[:8]
	}
	return donorName + "_" + prefix
}
