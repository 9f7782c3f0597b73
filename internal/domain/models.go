// Package domain defines the core types shared across the campaign service.
package domain

import (
	"github.com/shopspring/decimal"
)

// AnonymousDonor is the fallback identity for donations whose memo carries
// no usable donor name.
const AnonymousDonor = "Anonymous"

// DonationEvent is one qualifying incoming payment observed on the ledger.
// Events are read-only reconstructions of ledger facts; they are never
// created or mutated locally.
type DonationEvent struct {
	DonorName       string          `json:"donor_name"`
	Amount          decimal.Decimal `json:"amount"`
	TransactionHash string          `json:"transaction_hash"`
	Timestamp       string          `json:"timestamp"`
	Memo            string          `json:"memo"`
}

// CampaignStats is derived from the current DonationEvent set on every
// request and never persisted.
type CampaignStats struct {
	TotalRaised        decimal.Decimal `json:"total_raised"`
	Goal               decimal.Decimal `json:"goal"`
	ProgressPercentage decimal.Decimal `json:"progress_percentage"`
	IsActive           bool            `json:"is_active"`
	Donations          []DonationEvent `json:"donations"`
	DonorsCount        int             `json:"donors_count"`
}

// DonorAggregate groups a single donor's donations. Names are matched
// case-sensitively; two spellings of the same person are distinct donors.
type DonorAggregate struct {
	DonorName     string          `json:"donor_name"`
	Total         decimal.Decimal `json:"total"`
	Count         int             `json:"count"`
	FirstDonation string          `json:"first_donation"`
}

// DonationRecord is the display-only cache entry for a just-submitted
// donation. It is advisory and never feeds stats computation.
type DonationRecord struct {
	DonorName       string          `json:"donor_name"`
	Amount          decimal.Decimal `json:"amount"`
	TransactionHash string          `json:"transaction_hash"`
	Timestamp       string          `json:"timestamp"`
	Memo            string          `json:"memo"`
}

// AccountInfo describes a ledger account for the debug surface.
type AccountInfo struct {
	PublicKey string `json:"public_key"`
	Balance   string `json:"balance"`
	Sequence  int64  `json:"sequence"`
}

// CampaignInfo is the public campaign summary.
type CampaignInfo struct {
	Title              string          `json:"title"`
	Description        string          `json:"description"`
	Goal               decimal.Decimal `json:"goal"`
	TotalRaised        decimal.Decimal `json:"total_raised"`
	ProgressPercentage decimal.Decimal `json:"progress_percentage"`
	IsActive           bool            `json:"is_active"`
	DonorsCount        int             `json:"donors_count"`
	CreatedAt          string          `json:"created_at"`
}

// DonationRequest is the POST /donations payload.
type DonationRequest struct {
	DonorName string          `json:"donor_name" validate:"required"`
	Amount    decimal.Decimal `json:"amount" validate:"required"`
}

// DonationResponse reports the outcome of a donation attempt. Success false
// with a 200 status is a domain rejection, not an error.
type DonationResponse struct {
	Success         bool            `json:"success"`
	TransactionHash string          `json:"transaction_hash,omitempty"`
	Message         string          `json:"message"`
	DonorName       string          `json:"donor_name"`
	Amount          decimal.Decimal `json:"amount"`
}

// TopDonorsResponse is the GET /donations/top payload.
type TopDonorsResponse struct {
	TopDonors         []DonorAggregate `json:"top_donors"`
	TotalUniqueDonors int              `json:"total_unique_donors"`
}
