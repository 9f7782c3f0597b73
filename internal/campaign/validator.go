package campaign

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/luizlenharo/crowdfundingBlockchain/pkg/errors"
)

var (
	minDonation = decimal.RequireFromString("0.1")
	maxDonation = decimal.NewFromInt(1000)
)

const (
	minNameLength = 2
	maxNameLength = 20
)

// ValidateDonation enforces donor input bounds before any ledger
// interaction. Checks run in order; the first failure wins. Pure function,
// no network or state access.
func ValidateDonation(donorName string, amount decimal.Decimal) error {
	name := strings.TrimSpace(donorName)

	if utf8.RuneCountInString(name) < minNameLength {
		return pkgerrors.Invalid(fmt.Sprintf("name must have at least %d characters", minNameLength))
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return pkgerrors.Invalid(fmt.Sprintf("name too long (max %d characters)", maxNameLength))
	}
	if amount.LessThan(minDonation) {
		return pkgerrors.Invalid(fmt.Sprintf("minimum donation: %s XLM", minDonation))
	}
	if amount.GreaterThan(maxDonation) {
		return pkgerrors.Invalid(fmt.Sprintf("maximum donation: %s XLM", maxDonation))
	}
	return nil
}
