// Package memo encodes donor identity and amount into a Stellar text memo.
//
// Text memos are capped at 28 bytes on the network, so the encoding is
// lossy and best-effort: the donor name is sanitized, then truncated, then
// degraded to initials until the memo fits.
package memo

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/luizlenharo/crowdfundingBlockchain/internal/domain"
)

// MaxBytes is the Stellar text memo limit.
const MaxBytes = 28

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9\s]`)

// Encode builds a "name:amount" memo no longer than MaxBytes ASCII bytes.
func Encode(donorName string, amount decimal.Decimal) string {
	cleanName := strings.TrimSpace(unsafeChars.ReplaceAllString(donorName, ""))
	amountStr := formatAmount(amount)

	m := cleanName + ":" + amountStr
	if len(m) <= MaxBytes {
		return m
	}

	suffix := ":" + amountStr
	maxNameLength := MaxBytes - len(suffix)
	if maxNameLength > 3 {
		return cleanName[:maxNameLength] + suffix
	}

	// Not enough room for a truncated name; fall back to up to three
	// initials. An empty cleaned name degrades to ":amount".
	var initials strings.Builder
	for _, word := range strings.Fields(cleanName) {
		initials.WriteByte(word[0])
		if initials.Len() == 3 {
			break
		}
	}
	return initials.String() + suffix
}

// Decode extracts the donor name from a memo read back from the ledger.
// Memos without a delimiter, or with an empty name segment, decode to the
// anonymous sentinel. The amount segment is ignored: the payment operation
// itself is authoritative for the amount.
func Decode(rawMemo string) string {
	if !strings.Contains(rawMemo, ":") {
		return domain.AnonymousDonor
	}
	name := strings.SplitN(rawMemo, ":", 2)[0]
	if name == "" {
		return domain.AnonymousDonor
	}
	return name
}

// formatAmount renders the amount with at most 3 fractional digits and no
// trailing zeros: 5.500 -> "5.5", 10.000 -> "10".
func formatAmount(amount decimal.Decimal) string {
	s := amount.StringFixed(3)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
