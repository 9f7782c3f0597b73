// Package errors provides common, reusable error values and helpers.
package errors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// ErrInvalidDonation marks donor input that failed validation. Handlers
	// map it to HTTP 400; it is never retried.
	ErrInvalidDonation = errors.New("invalid donation")

	// ErrLedgerUnavailable marks a failed transaction-list fetch from the
	// ledger. Read paths degrade to a zero snapshot; the submission
	// pre-check fails closed.
	ErrLedgerUnavailable = errors.New("ledger unavailable")

	// ErrSubmissionFailed marks a payment the ledger rejected or that could
	// not be submitted. Distinct from a domain rejection.
	ErrSubmissionFailed = errors.New("transaction submission failed")

	// ErrAccountNotFound marks an account ID Horizon has no record of.
	ErrAccountNotFound = errors.New("account not found")
)

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Invalid returns an ErrInvalidDonation carrying a human-readable reason.
func Invalid(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidDonation, reason)
}
