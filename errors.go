package claimledger

import (
	"errors"
	"fmt"
)

// Sentinel errors surfaced by the pipeline. Callers can test them with
// errors.Is even when they are wrapped with account context.
var (
	// ErrUnknownIndicator reports a transaction indicator outside the fixed
	// {O, P, D, C, B, L} vocabulary. Processing of the offending account stops.
	ErrUnknownIndicator = errors.New("unknown transaction indicator")

	// ErrInvertedClaimWindow reports an account whose claim end date is
	// before its claim start date.
	ErrInvertedClaimWindow = errors.New("claim end date before claim start date")

	// ErrEmptyInput reports a run over zero records when the caller required
	// at least one account.
	ErrEmptyInput = errors.New("no records in input")
)

// AccountError attaches the failing account to an underlying error so a
// partial run can tell healthy accounts from broken ones.
type AccountError struct {
	Account string
	Err     error
}

func (e *AccountError) Error() string {
	return fmt.Sprintf("account %s: %v", e.Account, e.Err)
}

func (e *AccountError) Unwrap() error { return e.Err }
