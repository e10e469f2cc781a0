package errs

import "errors"

// Common sentinel errors for cross-layer signaling.
var (
	// ErrNotFound indicates a lookup resolved no account.
	ErrNotFound = errors.New("account_not_found")
	// ErrInsufficientFunds indicates a withdraw/transfer balance check failed.
	ErrInsufficientFunds = errors.New("insufficient_funds")
	// ErrNoAccounts indicates an aggregation over an agency with no accounts.
	ErrNoAccounts = errors.New("no_accounts_found")
	// ErrConstraint indicates a write would leave a balance negative.
	ErrConstraint = errors.New("constraint_violation")
	// ErrInvalid is used for malformed or missing request fields.
	ErrInvalid = errors.New("invalid")
)
