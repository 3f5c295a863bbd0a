package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these (optionally
// wrapped) so services can translate them into domain errors.
//
//   - ErrNotFound: record does not exist in the store
//   - ErrAlreadyUsed: a unique key (account, national id, tax id) is taken
//   - ErrInvalidState: record is in the wrong state for a conditional write
//   - ErrInsufficientFunds: a debit would drive a balance negative
//   - ErrBalanceOverflow: a credit would exceed the largest representable balance
//   - ErrUnavailable: backing service temporarily unavailable
var (
	ErrNotFound          = errors.New("not found")
	ErrAlreadyUsed       = errors.New("already used")
	ErrInvalidState      = errors.New("invalid state")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrBalanceOverflow   = errors.New("balance overflow")
	ErrUnavailable       = errors.New("unavailable")
)
