package ledger

import "errors"

// ===========================================================================
// Growth Errors
// ===========================================================================

// ErrBalanceOracleUnavailable is returned when the minimum-balance requirement
// cannot be obtained from the platform. Fatal to the call, never retried.
var ErrBalanceOracleUnavailable = errors.New("balance oracle unavailable")

// ErrTransferRejected is returned when the funder lacks sufficient balance or
// authorization for a balance transfer.
var ErrTransferRejected = errors.New("transfer rejected")

// ErrResizeRejected is returned when a requested size violates the per-call
// growth ceiling or the absolute data-length ceiling.
var ErrResizeRejected = errors.New("resize rejected")

// ===========================================================================
// Account Errors
// ===========================================================================

// ErrAccountNotFound is returned when an address does not exist in the ledger.
var ErrAccountNotFound = errors.New("account not found")

// ErrAccountExists is returned when creating an account at an occupied address.
var ErrAccountExists = errors.New("account already exists")

// ErrInsufficientFunds is returned when a debit exceeds an account's balance.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrWriteOutOfBounds is returned when a data write extends past the buffer.
var ErrWriteOutOfBounds = errors.New("write out of bounds")

// ErrTxDone is returned when using a transaction after Commit or Rollback.
var ErrTxDone = errors.New("transaction already finished")
