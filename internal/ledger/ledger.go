package ledger

// Resize ceilings enforced by every Ledger implementation.
const (
	// MaxGrowthPerCall is the largest increase a single resize may apply.
	MaxGrowthPerCall = 10_240
	// MaxDataLen is the absolute ceiling on an account buffer's length.
	MaxDataLen = 10 * 1024 * 1024
)

// Ledger exposes the platform primitives the registry builds on. All methods
// observe and mutate the same consistent view: on a base ledger that view is
// the committed state, on a Tx it is the transaction's staged state.
type Ledger interface {
	// MinimumBalance returns the smallest balance an account with a buffer of
	// the given size must hold to remain retained. The schedule is read on
	// every call, never cached, since it can change between calls.
	// Returns ErrBalanceOracleUnavailable when the schedule cannot be read.
	MinimumBalance(size int) (uint64, error)

	// Transfer moves amount native units between accounts. The caller is
	// responsible for having verified the funder's authorization; the ledger
	// only checks existence and balance.
	// Returns ErrTransferRejected when the source cannot cover the amount.
	Transfer(from, to Address, amount uint64) error

	// Resize changes the length of an account's buffer, preserving the first
	// min(old, new) bytes. With zeroNewBytes false the newly exposed region
	// has unspecified content and callers must overwrite any byte they intend
	// to read back. Returns ErrResizeRejected when the new size violates
	// MaxGrowthPerCall or MaxDataLen.
	Resize(addr Address, newSize int, zeroNewBytes bool) error

	// Account returns a read-only snapshot of the account at addr.
	Account(addr Address) (*Account, error)

	// CreateRecord creates a registry-owned record with a zeroed buffer of
	// the given size, funding it to the minimum balance for that size from
	// the funder account.
	CreateRecord(addr Address, owner Address, size int, funder Address) (*Account, error)

	// CreateFunder creates an externally owned account holding balance.
	CreateFunder(addr Address, balance uint64) (*Account, error)

	// WriteData copies b into the record's buffer at offset.
	WriteData(addr Address, offset int, b []byte) error
}

// Tx is a transactional view of a Ledger. Mutations are staged and become
// visible to other readers only after Commit; Rollback discards them all.
// Using a Tx after it finished returns ErrTxDone.
type Tx interface {
	Ledger

	// Commit atomically applies every staged mutation.
	Commit() error

	// Rollback discards every staged mutation. Safe to call after Commit,
	// where it is a no-op, so it can be deferred.
	Rollback() error
}

// Transactional is implemented by ledgers that can open transactions.
type Transactional interface {
	Ledger
	Begin() (Tx, error)
}
