package ledger

import (
	"fmt"
	"sync"
)

// MemoryLedger is an in-memory Ledger and Transactional implementation.
// It backs tests and the CLI's ephemeral mode. Thread-safe with sync.RWMutex,
// though instruction processing serializes all mutation anyway: at most one
// Tx mutates a given account at a time, so transactions stage clones without
// any conflict detection.
type MemoryLedger struct {
	mu       sync.RWMutex
	rent     *RentSchedule // nil means the oracle cannot be read
	accounts map[Address]*Account
}

// NewMemoryLedger creates an empty in-memory ledger with the given schedule.
func NewMemoryLedger(rent RentSchedule) *MemoryLedger {
	return &MemoryLedger{
		rent:     &rent,
		accounts: make(map[Address]*Account),
	}
}

// SetRentSchedule replaces the retention pricing. Takes effect on the next
// MinimumBalance call, including calls made by transactions already open.
func (l *MemoryLedger) SetRentSchedule(rent RentSchedule) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rent = &rent
}

// SuspendRentOracle makes MinimumBalance fail until a schedule is set again.
func (l *MemoryLedger) SuspendRentOracle() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rent = nil
}

// Begin opens a transaction staging mutations against the current state.
func (l *MemoryLedger) Begin() (Tx, error) {
	return &memoryTx{
		parent: l,
		staged: make(map[Address]*Account),
	}, nil
}

// MinimumBalance reads the schedule on every call; it is never cached.
func (l *MemoryLedger) MinimumBalance(size int) (uint64, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.rent == nil {
		return 0, fmt.Errorf("rent schedule for size %d: %w", size, ErrBalanceOracleUnavailable)
	}
	return l.rent.MinimumBalance(size), nil
}

// Account returns a read-only snapshot of the account at addr.
func (l *MemoryLedger) Account(addr Address) (*Account, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	acc, ok := l.accounts[addr]
	if !ok {
		return nil, fmt.Errorf("account %s: %w", addr, ErrAccountNotFound)
	}
	return acc.clone(), nil
}

// Transfer moves amount between committed accounts.
func (l *MemoryLedger) Transfer(from, to Address, amount uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	src, ok := l.accounts[from]
	if !ok {
		return fmt.Errorf("transfer from %s: %w: %w", from, ErrTransferRejected, ErrAccountNotFound)
	}
	dst, ok := l.accounts[to]
	if !ok {
		return fmt.Errorf("transfer to %s: %w: %w", to, ErrTransferRejected, ErrAccountNotFound)
	}
	if err := src.debit(amount); err != nil {
		return fmt.Errorf("%w: %w", ErrTransferRejected, err)
	}
	dst.credit(amount)
	return nil
}

// Resize changes an account buffer's length, enforcing the growth ceilings.
func (l *MemoryLedger) Resize(addr Address, newSize int, zeroNewBytes bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	acc, ok := l.accounts[addr]
	if !ok {
		return fmt.Errorf("resize %s: %w", addr, ErrAccountNotFound)
	}
	if err := ValidateResize(acc.Size(), newSize); err != nil {
		return err
	}
	acc.resize(newSize, zeroNewBytes)
	return nil
}

// CreateRecord creates a registry-owned record funded to the minimum balance
// for its initial size.
func (l *MemoryLedger) CreateRecord(addr Address, owner Address, size int, funder Address) (*Account, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return createRecord(l.accounts, l.rent, addr, owner, size, funder)
}

// CreateFunder mints an externally owned account holding balance. There is no
// source account: funders are bootstrapped from outside the registry.
func (l *MemoryLedger) CreateFunder(addr Address, balance uint64) (*Account, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.accounts[addr]; ok {
		return nil, fmt.Errorf("funder %s: %w", addr, ErrAccountExists)
	}
	acc := NewAccount(addr, KindFunder, "", balance, 0)
	l.accounts[addr] = acc
	return acc.clone(), nil
}

// WriteData copies b into the account buffer at offset.
func (l *MemoryLedger) WriteData(addr Address, offset int, b []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	acc, ok := l.accounts[addr]
	if !ok {
		return fmt.Errorf("write %s: %w", addr, ErrAccountNotFound)
	}
	return acc.writeAt(offset, b)
}

// ValidateResize validates a new buffer size against the platform ceilings.
// Shared by every ledger implementation.
func ValidateResize(oldSize, newSize int) error {
	if newSize < 0 {
		return fmt.Errorf("%w: negative size %d", ErrResizeRejected, newSize)
	}
	if newSize > MaxDataLen {
		return fmt.Errorf("%w: size %d exceeds data ceiling %d", ErrResizeRejected, newSize, MaxDataLen)
	}
	if growth := newSize - oldSize; growth > MaxGrowthPerCall {
		return fmt.Errorf("%w: growth %d exceeds per-call ceiling %d", ErrResizeRejected, growth, MaxGrowthPerCall)
	}
	return nil
}

// createRecord inserts a record into accounts, funding it from funder.
// Caller must hold the write lock (or own the map, for transactions).
func createRecord(accounts map[Address]*Account, rent *RentSchedule, addr, owner Address, size int, funder Address) (*Account, error) {
	if _, ok := accounts[addr]; ok {
		return nil, fmt.Errorf("record %s: %w", addr, ErrAccountExists)
	}
	if rent == nil {
		return nil, fmt.Errorf("record %s: %w", addr, ErrBalanceOracleUnavailable)
	}
	src, ok := accounts[funder]
	if !ok {
		return nil, fmt.Errorf("record %s funder %s: %w: %w", addr, funder, ErrTransferRejected, ErrAccountNotFound)
	}

	required := rent.MinimumBalance(size)
	if err := src.debit(required); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransferRejected, err)
	}

	// Creation zeroes the buffer; only later growth exposes unspecified bytes.
	acc := NewAccount(addr, KindRecord, owner, required, size)
	accounts[addr] = acc
	return acc.clone(), nil
}

// ===========================================================================
// memoryTx
// ===========================================================================

// memoryTx stages mutations as clones of parent accounts and applies them all
// on Commit. Reads see the transaction's own writes first, then fall through
// to the parent's committed state.
type memoryTx struct {
	parent *MemoryLedger
	staged map[Address]*Account
	done   bool
}

var _ Tx = (*memoryTx)(nil)

// stageFor returns the staged clone for addr, lazily cloning the committed
// account on first mutation.
func (tx *memoryTx) stageFor(addr Address) (*Account, bool) {
	if acc, ok := tx.staged[addr]; ok {
		return acc, true
	}

	tx.parent.mu.RLock()
	committed, ok := tx.parent.accounts[addr]
	tx.parent.mu.RUnlock()
	if !ok {
		return nil, false
	}

	acc := committed.clone()
	tx.staged[addr] = acc
	return acc, true
}

func (tx *memoryTx) MinimumBalance(size int) (uint64, error) {
	if tx.done {
		return 0, ErrTxDone
	}
	// The oracle is platform state, not account state: always read live.
	return tx.parent.MinimumBalance(size)
}

func (tx *memoryTx) Account(addr Address) (*Account, error) {
	if tx.done {
		return nil, ErrTxDone
	}
	if acc, ok := tx.staged[addr]; ok {
		return acc.clone(), nil
	}
	return tx.parent.Account(addr)
}

func (tx *memoryTx) Transfer(from, to Address, amount uint64) error {
	if tx.done {
		return ErrTxDone
	}
	src, ok := tx.stageFor(from)
	if !ok {
		return fmt.Errorf("transfer from %s: %w: %w", from, ErrTransferRejected, ErrAccountNotFound)
	}
	dst, ok := tx.stageFor(to)
	if !ok {
		return fmt.Errorf("transfer to %s: %w: %w", to, ErrTransferRejected, ErrAccountNotFound)
	}
	if err := src.debit(amount); err != nil {
		return fmt.Errorf("%w: %w", ErrTransferRejected, err)
	}
	dst.credit(amount)
	return nil
}

func (tx *memoryTx) Resize(addr Address, newSize int, zeroNewBytes bool) error {
	if tx.done {
		return ErrTxDone
	}
	acc, ok := tx.stageFor(addr)
	if !ok {
		return fmt.Errorf("resize %s: %w", addr, ErrAccountNotFound)
	}
	if err := ValidateResize(acc.Size(), newSize); err != nil {
		return err
	}
	acc.resize(newSize, zeroNewBytes)
	return nil
}

func (tx *memoryTx) CreateRecord(addr Address, owner Address, size int, funder Address) (*Account, error) {
	if tx.done {
		return nil, ErrTxDone
	}
	// Stage the funder so its debit participates in the transaction.
	if _, ok := tx.stageFor(funder); !ok {
		return nil, fmt.Errorf("record %s funder %s: %w: %w", addr, funder, ErrTransferRejected, ErrAccountNotFound)
	}
	if _, ok := tx.stageFor(addr); ok {
		return nil, fmt.Errorf("record %s: %w", addr, ErrAccountExists)
	}

	tx.parent.mu.RLock()
	rent := tx.parent.rent
	tx.parent.mu.RUnlock()

	return createRecord(tx.staged, rent, addr, owner, size, funder)
}

func (tx *memoryTx) CreateFunder(addr Address, balance uint64) (*Account, error) {
	if tx.done {
		return nil, ErrTxDone
	}
	if _, ok := tx.stageFor(addr); ok {
		return nil, fmt.Errorf("funder %s: %w", addr, ErrAccountExists)
	}
	acc := NewAccount(addr, KindFunder, "", balance, 0)
	tx.staged[addr] = acc
	return acc.clone(), nil
}

func (tx *memoryTx) WriteData(addr Address, offset int, b []byte) error {
	if tx.done {
		return ErrTxDone
	}
	acc, ok := tx.stageFor(addr)
	if !ok {
		return fmt.Errorf("write %s: %w", addr, ErrAccountNotFound)
	}
	return acc.writeAt(offset, b)
}

// Commit atomically publishes every staged account to the parent ledger.
func (tx *memoryTx) Commit() error {
	if tx.done {
		return ErrTxDone
	}
	tx.done = true

	tx.parent.mu.Lock()
	defer tx.parent.mu.Unlock()
	for addr, acc := range tx.staged {
		tx.parent.accounts[addr] = acc
	}
	tx.staged = nil
	return nil
}

// Rollback discards staged mutations. A no-op after Commit so it can be deferred.
func (tx *memoryTx) Rollback() error {
	if tx.done {
		return nil
	}
	tx.done = true
	tx.staged = nil
	return nil
}
