package ledger

import "fmt"

// Address identifies an account in the ledger.
type Address string

// AccountKind distinguishes registry-owned records from externally owned funders.
type AccountKind string

const (
	// KindRecord is a persistent record owned by the registry program.
	// Its balance and buffer are mutated only through ledger primitives.
	KindRecord AccountKind = "record"
	// KindFunder is an externally owned account supplying balance.
	// It never owns a record and only its balance is touched.
	KindFunder AccountKind = "funder"
)

// Account is an addressable unit of persistent storage: a balance funding its
// retention and an opaque byte buffer. Mutation happens only through the
// unexported methods, which ledger implementations invoke on their staged
// copies; callers outside the package read state via the getters.
type Account struct {
	addr    Address
	kind    AccountKind
	owner   Address // owning program for records; empty for funders
	balance uint64
	data    []byte
}

// NewAccount constructs an account. Used by ledger implementations and tests.
func NewAccount(addr Address, kind AccountKind, owner Address, balance uint64, size int) *Account {
	return &Account{
		addr:    addr,
		kind:    kind,
		owner:   owner,
		balance: balance,
		data:    make([]byte, size),
	}
}

// ReconstituteAccount rebuilds an account from persisted state. Used by
// ledger implementations when loading rows from storage.
func ReconstituteAccount(addr Address, kind AccountKind, owner Address, balance uint64, data []byte) *Account {
	buf := make([]byte, len(data))
	copy(buf, data)
	return &Account{
		addr:    addr,
		kind:    kind,
		owner:   owner,
		balance: balance,
		data:    buf,
	}
}

// Addr returns the account's address.
func (a *Account) Addr() Address {
	return a.addr
}

// Kind returns whether this is a record or a funder account.
func (a *Account) Kind() AccountKind {
	return a.kind
}

// Owner returns the owning program address (empty for funders).
func (a *Account) Owner() Address {
	return a.owner
}

// Balance returns the native-unit balance funding the account's retention.
func (a *Account) Balance() uint64 {
	return a.balance
}

// Size returns the current byte length of the account's buffer.
func (a *Account) Size() int {
	return len(a.data)
}

// Data returns a copy of the account's buffer. The copy keeps callers from
// mutating ledger state outside a transaction.
func (a *Account) Data() []byte {
	out := make([]byte, len(a.data))
	copy(out, a.data)
	return out
}

// credit increases the balance.
func (a *Account) credit(amount uint64) {
	a.balance += amount
}

// debit decreases the balance, failing if it would go negative.
func (a *Account) debit(amount uint64) error {
	if amount > a.balance {
		return fmt.Errorf("debit %d from %s (balance %d): %w", amount, a.addr, a.balance, ErrInsufficientFunds)
	}
	a.balance -= amount
	return nil
}

// resize changes the buffer length. The first min(old, new) bytes are
// preserved. When the buffer grows and zeroNewBytes is false, the newly
// exposed region is poisoned rather than zeroed so callers cannot come to
// rely on zero-initialization the platform does not guarantee.
func (a *Account) resize(newSize int, zeroNewBytes bool) {
	a.data = ResizeBuffer(a.data, newSize, zeroNewBytes)
}

// writeAt copies b into the buffer at the given offset.
func (a *Account) writeAt(offset int, b []byte) error {
	if offset < 0 || offset+len(b) > len(a.data) {
		return fmt.Errorf("write [%d, %d) into %s (size %d): %w", offset, offset+len(b), a.addr, len(a.data), ErrWriteOutOfBounds)
	}
	copy(a.data[offset:], b)
	return nil
}

// clone returns a deep copy for transaction staging.
func (a *Account) clone() *Account {
	c := *a
	c.data = make([]byte, len(a.data))
	copy(c.data, a.data)
	return &c
}

// poisonByte fills freshly exposed buffer bytes when zeroing is not requested.
const poisonByte = 0xA5

// ResizeBuffer returns buf resized to newSize, preserving the common prefix.
// Shared by every ledger implementation so resize semantics cannot drift.
func ResizeBuffer(buf []byte, newSize int, zeroNewBytes bool) []byte {
	out := make([]byte, newSize)
	n := copy(out, buf)
	if !zeroNewBytes {
		for i := n; i < newSize; i++ {
			out[i] = poisonByte
		}
	}
	return out
}
