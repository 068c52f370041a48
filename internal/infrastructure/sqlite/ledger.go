package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/zjrosen/arcadia/internal/ledger"
	"github.com/zjrosen/arcadia/internal/log"
)

// querier is the subset of database/sql shared by *sql.DB and *sql.Tx, so
// the ledger operations run identically inside and outside a transaction.
type querier interface {
	Exec(query string, args ...any) (sql.Result, error)
	QueryRow(query string, args ...any) *sql.Row
}

// Ledger implements ledger.Ledger over a SQLite database. Operations called
// directly on the Ledger auto-commit; Begin returns a transactional view
// whose mutations land atomically on Commit.
type Ledger struct {
	db *DB
}

var _ ledger.Ledger = (*Ledger)(nil)
var _ ledger.Transactional = (*Ledger)(nil)

// NewLedger creates a ledger backed by the given database.
func NewLedger(db *DB) *Ledger {
	return &Ledger{db: db}
}

// Begin opens a ledger transaction backed by a SQLite transaction.
func (l *Ledger) Begin() (ledger.Tx, error) {
	tx, err := l.db.conn.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin sqlite transaction: %w", err)
	}
	return &sqliteTx{tx: tx}, nil
}

// SetRentSchedule replaces the live rent schedule. Subsequent oracle reads
// see the new parameters immediately.
func (l *Ledger) SetRentSchedule(rent ledger.RentSchedule) error {
	_, err := l.db.conn.Exec(
		`UPDATE rent_schedule SET units_per_byte_year = ?, retention_years = ?, account_overhead_bytes = ? WHERE id = 1`,
		int64(rent.UnitsPerByteYear), int64(rent.RetentionYears), int64(rent.AccountOverheadBytes),
	)
	if err != nil {
		return fmt.Errorf("update rent schedule: %w", err)
	}
	return nil
}

func (l *Ledger) MinimumBalance(size int) (uint64, error) {
	return minimumBalance(l.db.conn, size)
}

func (l *Ledger) Account(addr ledger.Address) (*ledger.Account, error) {
	return getAccount(l.db.conn, addr)
}

func (l *Ledger) Transfer(from, to ledger.Address, amount uint64) error {
	return transfer(l.db.conn, from, to, amount)
}

func (l *Ledger) Resize(addr ledger.Address, newSize int, zeroNewBytes bool) error {
	return resize(l.db.conn, addr, newSize, zeroNewBytes)
}

func (l *Ledger) CreateRecord(addr, owner ledger.Address, size int, funder ledger.Address) (*ledger.Account, error) {
	return createRecord(l.db.conn, addr, owner, size, funder)
}

func (l *Ledger) CreateFunder(addr ledger.Address, balance uint64) (*ledger.Account, error) {
	return createFunder(l.db.conn, addr, balance)
}

func (l *Ledger) WriteData(addr ledger.Address, offset int, b []byte) error {
	return writeData(l.db.conn, addr, offset, b)
}

// ===========================================================================
// sqliteTx
// ===========================================================================

// sqliteTx is a ledger transaction over a SQLite transaction. All reads and
// writes inside it see the transaction's own uncommitted state; Rollback
// discards everything including any transfers already applied.
type sqliteTx struct {
	tx *sql.Tx
}

var _ ledger.Tx = (*sqliteTx)(nil)

func (t *sqliteTx) MinimumBalance(size int) (uint64, error) {
	return minimumBalance(t.tx, size)
}

func (t *sqliteTx) Account(addr ledger.Address) (*ledger.Account, error) {
	return getAccount(t.tx, addr)
}

func (t *sqliteTx) Transfer(from, to ledger.Address, amount uint64) error {
	return transfer(t.tx, from, to, amount)
}

func (t *sqliteTx) Resize(addr ledger.Address, newSize int, zeroNewBytes bool) error {
	return resize(t.tx, addr, newSize, zeroNewBytes)
}

func (t *sqliteTx) CreateRecord(addr, owner ledger.Address, size int, funder ledger.Address) (*ledger.Account, error) {
	return createRecord(t.tx, addr, owner, size, funder)
}

func (t *sqliteTx) CreateFunder(addr ledger.Address, balance uint64) (*ledger.Account, error) {
	return createFunder(t.tx, addr, balance)
}

func (t *sqliteTx) WriteData(addr ledger.Address, offset int, b []byte) error {
	return writeData(t.tx, addr, offset, b)
}

func (t *sqliteTx) Commit() error {
	if err := t.tx.Commit(); err != nil {
		if errors.Is(err, sql.ErrTxDone) {
			return ledger.ErrTxDone
		}
		return fmt.Errorf("commit sqlite transaction: %w", err)
	}
	return nil
}

func (t *sqliteTx) Rollback() error {
	if err := t.tx.Rollback(); err != nil {
		if errors.Is(err, sql.ErrTxDone) {
			return ledger.ErrTxDone
		}
		return fmt.Errorf("rollback sqlite transaction: %w", err)
	}
	return nil
}

// ===========================================================================
// Shared operations
// ===========================================================================

// minimumBalance reads the live rent schedule and prices the given size.
// The schedule row is read on every call; a missing or unreadable row means
// the oracle is unavailable and the operation must fail.
func minimumBalance(q querier, size int) (uint64, error) {
	if size < 0 {
		return 0, fmt.Errorf("%w: negative size %d", ledger.ErrResizeRejected, size)
	}
	row := q.QueryRow(`SELECT units_per_byte_year, retention_years, account_overhead_bytes FROM rent_schedule WHERE id = 1`)
	var model RentScheduleModel
	if err := row.Scan(&model.UnitsPerByteYear, &model.RetentionYears, &model.AccountOverheadBytes); err != nil {
		return 0, fmt.Errorf("%w: %w", ledger.ErrBalanceOracleUnavailable, err)
	}
	return model.toDomain().MinimumBalance(size), nil
}

func getAccount(q querier, addr ledger.Address) (*ledger.Account, error) {
	row := q.QueryRow(`SELECT `+accountColumns+` FROM accounts WHERE addr = ?`, string(addr))
	model, err := scanAccount(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("account %s: %w", addr, ledger.ErrAccountNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load account %s: %w", addr, err)
	}
	return model.toDomain(), nil
}

// transfer moves amount from one account's balance to another's. The debit
// and credit run as two updates; callers needing atomicity wrap the ledger
// in a transaction, and the direct path checks the balance first so a plain
// insufficiency never leaves a partial effect.
func transfer(q querier, from, to ledger.Address, amount uint64) error {
	src, err := getAccount(q, from)
	if err != nil {
		return fmt.Errorf("%w: %w", ledger.ErrTransferRejected, err)
	}
	if _, err := getAccount(q, to); err != nil {
		return fmt.Errorf("%w: %w", ledger.ErrTransferRejected, err)
	}
	if amount > src.Balance() {
		return fmt.Errorf("%w: debit %d from %s (balance %d): %w",
			ledger.ErrTransferRejected, amount, from, src.Balance(), ledger.ErrInsufficientFunds)
	}

	now := time.Now().Unix()
	if _, err := q.Exec(`UPDATE accounts SET balance = balance - ?, updated_at = ? WHERE addr = ?`,
		int64(amount), now, string(from)); err != nil {
		return fmt.Errorf("%w: debit %s: %w", ledger.ErrTransferRejected, from, err)
	}
	if _, err := q.Exec(`UPDATE accounts SET balance = balance + ?, updated_at = ? WHERE addr = ?`,
		int64(amount), now, string(to)); err != nil {
		return fmt.Errorf("%w: credit %s: %w", ledger.ErrTransferRejected, to, err)
	}
	return nil
}

func resize(q querier, addr ledger.Address, newSize int, zeroNewBytes bool) error {
	acct, err := getAccount(q, addr)
	if err != nil {
		return fmt.Errorf("%w: %w", ledger.ErrResizeRejected, err)
	}
	if err := ledger.ValidateResize(acct.Size(), newSize); err != nil {
		return err
	}

	buf := ledger.ResizeBuffer(acct.Data(), newSize, zeroNewBytes)
	if _, err := q.Exec(`UPDATE accounts SET data = ?, updated_at = ? WHERE addr = ?`,
		buf, time.Now().Unix(), string(addr)); err != nil {
		return fmt.Errorf("%w: %w", ledger.ErrResizeRejected, err)
	}

	log.Debug(log.CatDB, "account resized", "addr", addr, "old_size", acct.Size(), "new_size", newSize)

	return nil
}

func createRecord(q querier, addr, owner ledger.Address, size int, funder ledger.Address) (*ledger.Account, error) {
	if _, err := getAccount(q, addr); err == nil {
		return nil, fmt.Errorf("record %s: %w", addr, ledger.ErrAccountExists)
	}
	if err := ledger.ValidateResize(0, size); err != nil {
		return nil, err
	}

	required, err := minimumBalance(q, size)
	if err != nil {
		return nil, fmt.Errorf("record %s: %w", addr, err)
	}

	src, err := getAccount(q, funder)
	if err != nil {
		return nil, fmt.Errorf("record %s funder: %w: %w", addr, ledger.ErrTransferRejected, err)
	}
	if required > src.Balance() {
		return nil, fmt.Errorf("%w: debit %d from %s (balance %d): %w",
			ledger.ErrTransferRejected, required, funder, src.Balance(), ledger.ErrInsufficientFunds)
	}

	now := time.Now().Unix()
	if _, err := q.Exec(`UPDATE accounts SET balance = balance - ?, updated_at = ? WHERE addr = ?`,
		int64(required), now, string(funder)); err != nil {
		return nil, fmt.Errorf("%w: debit %s: %w", ledger.ErrTransferRejected, funder, err)
	}

	// Creation zeroes the buffer; only later growth exposes unspecified bytes.
	data := make([]byte, size)
	if _, err := q.Exec(
		`INSERT INTO accounts (addr, kind, owner, balance, data, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		string(addr), string(ledger.KindRecord), string(owner), int64(required), data, now, now,
	); err != nil {
		return nil, fmt.Errorf("insert record %s: %w", addr, err)
	}

	return ledger.ReconstituteAccount(addr, ledger.KindRecord, owner, required, data), nil
}

func createFunder(q querier, addr ledger.Address, balance uint64) (*ledger.Account, error) {
	now := time.Now().Unix()
	if _, err := q.Exec(
		`INSERT INTO accounts (addr, kind, owner, balance, data, created_at, updated_at) VALUES (?, ?, '', ?, x'', ?, ?)`,
		string(addr), string(ledger.KindFunder), int64(balance), now, now,
	); err != nil {
		if _, lookupErr := getAccount(q, addr); lookupErr == nil {
			return nil, fmt.Errorf("funder %s: %w", addr, ledger.ErrAccountExists)
		}
		return nil, fmt.Errorf("insert funder %s: %w", addr, err)
	}
	return ledger.ReconstituteAccount(addr, ledger.KindFunder, "", balance, nil), nil
}

func writeData(q querier, addr ledger.Address, offset int, b []byte) error {
	acct, err := getAccount(q, addr)
	if err != nil {
		return err
	}
	if offset < 0 || offset+len(b) > acct.Size() {
		return fmt.Errorf("write [%d, %d) into %s (size %d): %w",
			offset, offset+len(b), addr, acct.Size(), ledger.ErrWriteOutOfBounds)
	}

	buf := acct.Data()
	copy(buf[offset:], b)
	if _, err := q.Exec(`UPDATE accounts SET data = ?, updated_at = ? WHERE addr = ?`,
		buf, time.Now().Unix(), string(addr)); err != nil {
		return fmt.Errorf("write account %s: %w", addr, err)
	}
	return nil
}
