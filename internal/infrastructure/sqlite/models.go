package sqlite

import (
	"github.com/zjrosen/arcadia/internal/ledger"
)

// accountColumns is the list of columns to select for account queries.
const accountColumns = `addr, kind, owner, balance, data, created_at, updated_at`

// AccountModel represents the database row for the accounts table.
// Balances are stored as signed integers because SQLite has no unsigned
// type; the ledger never lets one go negative.
type AccountModel struct {
	Addr      string
	Kind      string
	Owner     string
	Balance   int64
	Data      []byte
	CreatedAt int64 // Unix timestamp
	UpdatedAt int64 // Unix timestamp
}

// scanAccount scans a row into an AccountModel.
func scanAccount(scanner interface{ Scan(...any) error }) (*AccountModel, error) {
	var model AccountModel
	err := scanner.Scan(
		&model.Addr, &model.Kind, &model.Owner, &model.Balance, &model.Data,
		&model.CreatedAt, &model.UpdatedAt,
	)
	return &model, err
}

// toDomain converts a database AccountModel to a ledger Account.
func (m *AccountModel) toDomain() *ledger.Account {
	return ledger.ReconstituteAccount(
		ledger.Address(m.Addr),
		ledger.AccountKind(m.Kind),
		ledger.Address(m.Owner),
		uint64(m.Balance),
		m.Data,
	)
}

// RentScheduleModel represents the single row of the rent_schedule table.
type RentScheduleModel struct {
	UnitsPerByteYear     int64
	RetentionYears       int64
	AccountOverheadBytes int64
}

// toDomain converts the row to a ledger RentSchedule.
func (m *RentScheduleModel) toDomain() ledger.RentSchedule {
	return ledger.RentSchedule{
		UnitsPerByteYear:     uint64(m.UnitsPerByteYear),
		RetentionYears:       uint64(m.RetentionYears),
		AccountOverheadBytes: uint64(m.AccountOverheadBytes),
	}
}
