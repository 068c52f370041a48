// Package testutil provides test fixtures for ledger and registry setup.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/arcadia/internal/infrastructure/sqlite"
	"github.com/zjrosen/arcadia/internal/ledger"
)

// TestRentSchedule is the flat pricing used by ledger fixtures:
// 5 units per byte, no overhead, so MinimumBalance(n) == 5n.
var TestRentSchedule = ledger.RentSchedule{
	UnitsPerByteYear:     5,
	RetentionYears:       1,
	AccountOverheadBytes: 0,
}

// NewTestDB opens a fresh migrated SQLite database in a temp directory.
// The database is closed automatically when the test finishes.
func NewTestDB(t *testing.T) *sqlite.DB {
	t.Helper()

	db, err := sqlite.NewDB(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err, "opening test database")
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// NewTestLedger returns a SQLite-backed ledger with TestRentSchedule applied.
func NewTestLedger(t *testing.T) *sqlite.Ledger {
	t.Helper()

	l := sqlite.NewLedger(NewTestDB(t))
	require.NoError(t, l.SetRentSchedule(TestRentSchedule), "setting test rent schedule")
	return l
}
