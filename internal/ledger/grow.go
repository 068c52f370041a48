package ledger

import (
	"fmt"

	"github.com/zjrosen/arcadia/internal/log"
)

// Grow tops up a record's balance to the minimum required for newSize and
// reallocates its buffer to that size. It is the single entry point callers
// use before writing into an expanded record.
//
// The sequence is: query the rent oracle, transfer the shortfall (if any)
// from funder to record, resize with zeroNewBytes false. The shortfall is a
// saturating subtraction, so a record already funded for newSize - including
// any newSize smaller than the current size - moves no balance at all;
// excess balance is never reclaimed. Bytes beyond the old length are not
// zero-initialized: callers must fully overwrite any newly exposed byte they
// intend to later read as meaningful data.
//
// Grow performs no retries and holds no state. Failure of any step aborts
// the operation with the taxonomy error of that step; run Grow inside a Tx
// so an abort leaves no partial effect observable.
func Grow(l Ledger, record, funder Address, newSize int) error {
	required, err := l.MinimumBalance(newSize)
	if err != nil {
		return fmt.Errorf("grow %s to %d: %w", record, newSize, err)
	}

	rec, err := l.Account(record)
	if err != nil {
		return fmt.Errorf("grow %s to %d: %w", record, newSize, err)
	}

	// Saturating: zero when the record already holds enough for newSize.
	var shortfall uint64
	if required > rec.Balance() {
		shortfall = required - rec.Balance()
	}

	if shortfall > 0 {
		if err := l.Transfer(funder, record, shortfall); err != nil {
			return fmt.Errorf("grow %s to %d: %w", record, newSize, err)
		}
	}

	if err := l.Resize(record, newSize, false); err != nil {
		return fmt.Errorf("grow %s to %d: %w", record, newSize, err)
	}

	log.Debug(log.CatLedger, "record grown",
		"record", record,
		"old_size", rec.Size(),
		"new_size", newSize,
		"topped_up", shortfall,
	)

	return nil
}
