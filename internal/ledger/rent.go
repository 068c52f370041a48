package ledger

// Default rent parameters. These seed new ledgers and the config defaults;
// the live values are always read back through the oracle because the
// schedule can change between calls.
const (
	DefaultUnitsPerByteYear     = 3480
	DefaultRetentionYears       = 2
	DefaultAccountOverheadBytes = 128
)

// RentSchedule is the platform's retention pricing: the parameters from which
// the minimum balance for a given buffer size is derived.
type RentSchedule struct {
	// UnitsPerByteYear is the native-unit cost of retaining one byte for one year.
	UnitsPerByteYear uint64
	// RetentionYears is how many years of retention an account must prepay.
	RetentionYears uint64
	// AccountOverheadBytes is the fixed per-account metadata charge added to
	// the buffer size before pricing.
	AccountOverheadBytes uint64
}

// DefaultRentSchedule returns the schedule used by fresh ledgers.
func DefaultRentSchedule() RentSchedule {
	return RentSchedule{
		UnitsPerByteYear:     DefaultUnitsPerByteYear,
		RetentionYears:       DefaultRetentionYears,
		AccountOverheadBytes: DefaultAccountOverheadBytes,
	}
}

// MinimumBalance returns the smallest balance an account with a buffer of the
// given size must hold to remain retained.
func (r RentSchedule) MinimumBalance(size int) uint64 {
	return (r.AccountOverheadBytes + uint64(size)) * r.UnitsPerByteYear * r.RetentionYears
}
