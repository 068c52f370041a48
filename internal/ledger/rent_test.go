package ledger

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRentSchedule_MinimumBalance(t *testing.T) {
	tests := []struct {
		name     string
		schedule RentSchedule
		size     int
		want     uint64
	}{
		{
			name:     "zero size still pays the account overhead",
			schedule: DefaultRentSchedule(),
			size:     0,
			want:     128 * 3480 * 2,
		},
		{
			name:     "size scales linearly",
			schedule: RentSchedule{UnitsPerByteYear: 5, RetentionYears: 1},
			size:     100,
			want:     500,
		},
		{
			name:     "retention years multiply the per-year cost",
			schedule: RentSchedule{UnitsPerByteYear: 5, RetentionYears: 3},
			size:     100,
			want:     1500,
		},
		{
			name:     "overhead is added before pricing",
			schedule: RentSchedule{UnitsPerByteYear: 2, RetentionYears: 2, AccountOverheadBytes: 10},
			size:     40,
			want:     (10 + 40) * 2 * 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.schedule.MinimumBalance(tt.size))
		})
	}
}

func TestRentSchedule_GrowthCostIsSizeDelta(t *testing.T) {
	s := DefaultRentSchedule()

	// The overhead charge cancels out: growing a record costs exactly the
	// per-byte rate times the added bytes.
	delta := s.MinimumBalance(200) - s.MinimumBalance(100)
	require.Equal(t, uint64(100)*s.UnitsPerByteYear*s.RetentionYears, delta)
}
