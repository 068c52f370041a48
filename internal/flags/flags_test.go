package flags

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistry_Enabled(t *testing.T) {
	tests := []struct {
		name     string
		registry *Registry
		flag     string
		expected bool
	}{
		{
			name:     "enabled flag returns true",
			registry: New(map[string]bool{FlagWatchInvalidation: true}),
			flag:     FlagWatchInvalidation,
			expected: true,
		},
		{
			name:     "disabled flag returns false",
			registry: New(map[string]bool{FlagVerboseResults: false}),
			flag:     FlagVerboseResults,
			expected: false,
		},
		{
			name:     "unknown flag returns false",
			registry: New(map[string]bool{FlagWatchInvalidation: true}),
			flag:     "no-such-flag",
			expected: false,
		},
		{
			name:     "nil registry returns false",
			registry: nil,
			flag:     FlagWatchInvalidation,
			expected: false,
		},
		{
			name:     "nil flags map returns false",
			registry: New(nil),
			flag:     FlagWatchInvalidation,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.registry.Enabled(tt.flag))
		})
	}
}

func TestRegistry_All_ReturnsDefensiveCopy(t *testing.T) {
	r := New(map[string]bool{FlagWatchInvalidation: true})

	copied := r.All()
	copied[FlagWatchInvalidation] = false
	copied["extra"] = true

	require.True(t, r.Enabled(FlagWatchInvalidation), "registry should not be affected by copy mutation")
	require.False(t, r.Enabled("extra"), "registry should not see flags added to the copy")
	require.Equal(t, map[string]bool{FlagWatchInvalidation: true}, r.All())
}

func TestRegistry_All_NilSafe(t *testing.T) {
	var r *Registry
	require.Equal(t, map[string]bool{}, r.All())
	require.Equal(t, map[string]bool{}, New(nil).All())
}
