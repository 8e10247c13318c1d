package reference

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPostalCode(t *testing.T) {
	tests := []struct {
		city string
		want string
	}{
		{city: "Siem Reap", want: "170101"},
		{city: "siem reap", want: "170101"},
		{city: "BATTAMBANG", want: "020101"},
		{city: "Khan 7 Makara", want: "120301"},
		{city: "Kratié", want: "100101"},
		{city: "Battambang", want: "020101"},
		{city: "Atlantis", want: "120101"},
		{city: "", want: "120101"},
	}

	for _, tt := range tests {
		t.Run(tt.city, func(t *testing.T) {
			require.Equal(t, tt.want, Postal().Lookup(tt.city))
		})
	}
}

func TestCities_SortedAndComplete(t *testing.T) {
	cities := Postal().Cities()
	require.Len(t, cities, 38)
	require.True(t, sort.StringsAreSorted(cities))
	require.Contains(t, cities, "Phnom Penh")
	require.Contains(t, cities, "Pailin")

	cities[0] = "mutated"
	require.NotEqual(t, "mutated", Postal().Cities()[0])
}

func TestParsePostalDirectory_Errors(t *testing.T) {
	_, err := ParsePostalDirectory([]byte("cities: [unterminated"))
	require.Error(t, err)

	_, err = ParsePostalDirectory([]byte("cities:\n  Kep: \"230101\"\n"))
	require.ErrorContains(t, err, "default code is empty")
}

func TestParsePostalDirectory_Custom(t *testing.T) {
	dir, err := ParsePostalDirectory([]byte("default: \"99999\"\ncities:\n  Alpha: \"11111\"\n"))
	require.NoError(t, err)
	require.Equal(t, "11111", dir.Lookup("ALPHA"))
	require.Equal(t, "99999", dir.Lookup("Beta"))
	require.Equal(t, []string{"Alpha"}, dir.Cities())
}
