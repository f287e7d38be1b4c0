package tmdb

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenreRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		id   int
	}{
		{name: "Action", id: 28},
		{name: "Comedy", id: 35},
		{name: "Drama", id: 18},
		{name: "Family", id: 10751},
		{name: "Science Fiction", id: 878},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			id, ok := GenreID(test.name)
			require.True(t, ok)
			require.Equal(t, test.id, id)

			name, ok := GenreName(id)
			require.True(t, ok)
			require.Equal(t, test.name, name)
		})
	}
}

func TestGenreIDCaseInsensitive(t *testing.T) {
	for _, name := range []string{"drama", "DRAMA", "Drama", "dRaMa"} {
		id, ok := GenreID(name)
		require.True(t, ok, name)
		require.Equal(t, 18, id)
	}
}

func TestGenreIDUnknown(t *testing.T) {
	_, ok := GenreID("Mollywood Masala")
	require.False(t, ok)
}

func TestGenreNamesDropsUnknown(t *testing.T) {
	names := GenreNames([]int{28, 99999, 35, -1})
	require.Equal(t, []string{"Action", "Comedy"}, names)

	require.Empty(t, GenreNames(nil))
}

func TestProviderList(t *testing.T) {
	require.Equal(t, "8|119|237|232|433|309|542", ProviderList())
}

func TestProviderName(t *testing.T) {
	name, ok := ProviderName(ProviderNetflix)
	require.True(t, ok)
	require.Equal(t, "Netflix", name)

	_, ok = ProviderName(1)
	require.False(t, ok)

	require.True(t, KnownProvider(ProviderSunNXT))
	require.False(t, KnownProvider(0))
}
