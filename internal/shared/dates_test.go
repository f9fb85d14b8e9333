package shared

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func d(y int, m time.Month, day int) *time.Time {
	t := time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestEarliestDate(t *testing.T) {
	earliest, ok := EarliestDate(d(2024, 3, 1), nil, d(2024, 1, 15), d(2024, 2, 1))
	require.True(t, ok)
	require.Equal(t, *d(2024, 1, 15), earliest)

	_, ok = EarliestDate(nil, nil)
	require.False(t, ok)
}

func TestLatestDate(t *testing.T) {
	latest, ok := LatestDate(nil, d(2024, 3, 1), d(2024, 6, 30), nil)
	require.True(t, ok)
	require.Equal(t, *d(2024, 6, 30), latest)

	_, ok = LatestDate()
	require.False(t, ok)
}
