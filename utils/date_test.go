package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("15/07/2025")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.July, 15, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("2025-07-15")
	assert.Error(t, err)
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2025, time.January, 1, 23, 59, 0, 0, time.UTC)
	b := time.Date(2025, time.December, 31, 0, 1, 0, 0, time.UTC)
	assert.Equal(t, 364, DaysBetween(a, b))
	assert.Equal(t, -364, DaysBetween(b, a))
	assert.Equal(t, 0, DaysBetween(a, a))
}

func TestProjectToYear(t *testing.T) {
	leap := time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC), ProjectToYear(leap, 2025))
	assert.Equal(t, time.Date(2028, time.February, 29, 0, 0, 0, 0, time.UTC), ProjectToYear(leap, 2028))
}

func TestNightsOf(t *testing.T) {
	in := time.Date(2025, time.December, 30, 0, 0, 0, 0, time.UTC)
	out := time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC)
	nights := NightsOf(in, out)
	require.Len(t, nights, 3)
	assert.Equal(t, 2026, nights[2].Year())
	assert.Nil(t, NightsOf(out, in))
}
