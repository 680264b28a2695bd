package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseClock_ClockStrings verifies bare clock strings with and without seconds.
func TestParseClock_ClockStrings(t *testing.T) {
	c, ok := ParseClock("8:00")
	require.True(t, ok)
	assert.Equal(t, 480, c.Minutes())
	assert.Equal(t, "08:00", c.String())

	c, ok = ParseClock("14:30:00")
	require.True(t, ok)
	assert.Equal(t, 870, c.Minutes())
	assert.Equal(t, "14:30", c.String())

	c, ok = ParseClock("23:59")
	require.True(t, ok)
	assert.Equal(t, 1439, c.Minutes())
}

// TestParseClock_Datetimes verifies that ISO datetimes resolve to their time of day.
func TestParseClock_Datetimes(t *testing.T) {
	c, ok := ParseClock("2024-01-15T14:30:00Z")
	require.True(t, ok)
	assert.Equal(t, "14:30", c.String())

	c, ok = ParseClock("2024-01-15 06:05:09")
	require.True(t, ok)
	assert.Equal(t, "06:05", c.String())
}

// TestParseClock_Unparseable verifies that junk input yields ok=false, never a panic.
func TestParseClock_Unparseable(t *testing.T) {
	for _, input := range []string{"", "  ", "noon", "25:00", "12:75", "12", "1230", "8:3"} {
		_, ok := ParseClock(input)
		assert.False(t, ok, "input %q should not parse", input)
	}
}

// TestParseClock_SecondsStripped verifies that stripping seconds and re-parsing
// yields the same minutes value as parsing the original string directly.
func TestParseClock_SecondsStripped(t *testing.T) {
	inputs := []string{"0:00:00", "4:05:59", "08:15:30", "14:30:00", "23:59:59"}

	for _, input := range inputs {
		original, ok := ParseClock(input)
		require.True(t, ok, "input %q should parse", input)

		stripped, ok := ParseClock(original.String())
		require.True(t, ok)
		assert.Equal(t, original.Minutes(), stripped.Minutes(), "input %q", input)
	}
}

// TestClockTime_On verifies that a clock placed on a date keeps the date's location.
func TestClockTime_On(t *testing.T) {
	date := time.Date(2024, 1, 15, 9, 45, 12, 0, time.UTC)
	c := ClockTime{Hour: 14, Minute: 30}

	ts := c.On(date)
	assert.Equal(t, time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC), ts)
}

// TestClockTime_Display verifies that an unresolved clock renders as a dash.
func TestClockTime_Display(t *testing.T) {
	var unresolved *ClockTime
	assert.Equal(t, "-", unresolved.Display())

	c := ClockTime{Hour: 8, Minute: 5}
	assert.Equal(t, "08:05", c.Display())
}
