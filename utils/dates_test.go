package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatHHMM(t *testing.T) {
	cases := []struct {
		minutes  int
		expected string
	}{
		{minutes: 0, expected: "00:00"},
		{minutes: 15, expected: "00:15"},
		{minutes: 60, expected: "01:00"},
		{minutes: 90, expected: "01:30"},
		{minutes: 545, expected: "09:05"},
		{minutes: 875, expected: "14:35"},
		{minutes: 1020, expected: "17:00"},
		{minutes: 1439, expected: "23:59"},
	}

	for _, c := range cases {
		assert.Equal(t, c.expected, FormatHHMM(c.minutes))
	}
}

func TestParseHHMM(t *testing.T) {
	cases := []struct {
		input    string
		expected int
	}{
		{input: "00:00", expected: 0},
		{input: "09:05", expected: 545},
		{input: "14:35", expected: 875},
		{input: "23:59", expected: 1439},
	}

	for _, c := range cases {
		got, err := ParseHHMM(c.input)
		require.NoError(t, err, c.input)
		assert.Equal(t, c.expected, got, c.input)
	}

	for _, bad := range []string{"", "nine", "12:-5", "12:75"} {
		_, err := ParseHHMM(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	for m := 0; m < 24*60; m += 7 {
		parsed, err := ParseHHMM(FormatHHMM(m))
		require.NoError(t, err)
		assert.Equal(t, m, parsed)
	}
}

func TestWeekdayIndex(t *testing.T) {
	cases := []struct {
		date     string
		expected int
	}{
		{date: "2025-01-06", expected: 0}, // Monday
		{date: "2025-01-07", expected: 1},
		{date: "2025-01-10", expected: 4}, // Friday
		{date: "2025-01-11", expected: 5},
		{date: "2025-01-05", expected: 6}, // Sunday
	}

	for _, c := range cases {
		day, err := ParseDate(c.date)
		require.NoError(t, err)
		assert.Equal(t, c.expected, WeekdayIndex(day), c.date)
	}
}

func TestDaysBetween(t *testing.T) {
	start := time.Date(2025, 1, 6, 23, 30, 0, 0, time.UTC)
	end := time.Date(2025, 1, 9, 0, 15, 0, 0, time.UTC)
	assert.Equal(t, 3, DaysBetween(start, end))
}

func TestValidateTimeOfDay(t *testing.T) {
	assert.True(t, ValidateTimeOfDay("09:00"))
	assert.True(t, ValidateTimeOfDay("23:59"))
	assert.False(t, ValidateTimeOfDay("24:00"))
	assert.False(t, ValidateTimeOfDay("9:00"))
	assert.False(t, ValidateTimeOfDay("09:60"))
}

func TestValidateDate(t *testing.T) {
	assert.True(t, ValidateDate("2025-01-06"))
	assert.False(t, ValidateDate("06-01-2025"))
	assert.False(t, ValidateDate("2025-1-6"))
}
