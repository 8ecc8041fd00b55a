package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClockRoundTrip(t *testing.T) {
	for _, s := range []string{"00:00", "08:30", "11:59", "12:00", "16:30", "23:59"} {
		parsed, err := ParseClock(s)
		require.NoError(t, err, s)
		assert.Equal(t, s, parsed.String())
	}
}

func TestParseClockRejectsMalformed(t *testing.T) {
	for _, s := range []string{"", "8:30", "08:3", "08-30", "24:00", "12:60", "aa:bb", "08:30:00"} {
		_, err := ParseClock(s)
		assert.Error(t, err, s)
	}
}

func TestClockDisplay(t *testing.T) {
	cases := map[string]string{
		"00:30": "12:30 AM",
		"09:00": "9:00 AM",
		"11:30": "11:30 AM",
		"12:00": "12:00 PM",
		"16:30": "4:30 PM",
	}
	for in, want := range cases {
		parsed, err := ParseClock(in)
		require.NoError(t, err)
		assert.Equal(t, want, parsed.Display())
	}
}

func TestClockAdd(t *testing.T) {
	start, err := ParseClock("11:30")
	require.NoError(t, err)
	assert.Equal(t, "12:15", start.Add(45).String())
}
