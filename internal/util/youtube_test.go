package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseISO8601Duration(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"PT4M13S", 253},
		{"PT1H2M3S", 3723},
		{"PT2H", 7200},
		{"PT45S", 45},
		{"PT10M", 600},
		{"PT0S", 0},
	}
	for _, c := range cases {
		got, err := ParseISO8601Duration(c.in)
		require.NoError(t, err, "input %q", c.in)
		assert.Equal(t, c.want, got, "input %q", c.in)
	}
}

func TestParseISO8601DurationInvalid(t *testing.T) {
	for _, in := range []string{"", "4M13S", "garbage", "PT4M13"} {
		_, err := ParseISO8601Duration(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "4:13", FormatDuration(253))
	assert.Equal(t, "1:02:03", FormatDuration(3723))
	assert.Equal(t, "0:45", FormatDuration(45))
	assert.Equal(t, "0:00", FormatDuration(0))
	assert.Equal(t, "10:00", FormatDuration(600))
	assert.Equal(t, "0:00", FormatDuration(-5))
}

func TestFormatCount(t *testing.T) {
	assert.Equal(t, "532", FormatCount(532))
	assert.Equal(t, "1.5K", FormatCount(1500))
	assert.Equal(t, "2.3M", FormatCount(2_300_000))
	assert.Equal(t, "0", FormatCount(0))
}
