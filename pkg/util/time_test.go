package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	cases := []struct {
		in   string
		want time.Duration
	}{
		{"7d", 7 * 24 * time.Hour},
		{" 2d ", 2 * 24 * time.Hour},
		{"30", 30 * time.Second},
		{"90m", 90 * time.Minute},
		{"1h30m", 90 * time.Minute},
		{"0", 0},
	}
	for _, c := range cases {
		got, err := ParseDuration(c.in)
		require.NoError(t, err, "input %q", c.in)
		assert.Equal(t, c.want, got, "input %q", c.in)
	}
}

func TestParseDurationInvalid(t *testing.T) {
	for _, in := range []string{"xyz", "d", "1w2d", ""} {
		_, err := ParseDuration(in)
		assert.Error(t, err, "input %q", in)
	}
}
