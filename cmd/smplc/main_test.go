package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgs(t *testing.T) {
	opts, err := parseArgs([]string{"-v", "2", "--no-color", "loop.smpl"})
	require.NoError(t, err)
	assert.Equal(t, &options{verbosity: 2, noColor: true, path: "loop.smpl"}, opts)

	opts, err = parseArgs([]string{"--verbose=1", "loop.smpl"})
	require.NoError(t, err)
	assert.Equal(t, 1, opts.verbosity)
	assert.False(t, opts.noColor)
}

func TestParseArgsRejectsBadInvocations(t *testing.T) {
	_, err := parseArgs(nil)
	assert.Error(t, err)

	_, err = parseArgs([]string{"a.smpl", "b.smpl"})
	assert.Error(t, err)

	_, err = parseArgs([]string{"--optimize", "a.smpl"})
	assert.Error(t, err)
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{500 * time.Nanosecond, "500ns"},
		{1500 * time.Nanosecond, "1.5μs"},
		{2500 * time.Microsecond, "2.5ms"},
		{1500 * time.Millisecond, "1.50s"},
		{90 * time.Second, "1.50min"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatDuration(tt.in), tt.in.String())
	}
}
