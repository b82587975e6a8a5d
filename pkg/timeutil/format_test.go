//go:build !integration

package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		expected string
	}{
		{name: "zero", duration: 0, expected: "0ms"},
		{name: "milliseconds", duration: 850 * time.Millisecond, expected: "850ms"},
		{name: "seconds", duration: 1200 * time.Millisecond, expected: "1.2s"},
		{name: "minutes", duration: 3*time.Minute + 5*time.Second, expected: "3m 5s"},
		{name: "hours", duration: 2*time.Hour + 10*time.Minute, expected: "2h 10m"},
		{name: "negative is absolute", duration: -40 * time.Millisecond, expected: "40ms"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatDuration(tt.duration))
		})
	}
}
