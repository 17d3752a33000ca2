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
		{name: "microseconds", duration: 250 * time.Microsecond, expected: "250µs"},
		{name: "milliseconds", duration: 42 * time.Millisecond, expected: "42ms"},
		{name: "seconds", duration: 3 * time.Second, expected: "3.0s"},
		{name: "minutes", duration: 90 * time.Second, expected: "1.5m"},
		{name: "hours", duration: 5 * time.Hour, expected: "5.0h"},
		{name: "zero", duration: 0, expected: "0µs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatDuration(tt.duration))
		})
	}
}
