package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSerialNumber(t *testing.T) {
	tests := []struct {
		name     string
		year     int
		sequence int
		expected string
	}{
		{
			name:     "Basic Case",
			year:     2025,
			sequence: 42,
			expected: "AST-2025-00042",
		},
		{
			name:     "Large Sequence",
			year:     2026,
			sequence: 123456,
			expected: "AST-2026-123456",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serial := NewSerialNumber(tt.year, tt.sequence)
			assert.Equal(t, tt.expected, serial.String())
		})
	}
}
