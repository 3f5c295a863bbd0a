package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeAndTrimLower(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "nil slice",
			input:    nil,
			expected: nil,
		},
		{
			name:     "empty slice",
			input:    []string{},
			expected: []string{},
		},
		{
			name:     "lowercases and dedupes",
			input:    []string{"Foo", "foo", "FOO"},
			expected: []string{"foo"},
		},
		{
			name:     "removes empty strings",
			input:    []string{"foo", "", "  ", "bar"},
			expected: []string{"foo", "bar"},
		},
		{
			name: "account ids differing only in case",
			input: []string{
				" 6F1C2A9E-0D7B-4A51-9A0E-5B1B8C7F1E22",
				"6f1c2a9e-0d7b-4a51-9a0e-5b1b8c7f1e22 ",
				"0b7e4f3c-2d59-4c1a-9a57-6c3f1a2b9d10",
			},
			expected: []string{
				"6f1c2a9e-0d7b-4a51-9a0e-5b1b8c7f1e22",
				"0b7e4f3c-2d59-4c1a-9a57-6c3f1a2b9d10",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DedupeAndTrimLower(tt.input))
		})
	}
}
