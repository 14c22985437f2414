package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "nil error", err: nil, expected: ""},
		{
			name:     "typed validation error",
			err:      fmt.Errorf("%w: %s", ErrValidation, "Missing payment details."),
			expected: "Missing payment details.",
		},
		{
			name:     "typed not found error",
			err:      fmt.Errorf("%w: %s", ErrNotFound, "Booking not found."),
			expected: "Booking not found.",
		},
		{name: "plain error", err: errors.New("boom"), expected: "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Message(tt.err))
		})
	}
}
