package sanitizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "valid E.164 format",
			input: "+12125551234",
			want:  "+12125551234",
		},
		{
			name:  "with parentheses and dashes",
			input: "+1 (212) 555-1234",
			want:  "+12125551234",
		},
		{
			name:  "national US number",
			input: "(212) 555-1234",
			want:  "+12125551234",
		},
		{
			name:  "UK number",
			input: "+44 20 7946 0958",
			want:  "+442079460958",
		},
		{
			name:  "leading and trailing spaces",
			input: "  +12125551234  ",
			want:  "+12125551234",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "only whitespace",
			input: "   ",
			want:  "",
		},
		{
			name:  "not a phone number is kept",
			input: " not-a-phone ",
			want:  "not-a-phone",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePhone(tt.input))
		})
	}
}

func TestNormalizePhone_Idempotent(t *testing.T) {
	once := NormalizePhone("+1 (212) 555-1234")
	assert.Equal(t, once, NormalizePhone(once))
}
