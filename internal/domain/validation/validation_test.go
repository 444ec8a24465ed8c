package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAadhar(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  bool
	}{
		{"valid 12 digits", "123456789012", true},
		{"too short", "12345678901", false},
		{"too long", "1234567890123", false},
		{"contains letter", "12345678901a", false},
		{"contains space", "123456 89012", false},
		{"empty", "", false},
		{"all zeros still valid shape", "000000000000", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAadhar(tt.value))
		})
	}
}

func TestIsMobile(t *testing.T) {
	assert.True(t, IsMobile("9876543210"))
	assert.False(t, IsMobile("987654321"))
	assert.False(t, IsMobile("98765432100"))
	assert.False(t, IsMobile("98765x3210"))
	assert.False(t, IsMobile(""))
}

func TestIsBankAccount(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  bool
	}{
		{"minimum 9 digits", "123456789", true},
		{"maximum 18 digits", "123456789012345678", true},
		{"8 digits too short", "12345678", false},
		{"19 digits too long", "1234567890123456789", false},
		{"non numeric", "12345678x", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsBankAccount(tt.value))
		})
	}
}
