package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		valid    bool
	}{
		{"plain", "grandma_cook", true},
		{"with allowed symbols", "user.name@host+x-y", true},
		{"digits", "user1234", true},
		{"reserved me", "me", false},
		{"reserved me uppercase", "Me", false},
		{"reserved admin", "admin", false},
		{"space", "two words", false},
		{"slash", "user/name", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValidUsername(tt.username))
		})
	}
}

func TestIsValidHexColor(t *testing.T) {
	tests := []struct {
		name  string
		color string
		valid bool
	}{
		{"six digit", "#E26C2D", true},
		{"three digit", "#49B", true},
		{"lowercase", "#e26c2d", true},
		{"missing hash", "E26C2D", false},
		{"wrong length", "#E26C", false},
		{"non hex character", "#GGGGGG", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValidHexColor(tt.color))
		})
	}
}
