package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		token  string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"bearer abc", "abc", true},
		{"  Bearer   abc  ", "abc", true},
		{"Basic abc", "", false},
		{"Bearer", "", false},
		{"Bearer ", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			token, ok := bearerToken(tt.header)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.token, token)
		})
	}
}

func TestHasRole(t *testing.T) {
	assert.True(t, hasRole("org:admin", "org:admin"))
	assert.True(t, hasRole("org:member, org:admin", "org:admin"))
	assert.False(t, hasRole("org:member", "org:admin"))
	assert.False(t, hasRole("org:administrator", "org:admin"))
	assert.False(t, hasRole("", "org:admin"))
}
