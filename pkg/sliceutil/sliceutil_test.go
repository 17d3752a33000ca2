//go:build !integration

package sliceutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContains(t *testing.T) {
	tests := []struct {
		name     string
		slice    []string
		item     string
		expected bool
	}{
		{
			name:     "item exists in slice",
			slice:    []string{"main", "develop", "release"},
			item:     "main",
			expected: true,
		},
		{
			name:     "item does not exist in slice",
			slice:    []string{"main", "develop"},
			item:     "feature",
			expected: false,
		},
		{
			name:     "empty slice",
			slice:    []string{},
			item:     "main",
			expected: false,
		},
		{
			name:     "nil slice",
			slice:    nil,
			item:     "main",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Contains(tt.slice, tt.item),
				"Contains should return correct value for slice %v and item %q", tt.slice, tt.item)
		})
	}
}

func TestContainsAll(t *testing.T) {
	tests := []struct {
		name       string
		s          string
		substrings []string
		expected   bool
	}{
		{
			name:       "all substrings present",
			s:          "curl -X PUT ./dist/app.tar.gz",
			substrings: []string{"curl", "-X PUT"},
			expected:   true,
		},
		{
			name:       "one substring missing",
			s:          "curl ./dist/app.tar.gz",
			substrings: []string{"curl", "-X PUT"},
			expected:   false,
		},
		{
			name:       "empty substring list",
			s:          "anything",
			substrings: nil,
			expected:   true,
		},
		{
			name:       "empty string with non-empty substrings",
			s:          "",
			substrings: []string{"npm"},
			expected:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ContainsAll(tt.s, tt.substrings))
		})
	}
}

func TestContainsAny(t *testing.T) {
	assert.True(t, ContainsAny("npm install && npm test", []string{"yarn", "npm"}))
	assert.False(t, ContainsAny("npm install", []string{"yarn", "pnpm"}))
	assert.False(t, ContainsAny("npm install", nil))
}

func TestMissing(t *testing.T) {
	tests := []struct {
		name       string
		s          string
		substrings []string
		expected   []string
	}{
		{
			name:       "nothing missing",
			s:          "curl -X PUT target",
			substrings: []string{"curl", "-X PUT"},
			expected:   nil,
		},
		{
			name:       "some missing in order",
			s:          "curl target",
			substrings: []string{"curl", "-X PUT", "tar.gz"},
			expected:   []string{"-X PUT", "tar.gz"},
		},
		{
			name:       "all missing",
			s:          "",
			substrings: []string{"a", "b"},
			expected:   []string{"a", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Missing(tt.s, tt.substrings))
		})
	}
}
