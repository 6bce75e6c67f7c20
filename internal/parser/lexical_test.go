package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsKeyword(t *testing.T) {
	for _, kw := range Keywords {
		assert.True(t, IsKeyword(kw), kw)
	}
	assert.True(t, IsKeyword("ENTITY"))
	assert.True(t, IsKeyword("DownTo"))
	assert.False(t, IsKeyword("entity123"))
	assert.False(t, IsKeyword("internal"))
	assert.False(t, IsKeyword("std_logic"))
}

func TestMatchKeyword(t *testing.T) {
	tests := []struct {
		input string
		kw    string
		end   int
		ok    bool
	}{
		{"in b", "in", 2, true},
		{"IN", "in", 2, true},
		{"internal", "in", 0, false},
		{"in_x", "in", 0, false},
		{"in2", "in", 0, false},
		{"inout", "in", 0, false},
		{"inout x", "inout", 5, true},
		{"i", "in", 0, false},
		{"in(", "in", 2, true},
	}

	for _, tt := range tests {
		t.Run(tt.input+"/"+tt.kw, func(t *testing.T) {
			end, ok := matchKeyword([]byte(tt.input), 0, tt.kw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.end, end)
		})
	}
}

func TestScanIdentifier(t *testing.T) {
	assert.Equal(t, 9, scanIdentifier([]byte("entity123 "), 0))
	assert.Equal(t, 5, scanIdentifier([]byte("_a1_b;"), 0))
	assert.Equal(t, 0, scanIdentifier([]byte("1abc"), 0))
	assert.Equal(t, 0, scanIdentifier([]byte(""), 0))
	assert.Equal(t, 7, scanIdentifier([]byte("x : abc"), 4))
	assert.Equal(t, 2, scanIdentifier([]byte("x : abc"), 2))
}

func TestScanInteger(t *testing.T) {
	tests := []struct {
		input string
		value int64
		end   int
		ok    bool
	}{
		{"42)", 42, 2, true},
		{"-7 ", -7, 2, true},
		{"+3", 3, 2, true},
		{"0", 0, 1, true},
		{"-", 0, 0, false},
		{"x1", 0, 0, false},
		{"99999999999999999999", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, end, ok := scanInteger([]byte(tt.input), 0)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.value, v)
			assert.Equal(t, tt.end, end)
		})
	}
}
