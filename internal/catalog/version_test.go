package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompareVersion(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.0", "1.0", 0},
		{"1.0", "1", 0},
		{"2.4", "2.10", -1},
		{"3.0", "2.10", 1},
		{"1.2.1", "1.2", 1},
		{"1.0-beta", "1.0-alpha", 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, compareVersion(tt.a, tt.b), "%s vs %s", tt.a, tt.b)
	}
}

func TestParseKind(t *testing.T) {
	for in, want := range map[string]string{"character": "character", "Item": "item", "arms": "item", " weapon ": "item"} {
		got, ok := parseKind(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, string(got), in)
	}
	_, ok := parseKind("hat")
	assert.False(t, ok)
}
