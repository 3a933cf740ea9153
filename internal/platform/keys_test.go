package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalKeyForLookup(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{"ctrl+s", "ctrl+s"},
		{"Ctrl+S", "ctrl+s"},
		{"cmd+s", "ctrl+s"},
		{"control+q", "ctrl+q"},
		{"shift+ctrl+f", "ctrl+shift+f"},
		{"alt+ctrl+x", "ctrl+alt+x"},
		{"ctrl+ctrl+x", "ctrl+x"},
		{"option+left", "alt+left"},
		{"Escape", "esc"},
		{"PageDown", "pgdown"},
		{"ctrl+ ", "ctrl+space"},
		{"f1", "f1"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, CanonicalKeyForLookup(tt.in))
		})
	}
}

func TestMatchesKey(t *testing.T) {
	assert.True(t, MatchesKey("ctrl+q", "Ctrl+Q"))
	assert.True(t, MatchesKey("alt+ctrl+x", "ctrl+alt+x"))
	assert.False(t, MatchesKey("ctrl+q", "ctrl+s"))
}

func TestDisplayKey(t *testing.T) {
	assert.Equal(t, "Ctrl-Q", DisplayKey("ctrl+q"))
	assert.Equal(t, "Ctrl-Shift-F", DisplayKey("shift+ctrl+f"))
	assert.Equal(t, "F1", DisplayKey("f1"))
	assert.Equal(t, "", DisplayKey(""))
}
