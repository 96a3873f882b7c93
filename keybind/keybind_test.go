package keybind

import (
	"testing"

	"github.com/gdamore/tcell/v3"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeKey(t *testing.T) {
	for in, want := range map[string]string{
		"PageDown":    "pgdn",
		" Escape ":    "esc",
		"Ctrl+F":      "ctrl+f",
		"ctrl-b":      "ctrl+b",
		"Backtab":     "shift+tab",
		"Rune[G]":     "G",
		"alt+ctrl+x":  "alt+ctrl+x",
		"ctrl+ctrl+a": "ctrl+a",
		"":            "",
		"ctrl+":       "",
	} {
		assert.Equal(t, want, normalizeKey(in), in)
	}
}

func TestMatch(t *testing.T) {
	down := NewKeybind(WithKeys("down", "j"), WithHelp("↓/j", "down"))
	end := NewKeybind(WithKeys("end", "G"), WithHelp("G", "end"))

	assert.Equal(t, 0, Match(tcell.NewEventKey(tcell.KeyDown, "", tcell.ModNone), down, end))
	assert.Equal(t, 0, Match(tcell.NewEventKey(tcell.KeyRune, "j", tcell.ModNone), down, end))
	assert.Equal(t, 1, Match(tcell.NewEventKey(tcell.KeyRune, "G", tcell.ModNone), down, end))
	assert.Equal(t, -1, Match(tcell.NewEventKey(tcell.KeyRune, "g", tcell.ModNone), down, end))
	assert.Equal(t, -1, Match(nil, down))

	down.SetEnabled(false)
	assert.False(t, Matches(tcell.NewEventKey(tcell.KeyDown, "", tcell.ModNone), down))
	assert.False(t, NewKeybind(WithKeys("up"), WithDisabled()).Enabled())
	assert.False(t, NewKeybind(WithHelp("x", "nothing")).Enabled())
}

func TestEventString(t *testing.T) {
	assert.Equal(t, "pgdn", EventString(tcell.NewEventKey(tcell.KeyPgDn, "", tcell.ModNone)))
	assert.Equal(t, "alt+x", EventString(tcell.NewEventKey(tcell.KeyRune, "x", tcell.ModAlt)))
}
