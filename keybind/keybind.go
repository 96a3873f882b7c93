// Package keybind matches tcell key events against configurable bindings.
//
// Keys are written the way they are shown to users: "j", "G", "pgdn",
// "ctrl+f", "alt+shift+tab". Names are case-insensitive except for single
// characters without modifiers, so "G" and "g" are different keys.
package keybind

import (
	"slices"
	"strings"

	"github.com/gdamore/tcell/v3"
)

// Keybind is a set of equivalent keys plus the text shown for them in help.
type Keybind struct {
	keys     []string
	help     Help
	disabled bool
}

// Help is the text shown for a binding: the key as the user should read it
// and what it does.
type Help struct {
	Key  string
	Desc string
}

type Option func(*Keybind)

func NewKeybind(options ...Option) Keybind {
	var k Keybind
	for _, option := range options {
		option(&k)
	}
	return k
}

func WithKeys(keys ...string) Option {
	return func(k *Keybind) {
		k.keys = k.keys[:0]
		for _, key := range keys {
			if key = normalizeKey(key); key != "" {
				k.keys = append(k.keys, key)
			}
		}
	}
}

func WithHelp(key, desc string) Option {
	return func(k *Keybind) {
		k.help = Help{Key: key, Desc: desc}
	}
}

// WithDisabled creates the binding disabled.
func WithDisabled() Option {
	return func(k *Keybind) {
		k.disabled = true
	}
}

func (k Keybind) Help() Help {
	return k.help
}

// Enabled reports whether the binding matches events and shows in help. A
// binding without keys is never enabled.
func (k Keybind) Enabled() bool {
	return !k.disabled && len(k.keys) > 0
}

func (k *Keybind) SetEnabled(enabled bool) {
	k.disabled = !enabled
}

// Matches reports whether event triggers any of the enabled keybinds.
func Matches(event *tcell.EventKey, keybinds ...Keybind) bool {
	return Match(event, keybinds...) >= 0
}

// Match returns the index of the first enabled keybind triggered by event, or
// -1.
func Match(event *tcell.EventKey, keybinds ...Keybind) int {
	if event == nil {
		return -1
	}
	key := EventString(event)
	return slices.IndexFunc(keybinds, func(k Keybind) bool {
		return k.Enabled() && slices.Contains(k.keys, key)
	})
}

var modifiers = []struct {
	mask tcell.ModMask
	name string
}{
	{tcell.ModCtrl, "ctrl"},
	{tcell.ModAlt, "alt"},
	{tcell.ModShift, "shift"},
	{tcell.ModMeta, "meta"},
}

var keyNames = map[tcell.Key]string{
	tcell.KeyEnter:      "enter",
	tcell.KeyEscape:     "esc",
	tcell.KeyTab:        "tab",
	tcell.KeyBacktab:    "shift+tab",
	tcell.KeyHome:       "home",
	tcell.KeyEnd:        "end",
	tcell.KeyUp:         "up",
	tcell.KeyDown:       "down",
	tcell.KeyLeft:       "left",
	tcell.KeyRight:      "right",
	tcell.KeyPgUp:       "pgup",
	tcell.KeyPgDn:       "pgdn",
	tcell.KeyDelete:     "delete",
	tcell.KeyBackspace:  "backspace",
	tcell.KeyBackspace2: "backspace",
	tcell.KeyInsert:     "insert",
}

// aliases maps alternative spellings, in lower case, to key names.
var aliases = map[string]string{
	"escape":   "esc",
	"return":   "enter",
	"pageup":   "pgup",
	"pagedown": "pgdn",
	"control":  "ctrl",
	"backtab":  "shift+tab",
}

// join returns mods and key as "mod+mod+key", dropping repeated modifiers.
func join(mods []string, key string) string {
	var out []string
	for _, mod := range mods {
		if !slices.Contains(out, mod) {
			out = append(out, mod)
		}
	}
	return strings.Join(append(out, key), "+")
}

// normalizeKey returns the canonical spelling of key, or "" when key names
// no key. "ctrl-x" is accepted for "ctrl+x" and "Rune[x]" for "x".
func normalizeKey(key string) string {
	key = strings.TrimSpace(key)
	if lower := strings.ToLower(key); strings.HasPrefix(lower, "ctrl-") {
		key = "ctrl+" + key[len("ctrl-"):]
	}

	var mods []string
	primary := ""
	for part := range strings.SplitSeq(key, "+") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name := strings.ToLower(part)
		if alias, ok := aliases[name]; ok {
			name = alias
		}
		switch name {
		case "ctrl", "alt", "shift", "meta":
			mods = append(mods, name)
			continue
		case "shift+tab":
			mods = append(mods, "shift")
			name = "tab"
		}
		switch {
		case strings.HasPrefix(part, "Rune[") && strings.HasSuffix(part, "]") && len(part) > len("Rune[]"):
			primary = part[len("Rune[") : len(part)-1]
		case len([]rune(part)) == 1:
			primary = part
		default:
			primary = name
		}
	}

	switch {
	case primary == "":
		return ""
	case len(mods) == 0:
		return primary
	case len([]rune(primary)) == 1:
		primary = strings.ToLower(primary)
	}
	return join(mods, primary)
}

// EventString returns the normalized key string of event, such as "ctrl+f"
// or "pgdn".
func EventString(event *tcell.EventKey) string {
	if event == nil {
		return ""
	}

	key := event.Key()
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		return "ctrl+" + string(rune('a'+(key-tcell.KeyCtrlA)))
	}

	primary, ok := keyNames[key]
	if !ok && key == tcell.KeyRune {
		primary, ok = event.Str(), true
	}
	if !ok || primary == "" {
		return normalizeKey(event.Name())
	}

	var mods []string
	for _, m := range modifiers {
		if event.Modifiers()&m.mask != 0 {
			mods = append(mods, m.name)
		}
	}
	if len(mods) == 0 {
		return primary
	}
	return join(mods, primary)
}
