package term

import (
	"fmt"
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/plus3/neonpulse/input"
)

// teaNames maps bubbletea key strings to the key names used in config.
var teaNames = map[string]string{
	"left":      "arrowleft",
	"right":     "arrowright",
	"up":        "arrowup",
	"down":      "arrowdown",
	" ":         "space",
	"esc":       "escape",
	"enter":     "enter",
	"tab":       "tab",
	"backspace": "backspace",
}

// canonicalKey normalises a configured key name. Terminals only report
// printable keys and a few named ones, so anything else is rejected.
func canonicalKey(name string) (string, error) {
	lower := strings.ToLower(name)
	switch lower {
	case "left", "right", "up", "down":
		return "arrow" + lower, nil
	case "esc":
		return "escape", nil
	}
	for _, known := range teaNames {
		if lower == known {
			return lower, nil
		}
	}
	if utf8.RuneCountInString(lower) == 1 {
		return lower, nil
	}
	return "", fmt.Errorf("key %q is not available in a terminal", name)
}

func keyOf(msg tea.KeyMsg) string {
	s := msg.String()
	if name, ok := teaNames[s]; ok {
		return name
	}
	return strings.ToLower(s)
}

// commandFor returns the first command bound to the pressed key.
func commandFor(keymap *input.Keymap[string], msg tea.KeyMsg) (input.Command, bool) {
	key := keyOf(msg)
	pressed := func(k string) bool { return k == key }
	for _, c := range input.Commands {
		if keymap.Held(c, pressed) {
			return c, true
		}
	}
	return input.None, false
}
