package game

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// keyAliases maps DOM-style and shorthand names to ebiten key names.
var keyAliases = map[string]string{
	"left":   "ArrowLeft",
	"right":  "ArrowRight",
	"up":     "ArrowUp",
	"down":   "ArrowDown",
	"esc":    "Escape",
	" ":      "Space",
	"return": "Enter",
	"ctrl":   "Control",
	"del":    "Delete",
}

var keysByName = func() map[string]ebiten.Key {
	m := make(map[string]ebiten.Key, int(ebiten.KeyMax)+1)
	for k := ebiten.Key(0); k <= ebiten.KeyMax; k++ {
		name := strings.ToLower(k.String())
		if _, dup := m[name]; !dup {
			m[name] = k
		}
	}
	return m
}()

// ParseKey resolves a configured key name such as "ArrowLeft", "Space" or
// "c". Names are case-insensitive.
func ParseKey(name string) (ebiten.Key, error) {
	lower := strings.ToLower(name)
	if alias, ok := keyAliases[lower]; ok {
		lower = strings.ToLower(alias)
	}
	if k, ok := keysByName[lower]; ok {
		return k, nil
	}
	return 0, fmt.Errorf("unknown key %q", name)
}
