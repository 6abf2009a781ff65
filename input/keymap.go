package input

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

// Keymap binds host key values to commands.
type Keymap[K comparable] struct {
	keys [len(commandNames)][]K
}

// NewKeymap builds a keymap from command names to key names, resolving key
// names with parse.
func NewKeymap[K comparable](bindings map[string][]string, parse func(string) (K, error)) (*Keymap[K], error) {
	m := &Keymap[K]{}
	var errs []error
	for name, keys := range bindings {
		c, err := ParseCommand(name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		for _, keyName := range keys {
			k, err := parse(keyName)
			if err != nil {
				errs = append(errs, fmt.Errorf("binding %s: %w", name, err))
				continue
			}
			m.Bind(k, c)
		}
	}
	return m, errors.Join(errs...)
}

func (m *Keymap[K]) Bind(k K, c Command) {
	if !slices.Contains(m.keys[c], k) {
		m.keys[c] = append(m.keys[c], k)
	}
}

// Keys returns the keys bound to c.
func (m *Keymap[K]) Keys(c Command) []K {
	return m.keys[c]
}

// Held reports whether any key bound to c is pressed.
func (m *Keymap[K]) Held(c Command, pressed func(K) bool) bool {
	for _, k := range m.keys[c] {
		if pressed(k) {
			return true
		}
	}
	return false
}

// Keyboard emits commands from a keymap with auto-repeat on movement keys.
type Keyboard[K comparable] struct {
	keymap  *Keymap[K]
	tracker *Tracker
}

func NewKeyboard[K comparable](keymap *Keymap[K], delay, interval time.Duration) *Keyboard[K] {
	return &Keyboard[K]{
		keymap:  keymap,
		tracker: NewTracker(delay, interval, MoveLeft, MoveRight, SoftDown),
	}
}

// Poll returns the commands fired this frame. With gameOver set only
// control commands pass through.
func (k *Keyboard[K]) Poll(dt time.Duration, pressed func(K) bool, gameOver bool) []Command {
	cmds := k.tracker.Step(nil, dt, func(c Command) bool {
		return k.keymap.Held(c, pressed)
	})
	if !gameOver {
		return cmds
	}
	return slices.DeleteFunc(cmds, Command.Gameplay)
}
