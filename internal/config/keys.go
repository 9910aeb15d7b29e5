package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	chip8 "github.com/chip8redo/chip-go"
)

// KeyBindings maps lower case physical key names to keypad keys.
type KeyBindings map[string]chip8.Key

// DefaultKeyBindings maps the left block of a QWERTY keyboard onto the
// keypad:
//
//	1 2 3 4      1 2 3 C
//	q w e r  ->  4 5 6 D
//	a s d f      7 8 9 E
//	z x c v      A 0 B F
func DefaultKeyBindings() KeyBindings {
	return KeyBindings{
		"1": chip8.Key1, "2": chip8.Key2, "3": chip8.Key3, "4": chip8.KeyC,
		"q": chip8.Key4, "w": chip8.Key5, "e": chip8.Key6, "r": chip8.KeyD,
		"a": chip8.Key7, "s": chip8.Key8, "d": chip8.Key9, "f": chip8.KeyE,
		"z": chip8.KeyA, "x": chip8.Key0, "c": chip8.KeyB, "v": chip8.KeyF,
	}
}

// Lookup returns the keypad key bound to name.
func (b KeyBindings) Lookup(name string) (chip8.Key, bool) {
	key, ok := b[strings.ToLower(name)]
	return key, ok
}

// Bind maps name to key. Any other name bound to the same key is removed, so
// every keypad key has one physical key.
func (b KeyBindings) Bind(name string, key chip8.Key) {
	for other, bound := range b {
		if bound == key {
			delete(b, other)
		}
	}
	b[strings.ToLower(name)] = key
}

// String returns the bindings as "name=key" pairs sorted by name.
func (b KeyBindings) String() string {
	pairs := make([]string, 0, len(b))
	for _, name := range slices.Sorted(maps.Keys(b)) {
		pairs = append(pairs, fmt.Sprintf("%s=%s", name, b[name]))
	}
	return strings.Join(pairs, ",")
}

// Set implements flag.Value, it applies a comma separated list of
// "name=key" pairs on top of the current bindings.
func (b KeyBindings) Set(s string) error {
	for pair := range strings.SplitSeq(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}

		name, value, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return fmt.Errorf("invalid key binding '%s', expected name=key", pair)
		}

		key, err := chip8.ParseKey(value)
		if err != nil {
			return fmt.Errorf("invalid key binding '%s': %w", pair, err)
		}
		b.Bind(name, key)
	}
	return nil
}
