package chip8

import (
	"fmt"
	"strconv"
	"strings"
)

// The computers which originally used the Chip-8 Language had a 16-key
// hexadecimal keypad with the following layout:
//
// +---+---+---+---+
// | 1 | 2 | 3 | C |
// +---+---+---+---+
// | 4 | 5 | 6 | D |
// +---+---+---+---+
// | 7 | 8 | 9 | E |
// +---+---+---+---+
// | A | 0 | B | F |
// +---+---+---+---+

type Key uint8

const (
	Key0 Key = iota
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
)

// KeyCount is the number of keys on the keypad.
const KeyCount = 16

func (k Key) String() string {
	return strings.ToUpper(strconv.FormatUint(uint64(k), 16))
}

// ParseKey accepts a single hex digit ("a", "F") or a prefixed number ("0xA").
func ParseKey(s string) (Key, error) {
	value, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(s), "0x"), 16, 8)
	if err != nil || value >= KeyCount {
		return 0, fmt.Errorf("invalid key '%s'", s)
	}

	return Key(value), nil
}
