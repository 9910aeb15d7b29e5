package terminal

import (
	"strings"
	"time"

	chip8 "github.com/chip8redo/chip-go"
	"github.com/chip8redo/chip-go/internal/frontend"
)

// holdTime is how long a key counts as pressed after its last byte arrived.
// Terminals report no key releases, auto repeat keeps held keys alive.
const holdTime = 150 * time.Millisecond

const keyInterrupt = "ctrl+c"

var controls = map[string]frontend.Action{
	keyInterrupt: frontend.ActionQuit,
	"escape":     frontend.ActionQuit,
	"space":      frontend.ActionPause,
	"backspace":  frontend.ActionRestart,
	"[":          frontend.ActionSlower,
	"]":          frontend.ActionFaster,
}

// parseInput translates raw terminal bytes to key names matching the SDL
// names used by key bindings. Escape sequences of cursor and function keys
// are dropped.
func parseInput(buf []byte) []string {
	var names []string

	for i := 0; i < len(buf); i++ {
		b := buf[i]
		switch {
		case b == 0x1b:
			if i+1 < len(buf) && (buf[i+1] == '[' || buf[i+1] == 'O') {
				i = skipSequence(buf, i+2)
				continue
			}
			names = append(names, "escape")
		case b == 0x03:
			names = append(names, keyInterrupt)
		case b == 0x7f || b == 0x08:
			names = append(names, "backspace")
		case b == '\r' || b == '\n':
			names = append(names, "return")
		case b == ' ':
			names = append(names, "space")
		case b > ' ' && b < 0x7f:
			names = append(names, strings.ToLower(string(rune(b))))
		}
	}
	return names
}

// skipSequence returns the index of the final byte of the escape sequence
// whose parameters start at start.
func skipSequence(buf []byte, start int) int {
	for i := start; i < len(buf); i++ {
		if buf[i] >= 0x40 && buf[i] <= 0x7e {
			return i
		}
	}
	return len(buf) - 1
}

// heldKeys tracks the release deadline of every keypad key.
type heldKeys [chip8.KeyCount]time.Time

func (h *heldKeys) press(key chip8.Key, now time.Time) {
	h[key&0x0f] = now.Add(holdTime)
}

// apply updates the keypad of interp to the keys still held at now.
func (h *heldKeys) apply(interp *chip8.Interpreter, now time.Time) {
	for index, deadline := range h {
		interp.SetKeyState(chip8.Key(index), now.Before(deadline))
	}
}
