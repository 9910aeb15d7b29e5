package terminal

import (
	"fmt"
	"strings"

	chip8 "github.com/chip8redo/chip-go"
	"github.com/chip8redo/chip-go/internal/config"
)

const (
	escHome       = "\x1b[H"
	escClear      = "\x1b[2J"
	escReset      = "\x1b[0m"
	escClearLine  = "\x1b[K"
	escHideCursor = "\x1b[?25l"
	escShowCursor = "\x1b[?25h"

	upperHalfBlock = "▀"
)

// Rows is the number of terminal lines used for the display, every line
// shows two pixel rows.
const Rows = chip8.DisplayHeight / 2

// render writes the display as half block characters, the foreground color
// paints the upper pixel and the background color the lower one.
func render(b *strings.Builder, display *[chip8.DisplayHeight][chip8.DisplayWidth]uint8, on, off config.Color, status string) {
	b.WriteString(escHome)

	for y := 0; y < chip8.DisplayHeight; y += 2 {
		var upper, lower config.Color
		first := true

		for x := range chip8.DisplayWidth {
			top, bottom := off, off
			if display[y][x] != 0 {
				top = on
			}
			if display[y+1][x] != 0 {
				bottom = on
			}

			if first || top != upper {
				_, _ = fmt.Fprintf(b, "\x1b[38;2;%d;%d;%dm", top.R, top.G, top.B)
				upper = top
			}
			if first || bottom != lower {
				_, _ = fmt.Fprintf(b, "\x1b[48;2;%d;%d;%dm", bottom.R, bottom.G, bottom.B)
				lower = bottom
			}
			first = false

			b.WriteString(upperHalfBlock)
		}

		b.WriteString(escReset)
		b.WriteString("\r\n")
	}

	b.WriteString(status)
	b.WriteString(escClearLine)
}
