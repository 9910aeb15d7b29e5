// Package terminal runs the emulator inside an ANSI terminal.
package terminal

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	chip8 "github.com/chip8redo/chip-go"
	"github.com/chip8redo/chip-go/internal/audio"
	"github.com/chip8redo/chip-go/internal/config"
	"github.com/chip8redo/chip-go/internal/frontend"
	"github.com/chip8redo/chip-go/internal/runner"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/term"
)

var errNoTerminal = errors.New("standard input is not a terminal")

// Run draws the display of r into the terminal and feeds the keyboard into
// its keypad until quit is requested or ctx is cancelled.
func Run(ctx context.Context, logger *log.Logger, r *runner.Runner, opts config.Options) error {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return errNoTerminal
	}

	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return fmt.Errorf("getting terminal size: %w", err)
	}
	if width < chip8.DisplayWidth || height < Rows+1 {
		return fmt.Errorf("terminal of %dx%d is too small, at least %dx%d is needed",
			width, height, chip8.DisplayWidth, Rows+1)
	}

	if !opts.Mute {
		beeper, err := audio.NewBeeper()
		if err != nil {
			logger.Warn("Sound disabled", log.Err(err))
		} else {
			r.SetBeeper(beeper)
			defer func() {
				r.SetBeeper(nil)
				_ = beeper.Close()
			}()
		}
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("setting raw mode: %w", err)
	}
	defer func() {
		_, _ = os.Stdout.WriteString(escReset + escShowCursor + "\r\n")
		_ = term.Restore(fd, oldState)
	}()
	_, _ = os.Stdout.WriteString(escClear + escHideCursor)

	input := make(chan []byte, 16)
	go readInput(input)

	s := &screen{logger: logger, runner: r, opts: opts}
	ticker := time.NewTicker(time.Second / runner.FrameRate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case buf, ok := <-input:
			if !ok {
				return nil
			}
			if s.handle(parseInput(buf), time.Now()) {
				return nil
			}

		case <-ticker.C:
			s.held.apply(r.Interpreter(), time.Now())
			if err := r.Frame(); err != nil {
				logger.Error("CHIP-8 program stopped", log.Err(err))
			}
			s.draw()
		}
	}
}

// readInput forwards stdin reads until stdin fails. The goroutine stays
// blocked in Read after Run returns, stdin is never closed.
func readInput(input chan<- []byte) {
	defer close(input)

	buf := make([]byte, 64)
	for {
		n, err := os.Stdin.Read(buf)
		if n > 0 {
			input <- append([]byte(nil), buf[:n]...)
		}
		if err != nil {
			return
		}
	}
}

type screen struct {
	logger *log.Logger
	runner *runner.Runner
	opts   config.Options
	held   heldKeys
	out    strings.Builder
}

// handle applies key names and reports whether the user asked to quit.
func (s *screen) handle(names []string, now time.Time) bool {
	for _, name := range names {
		if action, ok := controls[name]; ok {
			if action == frontend.ActionQuit {
				return true
			}
			if err := frontend.Apply(s.runner, action); err != nil {
				s.logger.Error("Control failed", log.Err(err))
			}
			continue
		}

		if key, ok := s.opts.Keys.Lookup(name); ok {
			s.held.press(key, now)
		}
	}
	return false
}

func (s *screen) draw() {
	display := s.runner.Interpreter().Display()

	s.out.Reset()
	render(&s.out, &display, s.opts.Foreground, s.opts.Background, frontend.Status(s.runner))
	_, _ = os.Stdout.WriteString(s.out.String())
}
