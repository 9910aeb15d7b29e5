// Package sdlfront runs the emulator in an SDL window.
package sdlfront

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	chip8 "github.com/chip8redo/chip-go"
	"github.com/chip8redo/chip-go/internal/config"
	"github.com/chip8redo/chip-go/internal/frontend"
	"github.com/chip8redo/chip-go/internal/runner"
	"github.com/faiface/mainthread"
	"github.com/retroenv/retrogolib/log"
	"github.com/sqweek/dialog"
	"github.com/veandco/go-sdl2/sdl"
)

const windowTitle = "CHIP-8"

// keyEvent is a keyboard event copied off the main thread.
type keyEvent struct {
	name   string // lower case SDL key name
	down   bool
	repeat bool
}

type window struct {
	logger *log.Logger
	runner *runner.Runner
	opts   config.Options

	window   *sdl.Window
	renderer *sdl.Renderer
	beeper   *beeper
	title    string

	scale int32 // current zoom
	sized int32 // zoom the window was last sized for
}

// Run opens the window and drives r until the window is closed, Escape is
// pressed or ctx is cancelled. It has to be called from the function passed
// to mainthread.Run, all SDL calls are made on the main thread.
func Run(ctx context.Context, logger *log.Logger, r *runner.Runner, opts config.Options) error {
	w := &window{
		logger: logger,
		runner: r,
		opts:   opts,
		scale:  int32(opts.Scale),
	}

	var err error
	mainthread.Call(func() { err = w.open() })
	if err != nil {
		return err
	}
	defer mainthread.Call(w.close)

	r.SetBeeper(w.beeper)
	defer r.SetBeeper(nil)

	if !r.Loaded() {
		w.openDialog()
	}

	ticker := time.NewTicker(time.Second / runner.FrameRate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		var (
			events []keyEvent
			quit   bool
		)
		mainthread.Call(func() { events, quit = pollEvents() })
		if quit || w.handle(events) {
			return nil
		}

		if err := r.Frame(); err != nil {
			w.report("CHIP-8 program stopped", err)
		}

		mainthread.Call(w.draw)
	}
}

func (w *window) open() error {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO); err != nil {
		return fmt.Errorf("initializing sdl: %w", err)
	}

	scale := w.scale
	w.sized = scale
	var err error
	w.window, err = sdl.CreateWindow(windowTitle, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		chip8.DisplayWidth*scale, chip8.DisplayHeight*scale, sdl.WINDOW_SHOWN)
	if err != nil {
		sdl.Quit()
		return fmt.Errorf("creating window: %w", err)
	}

	w.renderer, err = sdl.CreateRenderer(w.window, -1, 0)
	if err != nil {
		_ = w.window.Destroy()
		sdl.Quit()
		return fmt.Errorf("creating renderer: %w", err)
	}

	w.beeper, err = newBeeper()
	if err != nil {
		_ = w.renderer.Destroy()
		_ = w.window.Destroy()
		sdl.Quit()
		return fmt.Errorf("opening audio device: %w", err)
	}
	return nil
}

func (w *window) close() {
	w.beeper.close()
	_ = w.renderer.Destroy()
	_ = w.window.Destroy()
	sdl.Quit()
}

func pollEvents() ([]keyEvent, bool) {
	var events []keyEvent

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch event := event.(type) {
		case *sdl.QuitEvent:
			return events, true

		case *sdl.KeyboardEvent:
			events = append(events, keyEvent{
				name:   strings.ToLower(sdl.GetKeyName(event.Keysym.Sym)),
				down:   event.Type == sdl.KEYDOWN,
				repeat: event.Repeat != 0,
			})
		}
	}
	return events, false
}

// handle applies key events and reports whether the user asked to quit.
func (w *window) handle(events []keyEvent) bool {
	interp := w.runner.Interpreter()

	for _, event := range events {
		if action := frontend.Control(event.name); action != frontend.ActionNone {
			if !event.down || event.repeat {
				continue
			}

			switch action {
			case frontend.ActionQuit:
				return true
			case frontend.ActionOpen:
				w.openDialog()
			case frontend.ActionZoomIn, frontend.ActionZoomOut:
				w.scale = int32(frontend.Zoom(int(w.scale), action))
			default:
				if err := frontend.Apply(w.runner, action); err != nil {
					w.report("CHIP-8", err)
				}
			}
			continue
		}

		if key, ok := w.opts.Keys.Lookup(event.name); ok {
			interp.SetKeyState(key, event.down)
		}
	}
	return false
}

func (w *window) openDialog() {
	var (
		path string
		err  error
	)
	mainthread.Call(func() {
		path, err = dialog.File().Filter("CHIP-8 ROM", "ch8", "c8").Title("Open ROM").Load()
	})
	if errors.Is(err, dialog.ErrCancelled) {
		return
	}
	if err == nil {
		err = w.runner.LoadFile(path)
	}
	if err != nil {
		w.report("Loading ROM failed", err)
	}
}

func (w *window) report(title string, err error) {
	w.logger.Error(title, log.Err(err))
	mainthread.Call(func() {
		dialog.Message("%s", err).Title(title).Error()
	})
}

func (w *window) draw() {
	bg, fg := w.opts.Background, w.opts.Foreground
	scale := w.scale
	if scale != w.sized {
		w.window.SetSize(chip8.DisplayWidth*scale, chip8.DisplayHeight*scale)
		w.sized = scale
	}

	_ = w.renderer.SetDrawColor(bg.R, bg.G, bg.B, 255)
	_ = w.renderer.Clear()
	_ = w.renderer.SetDrawColor(fg.R, fg.G, fg.B, 255)

	display := w.runner.Interpreter().Display()
	for j, rows := range display {
		for i, value := range rows {
			if value == 0 {
				continue
			}

			_ = w.renderer.FillRect(&sdl.Rect{
				Y: int32(j) * scale,
				X: int32(i) * scale,
				W: scale,
				H: scale,
			})
		}
	}

	w.renderer.Present()

	title := windowTitle + " - " + frontend.Status(w.runner)
	if title != w.title {
		w.window.SetTitle(title)
		w.title = title
	}
}
