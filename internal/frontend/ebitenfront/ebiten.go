// Package ebitenfront runs the emulator in an ebiten window.
package ebitenfront

import (
	"context"
	"errors"
	"image/color"
	"strings"
	"sync"

	chip8 "github.com/chip8redo/chip-go"
	"github.com/chip8redo/chip-go/internal/audio"
	"github.com/chip8redo/chip-go/internal/config"
	"github.com/chip8redo/chip-go/internal/frontend"
	"github.com/chip8redo/chip-go/internal/runner"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/retroenv/retrogolib/log"
	"github.com/sqweek/dialog"
	"golang.design/x/clipboard"
	"golang.org/x/image/font/basicfont"
)

const (
	windowTitle = "CHIP-8"

	// frames a notice stays on screen
	noticeFrames = 2 * runner.FrameRate
)

type game struct {
	ctx    context.Context
	logger *log.Logger
	runner *runner.Runner
	opts   config.Options

	keyNames map[ebiten.Key]string
	pressed  []ebiten.Key
	names    []string

	scale int

	pixels  []byte
	display *ebiten.Image
	title   string

	notice       string
	noticeFrames int

	clipboardOnce sync.Once
	clipboardOK   bool
}

// Run opens the window and drives r until the window is closed, Escape is
// pressed or ctx is cancelled.
func Run(ctx context.Context, logger *log.Logger, r *runner.Runner, opts config.Options) error {
	g := &game{
		ctx:      ctx,
		logger:   logger,
		runner:   r,
		opts:     opts,
		keyNames: keyNames(),
		scale:    opts.Scale,
		pixels:   make([]byte, chip8.DisplayWidth*chip8.DisplayHeight*4),
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

	ebiten.SetWindowSize(chip8.DisplayWidth*opts.Scale, chip8.DisplayHeight*opts.Scale)
	ebiten.SetWindowTitle(windowTitle)
	ebiten.SetTPS(runner.FrameRate)
	ebiten.SetRunnableOnUnfocused(true)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

func (g *game) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}

	for key, name := range g.keyNames {
		if !inpututil.IsKeyJustPressed(key) {
			continue
		}
		if g.control(frontend.Control(name)) {
			return ebiten.Termination
		}
	}

	g.updateKeypad()

	if err := g.runner.Frame(); err != nil {
		g.logger.Error("CHIP-8 program stopped", log.Err(err))
	}

	if g.noticeFrames > 0 {
		g.noticeFrames--
	}

	title := windowTitle + " - " + frontend.Status(g.runner)
	if title != g.title {
		ebiten.SetWindowTitle(title)
		g.title = title
	}
	return nil
}

// control runs action and reports whether the user asked to quit.
func (g *game) control(action frontend.Action) bool {
	switch action {
	case frontend.ActionNone:
	case frontend.ActionQuit:
		return true
	case frontend.ActionOpen:
		g.openDialog()
	case frontend.ActionScreenshot:
		g.copyScreenshot()
	case frontend.ActionZoomIn, frontend.ActionZoomOut:
		g.scale = frontend.Zoom(g.scale, action)
		ebiten.SetWindowSize(chip8.DisplayWidth*g.scale, chip8.DisplayHeight*g.scale)
	default:
		if err := frontend.Apply(g.runner, action); err != nil {
			g.showNotice("control failed", err)
		}
	}
	return false
}

func (g *game) updateKeypad() {
	g.pressed = inpututil.AppendPressedKeys(g.pressed[:0])
	g.names = g.names[:0]
	for _, key := range g.pressed {
		g.names = append(g.names, g.keyNames[key])
	}

	keypad := keypadState(g.names, g.opts.Keys)
	interp := g.runner.Interpreter()
	for key, down := range keypad {
		interp.SetKeyState(chip8.Key(key), down)
	}
}

// keypadState returns the keypad keys held by the pressed host keys. Host keys
// bound to a control never reach the keypad.
func keypadState(names []string, bindings config.KeyBindings) [chip8.KeyCount]bool {
	var keypad [chip8.KeyCount]bool
	for _, name := range names {
		if frontend.Control(name) != frontend.ActionNone {
			continue
		}
		if bound, ok := bindings.Lookup(name); ok {
			keypad[bound] = true
		}
	}
	return keypad
}

func (g *game) openDialog() {
	path, err := dialog.File().Filter("CHIP-8 ROM", "ch8", "c8").Title("Open ROM").Load()
	if errors.Is(err, dialog.ErrCancelled) {
		return
	}
	if err == nil {
		err = g.runner.LoadFile(path)
	}
	if err != nil {
		g.showNotice("loading failed", err)
	}
}

func (g *game) copyScreenshot() {
	g.clipboardOnce.Do(func() {
		g.clipboardOK = clipboard.Init() == nil
	})
	if !g.clipboardOK {
		g.showNotice("clipboard not available", nil)
		return
	}

	display := g.runner.Interpreter().Display()
	data, err := screenshot(&display, g.opts.Foreground, g.opts.Background, g.scale)
	if err != nil {
		g.showNotice("screenshot failed", err)
		return
	}

	clipboard.Write(clipboard.FmtImage, data)
	g.showNotice("screenshot copied", nil)
}

func (g *game) showNotice(msg string, err error) {
	if err != nil {
		g.logger.Error(msg, log.Err(err))
		msg += ": " + err.Error()
	}
	g.notice = msg
	g.noticeFrames = noticeFrames
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.display == nil {
		g.display = ebiten.NewImage(chip8.DisplayWidth, chip8.DisplayHeight)
	}

	display := g.runner.Interpreter().Display()
	fillPixels(g.pixels, &display, g.opts.Foreground, g.opts.Background)
	g.display.WritePixels(g.pixels)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(g.scale), float64(g.scale))
	screen.DrawImage(g.display, op)

	g.drawOverlay(screen)
}

func (g *game) drawOverlay(screen *ebiten.Image) {
	var lines []string
	if !g.runner.Loaded() || g.runner.Paused() || g.runner.Fault() != nil {
		lines = append(lines, frontend.Status(g.runner))
	}
	if g.noticeFrames > 0 {
		lines = append(lines, g.notice)
	}
	if len(lines) == 0 {
		return
	}

	face := basicfont.Face7x13
	shadow := color.RGBA{0, 0, 0, 255}
	label := color.RGBA{255, 200, 0, 255}

	y := 14
	for _, line := range lines {
		text.Draw(screen, line, face, 5, y+1, shadow)
		text.Draw(screen, line, face, 4, y, label)
		y += 15
	}
}

func (g *game) Layout(_, _ int) (int, int) {
	return chip8.DisplayWidth * g.scale, chip8.DisplayHeight * g.scale
}

// keyNames maps every ebiten key to the SDL style name used by bindings.
func keyNames() map[ebiten.Key]string {
	names := make(map[ebiten.Key]string, int(ebiten.KeyMax)+1)
	for key := ebiten.Key(0); key <= ebiten.KeyMax; key++ {
		names[key] = keyName(key.String())
	}
	return names
}

func keyName(name string) string {
	switch name {
	case "BracketLeft":
		return "["
	case "BracketRight":
		return "]"
	case "Enter":
		return "return"
	case "Comma":
		return ","
	case "Period":
		return "."
	case "Minus":
		return "-"
	case "Equal":
		return "="
	}
	return strings.ToLower(strings.TrimPrefix(name, "Digit"))
}
