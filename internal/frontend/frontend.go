// Package frontend contains the control handling shared by all frontends.
package frontend

import (
	"fmt"
	"strings"

	"github.com/chip8redo/chip-go/internal/config"
	"github.com/chip8redo/chip-go/internal/runner"
)

// Action is an emulator control bound to a host key.
type Action uint8

const (
	ActionNone Action = iota
	ActionQuit
	ActionRestart
	ActionOpen // pick a ROM file, frontends without a file picker ignore it
	ActionClose
	ActionPause
	ActionSlower
	ActionFaster
	ActionScreenshot
	ActionZoomIn
	ActionZoomOut
)

// Controls maps lower case host key names to actions. Key names follow SDL
// naming, other frontends translate their keys to it.
var Controls = map[string]Action{
	"escape":    ActionQuit,
	"f2":        ActionRestart,
	"f3":        ActionOpen,
	"backspace": ActionClose,
	"space":     ActionPause,
	"f5":        ActionPause,
	"[":         ActionSlower,
	"]":         ActionFaster,
	"f12":       ActionScreenshot,
	"=":         ActionZoomIn,
	"-":         ActionZoomOut,
}

// Control returns the action bound to the host key name.
func Control(name string) Action {
	return Controls[strings.ToLower(name)]
}

// Apply performs the runner side of action. Quit, open, screenshot and zoom
// are left to the frontend.
func Apply(r *runner.Runner, action Action) error {
	switch action {
	case ActionRestart:
		if !r.Loaded() {
			return nil
		}
		return r.Restart()
	case ActionClose:
		r.Close()
	case ActionPause:
		r.TogglePause()
	case ActionSlower:
		r.SpeedDown()
	case ActionFaster:
		r.SpeedUp()
	}
	return nil
}

// Zoom returns the display scale after a zoom action, limited to
// 1..config.MaxScale. Other actions keep the scale.
func Zoom(scale int, action Action) int {
	switch action {
	case ActionZoomIn:
		scale++
	case ActionZoomOut:
		scale--
	}
	return min(max(scale, 1), config.MaxScale)
}

// Status describes the runner state in one line, used for window titles and
// overlays.
func Status(r *runner.Runner) string {
	if !r.Loaded() {
		return "no ROM loaded"
	}

	var b strings.Builder
	b.WriteString(r.Name())
	_, _ = fmt.Fprintf(&b, " | %d ips", r.IPS())

	switch {
	case r.Fault() != nil:
		_, _ = fmt.Fprintf(&b, " | stopped: %v", r.Fault())
	case r.Paused():
		b.WriteString(" | paused")
	}
	return b.String()
}
