package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Frontend names a presentation and input backend.
type Frontend string

const (
	FrontendSDL      Frontend = "sdl"
	FrontendEbiten   Frontend = "ebiten"
	FrontendTerminal Frontend = "terminal"
)

// Frontends lists all supported frontends.
var Frontends = []Frontend{FrontendSDL, FrontendEbiten, FrontendTerminal}

const (
	DefaultIPS   = 500
	MinIPS       = 1
	MaxIPS       = 5000
	DefaultScale = 10
	MaxScale     = 40
)

// Options of the emulator program.
type Options struct {
	ROM      string
	Frontend Frontend
	Script   string // Lua settings script

	IPS   int // instructions per second
	Scale int // window pixels per display pixel

	Foreground Color
	Background Color
	Keys       KeyBindings

	Mute  bool
	Debug bool
	Quiet bool
}

// Defaults returns the options used when nothing else is configured.
func Defaults() Options {
	return Options{
		Frontend:   FrontendSDL,
		IPS:        DefaultIPS,
		Scale:      DefaultScale,
		Foreground: Color{R: 0xff, G: 0xff, B: 0xff},
		Background: Color{},
		Keys:       DefaultKeyBindings(),
	}
}

// Validate returns all problems found in the options joined into one error.
func (o Options) Validate() error {
	var errs []error

	known := false
	for _, frontend := range Frontends {
		if o.Frontend == frontend {
			known = true
			break
		}
	}
	if !known {
		errs = append(errs, fmt.Errorf("unsupported frontend '%s'", o.Frontend))
	}

	if o.IPS < MinIPS || o.IPS > MaxIPS {
		errs = append(errs, fmt.Errorf("instructions per second %d outside of %d-%d", o.IPS, MinIPS, MaxIPS))
	}
	if o.Scale < 1 || o.Scale > MaxScale {
		errs = append(errs, fmt.Errorf("scale %d outside of 1-%d", o.Scale, MaxScale))
	}
	if o.ROM == "" && o.Frontend != FrontendSDL {
		errs = append(errs, errors.New("no ROM file given"))
	}
	if o.Debug && o.Quiet {
		errs = append(errs, errors.New("debug and quiet can not be combined"))
	}

	return errors.Join(errs...)
}

// Color is a RGB color.
type Color struct {
	R, G, B uint8
}

// ParseColor parses "#rrggbb" or "rrggbb".
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return Color{}, fmt.Errorf("invalid color '%s', expected #rrggbb", s)
	}

	value, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color '%s': %w", s, err)
	}

	return Color{
		R: uint8(value >> 16),
		G: uint8(value >> 8),
		B: uint8(value),
	}, nil
}

func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Set implements flag.Value.
func (c *Color) Set(s string) error {
	parsed, err := ParseColor(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
