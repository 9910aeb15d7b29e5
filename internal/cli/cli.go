// Package cli handles command line interface logic
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/chip8redo/chip-go/internal/config"
)

// ErrVersion is returned when only the version was requested.
var ErrVersion = errors.New("version requested")

// ParseFlags parses the command line arguments, without the program name,
// into the emulator options. A settings script given by -config is applied
// first, flags on the command line override it.
func ParseFlags(args []string) (config.Options, error) {
	opts := config.Defaults()

	// first pass only looks for the settings script
	probe := config.Defaults()
	probeFlags := flag.NewFlagSet("chip8", flag.ContinueOnError)
	probeFlags.SetOutput(io.Discard)
	var version bool
	readOptionFlags(probeFlags, &probe, &version)
	if err := probeFlags.Parse(args); err != nil {
		return opts, usage(err.Error())
	}

	if probe.Script != "" {
		if err := config.LoadScript(probe.Script, &opts); err != nil {
			return opts, err
		}
	}

	flags := flag.NewFlagSet("chip8", flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	readOptionFlags(flags, &opts, &version)
	if err := flags.Parse(args); err != nil {
		return opts, usage(err.Error())
	}
	if version {
		return opts, ErrVersion
	}

	positional := flags.Args()
	if err := validateArgs(positional); err != nil {
		return opts, err
	}
	if len(positional) == 1 {
		opts.ROM = positional[0]
	}

	opts.Frontend = config.Frontend(strings.ToLower(string(opts.Frontend)))

	if err := opts.Validate(); err != nil {
		return opts, usage(err.Error())
	}
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	msg string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage writes the usage text and all flag defaults to w.
func (e *UsageError) ShowUsage(w io.Writer) {
	flags := flag.NewFlagSet("chip8", flag.ContinueOnError)
	opts := config.Defaults()
	var version bool
	readOptionFlags(flags, &opts, &version)
	flags.SetOutput(w)

	_, _ = fmt.Fprintf(w, "usage: chip8 [options] <rom file>\n\n")
	flags.PrintDefaults()
	_, _ = fmt.Fprintln(w)
}

func usage(msg string) error {
	return &UsageError{msg: msg}
}

// validateArgs makes sure flags are not passed after the ROM file, the flag
// package would silently treat them as positional arguments.
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && strings.HasPrefix(arg, "-") {
			return usage(fmt.Sprintf("argument %s found after the ROM file, pass the ROM file as last argument", arg))
		}
	}
	if len(args) > 1 {
		return usage("only one ROM file can be run")
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *config.Options, version *bool) {
	frontends := make([]string, 0, len(config.Frontends))
	for _, frontend := range config.Frontends {
		frontends = append(frontends, string(frontend))
	}

	flags.Func("frontend", fmt.Sprintf("frontend to use (%s)", strings.Join(frontends, "/")), func(s string) error {
		opts.Frontend = config.Frontend(s)
		return nil
	})
	flags.StringVar(&opts.Script, "config", opts.Script, "Lua settings script to load before applying flags")
	flags.IntVar(&opts.IPS, "ips", opts.IPS, "instructions executed per second")
	flags.IntVar(&opts.Scale, "scale", opts.Scale, "window pixels per CHIP-8 pixel")
	flags.Var(&opts.Foreground, "fg", "color of set pixels as #rrggbb")
	flags.Var(&opts.Background, "bg", "color of unset pixels as #rrggbb")
	flags.Var(opts.Keys, "keys", "comma separated key bindings as name=key, for example p=4,space=f")
	flags.BoolVar(&opts.Mute, "mute", opts.Mute, "do not play the sound timer tone")
	flags.BoolVar(&opts.Debug, "debug", opts.Debug, "enable debug logging, traces every instruction")
	flags.BoolVar(&opts.Quiet, "q", opts.Quiet, "only log errors")
	flags.BoolVar(version, "version", false, "print the version and exit")
}
