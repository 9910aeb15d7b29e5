// Package main implements a CHIP-8 interpreter
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	chip8 "github.com/chip8redo/chip-go"
	"github.com/chip8redo/chip-go/internal/cli"
	"github.com/chip8redo/chip-go/internal/config"
	"github.com/chip8redo/chip-go/internal/frontend/ebitenfront"
	"github.com/chip8redo/chip-go/internal/frontend/sdlfront"
	"github.com/chip8redo/chip-go/internal/frontend/terminal"
	"github.com/chip8redo/chip-go/internal/runner"
	"github.com/faiface/mainthread"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()

	opts, err := cli.ParseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, cli.ErrVersion) {
			cli.PrintVersion(os.Stdout, version, commit, date)
			return
		}

		logger := config.CreateLogger(opts)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			cli.PrintBanner(logger, opts, version, commit, date)
			logger.Error("Invalid arguments", log.Err(usageErr))
			usageErr.ShowUsage(os.Stderr)
		} else {
			logger.Fatal(err.Error())
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts)
	cli.PrintBanner(logger, opts, version, commit, date)

	if err := run(ctx, logger, opts); err != nil {
		logger.Fatal("Emulation failed", log.Err(err))
	}
}

func run(ctx context.Context, logger *log.Logger, opts config.Options) error {
	r := runner.New(logger, chip8.NewInterpreter(), opts)
	if opts.ROM != "" {
		if err := r.LoadFile(opts.ROM); err != nil {
			return err
		}
	}

	switch opts.Frontend {
	case config.FrontendSDL:
		var err error
		mainthread.Run(func() {
			err = sdlfront.Run(ctx, logger, r, opts)
		})
		return err

	case config.FrontendEbiten:
		return ebitenfront.Run(ctx, logger, r, opts)

	case config.FrontendTerminal:
		return terminal.Run(ctx, logger, r, opts)

	default:
		return fmt.Errorf("unsupported frontend '%s'", opts.Frontend)
	}
}
