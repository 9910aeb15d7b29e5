// Package runner drives an interpreter at a configurable speed and handles
// the ROM lifecycle, pausing and sound for the frontends.
package runner

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	chip8 "github.com/chip8redo/chip-go"
	"github.com/chip8redo/chip-go/internal/config"
	"github.com/retroenv/retrogolib/log"
)

const (
	// FrameRate is the number of Frame calls per second the frontends make.
	FrameRate = 60

	// SpeedStep is the instructions per second change of SpeedUp and SpeedDown.
	SpeedStep = 50
)

// Beeper plays a tone while the sound timer is active.
type Beeper interface {
	Beep(on bool)
}

// Runner owns the scheduling of one interpreter.
type Runner struct {
	logger *log.Logger
	interp *chip8.Interpreter
	beeper Beeper

	mute  bool
	trace bool

	name string
	rom  []byte

	ips       int
	remainder int // instructions owed to the next frame, times FrameRate

	paused  bool
	beeping bool
}

// New returns a runner for interp configured by opts. Nothing is loaded.
func New(logger *log.Logger, interp *chip8.Interpreter, opts config.Options) *Runner {
	ips := opts.IPS
	if ips == 0 {
		ips = config.DefaultIPS
	}

	return &Runner{
		logger: logger,
		interp: interp,
		mute:   opts.Mute,
		trace:  opts.Debug,
		ips:    clampIPS(ips),
	}
}

// SetBeeper sets the device that plays the sound timer tone.
func (r *Runner) SetBeeper(beeper Beeper) {
	r.setBeep(false)
	r.beeper = beeper
}

// Interpreter returns the driven interpreter, frontends use it for the
// display and keypad.
func (r *Runner) Interpreter() *chip8.Interpreter {
	return r.interp
}

// LoadFile reads the ROM at path and loads it. Reading stops one byte past
// the largest ROM, which is enough to reject it.
func (r *Runner) LoadFile(path string) error {
	data, err := readROM(path)
	if err != nil {
		return &chip8.LoadError{Path: path, Size: len(data), Err: err}
	}

	err = r.LoadROM(filepath.Base(path), data)
	if loadErr, ok := errors.AsType[*chip8.LoadError](err); ok {
		loadErr.Path = path
	}
	return err
}

func readROM(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	return io.ReadAll(io.LimitReader(file, chip8.MaxROMSize+1))
}

// LoadROM loads data as a program named name and resumes emulation. A failed
// load leaves the runner without a program.
func (r *Runner) LoadROM(name string, data []byte) error {
	r.setBeep(false)
	r.remainder = 0

	if err := r.interp.LoadBytes(data); err != nil {
		r.name = ""
		r.rom = nil
		return err
	}

	r.name = name
	r.rom = slices.Clone(data)
	r.paused = false
	r.logger.Info("ROM loaded", log.String("name", name), log.Int("size", len(data)))
	return nil
}

// Restart loads the current ROM again.
func (r *Runner) Restart() error {
	if r.rom == nil {
		return errors.New("no ROM loaded")
	}

	r.logger.Info("Restarting", log.String("name", r.name))
	return r.LoadROM(r.name, r.rom)
}

// Close unloads the ROM and clears the interpreter.
func (r *Runner) Close() {
	r.setBeep(false)
	r.interp.Reset()
	r.remainder = 0

	if r.rom != nil {
		r.logger.Info("ROM closed", log.String("name", r.name))
	}
	r.name = ""
	r.rom = nil
}

// Loaded reports whether a ROM is loaded.
func (r *Runner) Loaded() bool {
	return r.rom != nil
}

// Name returns the name of the loaded ROM.
func (r *Runner) Name() string {
	return r.name
}

// Fault returns the fault that stopped the loaded program, or nil.
func (r *Runner) Fault() error {
	return r.interp.Fault()
}

func (r *Runner) Paused() bool {
	return r.paused
}

func (r *Runner) Pause() {
	if r.paused {
		return
	}
	r.paused = true
	r.setBeep(false)
	r.logger.Info("Paused")
}

func (r *Runner) Resume() {
	if !r.paused {
		return
	}
	r.paused = false
	r.logger.Info("Resumed")
}

func (r *Runner) TogglePause() {
	if r.paused {
		r.Resume()
	} else {
		r.Pause()
	}
}

// IPS returns the instructions executed per second.
func (r *Runner) IPS() int {
	return r.ips
}

// SetIPS changes the speed, the value is clamped to the supported range.
func (r *Runner) SetIPS(ips int) {
	ips = clampIPS(ips)
	if ips == r.ips {
		return
	}
	r.ips = ips
	r.logger.Info("Speed changed", log.Int("ips", ips))
}

func (r *Runner) SpeedUp() {
	r.SetIPS(r.ips + SpeedStep)
}

func (r *Runner) SpeedDown() {
	r.SetIPS(r.ips - SpeedStep)
}

// Frame runs the instructions due in one frame and updates the beeper.
// The fault is returned only by the frame in which it was raised.
func (r *Runner) Frame() error {
	if r.paused || r.rom == nil || r.interp.Fault() != nil {
		r.setBeep(false)
		return nil
	}

	r.remainder += r.ips
	steps := r.remainder / FrameRate
	r.remainder %= FrameRate

	for range steps {
		if r.trace {
			r.traceStep()
		}

		if err := r.interp.Step(); err != nil {
			r.setBeep(false)
			r.logFault(err)
			return err
		}
	}

	r.setBeep(r.interp.SoundTimer() > 0)
	return nil
}

func (r *Runner) setBeep(on bool) {
	if r.mute {
		on = false
	}
	if on == r.beeping {
		return
	}

	r.beeping = on
	if r.beeper != nil {
		r.beeper.Beep(on)
	}
}

func (r *Runner) traceStep() {
	pc := r.interp.Registers().PC
	opcode := uint16(r.interp.Peek(pc))<<8 | uint16(r.interp.Peek(pc+1))

	r.logger.Debug("Step",
		log.Hex("pc", pc),
		log.Hex("opcode", opcode),
		log.String("instruction", chip8.Decode(opcode).String()),
		log.String("mnemonic", chip8.Mnemonic(opcode)))
}

func (r *Runner) logFault(err error) {
	var fault *chip8.Fault
	if !errors.As(err, &fault) {
		r.logger.Error("Emulation stopped", log.Err(err))
		return
	}

	r.logger.Error("Emulation stopped",
		log.String("name", r.name),
		log.Hex("pc", fault.PC),
		log.Hex("opcode", fault.Opcode),
		log.Err(fault.Err))

	regs := r.interp.Registers()
	for index, value := range regs.V {
		r.logger.Debug("Register", log.String("name", fmt.Sprintf("V%X", index)), log.Hex("value", value))
	}
	r.logger.Debug("Register", log.String("name", "I"), log.Hex("value", regs.I))
	r.logger.Debug("Stack", log.Uint8("sp", regs.SP), log.Uint8("dt", regs.DelayTimer), log.Uint8("st", regs.SoundTimer))
}

func clampIPS(ips int) int {
	return min(max(ips, config.MinIPS), config.MaxIPS)
}
