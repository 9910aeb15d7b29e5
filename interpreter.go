package chip8

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
)

const (
	DisplayWidth  = 64
	DisplayHeight = 32
)

const (
	MemorySize   = 0x1000
	StartAddress = 0x200

	// MaxROMSize is the largest program that fits between StartAddress and
	// the end of memory.
	MaxROMSize = MemorySize - StartAddress

	StackSize = 16
)

const (
	V0 uint8 = 0
	VF uint8 = 15
)

// State is the engine level state of an interpreter.
type State uint8

const (
	StateReady State = iota
	StateFault
)

func (s State) String() string {
	if s == StateFault {
		return "fault"
	}

	return "ready"
}

// Registers is a read-only copy of the interpreter registers.
type Registers struct {
	V          [16]uint8
	I          uint16
	PC         uint16
	PCStop     uint16
	SP         uint8
	Stack      [StackSize]uint16
	DelayTimer uint8
	SoundTimer uint8
	Opcode     uint16
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithRandom sets the random source used by Cxkk.
func WithRandom(r *rand.Rand) Option {
	return func(i *Interpreter) {
		i.rand = r
	}
}

type Interpreter struct {
	pc     uint16    // program counter
	pcStop uint16    // one past the last loaded instruction
	sp     uint8     // stack pointer, indexes the next free slot
	dt     uint8     // delay timer
	st     uint8     // sound timer
	vx     [16]uint8 // general purpose 8-bit registers
	i      uint16    // 16-bit register generally used to store memory addresses

	stack  [StackSize]uint16
	memory [MemorySize]uint8

	display [DisplayHeight][DisplayWidth]uint8
	keys    [KeyCount]bool

	opcode uint16
	fault  error

	rand *rand.Rand
}

func NewInterpreter(opts ...Option) *Interpreter {
	interpreter := &Interpreter{}

	for _, opt := range opts {
		opt(interpreter)
	}

	if interpreter.rand == nil {
		interpreter.rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	interpreter.Reset()

	return interpreter
}

// Reset returns the interpreter to its construction state. The font is
// reinstalled, everything else is zeroed and no program is loaded.
func (i *Interpreter) Reset() {
	clear(i.memory[:])
	copy(i.memory[FontAddress:], fontSet[:])

	i.vx = [16]uint8{}
	i.stack = [StackSize]uint16{}
	i.display = [DisplayHeight][DisplayWidth]uint8{}
	i.keys = [KeyCount]bool{}

	i.pc = StartAddress
	i.pcStop = StartAddress
	i.sp = 0
	i.i = 0
	i.dt = 0
	i.st = 0
	i.opcode = 0
	i.fault = nil
}

// Load reads a whole ROM from reader and installs it at StartAddress. A read
// failure leaves the interpreter untouched, an oversized ROM resets it.
func (i *Interpreter) Load(reader io.Reader) error {
	program, err := io.ReadAll(io.LimitReader(reader, MaxROMSize+1))
	if err != nil {
		return &LoadError{Size: len(program), Err: err}
	}

	return i.LoadBytes(program)
}

// LoadFile loads the ROM stored at path.
func (i *Interpreter) LoadFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return &LoadError{Path: path, Err: err}
	}
	defer func() { _ = file.Close() }()

	if err := i.Load(file); err != nil {
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			loadErr.Path = path
		}
		return err
	}

	return nil
}

// LoadBytes installs program at StartAddress after resetting all state.
func (i *Interpreter) LoadBytes(program []byte) error {
	i.Reset()

	if len(program) > MaxROMSize {
		return &LoadError{
			Size: len(program),
			Err:  fmt.Errorf("%w: %d bytes, at most %d fit", ErrROMTooLarge, len(program), MaxROMSize),
		}
	}

	copy(i.memory[StartAddress:], program)

	// a trailing odd byte can not form an instruction
	i.pcStop = StartAddress + uint16(len(program)&^1)

	return nil
}

// Step executes exactly one instruction and then ticks both timers. Once a
// fault was returned the interpreter stays faulted until Reset or a Load.
func (i *Interpreter) Step() error {
	if i.fault != nil {
		return i.fault
	}

	if i.pc >= i.pcStop {
		return i.halt(i.pc, ErrProgramExhausted)
	}

	i.opcode = uint16(i.memory[i.pc])<<8 | uint16(i.memory[(i.pc+1)&(MemorySize-1)])
	i.pc += 2

	if err := i.execute(Decode(i.opcode)); err != nil {
		return i.halt(i.pc-2, err)
	}

	if i.dt > 0 {
		i.dt -= 1
	}

	if i.st > 0 {
		i.st -= 1
	}

	return nil
}

func (i *Interpreter) halt(pc uint16, err error) error {
	i.fault = &Fault{
		PC:     pc,
		Opcode: i.opcode,
		Err:    err,
	}

	return i.fault
}

func (i *Interpreter) State() State {
	if i.fault != nil {
		return StateFault
	}

	return StateReady
}

// Fault returns the fault that stopped the program, or nil.
func (i *Interpreter) Fault() error {
	return i.fault
}

func (i *Interpreter) Display() [DisplayHeight][DisplayWidth]uint8 {
	return i.display
}

func (i *Interpreter) SetKeyState(key Key, pressed bool) {
	i.keys[key&0x0f] = pressed
}

func (i *Interpreter) KeyState(key Key) bool {
	return i.keys[key&0x0f]
}

// SoundTimer is nonzero while a tone should be playing.
func (i *Interpreter) SoundTimer() uint8 {
	return i.st
}

func (i *Interpreter) DelayTimer() uint8 {
	return i.dt
}

func (i *Interpreter) Registers() Registers {
	return Registers{
		V:          i.vx,
		I:          i.i,
		PC:         i.pc,
		PCStop:     i.pcStop,
		SP:         i.sp,
		Stack:      i.stack,
		DelayTimer: i.dt,
		SoundTimer: i.st,
		Opcode:     i.opcode,
	}
}

// Peek returns the byte stored at address, wrapping at the end of memory.
func (i *Interpreter) Peek(address uint16) uint8 {
	return i.memory[address&(MemorySize-1)]
}

func (i *Interpreter) poke(address uint16, value uint8) {
	i.memory[address&(MemorySize-1)] = value
}
