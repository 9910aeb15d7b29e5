package chip8

import (
	"errors"
	"testing"

	chip8cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		opcode   uint16
		expected Instruction
	}{
		{0x00e0, InsCls},
		{0x00ee, InsRet},
		{0x0000, InsSys},
		{0x0123, InsSys},
		{0x00e1, InsSys},
		{0x1abc, InsJp},
		{0x2abc, InsCall},
		{0x3122, InsSeByte},
		{0x4122, InsSneByte},
		{0x5120, InsSeReg},
		{0x6122, InsLdByte},
		{0x7122, InsAddByte},
		{0x8120, InsLdReg},
		{0x8121, InsOr},
		{0x8122, InsAnd},
		{0x8123, InsXor},
		{0x8124, InsAddReg},
		{0x8125, InsSub},
		{0x8126, InsShr},
		{0x8127, InsSubn},
		{0x812e, InsShl},
		{0x8128, InsUnknown},
		{0x812f, InsUnknown},
		{0x9120, InsSneReg},
		{0xa123, InsLdI},
		{0xb123, InsJpV0},
		{0xc1ff, InsRnd},
		{0xd125, InsDrw},
		{0xe19e, InsSkp},
		{0xe1a1, InsSknp},
		{0xe1a2, InsUnknown},
		{0xf107, InsLdVxDT},
		{0xf10a, InsLdVxK},
		{0xf115, InsLdDTVx},
		{0xf118, InsLdSTVx},
		{0xf11e, InsAddI},
		{0xf129, InsLdF},
		{0xf133, InsLdB},
		{0xf155, InsStoreReg},
		{0xf165, InsLoadReg},
		{0xf100, InsUnknown},
		{0xf1ff, InsUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.expected.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, Decode(tt.opcode))
		})
	}
}

func TestDecode_AllOpcodes(t *testing.T) {
	populated8 := map[uint16]bool{0: true, 1: true, 2: true, 3: true, 4: true, 5: true, 6: true, 7: true, 0xe: true}
	populatedE := map[uint16]bool{0x1: true, 0xe: true}
	populatedF := map[uint16]bool{0x07: true, 0x0a: true, 0x15: true, 0x18: true, 0x1e: true, 0x29: true, 0x33: true, 0x55: true, 0x65: true}

	seen := map[Instruction]bool{}

	for value := range 0x10000 {
		opcode := uint16(value)
		ins := Decode(opcode)
		assert.True(t, ins < instructionCount)
		seen[ins] = true

		var known bool
		switch opcode >> 12 {
		case 0x8:
			known = populated8[opcode&0x000f]
		case 0xe:
			known = populatedE[opcode&0x000f]
		case 0xf:
			known = populatedF[opcode&0x00ff]
		default:
			known = true
		}

		if known == (ins == InsUnknown) {
			t.Fatalf("opcode %04X decoded to %s", opcode, ins)
		}
	}

	// every handler is reachable
	assert.Equal(t, int(instructionCount), len(seen))
}

func TestStep_UnknownOpcodeFaults(t *testing.T) {
	for _, opcode := range []uint16{0x8008, 0x800f, 0xe000, 0xe0a2, 0xf000, 0xf0ff} {
		interpreter := load(t, opcode)

		err := interpreter.Step()
		assert.True(t, errors.Is(err, ErrUnknownOpcode))

		var fault *Fault
		assert.True(t, errors.As(err, &fault))
		assert.Equal(t, opcode, fault.Opcode)
		assert.Equal(t, uint16(StartAddress), fault.PC)
		assert.Equal(t, StateFault, interpreter.State())
	}
}

func TestInstruction_String(t *testing.T) {
	assert.Equal(t, "8xyE", InsShl.String())
	assert.Equal(t, "unknown", InsUnknown.String())
	assert.Equal(t, "unknown", Instruction(200).String())
}

func TestMnemonic(t *testing.T) {
	assert.Equal(t, chip8cpu.ClsInst.Name, Mnemonic(0x00e0))
	assert.Equal(t, chip8cpu.RetInst.Name, Mnemonic(0x00ee))
	assert.Equal(t, chip8cpu.JpInst.Name, Mnemonic(0x1234))
	assert.Equal(t, chip8cpu.CallInst.Name, Mnemonic(0x2234))
	assert.Equal(t, chip8cpu.DrwInst.Name, Mnemonic(0xd125))
}
