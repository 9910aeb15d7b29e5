package chip8

import (
	chip8cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Mnemonic returns the assembler mnemonic of opcode, or an empty string when
// the opcode is not part of the instruction set.
func Mnemonic(opcode uint16) string {
	for _, op := range chip8cpu.Opcodes[int(opcode>>12)] {
		if op.Info.Mask&opcode == op.Info.Value && op.Instruction != nil {
			return op.Instruction.Name
		}
	}

	return ""
}
