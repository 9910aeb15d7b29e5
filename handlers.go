package chip8

func (i *Interpreter) execute(ins Instruction) error {
	switch ins {
	case InsCls:
		i.cls()
	case InsRet:
		return i.ret()
	case InsSys:
		return ErrUnsupportedOperation
	case InsJp:
		i.pc = addr(i.opcode)
	case InsCall:
		return i.call()
	case InsSeByte:
		i.skipIf(i.vx[x(i.opcode)] == kk(i.opcode))
	case InsSneByte:
		i.skipIf(i.vx[x(i.opcode)] != kk(i.opcode))
	case InsSeReg:
		i.skipIf(i.vx[x(i.opcode)] == i.vx[y(i.opcode)])
	case InsLdByte:
		i.vx[x(i.opcode)] = kk(i.opcode)
	case InsAddByte:
		i.vx[x(i.opcode)] += kk(i.opcode)
	case InsLdReg:
		i.vx[x(i.opcode)] = i.vx[y(i.opcode)]
	case InsOr:
		i.vx[x(i.opcode)] |= i.vx[y(i.opcode)]
	case InsAnd:
		i.vx[x(i.opcode)] &= i.vx[y(i.opcode)]
	case InsXor:
		i.vx[x(i.opcode)] ^= i.vx[y(i.opcode)]
	case InsAddReg:
		i.addReg()
	case InsSub:
		i.sub()
	case InsShr:
		i.shr()
	case InsSubn:
		i.subn()
	case InsShl:
		i.shl()
	case InsSneReg:
		i.skipIf(i.vx[x(i.opcode)] != i.vx[y(i.opcode)])
	case InsLdI:
		i.i = addr(i.opcode)
	case InsJpV0:
		i.pc = addr(i.opcode) + uint16(i.vx[V0])
	case InsRnd:
		i.vx[x(i.opcode)] = uint8(i.rand.UintN(256)) & kk(i.opcode)
	case InsDrw:
		i.drw()
	case InsSkp:
		i.skipIf(i.keys[i.vx[x(i.opcode)]&0x0f])
	case InsSknp:
		i.skipIf(!i.keys[i.vx[x(i.opcode)]&0x0f])
	case InsLdVxDT:
		i.vx[x(i.opcode)] = i.dt
	case InsLdVxK:
		i.waitKey()
	case InsLdDTVx:
		i.dt = i.vx[x(i.opcode)]
	case InsLdSTVx:
		i.st = i.vx[x(i.opcode)]
	case InsAddI:
		i.i += uint16(i.vx[x(i.opcode)])
	case InsLdF:
		i.i = FontAddress + uint16(i.vx[x(i.opcode)]&0x0f)*glyphSize
	case InsLdB:
		i.bcd()
	case InsStoreReg:
		i.storeRegisters()
	case InsLoadReg:
		i.loadRegisters()
	default:
		return ErrUnknownOpcode
	}

	return nil
}

// 00E0 - CLS
func (i *Interpreter) cls() {
	clear(i.display[:])
}

// 00EE - RET
// The interpreter subtracts 1 from the stack pointer, then sets the program
// counter to the address stored in that slot.
func (i *Interpreter) ret() error {
	if i.sp == 0 {
		return ErrStackUnderflow
	}

	i.sp -= 1
	i.pc = i.stack[i.sp]

	return nil
}

// 2nnn - CALL addr
// The program counter already points past the call, so that is the address
// pushed for the matching return.
func (i *Interpreter) call() error {
	if i.sp >= StackSize {
		return ErrStackOverflow
	}

	i.stack[i.sp] = i.pc
	i.sp += 1
	i.pc = addr(i.opcode)

	return nil
}

// skipIf steps over the next instruction when cond holds.
func (i *Interpreter) skipIf(cond bool) {
	if cond {
		i.pc += 2
	}
}

// 8xy4 - ADD Vx, Vy
// Set Vx = Vx + Vy, set VF = carry.
func (i *Interpreter) addReg() {
	sum := uint16(i.vx[x(i.opcode)]) + uint16(i.vx[y(i.opcode)])

	i.vx[x(i.opcode)] = uint8(sum)
	i.vx[VF] = flag(sum > 0xff)
}

// 8xy5 - SUB Vx, Vy
// Set Vx = Vx - Vy, set VF = NOT borrow.
func (i *Interpreter) sub() {
	difference := int16(i.vx[x(i.opcode)]) - int16(i.vx[y(i.opcode)])

	i.vx[x(i.opcode)] = uint8(difference)
	i.vx[VF] = flag(difference >= 0)
}

// 8xy6 - SHR Vx, Vy
// Vx = Vy >> 1, VF = the bit shifted out. Vy keeps its value.
func (i *Interpreter) shr() {
	value := i.vx[y(i.opcode)]

	i.vx[x(i.opcode)] = value >> 1
	i.vx[VF] = value & 1
}

// 8xy7 - SUBN Vx, Vy
// Set Vx = Vy - Vx, set VF = NOT borrow.
func (i *Interpreter) subn() {
	difference := int16(i.vx[y(i.opcode)]) - int16(i.vx[x(i.opcode)])

	i.vx[x(i.opcode)] = uint8(difference)
	i.vx[VF] = flag(difference >= 0)
}

// 8xyE - SHL Vx, Vy
// Vx = Vy << 1, VF = the most significant bit of Vy. Vy keeps its value.
func (i *Interpreter) shl() {
	value := i.vx[y(i.opcode)]

	i.vx[x(i.opcode)] = value << 1
	i.vx[VF] = value >> 7
}

// Dxyn - DRW Vx, Vy, nibble
// Display n-byte sprite starting at memory location I at (Vx, Vy),
// set VF = collision.
//
// Sprites are XORed onto the existing screen and wrap around both edges. VF is
// cleared first and set when any pixel goes from set to unset.
func (i *Interpreter) drw() {
	startX := i.vx[x(i.opcode)]
	startY := i.vx[y(i.opcode)]
	height := n(i.opcode)

	i.vx[VF] = 0

	for row := range height {
		sprite := i.Peek(i.i + uint16(row))

		for col := range uint8(8) {
			bit := (sprite >> (7 - col)) & 1
			if bit == 0 {
				continue
			}

			target := &i.display[(int(startY)+int(row))%DisplayHeight][(int(startX)+int(col))%DisplayWidth]
			if *target == 1 {
				i.vx[VF] = 1
			}

			*target ^= 1
		}
	}
}

// Fx0A - LD Vx, K
// Wait for a key press, store the value of the key in Vx.
//
// Nothing blocks here: without a pressed key the program counter is moved back
// so the next step executes this instruction again.
func (i *Interpreter) waitKey() {
	for key, pressed := range i.keys {
		if pressed {
			i.vx[x(i.opcode)] = uint8(key)
			return
		}
	}

	i.pc -= 2
}

// Fx33 - LD B, Vx
// Store BCD representation of Vx in memory locations I, I+1, and I+2.
func (i *Interpreter) bcd() {
	value := i.vx[x(i.opcode)]

	i.poke(i.i, value/100)
	i.poke(i.i+1, (value/10)%10)
	i.poke(i.i+2, value%10)
}

// Fx55 - LD [I], Vx
// Store registers V0 through Vx in memory starting at location I. I ends up
// pointing past the last stored byte.
func (i *Interpreter) storeRegisters() {
	for reg := range x(i.opcode) + 1 {
		i.poke(i.i, i.vx[reg])
		i.i++
	}
}

// Fx65 - LD Vx, [I]
func (i *Interpreter) loadRegisters() {
	for reg := range x(i.opcode) + 1 {
		i.vx[reg] = i.Peek(i.i)
		i.i++
	}
}

func flag(set bool) uint8 {
	if set {
		return 1
	}

	return 0
}
