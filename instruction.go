package chip8

// Instruction identifies which handler an opcode dispatches to.
type Instruction uint8

const (
	InsUnknown Instruction = iota

	InsCls      // 00E0
	InsRet      // 00EE
	InsSys      // 0nnn
	InsJp       // 1nnn
	InsCall     // 2nnn
	InsSeByte   // 3xkk
	InsSneByte  // 4xkk
	InsSeReg    // 5xy0
	InsLdByte   // 6xkk
	InsAddByte  // 7xkk
	InsLdReg    // 8xy0
	InsOr       // 8xy1
	InsAnd      // 8xy2
	InsXor      // 8xy3
	InsAddReg   // 8xy4
	InsSub      // 8xy5
	InsShr      // 8xy6
	InsSubn     // 8xy7
	InsShl      // 8xyE
	InsSneReg   // 9xy0
	InsLdI      // Annn
	InsJpV0     // Bnnn
	InsRnd      // Cxkk
	InsDrw      // Dxyn
	InsSkp      // Ex9E
	InsSknp     // ExA1
	InsLdVxDT   // Fx07
	InsLdVxK    // Fx0A
	InsLdDTVx   // Fx15
	InsLdSTVx   // Fx18
	InsAddI     // Fx1E
	InsLdF      // Fx29
	InsLdB      // Fx33
	InsStoreReg // Fx55
	InsLoadReg  // Fx65

	instructionCount
)

var instructionNames = [instructionCount]string{
	InsUnknown:  "unknown",
	InsCls:      "00E0",
	InsRet:      "00EE",
	InsSys:      "0nnn",
	InsJp:       "1nnn",
	InsCall:     "2nnn",
	InsSeByte:   "3xkk",
	InsSneByte:  "4xkk",
	InsSeReg:    "5xy0",
	InsLdByte:   "6xkk",
	InsAddByte:  "7xkk",
	InsLdReg:    "8xy0",
	InsOr:       "8xy1",
	InsAnd:      "8xy2",
	InsXor:      "8xy3",
	InsAddReg:   "8xy4",
	InsSub:      "8xy5",
	InsShr:      "8xy6",
	InsSubn:     "8xy7",
	InsShl:      "8xyE",
	InsSneReg:   "9xy0",
	InsLdI:      "Annn",
	InsJpV0:     "Bnnn",
	InsRnd:      "Cxkk",
	InsDrw:      "Dxyn",
	InsSkp:      "Ex9E",
	InsSknp:     "ExA1",
	InsLdVxDT:   "Fx07",
	InsLdVxK:    "Fx0A",
	InsLdDTVx:   "Fx15",
	InsLdSTVx:   "Fx18",
	InsAddI:     "Fx1E",
	InsLdF:      "Fx29",
	InsLdB:      "Fx33",
	InsStoreReg: "Fx55",
	InsLoadReg:  "Fx65",
}

func (ins Instruction) String() string {
	if ins >= instructionCount {
		return instructionNames[InsUnknown]
	}

	return instructionNames[ins]
}

// The top nibble of an opcode selects an entry of the master table. Families
// 0, 8, E and F are left unknown there and resolved by their own table.
var masterTable = [16]Instruction{
	0x1: InsJp,
	0x2: InsCall,
	0x3: InsSeByte,
	0x4: InsSneByte,
	0x5: InsSeReg,
	0x6: InsLdByte,
	0x7: InsAddByte,
	0x9: InsSneReg,
	0xa: InsLdI,
	0xb: InsJpV0,
	0xc: InsRnd,
	0xd: InsDrw,
}

// indexed by the low nibble
var table8 = [16]Instruction{
	0x0: InsLdReg,
	0x1: InsOr,
	0x2: InsAnd,
	0x3: InsXor,
	0x4: InsAddReg,
	0x5: InsSub,
	0x6: InsShr,
	0x7: InsSubn,
	0xe: InsShl,
}

// indexed by the low nibble
var tableE = [16]Instruction{
	0x1: InsSknp,
	0xe: InsSkp,
}

// indexed by the low byte
var tableF = [256]Instruction{
	0x07: InsLdVxDT,
	0x0a: InsLdVxK,
	0x15: InsLdDTVx,
	0x18: InsLdSTVx,
	0x1e: InsAddI,
	0x29: InsLdF,
	0x33: InsLdB,
	0x55: InsStoreReg,
	0x65: InsLoadReg,
}

// Decode maps an opcode to exactly one instruction. Opcodes that no table
// populates decode to InsUnknown.
func Decode(opcode uint16) Instruction {
	switch family := opcode >> 12; family {
	case 0x0:
		switch addr(opcode) {
		case 0x0e0:
			return InsCls
		case 0x0ee:
			return InsRet
		default:
			return InsSys
		}

	case 0x8:
		return table8[n(opcode)]

	case 0xe:
		return tableE[n(opcode)]

	case 0xf:
		return tableF[kk(opcode)]

	default:
		return masterTable[family]
	}
}

func addr(word uint16) uint16 {
	return word & 0x0fff
}

func x(word uint16) uint8 {
	return uint8((word & 0x0f00) >> 8)
}

func y(word uint16) uint8 {
	return uint8((word & 0x00f0) >> 4)
}

func n(word uint16) uint8 {
	return uint8(word & 0x000f)
}

func kk(word uint16) uint8 {
	return uint8(word & 0x00ff)
}
