// Package inst holds the static opcode taxonomy shared by the 8080
// executor and disassembler: for every one of the 256 possible opcode
// bytes, its mnemonic template, encoded length, and T-state cost.
//
// Unlike a prefixed ISA (Z80's CB/ED/DD/FD), the 8080 has no prefix
// bytes, so the raw opcode byte itself is a sufficient table key — no
// synthesized OpCode enum is needed.
package inst

// OpCode is the raw first byte of an 8080 instruction.
type OpCode = uint8

// OpCodeCount is the number of possible opcode bytes.
const OpCodeCount = 256

// Info holds static metadata for one opcode.
type Info struct {
	Mnemonic string // assembly text; "D8"/"D16"/"A16" are operand placeholders
	Len      int    // total encoded length in bytes, including any operand
	Cycles   int    // T-states (the taken-branch count for conditional ops)
}

// Catalog maps each opcode byte to its Info. Built once at init time by
// looping over the 8080's regular DDD/SSS/RP/CCC bit-field encodings
// rather than listing all 256 opcodes by hand.
var Catalog [OpCodeCount]Info

// regNames indexes the 3-bit register field: 000=B ... 111=A, with 110=M
// (memory at HL).
var regNames = [8]string{"B", "C", "D", "E", "H", "L", "M", "A"}

// rpNames indexes the 2-bit register-pair field for LXI/INX/DCX/DAD,
// where 11=SP.
var rpNames = [4]string{"B", "D", "H", "SP"}

// pushPopNames indexes the same 2-bit field for PUSH/POP, where 11=PSW.
var pushPopNames = [4]string{"B", "D", "H", "PSW"}

// condNames indexes the 3-bit condition field.
var condNames = [8]string{"NZ", "Z", "NC", "C", "PO", "PE", "P", "M"}

// ByteSize returns the encoded length of the instruction starting with
// opcode byte op.
func ByteSize(op OpCode) int { return Catalog[op].Len }

// Cycles returns the T-state cost of the instruction starting with opcode
// byte op (the taken-branch cost for conditional jump/call/return).
func Cycles(op OpCode) int { return Catalog[op].Cycles }

func init() {
	buildMOV()
	buildMVIandINRDCR()
	buildINXDCXDAD()
	buildRotatesAndSpecials()
	buildLoadStore16()
	buildLoadStore8()
	buildALU()
	buildJumpCallReturn()
	buildRST()
	buildStackAndMisc()
	buildUndocumentedAliases()
}

func buildMOV() {
	for ddd := 0; ddd < 8; ddd++ {
		for sss := 0; sss < 8; sss++ {
			op := OpCode(0x40 | ddd<<3 | sss)
			if ddd == 6 && sss == 6 {
				continue // 0x76 is HLT, not MOV M,M
			}
			cycles := 5
			if ddd == 6 || sss == 6 {
				cycles = 7
			}
			Catalog[op] = Info{
				Mnemonic: "MOV " + regNames[ddd] + "," + regNames[sss],
				Len:      1,
				Cycles:   cycles,
			}
		}
	}
	Catalog[0x76] = Info{Mnemonic: "HLT", Len: 1, Cycles: 7}
}

func buildMVIandINRDCR() {
	for ddd := 0; ddd < 8; ddd++ {
		mviCycles, incDecCycles := 7, 5
		if ddd == 6 {
			mviCycles, incDecCycles = 10, 10
		}
		Catalog[0x06|ddd<<3] = Info{Mnemonic: "MVI " + regNames[ddd] + ",D8", Len: 2, Cycles: mviCycles}
		Catalog[0x04|ddd<<3] = Info{Mnemonic: "INR " + regNames[ddd], Len: 1, Cycles: incDecCycles}
		Catalog[0x05|ddd<<3] = Info{Mnemonic: "DCR " + regNames[ddd], Len: 1, Cycles: incDecCycles}
	}
}

func buildINXDCXDAD() {
	for rp := 0; rp < 4; rp++ {
		Catalog[0x03|rp<<4] = Info{Mnemonic: "INX " + rpNames[rp], Len: 1, Cycles: 5}
		Catalog[0x0B|rp<<4] = Info{Mnemonic: "DCX " + rpNames[rp], Len: 1, Cycles: 5}
		Catalog[0x09|rp<<4] = Info{Mnemonic: "DAD " + rpNames[rp], Len: 1, Cycles: 10}
	}
}

func buildRotatesAndSpecials() {
	Catalog[0x07] = Info{"RLC", 1, 4}
	Catalog[0x0F] = Info{"RRC", 1, 4}
	Catalog[0x17] = Info{"RAL", 1, 4}
	Catalog[0x1F] = Info{"RAR", 1, 4}
	Catalog[0x27] = Info{"DAA", 1, 4}
	Catalog[0x2F] = Info{"CMA", 1, 4}
	Catalog[0x37] = Info{"STC", 1, 4}
	Catalog[0x3F] = Info{"CMC", 1, 4}
	Catalog[0x00] = Info{"NOP", 1, 4}
}

func buildLoadStore16() {
	for rp := 0; rp < 4; rp++ {
		Catalog[0x01|rp<<4] = Info{Mnemonic: "LXI " + rpNames[rp] + ",D16", Len: 3, Cycles: 10}
	}
	Catalog[0x3A] = Info{"LDA A16", 3, 13}
	Catalog[0x32] = Info{"STA A16", 3, 13}
	Catalog[0x2A] = Info{"LHLD A16", 3, 16}
	Catalog[0x22] = Info{"SHLD A16", 3, 16}
}

func buildLoadStore8() {
	Catalog[0x0A] = Info{"LDAX B", 1, 7}
	Catalog[0x1A] = Info{"LDAX D", 1, 7}
	Catalog[0x02] = Info{"STAX B", 1, 7}
	Catalog[0x12] = Info{"STAX D", 1, 7}
	Catalog[0xEB] = Info{"XCHG", 1, 4}
}

// aluMnemonics indexes the 3-bit fff field of the ALU-with-register and
// ALU-immediate families.
var aluMnemonics = [8]string{"ADD", "ADC", "SUB", "SBB", "ANA", "XRA", "ORA", "CMP"}
var aluImmMnemonics = [8]string{"ADI", "ACI", "SUI", "SBI", "ANI", "XRI", "ORI", "CPI"}

func buildALU() {
	for fff := 0; fff < 8; fff++ {
		for rrr := 0; rrr < 8; rrr++ {
			op := OpCode(0x80 | fff<<3 | rrr)
			cycles := 4
			if rrr == 6 {
				cycles = 7
			}
			Catalog[op] = Info{Mnemonic: aluMnemonics[fff] + " " + regNames[rrr], Len: 1, Cycles: cycles}
		}
		Catalog[0xC6|fff<<3] = Info{Mnemonic: aluImmMnemonics[fff] + " D8", Len: 2, Cycles: 7}
	}
}

func buildJumpCallReturn() {
	Catalog[0xC3] = Info{"JMP A16", 3, 10}
	Catalog[0xCD] = Info{"CALL A16", 3, 17}
	Catalog[0xC9] = Info{"RET", 1, 10}
	for ccc := 0; ccc < 8; ccc++ {
		Catalog[0xC2|ccc<<3] = Info{Mnemonic: "J" + condNames[ccc] + " A16", Len: 3, Cycles: 10}
		Catalog[0xC4|ccc<<3] = Info{Mnemonic: "C" + condNames[ccc] + " A16", Len: 3, Cycles: 17}
		Catalog[0xC0|ccc<<3] = Info{Mnemonic: "R" + condNames[ccc], Len: 1, Cycles: 11}
	}
}

func buildRST() {
	for nnn := 0; nnn < 8; nnn++ {
		op := OpCode(0xC7 | nnn<<3)
		Catalog[op] = Info{Mnemonic: "RST " + string(rune('0'+nnn)), Len: 1, Cycles: 11}
	}
}

func buildStackAndMisc() {
	for rp := 0; rp < 4; rp++ {
		Catalog[0xC5|rp<<4] = Info{Mnemonic: "PUSH " + pushPopNames[rp], Len: 1, Cycles: 11}
		Catalog[0xC1|rp<<4] = Info{Mnemonic: "POP " + pushPopNames[rp], Len: 1, Cycles: 10}
	}
	Catalog[0xE9] = Info{"PCHL", 1, 5}
	Catalog[0xE3] = Info{"XTHL", 1, 18}
	Catalog[0xF9] = Info{"SPHL", 1, 5}
	Catalog[0xDB] = Info{"IN D8", 2, 10}
	Catalog[0xD3] = Info{"OUT D8", 2, 10}
	Catalog[0xFB] = Info{"EI", 1, 4}
	Catalog[0xF3] = Info{"DI", 1, 4}
}

// buildUndocumentedAliases wires the twelve undocumented opcode slots to
// their standard alias. Byte length and cycle cost must match the
// canonical instruction being aliased, since Step still has to fetch and
// consume whatever operand bytes follow.
func buildUndocumentedAliases() {
	for _, op := range []OpCode{0x08, 0x10, 0x18, 0x20, 0x28, 0x30, 0x38} {
		Catalog[op] = Info{"NOP", 1, 4}
	}
	Catalog[0xCB] = Info{"JMP A16", 3, 10}
	Catalog[0xD9] = Info{"RET", 1, 10}
	for _, op := range []OpCode{0xDD, 0xED, 0xFD} {
		Catalog[op] = Info{"CALL A16", 3, 17}
	}
}
