package cpu

import "github.com/archietheboy/i8080emu/pkg/inst"

// Step fetches, decodes, and executes exactly one instruction starting at
// s.PC, returning the number of T-states it cost. If a halted machine has
// no pending interrupt it still costs 4 T-states and does not advance PC,
// matching the real part's behavior of idling on the bus until reset or
// interrupt.
//
// Interrupt injection happens here, at instruction boundaries only: a
// RequestInterrupt call queued since the previous Step is taken now, before
// any new opcode is fetched, if INTE is set. Taking the interrupt also
// clears INTE, the way a real RST does, and clears Halted so a halted CPU
// resumes via interrupt.
func Step(s *State) int {
	if s.eiDelay {
		// The instruction immediately after EI always runs with interrupts
		// still masked; INTE takes effect only now, one Step late, so this
		// call falls through to execute that instruction rather than
		// checking interruptPending against it.
		s.eiDelay = false
		s.INTE = true
	} else if s.interruptPending && s.INTE {
		s.interruptPending = false
		s.INTE = false
		s.Halted = false
		return execRST(s, s.interruptVector)
	}

	if s.Halted {
		return 4
	}

	op := s.Mem.Read8(s.PC)
	info := inst.Catalog[op]
	pc := s.PC + 1

	var imm8 uint8
	var imm16 uint16
	switch info.Len {
	case 2:
		imm8 = s.Mem.Read8(pc)
		pc++
	case 3:
		imm16 = s.Mem.Read16(pc)
		pc += 2
	}
	s.PC = pc

	switch op {
	case 0x00, 0x08, 0x10, 0x18, 0x20, 0x28, 0x30, 0x38:
		// NOP and its seven undocumented aliases.

	case 0x76:
		// PC stays on the HLT opcode itself, so an interrupt taken while
		// halted pushes the HLT's own address.
		s.PC--
		s.Halted = true

	case 0xFB:
		s.eiDelay = true
	case 0xF3:
		s.INTE = false

	case 0xC3, 0xCB:
		s.PC = imm16
	case 0xCD, 0xDD, 0xED, 0xFD:
		s.push16(s.PC)
		s.PC = imm16
	case 0xC9, 0xD9:
		s.PC = s.pop16()
	case 0xE9:
		s.PC = s.HL()

	case 0x22:
		s.Mem.Write16(imm16, s.HL())
	case 0x2A:
		s.SetHL(s.Mem.Read16(imm16))
	case 0x32:
		s.Mem.Write8(imm16, s.A)
	case 0x3A:
		s.A = s.Mem.Read8(imm16)
	case 0x02:
		s.Mem.Write8(s.BC(), s.A)
	case 0x12:
		s.Mem.Write8(s.DE(), s.A)
	case 0x0A:
		s.A = s.Mem.Read8(s.BC())
	case 0x1A:
		s.A = s.Mem.Read8(s.DE())
	case 0xEB:
		s.H, s.L, s.D, s.E = s.D, s.E, s.H, s.L
	case 0xE3:
		v := s.Mem.Read16(s.SP)
		s.Mem.Write16(s.SP, s.HL())
		s.SetHL(v)
	case 0xF9:
		s.SP = s.HL()

	case 0xDB:
		s.A = s.PortIn(imm8)
	case 0xD3:
		s.PortOut(imm8, s.A)

	case 0x07:
		r, cy := Rlc(s.A)
		s.A = r
		s.setFlag(FlagCY, cy)
	case 0x0F:
		r, cy := Rrc(s.A)
		s.A = r
		s.setFlag(FlagCY, cy)
	case 0x17:
		r, cy := Ral(s.A, s.Flag(FlagCY))
		s.A = r
		s.setFlag(FlagCY, cy)
	case 0x1F:
		r, cy := Rar(s.A, s.Flag(FlagCY))
		s.A = r
		s.setFlag(FlagCY, cy)
	case 0x27:
		r, flags := Daa(s.A, s.Flag(FlagCY), s.Flag(FlagAC))
		s.A, s.F = r, flags
	case 0x2F:
		s.A = ^s.A
	case 0x37:
		s.setFlag(FlagCY, true)
	case 0x3F:
		s.setFlag(FlagCY, !s.Flag(FlagCY))

	default:
		if execFamily(s, op, info, imm8, imm16) {
			break
		}
		panic("unhandled opcode in Step")
	}

	return info.Cycles
}

// execFamily handles the opcode families that are regular bit-field
// encodings rather than single fixed bytes: MOV, MVI, INR/DCR, register
// pair ops, ALU ops, conditional jump/call/return, RST, and PUSH/POP.
// Reports false if op matches none of them, so Step can panic on a
// genuinely unreached opcode.
func execFamily(s *State, op uint8, info inst.Info, imm8 uint8, imm16 uint16) bool {
	switch {
	case op&0xC0 == 0x40:
		ddd, sss := (op>>3)&7, op&7
		s.setReg(ddd, s.reg(sss))
		return true

	case op&0xC7 == 0x06:
		ddd := (op >> 3) & 7
		s.setReg(ddd, imm8)
		return true

	case op&0xC7 == 0x04:
		ddd := (op >> 3) & 7
		r, flags := Inr(s.reg(ddd))
		s.setReg(ddd, r)
		s.F = (s.F & FlagCY) | flags
		return true

	case op&0xC7 == 0x05:
		ddd := (op >> 3) & 7
		r, flags := Dcr(s.reg(ddd))
		s.setReg(ddd, r)
		s.F = (s.F & FlagCY) | flags
		return true

	case op&0xCF == 0x01:
		rp := (op >> 4) & 3
		s.setRP(rp, imm16)
		return true

	case op&0xCF == 0x03:
		rp := (op >> 4) & 3
		s.setRP(rp, s.rp(rp)+1)
		return true

	case op&0xCF == 0x0B:
		rp := (op >> 4) & 3
		s.setRP(rp, s.rp(rp)-1)
		return true

	case op&0xCF == 0x09:
		rp := (op >> 4) & 3
		hl, cy := Dad(s.HL(), s.rp(rp))
		s.SetHL(hl)
		s.setFlag(FlagCY, cy)
		return true

	case op&0xC0 == 0x80:
		fff, rrr := (op>>3)&7, op&7
		execALU(s, fff, s.reg(rrr))
		return true

	case op&0xC7 == 0xC6:
		fff := (op >> 3) & 7
		execALU(s, fff, imm8)
		return true

	case op&0xC7 == 0xC2:
		if s.condTrue((op >> 3) & 7) {
			s.PC = imm16
		}
		return true

	case op&0xC7 == 0xC4:
		if s.condTrue((op >> 3) & 7) {
			s.push16(s.PC)
			s.PC = imm16
		}
		return true

	case op&0xC7 == 0xC0:
		if s.condTrue((op >> 3) & 7) {
			s.PC = s.pop16()
		}
		return true

	case op&0xC7 == 0xC7:
		nnn := (op >> 3) & 7
		execRST(s, nnn)
		return true

	case op&0xCF == 0xC5:
		rp := (op >> 4) & 3
		s.push16(s.pushPopRP(rp))
		return true

	case op&0xCF == 0xC1:
		rp := (op >> 4) & 3
		s.setPushPopRP(rp, s.pop16())
		return true
	}
	return false
}

// reg reads one of the eight 3-bit-encoded register slots, where 110
// (index 6) means the memory byte at HL rather than a CPU register.
func (s *State) reg(idx uint8) uint8 {
	switch idx {
	case 0:
		return s.B
	case 1:
		return s.C
	case 2:
		return s.D
	case 3:
		return s.E
	case 4:
		return s.H
	case 5:
		return s.L
	case 6:
		return s.Mem.Read8(s.HL())
	default:
		return s.A
	}
}

func (s *State) setReg(idx uint8, v uint8) {
	switch idx {
	case 0:
		s.B = v
	case 1:
		s.C = v
	case 2:
		s.D = v
	case 3:
		s.E = v
	case 4:
		s.H = v
	case 5:
		s.L = v
	case 6:
		s.Mem.Write8(s.HL(), v)
	default:
		s.A = v
	}
}

// rp reads register pair idx (0=BC, 1=DE, 2=HL, 3=SP) for INX/DCX/DAD/LXI.
func (s *State) rp(idx uint8) uint16 {
	switch idx {
	case 0:
		return s.BC()
	case 1:
		return s.DE()
	case 2:
		return s.HL()
	default:
		return s.SP
	}
}

func (s *State) setRP(idx uint8, v uint16) {
	switch idx {
	case 0:
		s.SetBC(v)
	case 1:
		s.SetDE(v)
	case 2:
		s.SetHL(v)
	default:
		s.SP = v
	}
}

// pushPopRP packs the register pair for PUSH/POP, where idx 3 means PSW
// (A and flags) rather than SP.
func (s *State) pushPopRP(idx uint8) uint16 {
	if idx == 3 {
		return PackPSW(s.A, s.F)
	}
	return s.rp(idx)
}

func (s *State) setPushPopRP(idx uint8, v uint16) {
	if idx == 3 {
		s.A, s.F = UnpackPSW(v)
		return
	}
	s.setRP(idx, v)
}

// condTrue evaluates one of the eight 3-bit condition codes against the
// current flags.
func (s *State) condTrue(ccc uint8) bool {
	switch ccc {
	case 0:
		return !s.Flag(FlagZ)
	case 1:
		return s.Flag(FlagZ)
	case 2:
		return !s.Flag(FlagCY)
	case 3:
		return s.Flag(FlagCY)
	case 4:
		return !s.Flag(FlagP)
	case 5:
		return s.Flag(FlagP)
	case 6:
		return !s.Flag(FlagS)
	default:
		return s.Flag(FlagS)
	}
}

// execALU dispatches the eight ALU operations (ADD/ADC/SUB/SBB/ANA/XRA/
// ORA/CMP) shared by the register and immediate opcode families.
func execALU(s *State, fff uint8, value uint8) {
	switch fff {
	case 0:
		s.A, s.F = Add8(s.A, value, 0)
	case 1:
		s.A, s.F = Add8(s.A, value, carryBit(s))
	case 2:
		s.A, s.F = Sub8(s.A, value, 0)
	case 3:
		s.A, s.F = Sub8(s.A, value, carryBit(s))
	case 4:
		s.A, s.F = And8(s.A, value)
	case 5:
		s.A, s.F = Xor8(s.A, value)
	case 6:
		s.A, s.F = Or8(s.A, value)
	default: // CMP: compute flags only, discard the result
		_, s.F = Sub8(s.A, value, 0)
	}
}

func carryBit(s *State) uint8 {
	if s.Flag(FlagCY) {
		return 1
	}
	return 0
}

func (s *State) push16(v uint16) {
	s.SP -= 2
	s.Mem.Write16(s.SP, v)
}

func (s *State) pop16() uint16 {
	v := s.Mem.Read16(s.SP)
	s.SP += 2
	return v
}

// execRST pushes the return address and jumps to the fixed vector for
// restart n (0-7), used both for the RST instruction and for interrupt
// injection. Returns the RST instruction's T-state cost.
func execRST(s *State, n uint8) int {
	s.push16(s.PC)
	s.PC = uint16(n&0x07) * 8
	return 11
}
