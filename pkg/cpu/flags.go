package cpu

// 8080 flag bit positions within the packed F byte.
// Unused bits are fixed constants per the Programmer's Manual: bit 1 is
// always 1, bits 3 and 5 are always 0. PackPSW/UnpackPSW enforce this at
// the boundary instead of trusting whatever bytes came off the stack.
const (
	FlagCY uint8 = 0x01 // Carry
	flagB1 uint8 = 0x02 // always 1
	FlagP  uint8 = 0x04 // Parity (even)
	flagB3 uint8 = 0x08 // always 0
	FlagAC uint8 = 0x10 // Auxiliary/half carry
	flagB5 uint8 = 0x20 // always 0
	FlagZ  uint8 = 0x40 // Zero
	FlagS  uint8 = 0x80 // Sign
)

// Precomputed S/Z/P tables: each is a pure function of the 8-bit result, so
// ALU ops that only ever need Z/S/P from their output can look it up instead
// of recomputing popcount and bit 7 every call.
var (
	zsTable     [256]uint8 // Z, S only
	ParityTable [256]uint8 // P only
	ZSPTable    [256]uint8 // Z, S, P combined
)

func init() {
	for i := 0; i < 256; i++ {
		v := uint8(i)
		var zs uint8
		if v == 0 {
			zs |= FlagZ
		}
		if v&0x80 != 0 {
			zs |= FlagS
		}
		zsTable[i] = zs

		bits := 0
		for b := v; b != 0; b &= b - 1 {
			bits++
		}
		if bits%2 == 0 {
			ParityTable[i] = FlagP
		}

		ZSPTable[i] = zs | ParityTable[i]
	}
}

// Add8 computes the 8080 ADD/ADC primitive: result and the five flags it
// affects, per the 8080 Programmer's Manual.
func Add8(a, b, carryIn uint8) (result uint8, flags uint8) {
	wide := uint16(a) + uint16(b) + uint16(carryIn)
	result = uint8(wide)
	flags = ZSPTable[result]
	if wide > 0xFF {
		flags |= FlagCY
	}
	if (a&0xF)+(b&0xF)+carryIn > 0xF {
		flags |= FlagAC
	}
	return result, flags
}

// Sub8 computes the 8080 SUB/SBB/CMP primitive.
func Sub8(a, b, borrowIn uint8) (result uint8, flags uint8) {
	wide := int16(a) - int16(b) - int16(borrowIn)
	result = uint8(wide)
	flags = ZSPTable[result]
	if uint16(a) < uint16(b)+uint16(borrowIn) {
		flags |= FlagCY
	}
	if a&0xF < (b&0xF)+borrowIn {
		flags |= FlagAC
	}
	return result, flags
}

// Inr computes INR r: result and Z/S/P/AC. CY is not touched by INR — the
// caller must preserve the incoming carry bit itself.
func Inr(x uint8) (result uint8, flags uint8) {
	result = x + 1
	flags = ZSPTable[result]
	if x&0xF == 0xF {
		flags |= FlagAC
	}
	return result, flags
}

// Dcr computes DCR r: result and Z/S/P/AC. CY is not touched.
// AC is set when there is no borrow out of bit 4, i.e. when the low nibble
// of x is non-zero (the 8080 manual's definition — the source repo this
// spec was distilled from inverts this and is wrong).
func Dcr(x uint8) (result uint8, flags uint8) {
	result = x - 1
	flags = ZSPTable[result]
	if x&0xF != 0 {
		flags |= FlagAC
	}
	return result, flags
}

// And8 computes ANA/ANI: result and flags. CY is always cleared; AC is set
// from bit 3 of (a | b), per the 8080 manual (not unconditionally 0).
func And8(a, b uint8) (result uint8, flags uint8) {
	result = a & b
	flags = ZSPTable[result]
	if (a|b)&0x08 != 0 {
		flags |= FlagAC
	}
	return result, flags
}

// Or8 computes ORA/ORI: result and flags. CY and AC are always cleared.
func Or8(a, b uint8) (result uint8, flags uint8) {
	result = a | b
	return result, ZSPTable[result]
}

// Xor8 computes XRA/XRI: result and flags. CY and AC are always cleared.
func Xor8(a, b uint8) (result uint8, flags uint8) {
	result = a ^ b
	return result, ZSPTable[result]
}

// Dad computes DAD rp: 16-bit HL + rp. Only CY is affected; no other flag
// changes (Z/S/P/AC are left exactly as they were).
func Dad(hl, rp uint16) (result uint16, carry bool) {
	sum := uint32(hl) + uint32(rp)
	return uint16(sum), sum > 0xFFFF
}

// Rlc rotates A left circularly: CY becomes the old bit 7.
func Rlc(a uint8) (result uint8, carry bool) {
	carry = a&0x80 != 0
	result = (a << 1) | (a >> 7)
	return result, carry
}

// Rrc rotates A right circularly: CY becomes the old bit 0.
func Rrc(a uint8) (result uint8, carry bool) {
	carry = a&0x01 != 0
	result = (a >> 1) | (a << 7)
	return result, carry
}

// Ral rotates A left through carry: new bit 0 is the old CY, CY becomes
// the old bit 7.
func Ral(a uint8, cy bool) (result uint8, carry bool) {
	carry = a&0x80 != 0
	var in uint8
	if cy {
		in = 1
	}
	result = (a << 1) | in
	return result, carry
}

// Rar rotates A right through carry: new bit 7 is the old CY, CY becomes
// the old bit 0.
func Rar(a uint8, cy bool) (result uint8, carry bool) {
	carry = a&0x01 != 0
	var in uint8
	if cy {
		in = 0x80
	}
	result = (a >> 1) | in
	return result, carry
}

// Daa performs the two-step BCD adjustment described in the 8080
// Programmer's Manual. a/cy/ac are the accumulator and incoming flags;
// it returns the adjusted accumulator and the new CY/AC/Z/S/P flags.
func Daa(a uint8, cy, ac bool) (result uint8, flags uint8) {
	result = a
	newCY := cy
	newAC := ac

	// Step 1: low nibble.
	if result&0x0F > 9 || ac {
		newAC = (result & 0x0F) > 0x09
		result += 6
	} else {
		newAC = false
	}

	// Step 2: high nibble. Evaluated against the (possibly just-adjusted)
	// accumulator, per the manual; CY can only be set here, never cleared.
	if result>>4 > 9 || newCY {
		if result > 0xFF-0x60 {
			newCY = true
		}
		result += 0x60
	}

	flags = ZSPTable[result]
	if newCY {
		flags |= FlagCY
	}
	if newAC {
		flags |= FlagAC
	}
	return result, flags
}

// PackPSW packs the accumulator and flags into the 16-bit Processor Status
// Word used by PUSH PSW: high byte A, low byte flags with the fixed bits
// forced to their documented values (never trusted from a caller-supplied
// flags byte).
func PackPSW(a, flags uint8) uint16 {
	f := (flags &^ (flagB3 | flagB5)) | flagB1
	return uint16(a)<<8 | uint16(f)
}

// UnpackPSW splits a 16-bit PSW (as popped by POP PSW) back into A and a
// normalized flags byte.
func UnpackPSW(psw uint16) (a, flags uint8) {
	a = uint8(psw >> 8)
	flags = (uint8(psw) &^ (flagB3 | flagB5)) | flagB1
	return a, flags
}
