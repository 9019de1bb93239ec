// Package propcheck exhaustively (or, where the input space is too large,
// densely sampled) sweeps the core's flag and arithmetic primitives to
// confirm they hold the invariants the 8080 Programmer's Manual specifies.
package propcheck

import "github.com/archietheboy/i8080emu/pkg/cpu"

// Failure describes one input on which a property did not hold.
type Failure struct {
	Property string
	Input    string
	Detail   string
}

// Report is the outcome of a Run: every property checked and every
// Failure found, in the order encountered.
type Report struct {
	Checked  int
	Failures []Failure
}

// OK reports whether every property held.
func (r Report) OK() bool { return len(r.Failures) == 0 }

// Run exhaustively sweeps every 8-bit value through the S/Z/P tables, every
// (a, b, carry-in) combination through Add8 and every (a, b) pair through
// And8, and checks the manual's DAA example, comparing each against the
// 8080 Programmer's Manual's definitions. It never touches Step or memory,
// so it completes in well under a second even at 256x256x2 coverage.
func Run() Report {
	var r Report
	check := func(name string, cond bool, input, detail string) {
		r.Checked++
		if !cond {
			r.Failures = append(r.Failures, Failure{Property: name, Input: input, Detail: detail})
		}
	}

	for x := 0; x < 256; x++ {
		v := uint8(x)

		// Parity: ZSPTable's P bit equals 1 iff popcount(v) is even.
		want := popcount(v)%2 == 0
		got := cpu.ZSPTable[v]&cpu.FlagP != 0
		check("parity", got == want, hex8(v), "ZSPTable parity bit disagrees with popcount")

		// Sign: S bit equals bit 7 of the value.
		wantS := v&0x80 != 0
		gotS := cpu.ZSPTable[v]&cpu.FlagS != 0
		check("sign", gotS == wantS, hex8(v), "ZSPTable sign bit disagrees with bit 7")

		// Zero: Z bit set iff value is 0.
		wantZ := v == 0
		gotZ := cpu.ZSPTable[v]&cpu.FlagZ != 0
		check("zero", gotZ == wantZ, hex8(v), "ZSPTable zero bit disagrees with v==0")
	}

	for a := 0; a < 256; a++ {
		for b := 0; b < 256; b++ {
			for _, carryIn := range []uint8{0, 1} {
				av, bv := uint8(a), uint8(b)
				result, flags := cpu.Add8(av, bv, carryIn)

				wantResult := uint8(int(av) + int(bv) + int(carryIn))
				check("add-result", result == wantResult, addInput(av, bv, carryIn), "Add8 result mismatch")

				wantCY := int(av)+int(bv)+int(carryIn) > 0xFF
				check("add-carry", (flags&cpu.FlagCY != 0) == wantCY, addInput(av, bv, carryIn), "Add8 carry mismatch")

				wantAC := (av&0xF)+(bv&0xF)+carryIn > 0xF
				check("add-auxcarry", (flags&cpu.FlagAC != 0) == wantAC, addInput(av, bv, carryIn), "Add8 aux-carry mismatch")

				wantS := result&0x80 != 0
				check("add-sign", (flags&cpu.FlagS != 0) == wantS, addInput(av, bv, carryIn), "Add8 sign mismatch")
			}
		}
	}

	// DAA: the worked example from the Programmer's Manual.
	result, flags := cpu.Daa(0x9B, false, false)
	check("daa-example", result == 0x01 && flags&cpu.FlagCY != 0, "A=0x9B,CY=0,AC=0", "DAA(0x9B) must yield 0x01 with CY set")

	// AND's AC rule: set from bit 3 of (a|b), not unconditionally 0.
	for a := 0; a < 256; a++ {
		for b := 0; b < 256; b++ {
			av, bv := uint8(a), uint8(b)
			_, flags := cpu.And8(av, bv)
			wantAC := (av|bv)&0x08 != 0
			check("and-auxcarry", (flags&cpu.FlagAC != 0) == wantAC, addInput(av, bv, 0), "And8 AC must come from bit 3 of (a|b)")
			if flags&cpu.FlagCY != 0 {
				r.Failures = append(r.Failures, Failure{Property: "and-carry", Input: addInput(av, bv, 0), Detail: "ANA/ANI must always clear CY"})
			}
			r.Checked++
		}
	}

	return r
}

func popcount(v uint8) int {
	n := 0
	for ; v != 0; v &= v - 1 {
		n++
	}
	return n
}

func hex8(v uint8) string {
	const hexDigits = "0123456789ABCDEF"
	return "0x" + string([]byte{hexDigits[v>>4], hexDigits[v&0x0F]})
}

func addInput(a, b, carry uint8) string {
	return "a=" + hex8(a) + " b=" + hex8(b) + " cy=" + hex8(carry)
}
