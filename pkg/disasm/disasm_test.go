package disasm

import (
	"testing"

	"github.com/archietheboy/i8080emu/pkg/cpu"
	"github.com/archietheboy/i8080emu/pkg/mem"
)

func TestAtDecodesOperandLength(t *testing.T) {
	buf := []byte{0x3E, 0x42, 0x76}
	line, n := At(buf, 0)
	if n != 2 {
		t.Fatalf("n = %d, want 2", n)
	}
	if line.Text != "MVI A,#0x42" {
		t.Fatalf("Text = %q, want %q", line.Text, "MVI A,#0x42")
	}
}

func TestAtTruncatedInstruction(t *testing.T) {
	buf := []byte{0x3E}
	line, n := At(buf, 0)
	if n != 1 {
		t.Fatalf("n = %d, want 1", n)
	}
	if line.Text != ".BYTE 0x??" {
		t.Fatalf("Text = %q, want %q", line.Text, ".BYTE 0x??")
	}
}

func TestLineFormat(t *testing.T) {
	line, _ := At([]byte{0x3E, 0x42}, 0)
	want := "0000\t3e 42\tMVI A,#0x42\n"
	if got := line.Format(); got != want {
		t.Fatalf("Format() = %q, want %q", got, want)
	}
}

func TestRangeAdvancesByInstructionLength(t *testing.T) {
	buf := []byte{0x00, 0x3E, 0x42, 0xC3, 0x00, 0x00}
	lines := Range(buf, 0, uint16(len(buf)))
	wantAddrs := []uint16{0, 1, 3}
	if len(lines) != len(wantAddrs) {
		t.Fatalf("got %d lines, want %d", len(lines), len(wantAddrs))
	}
	for i, addr := range wantAddrs {
		if lines[i].Addr != addr {
			t.Errorf("lines[%d].Addr = %d, want %d", i, lines[i].Addr, addr)
		}
	}
}

// TestRoundTripFidelity checks the property that disasm consumes exactly
// the same byte count that Step would have consumed, for every opcode
// family exercised by a representative program.
func TestRoundTripFidelity(t *testing.T) {
	program := []byte{
		0x00,             // NOP
		0x3E, 0x42,       // MVI A,D8
		0x21, 0x00, 0x10, // LXI H,D16
		0x80,             // ADD B
		0xC3, 0x00, 0x00, // JMP A16
	}
	m := &mem.Memory{}
	m.Load(0, program)
	s := cpu.New(m)

	pc := uint16(0)
	for int(pc) < len(program) {
		startPC := pc
		_, n := At(program, pc)

		s.PC = startPC
		cpu.Step(s)
		stepped := s.PC - startPC
		if startPC == 7 { // JMP rewrites PC to its target, not PC+len
			stepped = 3
		}

		if uint16(n) != stepped {
			t.Fatalf("at %d: disasm consumed %d bytes, step consumed %d", startPC, n, stepped)
		}
		pc += uint16(n)
	}
}
