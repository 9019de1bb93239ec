package inst

import "testing"

// TestCatalogCompleteness verifies every opcode byte has a non-empty
// catalog entry and that Len/Cycles are non-zero, since 0x00 (NOP) is
// itself a valid entry and would otherwise mask an uninitialized slot.
func TestCatalogCompleteness(t *testing.T) {
	for op := 0; op < OpCodeCount; op++ {
		info := Catalog[OpCode(op)]
		if info.Mnemonic == "" {
			t.Errorf("opcode 0x%02X has no mnemonic", op)
		}
		if info.Len < 1 || info.Len > 3 {
			t.Errorf("opcode 0x%02X (%s) has invalid Len %d", op, info.Mnemonic, info.Len)
		}
		if info.Cycles == 0 {
			t.Errorf("opcode 0x%02X (%s) has 0 cycles", op, info.Mnemonic)
		}
	}
}

func TestMOVEncoding(t *testing.T) {
	cases := []struct {
		op   OpCode
		want string
	}{
		{0x40, "MOV B,B"},
		{0x47, "MOV B,A"},
		{0x7F, "MOV A,A"},
		{0x46, "MOV B,M"},
		{0x70, "MOV M,B"},
	}
	for _, c := range cases {
		if got := Catalog[c.op].Mnemonic; got != c.want {
			t.Errorf("Catalog[0x%02X].Mnemonic = %q, want %q", c.op, got, c.want)
		}
	}
}

func TestHLTNotMOVMM(t *testing.T) {
	if Catalog[0x76].Mnemonic != "HLT" {
		t.Errorf("0x76 = %q, want HLT", Catalog[0x76].Mnemonic)
	}
}

func TestALUEncoding(t *testing.T) {
	cases := []struct {
		op   OpCode
		want string
	}{
		{0x80, "ADD B"}, {0x87, "ADD A"},
		{0x90, "SUB B"}, {0xB8, "CMP B"}, {0xBF, "CMP A"},
		{0xC6, "ADI D8"}, {0xFE, "CPI D8"},
	}
	for _, c := range cases {
		if got := Catalog[c.op].Mnemonic; got != c.want {
			t.Errorf("Catalog[0x%02X].Mnemonic = %q, want %q", c.op, got, c.want)
		}
	}
}

func TestJumpCallReturnEncoding(t *testing.T) {
	cases := []struct {
		op   OpCode
		want string
	}{
		{0xC3, "JMP A16"}, {0xCD, "CALL A16"}, {0xC9, "RET"},
		{0xC2, "JNZ A16"}, {0xCA, "JZ A16"},
		{0xD2, "JNC A16"}, {0xDA, "JC A16"},
		{0xE2, "JPO A16"}, {0xEA, "JPE A16"},
		{0xF2, "JP A16"}, {0xFA, "JM A16"},
	}
	for _, c := range cases {
		if got := Catalog[c.op].Mnemonic; got != c.want {
			t.Errorf("Catalog[0x%02X].Mnemonic = %q, want %q", c.op, got, c.want)
		}
	}
}

func TestRSTEncoding(t *testing.T) {
	for n := 0; n < 8; n++ {
		op := OpCode(0xC7 | n<<3)
		want := "RST " + string(rune('0'+n))
		if got := Catalog[op].Mnemonic; got != want {
			t.Errorf("Catalog[0x%02X].Mnemonic = %q, want %q", op, got, want)
		}
		if Catalog[op].Len != 1 || Catalog[op].Cycles != 11 {
			t.Errorf("RST %d: Len/Cycles = %d/%d, want 1/11", n, Catalog[op].Len, Catalog[op].Cycles)
		}
	}
}

func TestUndocumentedAliases(t *testing.T) {
	nops := []OpCode{0x08, 0x10, 0x18, 0x20, 0x28, 0x30, 0x38}
	for _, op := range nops {
		if Catalog[op].Mnemonic != "NOP" {
			t.Errorf("Catalog[0x%02X].Mnemonic = %q, want NOP", op, Catalog[op].Mnemonic)
		}
	}
	if Catalog[0xCB].Mnemonic != "JMP A16" {
		t.Errorf("0xCB = %q, want JMP A16", Catalog[0xCB].Mnemonic)
	}
	if Catalog[0xD9].Mnemonic != "RET" {
		t.Errorf("0xD9 = %q, want RET", Catalog[0xD9].Mnemonic)
	}
	for _, op := range []OpCode{0xDD, 0xED, 0xFD} {
		if Catalog[op].Mnemonic != "CALL A16" {
			t.Errorf("Catalog[0x%02X].Mnemonic = %q, want CALL A16", op, Catalog[op].Mnemonic)
		}
	}
}

func TestByteSizeAndCycles(t *testing.T) {
	if ByteSize(0xC3) != 3 {
		t.Errorf("ByteSize(JMP) = %d, want 3", ByteSize(0xC3))
	}
	if Cycles(0xCD) != 17 {
		t.Errorf("Cycles(CALL) = %d, want 17", Cycles(0xCD))
	}
	if ByteSize(0x00) != 1 {
		t.Errorf("ByteSize(NOP) = %d, want 1", ByteSize(0x00))
	}
}

func TestFormat(t *testing.T) {
	cases := []struct {
		op      OpCode
		operand []byte
		want    string
	}{
		{0x3E, []byte{0x42}, "MVI A,#0x42"},
		{0xC3, []byte{0x00, 0x30}, "JMP $3000"},
		{0x01, []byte{0x34, 0x12}, "LXI B,$1234"},
		{0x00, nil, "NOP"},
	}
	for _, c := range cases {
		if got := Format(c.op, c.operand); got != c.want {
			t.Errorf("Format(0x%02X, %v) = %q, want %q", c.op, c.operand, got, c.want)
		}
	}
}
