// Package disasm renders 8080 machine code as assembly text, one
// instruction at a time or as a full listing over a byte range.
package disasm

import (
	"fmt"
	"strings"

	"github.com/archietheboy/i8080emu/pkg/inst"
)

// Line is one disassembled instruction: its address, raw encoded bytes,
// and rendered mnemonic text.
type Line struct {
	Addr uint16
	Raw  []byte
	Text string
}

// At decodes the single instruction starting at pc in buf and returns its
// Line plus the number of bytes it consumed. It never reads past len(buf);
// a truncated instruction at the end of the buffer is reported with
// whatever operand bytes are actually present and its Text falls back to
// ".BYTE 0x??" to signal the truncation, rather than panicking or reading
// out-of-bounds.
func At(buf []byte, pc uint16) (Line, int) {
	op := buf[pc]
	size := inst.ByteSize(op)

	avail := len(buf) - int(pc)
	if size > avail {
		size = avail
	}
	raw := buf[pc : int(pc)+size]

	if size < inst.ByteSize(op) {
		return Line{Addr: pc, Raw: raw, Text: ".BYTE 0x??"}, size
	}

	operand := raw[1:]
	return Line{Addr: pc, Raw: raw, Text: inst.Format(op, operand)}, size
}

// Format renders one Line in the fixed-width listing style: a lowercase hex
// address, the raw bytes as a lowercase hex dump, and the mnemonic, each
// field tab-separated with a trailing newline, e.g.
//
//	0000\t3e 42\tMVI A,#0x42\n
func (l Line) Format() string {
	var hexDump strings.Builder
	for i, b := range l.Raw {
		if i > 0 {
			hexDump.WriteByte(' ')
		}
		fmt.Fprintf(&hexDump, "%02x", b)
	}
	return fmt.Sprintf("%04x\t%s\t%s\n", l.Addr, hexDump.String(), l.Text)
}

// Range disassembles every instruction from start to end (exclusive),
// advancing by each instruction's own length so a listing never
// misaligns itself mid-operand the way a fixed stride would.
func Range(buf []byte, start, end uint16) []Line {
	var lines []Line
	pc := start
	for pc < end {
		line, n := At(buf, pc)
		lines = append(lines, line)
		if n == 0 {
			break
		}
		pc += uint16(n)
	}
	return lines
}
