package cpu

import "github.com/archietheboy/i8080emu/pkg/mem"

// PortReader is the host's IN hook: read a byte from the given port.
// Unconnected ports should return 0.
type PortReader func(port uint8) uint8

// PortWriter is the host's OUT hook: write a byte to the given port.
// Unconnected ports should drop the write.
type PortWriter func(port uint8, value uint8)

// State is the complete 8080 processor state: registers, flags, stack
// pointer, program counter, interrupt-enable, halted, and a reference to
// the memory it runs against. One State is owned by one step loop; the
// executor mutates it in place.
type State struct {
	A, B, C, D, E, H, L uint8
	F                   uint8 // packed flags: S Z 0 AC 0 P 1 CY
	SP, PC              uint16

	INTE   bool // interrupt-enable
	Halted bool

	// interruptPending/interruptVector implement the "host may call
	// Interrupt(n) between steps" model of spec.md §5: Step checks this at
	// the top of the next fetch, before reading a new opcode.
	interruptPending bool
	interruptVector  uint8

	// eiDelay implements EI's one-instruction acceptance delay: EI sets
	// this instead of INTE directly, and the *next* Step call promotes it.
	eiDelay bool

	Mem *mem.Memory

	PortIn  PortReader
	PortOut PortWriter
}

// New constructs a fresh processor state: PC=0, all registers/flags
// zeroed, SP=0, INTE=0, halted=false, wired to the given memory. Both port
// hooks start as no-ops (IN reads 0, OUT is dropped) so Step never has to
// nil-check.
func New(m *mem.Memory) *State {
	s := &State{Mem: m}
	s.PortIn = func(uint8) uint8 { return 0 }
	s.PortOut = func(uint8, uint8) {}
	return s
}

// RequestInterrupt enqueues an RST n to be taken at the start of the next
// Step, if INTE is set at that time. This is the host's only interrupt
// entry point, callable between Step calls (or concurrently with the host
// reading state, but never concurrently with Step itself — see spec.md §5).
func (s *State) RequestInterrupt(n uint8) {
	s.interruptPending = true
	s.interruptVector = n & 0x07
}

// BC, DE, HL return the named register pair as a 16-bit value, high byte
// first per the 8080's pairing convention.
func (s *State) BC() uint16 { return uint16(s.B)<<8 | uint16(s.C) }
func (s *State) DE() uint16 { return uint16(s.D)<<8 | uint16(s.E) }
func (s *State) HL() uint16 { return uint16(s.H)<<8 | uint16(s.L) }

func (s *State) SetBC(v uint16) { s.B, s.C = uint8(v>>8), uint8(v) }
func (s *State) SetDE(v uint16) { s.D, s.E = uint8(v>>8), uint8(v) }
func (s *State) SetHL(v uint16) { s.H, s.L = uint8(v>>8), uint8(v) }

// Flag reports whether the given flag bit is set in F.
func (s *State) Flag(bit uint8) bool { return s.F&bit != 0 }

func (s *State) setFlag(bit uint8, v bool) {
	if v {
		s.F |= bit
	} else {
		s.F &^= bit
	}
}
