package trace

import (
	"encoding/gob"
	"os"

	"github.com/archietheboy/i8080emu/pkg/cpu"
	"github.com/archietheboy/i8080emu/pkg/mem"
)

// Snapshot is a resumable machine state: every register, flag, SP/PC,
// INTE/Halted, and the full 64 KiB memory image. A pending interrupt
// request and EI's one-instruction delay are not captured. Port hooks are
// not part of a Snapshot; the host must rewire PortIn/PortOut after Restore.
type Snapshot struct {
	A, B, C, D, E, H, L uint8
	F                   uint8
	SP, PC              uint16
	INTE                bool
	Halted              bool
	Memory              []byte
}

// Save captures s into a Snapshot.
func Save(s *cpu.State) Snapshot {
	memCopy := make([]byte, len(s.Mem.Bytes()))
	copy(memCopy, s.Mem.Bytes())
	return Snapshot{
		A: s.A, B: s.B, C: s.C, D: s.D, E: s.E, H: s.H, L: s.L,
		F:      s.F,
		SP:     s.SP,
		PC:     s.PC,
		INTE:   s.INTE,
		Halted: s.Halted,
		Memory: memCopy,
	}
}

// Restore builds a fresh *cpu.State from a Snapshot. Port hooks are left
// at New's no-op defaults; the caller wires them before resuming Step.
func Restore(snap Snapshot) *cpu.State {
	m := &mem.Memory{}
	m.Load(0, snap.Memory)
	s := cpu.New(m)
	s.A, s.B, s.C, s.D, s.E, s.H, s.L = snap.A, snap.B, snap.C, snap.D, snap.E, snap.H, snap.L
	s.F = snap.F
	s.SP, s.PC = snap.SP, snap.PC
	s.INTE = snap.INTE
	s.Halted = snap.Halted
	return s
}

func init() {
	gob.Register(Snapshot{})
}

// SaveToFile writes a Snapshot to path via encoding/gob so a machine can be
// resumed later without replaying every instruction from the start.
func SaveToFile(path string, snap Snapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gob.NewEncoder(f).Encode(snap)
}

// LoadFromFile reads a Snapshot previously written by SaveToFile.
func LoadFromFile(path string) (Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return Snapshot{}, err
	}
	defer f.Close()
	var snap Snapshot
	if err := gob.NewDecoder(f).Decode(&snap); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}
