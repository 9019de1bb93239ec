package trace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/archietheboy/i8080emu/pkg/cpu"
	"github.com/archietheboy/i8080emu/pkg/mem"
)

func TestSaveRestoreRoundTrip(t *testing.T) {
	m := &mem.Memory{}
	m.Load(0, []byte{0x3E, 0x42, 0x76})
	s := cpu.New(m)
	cpu.Step(s)

	snap := Save(s)
	restored := Restore(snap)

	if restored.A != s.A || restored.PC != s.PC {
		t.Fatalf("restored A=0x%02X PC=%d, want A=0x%02X PC=%d", restored.A, restored.PC, s.A, s.PC)
	}
	if restored.Mem.Read8(0) != 0x3E {
		t.Fatal("restored memory image does not match original")
	}
}

func TestSnapshotFileRoundTrip(t *testing.T) {
	m := &mem.Memory{}
	m.Load(0, []byte{0x00})
	s := cpu.New(m)
	snap := Save(s)

	path := filepath.Join(t.TempDir(), "snap.gob")
	if err := SaveToFile(path, snap); err != nil {
		t.Fatalf("SaveToFile: %v", err)
	}
	loaded, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if loaded.PC != snap.PC || len(loaded.Memory) != len(snap.Memory) {
		t.Fatalf("loaded snapshot does not match saved one")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(os.TempDir(), "definitely-does-not-exist.gob"))
	if err == nil {
		t.Fatal("expected an error loading a missing checkpoint")
	}
}
