package trace

import "testing"

func TestRecorderAddAndLen(t *testing.T) {
	r := NewRecorder()
	r.Add(Record{PC: 0, OpCode: 0x00, Text: "NOP", Cycles: 4})
	r.Add(Record{PC: 1, OpCode: 0x00, Text: "NOP", Cycles: 4})
	if r.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", r.Len())
	}
}

func TestRecorderHotPath(t *testing.T) {
	r := NewRecorder()
	r.Add(Record{PC: 0, Text: "NOP"})
	r.Add(Record{PC: 2, Text: "JNZ"})
	r.Add(Record{PC: 0, Text: "NOP"})
	r.Add(Record{PC: 2, Text: "JNZ"})
	r.Add(Record{PC: 0, Text: "NOP"})

	hot := r.HotPath()
	if len(hot) != 2 {
		t.Fatalf("got %d distinct PCs, want 2", len(hot))
	}
	if hot[0].PC != 0 || hot[0].Count != 3 {
		t.Fatalf("hottest = %+v, want PC=0 Count=3", hot[0])
	}
}

func TestRecordsReturnsCopy(t *testing.T) {
	r := NewRecorder()
	r.Add(Record{PC: 0})
	recs := r.Records()
	recs[0].PC = 99
	if r.Records()[0].PC != 0 {
		t.Fatal("mutating the returned slice should not affect the recorder")
	}
}
