// Package trace records executed instructions and persists full-machine
// snapshots, for --trace output and for resuming a long-running program
// from a checkpoint.
package trace

import (
	"sort"
	"sync"
)

// Record is one executed instruction: its address, opcode byte,
// disassembled text, and the T-state cost Step charged for it.
type Record struct {
	PC     uint16
	OpCode uint8
	Text   string
	Cycles int
}

// Recorder accumulates Records from a running machine. It is safe to share
// across goroutines driving independent machines that all log to the same
// recorder.
type Recorder struct {
	mu      sync.Mutex
	records []Record
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Add appends one executed-instruction record.
func (r *Recorder) Add(rec Record) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, rec)
}

// Records returns a copy of everything recorded so far.
func (r *Recorder) Records() []Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Record, len(r.records))
	copy(out, r.records)
	return out
}

// Len returns the number of records accumulated so far.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

// HotPath returns the distinct PCs visited, sorted by visit count
// descending, useful for spotting the loop a program spends its time in.
func (r *Recorder) HotPath() []PCCount {
	r.mu.Lock()
	defer r.mu.Unlock()

	counts := make(map[uint16]int)
	for _, rec := range r.records {
		counts[rec.PC]++
	}
	out := make([]PCCount, 0, len(counts))
	for pc, n := range counts {
		out = append(out, PCCount{PC: pc, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].PC < out[j].PC
	})
	return out
}

// PCCount pairs a program counter with how many times it was visited.
type PCCount struct {
	PC    uint16
	Count int
}
