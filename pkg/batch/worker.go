// Package batch runs many independent 8080 machines concurrently, each
// machine run start to finish by one of a fixed number of worker
// goroutines: a channel of tasks, atomic counters for progress, and a
// ticker-driven status line for long batches.
package batch

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/archietheboy/i8080emu/pkg/cpu"
	"github.com/archietheboy/i8080emu/pkg/mem"
)

// Task is one program to run to completion (HLT or MaxSteps, whichever
// comes first).
type Task struct {
	Name     string
	Program  []byte
	MaxSteps int
}

// Outcome is one Task's result.
type Outcome struct {
	Name         string
	Steps        int
	Halted       bool
	FinalA       uint8
	FinalPC      uint16
	TotalTStates int
}

// Pool runs a batch of Tasks across a fixed number of worker goroutines.
type Pool struct {
	NumWorkers int
	completed  atomic.Int64
	totalSteps atomic.Int64
}

// NewPool returns a Pool with numWorkers goroutines, or runtime.NumCPU()
// workers if numWorkers <= 0.
func NewPool(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &Pool{NumWorkers: numWorkers}
}

// Run executes every task, returning one Outcome per task in input order.
// A status line is printed every two seconds while verbose is true.
func (p *Pool) Run(tasks []Task, verbose bool) []Outcome {
	outcomes := make([]Outcome, len(tasks))
	type indexedTask struct {
		idx  int
		task Task
	}

	ch := make(chan indexedTask, len(tasks))
	for i, t := range tasks {
		ch <- indexedTask{i, t}
	}
	close(ch)

	done := make(chan struct{})
	if verbose {
		go p.reportProgress(int64(len(tasks)), done)
	}

	var wg sync.WaitGroup
	for i := 0; i < p.NumWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for it := range ch {
				outcomes[it.idx] = p.runOne(it.task)
				p.completed.Add(1)
			}
		}()
	}
	wg.Wait()
	close(done)

	return outcomes
}

func (p *Pool) reportProgress(total int64, done <-chan struct{}) {
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()
	start := time.Now()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			comp := p.completed.Load()
			fmt.Printf("  [%s] %d/%d machines done\n", time.Since(start).Round(time.Second), comp, total)
		}
	}
}

func (p *Pool) runOne(t Task) Outcome {
	m := &mem.Memory{}
	m.Load(0, t.Program)
	s := cpu.New(m)

	maxSteps := t.MaxSteps
	if maxSteps <= 0 {
		maxSteps = 1_000_000
	}

	var tstates int
	steps := 0
	for ; steps < maxSteps; steps++ {
		if s.Halted {
			break
		}
		tstates += cpu.Step(s)
	}
	p.totalSteps.Add(int64(steps))

	return Outcome{
		Name:         t.Name,
		Steps:        steps,
		Halted:       s.Halted,
		FinalA:       s.A,
		FinalPC:      s.PC,
		TotalTStates: tstates,
	}
}
