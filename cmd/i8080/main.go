package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/archietheboy/i8080emu/pkg/batch"
	"github.com/archietheboy/i8080emu/pkg/cpu"
	"github.com/archietheboy/i8080emu/pkg/disasm"
	"github.com/archietheboy/i8080emu/pkg/mem"
	"github.com/archietheboy/i8080emu/pkg/propcheck"
	"github.com/archietheboy/i8080emu/pkg/trace"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "i8080",
		Short: "Intel 8080 emulator core — run, disassemble, and self-check 8080 binaries",
	}

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newDisasmCmd())
	rootCmd.AddCommand(newSelftestCmd())
	rootCmd.AddCommand(newBatchCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRunCmd() *cobra.Command {
	var loadAddr uint16
	var maxSteps int
	var traceFlag bool
	var verbose bool
	var cpmFlag bool
	var snapshotOut string

	cmd := &cobra.Command{
		Use:   "run <file>",
		Short: "Load a binary image and run it to completion (HLT or --max-steps)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return errors.Wrapf(err, "reading %s", args[0])
			}

			m := &mem.Memory{}
			m.Load(loadAddr, data)
			s := cpu.New(m)
			s.PC = loadAddr

			var rec *trace.Recorder
			if traceFlag {
				rec = trace.NewRecorder()
			}

			steps := 0
			limit := maxSteps
			if limit <= 0 {
				limit = 10_000_000
			}
			for ; steps < limit && !s.Halted; steps++ {
				if cpmFlag && s.PC == cpmBDOSEntry {
					cpmBDOSCall(s)
					continue
				}
				pc := s.PC
				op := s.Mem.Read8(pc)
				cycles := cpu.Step(s)
				if rec != nil {
					line, _ := disasm.At(m.Bytes(), pc)
					rec.Add(trace.Record{PC: pc, OpCode: op, Text: line.Text, Cycles: cycles})
				}
			}

			if verbose || traceFlag {
				fmt.Printf("steps=%d halted=%v PC=0x%04X A=0x%02X SP=0x%04X\n", steps, s.Halted, s.PC, s.A, s.SP)
			}
			if traceFlag {
				for _, hp := range rec.HotPath()[:min(5, len(rec.HotPath()))] {
					fmt.Printf("  hot PC=0x%04X visits=%d\n", hp.PC, hp.Count)
				}
			}
			if snapshotOut != "" {
				if err := trace.SaveToFile(snapshotOut, trace.Save(s)); err != nil {
					return errors.Wrapf(err, "writing snapshot to %s", snapshotOut)
				}
			}
			return nil
		},
	}

	cmd.Flags().Uint16Var(&loadAddr, "load-addr", 0, "address to load the binary image at")
	cmd.Flags().IntVar(&maxSteps, "max-steps", 0, "stop after this many instructions even if not halted (0 = 10,000,000)")
	cmd.Flags().BoolVar(&traceFlag, "trace", false, "record every step and print a hot-path summary")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print final machine state")
	cmd.Flags().BoolVar(&cpmFlag, "cpm", false, "install a CP/M BDOS console-print stub at 0x0005 for classic exerciser ROMs")
	cmd.Flags().StringVar(&snapshotOut, "snapshot-out", "", "write a resumable machine snapshot to this path on exit")

	return cmd
}

func newDisasmCmd() *cobra.Command {
	var start, end uint16
	var hasEnd bool

	cmd := &cobra.Command{
		Use:   "disasm <file>",
		Short: "Disassemble a binary image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return errors.Wrapf(err, "reading %s", args[0])
			}
			stop := end
			if !hasEnd {
				stop = uint16(len(data))
			}
			for _, line := range disasm.Range(data, start, stop) {
				fmt.Print(line.Format())
			}
			return nil
		},
	}

	cmd.Flags().Uint16Var(&start, "start", 0, "first address to disassemble")
	cmd.Flags().Uint16Var(&end, "end", 0, "last address (exclusive) to disassemble; defaults to end of file")
	cmd.PreRun = func(cmd *cobra.Command, args []string) {
		hasEnd = cmd.Flags().Changed("end")
	}
	return cmd
}

func newSelftestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "selftest",
		Short: "Exhaustively check the core's flag and arithmetic primitives against the 8080 manual",
		RunE: func(cmd *cobra.Command, args []string) error {
			report := propcheck.Run()
			fmt.Printf("checked %d properties\n", report.Checked)
			for _, f := range report.Failures {
				fmt.Printf("  FAIL [%s] input=%s: %s\n", f.Property, f.Input, f.Detail)
			}
			if !report.OK() {
				return fmt.Errorf("%d properties failed", len(report.Failures))
			}
			fmt.Println("all properties hold")
			return nil
		},
	}
}

func newBatchCmd() *cobra.Command {
	var numWorkers int
	var maxSteps int
	var verbose bool

	cmd := &cobra.Command{
		Use:   "batch <file>...",
		Short: "Run several binary images concurrently and report their outcomes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks := make([]batch.Task, len(args))
			for i, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return errors.Wrapf(err, "reading %s", path)
				}
				tasks[i] = batch.Task{Name: path, Program: data, MaxSteps: maxSteps}
			}

			pool := batch.NewPool(numWorkers)
			outcomes := pool.Run(tasks, verbose)

			for _, o := range outcomes {
				fmt.Printf("%-30s steps=%-8d halted=%-5v A=0x%02X PC=0x%04X T-states=%d\n",
					o.Name, o.Steps, o.Halted, o.FinalA, o.FinalPC, o.TotalTStates)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&numWorkers, "workers", "j", runtime.NumCPU(), "number of concurrent machines")
	cmd.Flags().IntVar(&maxSteps, "max-steps", 0, "per-machine step ceiling (0 = 1,000,000)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print periodic progress")

	return cmd
}

// cpmBDOSEntry is the fixed CP/M BDOS entry point that exerciser ROMs
// CALL to print console output. It is never written into memory as an
// opcode; --cpm has the run loop intercept PC reaching this address
// instead of stepping the core into it, the way a real BDOS would be a
// separate program the CPU jumps into rather than a core instruction.
const cpmBDOSEntry = 0x0005

// cpmBDOSCall emulates the two BDOS console functions classic 8080
// exerciser ROMs rely on (C=2 print character, C=9 print $-terminated
// string) and then returns to the caller, the way the real BDOS would
// after CALL 5. This is purely a host convenience for running ROMs built
// against the CP/M convention; it has no effect on cpu.Step semantics.
func cpmBDOSCall(s *cpu.State) {
	switch s.C {
	case 2:
		fmt.Print(string(rune(s.E)))
	case 9:
		for addr := s.DE(); s.Mem.Read8(addr) != '$'; addr++ {
			fmt.Print(string(rune(s.Mem.Read8(addr))))
		}
	}
	ret := s.Mem.Read16(s.SP)
	s.SP += 2
	s.PC = ret
}
