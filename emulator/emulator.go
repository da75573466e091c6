// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"fmt"

	"github.com/tliron/commonlog"

	"github.com/ezrec/riscy/config"
	"github.com/ezrec/riscy/cpu"
	"github.com/ezrec/riscy/image"
)

var log = commonlog.GetLogger("riscy.emulator")

// Tracer receives every executed instruction.
type Tracer interface {
	Record(step cpu.Step) error
}

// Emulator state. CPU + program image + optional tracer.
type Emulator struct {
	Config   config.Config // Verbosity and tick limit.
	*cpu.Cpu               // Reference to the CPU simulation.
	Program  *cpu.Program  // Program listing, or nil if loaded from an image file.
	Image    *image.Image  // Program image to run.
	Tracer   Tracer        // If set, records every step.
}

// NewEmulator creates a new emulator.
func NewEmulator(cfg config.Config) (emu *Emulator) {
	emu = &Emulator{
		Config: cfg,
		Cpu:    cpu.NewCpu(),
	}

	return
}

// Load sets an assembled program as the program to run.
func (emu *Emulator) Load(prog *cpu.Program) (err error) {
	img, err := prog.Image()
	if err != nil {
		return
	}

	emu.Program = prog
	emu.Image = img

	return
}

// Reset loads the program image into the CPU.
func (emu *Emulator) Reset() (err error) {
	if emu.Image == nil {
		err = ErrImageMissing
		return
	}

	emu.Cpu.Verbose = emu.Config.Verbose
	emu.Cpu.Load(emu.Image)

	return
}

// Ticks returns the total ticks since a reset.
func (emu *Emulator) Ticks() uint64 {
	return emu.Cpu.Ticks
}

// Code returns the current instruction code.
func (emu *Emulator) Code() cpu.Code {
	return cpu.Code(emu.Cpu.Memory[emu.Cpu.Pc])
}

// LineNo returns the current line number for the executing instruction.
func (emu *Emulator) LineNo() int {
	return emu.lineAt(emu.Cpu.Pc)
}

func (emu *Emulator) lineAt(pc uint16) int {
	if emu.Program == nil {
		return 0
	}

	line, ok := emu.Program.Debug(pc)
	if !ok {
		return 0
	}

	return line.LineNo
}

// Tick performs a single tick of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	if emu.Cpu.State == cpu.STATE_HALTED {
		done = true
		return
	}

	pc := emu.Cpu.Pc
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: emu.lineAt(pc), Pc: pc, Err: err}
		}
	}()

	step, err := emu.Cpu.Tick()
	if err != nil {
		return
	}

	if step.Tick != 0 && emu.Tracer != nil {
		err = emu.Tracer.Record(step)
		if err != nil {
			err = fmt.Errorf("trace: %w", err)
			return
		}
	}

	done = emu.Cpu.State == cpu.STATE_HALTED
	if done && emu.Config.Verbose {
		log.Infof("halted at pc 0x%04x after %d ticks", emu.Cpu.Pc, emu.Cpu.Ticks)
	}

	return
}

// Run ticks the emulator until the program halts, or the configured tick
// limit is reached.
func (emu *Emulator) Run() (err error) {
	for {
		var done bool
		done, err = emu.Tick()
		if err != nil || done {
			return
		}

		limit := emu.Config.TickLimit
		if limit > 0 && emu.Ticks() >= uint64(limit) {
			err = &ErrRuntime{LineNo: emu.LineNo(), Pc: emu.Cpu.Pc, Err: ErrTickLimit}
			return
		}
	}
}
