// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"errors"
	"fmt"

	"github.com/ezrec/riscy/image"
)

// State is the run state of the CPU.
type State int

const (
	STATE_RUNNING = State(0) // Fetching and executing instructions.
	STATE_HALTED  = State(1) // Stopped; Tick() returns ErrHalted.
)

func (state State) String() string {
	switch state {
	case STATE_RUNNING:
		return "running"
	case STATE_HALTED:
		return "halted"
	default:
		return fmt.Sprintf("State(%d)", int(state))
	}
}

// Step records a single executed instruction.
type Step struct {
	Tick     uint64    // Cycle number, starting at 1.
	Pc       uint16    // Address the instruction was fetched from.
	Code     Code      // Instruction word.
	Fields   Fields    // Decoded instruction word.
	Register [8]uint16 // Registers after execution.
}

// Cpu is the riscy virtual machine: eight 16-bit registers and 65536 words
// of memory holding both code and data.
type Cpu struct {
	Verbose  bool                      // Set to enable verbose logging.
	Register [8]uint16                 // Register 0 always reads as zero.
	Memory   [image.MEMORY_SIZE]uint16 // Unified code and data memory.
	Pc       uint16                    // Address of the next instruction.
	State    State                     // Run state.
	Ticks    uint64                    // Cycles executed since Load().

	end int // Address one past the last instruction.
}

// NewCpu creates a halted CPU with no program loaded.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{State: STATE_HALTED}
	return
}

// Load copies a program image into memory at address 0, clears the
// registers, and starts execution at the first instruction.
func (cpu *Cpu) Load(img *image.Image) {
	cpu.Memory = [image.MEMORY_SIZE]uint16{}
	n := 0
	for word := range img.Words() {
		cpu.Memory[n] = word
		n++
	}

	cpu.Register = [8]uint16{}
	cpu.Pc = uint16(img.TextStart())
	cpu.end = img.End()
	cpu.Ticks = 0
	cpu.State = STATE_RUNNING

	if cpu.Verbose {
		log.Infof("load: %d words, text 0x%04x..0x%04x", img.Len(), img.TextStart(), img.End())
	}
}

// Tick runs one fetch, decode and execute cycle. A cycle starting at the
// end of the text segment halts without executing anything, and step is
// left empty.
func (cpu *Cpu) Tick() (step Step, err error) {
	if cpu.State == STATE_HALTED {
		err = ErrHalted
		return
	}

	if int(cpu.Pc) == cpu.end {
		cpu.State = STATE_HALTED
		return
	}

	pc := cpu.Pc
	code := Code(cpu.Memory[pc])
	cpu.Pc++
	last := int(pc)+1 == cpu.end

	if cpu.Verbose {
		log.Debugf("%04x: %v", pc, code)
	}

	err = cpu.Execute(code)
	cpu.Ticks++

	if err != nil || last {
		cpu.State = STATE_HALTED
	}

	step = Step{
		Tick:     cpu.Ticks,
		Pc:       pc,
		Code:     code,
		Fields:   code.Decode(),
		Register: cpu.Register,
	}

	return
}

// Execute a single instruction, with the program counter already advanced
// past it.
func (cpu *Cpu) Execute(code Code) (err error) {
	fields := code.Decode()

	cpu.Register[0] = 0
	reg := func(n int) uint16 {
		return cpu.Register[n]
	}
	set := func(n int, value uint16) {
		if n != 0 {
			cpu.Register[n] = value
		}
	}
	simm := uint16(fields.Simm)

	switch fields.Opcode {
	case OP_ADD:
		set(fields.RegA, reg(fields.RegB)+reg(fields.RegC))
	case OP_ADDI:
		set(fields.RegA, reg(fields.RegB)+simm)
	case OP_NAND:
		set(fields.RegA, ^(reg(fields.RegB) & reg(fields.RegC)))
	case OP_LUI:
		set(fields.RegA, uint16(fields.Uimm<<6))
	case OP_SW:
		cpu.Memory[reg(fields.RegB)+simm] = reg(fields.RegA)
	case OP_LW:
		set(fields.RegA, cpu.Memory[reg(fields.RegB)+simm])
	case OP_BEQ:
		if reg(fields.RegA) == reg(fields.RegB) {
			cpu.Pc += simm
		}
	case OP_JALR:
		target := reg(fields.RegB)
		set(fields.RegA, cpu.Pc)
		cpu.Pc = target
	default:
		err = errors.Join(ErrOpcodeRuntime, ErrOpcode(code))
	}

	return
}

// String returns the register dump of the CPU.
func (cpu *Cpu) String() (text string) {
	text += fmt.Sprintf("% 5s: 0x%04x\n", "pc", cpu.Pc)
	text += fmt.Sprintf("% 5s: %v\n", "state", cpu.State)
	text += fmt.Sprintf("% 5s: %d\n", "ticks", cpu.Ticks)
	for n, val := range cpu.Register {
		text += fmt.Sprintf("% 5s: 0x%04x (%d)\n", fmt.Sprintf("r%d", n), val, int16(val))
	}

	return
}
