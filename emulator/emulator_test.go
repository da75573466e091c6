package emulator

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/riscy/config"
	"github.com/ezrec/riscy/cpu"
	"github.com/ezrec/riscy/image"
)

type recorder struct {
	steps []cpu.Step
	err   error
}

func (rec *recorder) Record(step cpu.Step) error {
	rec.steps = append(rec.steps, step)
	return rec.err
}

func assemble(t *testing.T, cfg config.Config, program []string) (prog *cpu.Program) {
	asm := &cpu.Assembler{Config: cfg}
	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	if err != nil {
		t.Fatal(err)
	}
	return
}

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator(config.Default())

	assert.False(emu.Config.Verbose)
	assert.NotNil(emu.Cpu)
	assert.Equal(cpu.STATE_HALTED, emu.Cpu.State)
	assert.ErrorIs(emu.Reset(), ErrImageMissing)

	done, err := emu.Tick()
	assert.NoError(err)
	assert.True(done)
}

func TestEmulatorRun(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"# sum 1..n",
		"n:      .fill 4",
		"        lw r2, r0, 1",
		"loop:   add r1, r1, r2",
		"        addi r2, r2, -1",
		"        beq r2, r0, 1",
		"        beq r0, r0, -4",
		"        sw r1, r0, 1",
	}

	cfg := config.Default()
	prog := assemble(t, cfg, program)

	emu := NewEmulator(cfg)
	rec := &recorder{}
	emu.Tracer = rec
	assert.NoError(emu.Load(prog))
	assert.NoError(emu.Reset())

	assert.Equal(3, emu.LineNo())
	assert.Equal(prog.Text[0], emu.Code())

	assert.NoError(emu.Run())

	assert.Equal(uint16(10), emu.Cpu.Register[1])
	assert.Equal(uint16(10), emu.Cpu.Memory[1])
	assert.Equal(uint64(len(rec.steps)), emu.Ticks())
	assert.Equal(uint64(17), emu.Ticks())
	assert.Equal(uint16(3), rec.steps[0].Pc)

	done, err := emu.Tick()
	assert.NoError(err)
	assert.True(done)
}

func TestEmulatorLineNo(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"addi r1, r0, 1",
		"# comment",
		"addi r2, r0, 2",
		".fill 7",
		"add r3, r1, r2",
	}

	prog := assemble(t, config.Default(), program)
	emu := NewEmulator(config.Default())
	assert.NoError(emu.Load(prog))
	assert.NoError(emu.Reset())

	lines := []int{}
	for {
		lines = append(lines, emu.LineNo())
		done, err := emu.Tick()
		assert.NoError(err)
		if done {
			break
		}
	}

	assert.Equal([]int{1, 3, 5}, lines)
	assert.Equal(uint16(3), emu.Cpu.Register[3])
	assert.Equal(0, emu.LineNo())
}

func TestEmulatorImage(t *testing.T) {
	assert := assert.New(t)

	img, err := image.New(nil, []uint16{uint16(cpu.MakeCodeRI(cpu.OP_LUI, 1, 1))})
	assert.NoError(err)

	emu := NewEmulator(config.Default())
	emu.Image = img
	assert.NoError(emu.Reset())
	assert.Equal(0, emu.LineNo())
	assert.NoError(emu.Run())
	assert.Equal(uint16(64), emu.Cpu.Register[1])

	// Reset reloads the image.
	emu.Cpu.Register[1] = 0
	assert.NoError(emu.Reset())
	assert.Equal(cpu.STATE_RUNNING, emu.Cpu.State)
	assert.Equal(uint64(0), emu.Ticks())
}

func TestEmulatorTickLimit(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"spin: beq r0, r0, -1",
		"add r0, r0, r0",
	}

	cfg := config.Default()
	cfg.TickLimit = 10
	emu := NewEmulator(cfg)
	assert.NoError(emu.Load(assemble(t, cfg, program)))
	assert.NoError(emu.Reset())

	err := emu.Run()
	assert.ErrorIs(err, ErrTickLimit)
	assert.Equal(uint64(10), emu.Ticks())

	var runtime *ErrRuntime
	if assert.True(errors.As(err, &runtime)) {
		assert.Equal(1, runtime.LineNo)
		assert.Equal(uint16(2), runtime.Pc)
	}
}

func TestEmulatorTraceError(t *testing.T) {
	assert := assert.New(t)

	errTrace := errors.New("disk full")

	cfg := config.Default()
	emu := NewEmulator(cfg)
	emu.Tracer = &recorder{err: errTrace}
	assert.NoError(emu.Load(assemble(t, cfg, []string{"add r1, r0, r0"})))
	assert.NoError(emu.Reset())

	_, err := emu.Tick()
	assert.ErrorIs(err, errTrace)

	var runtime *ErrRuntime
	if assert.True(errors.As(err, &runtime)) {
		assert.Equal(1, runtime.LineNo)
		assert.Equal(uint16(2), runtime.Pc)
	}
}
