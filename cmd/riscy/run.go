package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/pkg/term"
	"github.com/spf13/cobra"

	"github.com/ezrec/riscy/cpu"
	"github.com/ezrec/riscy/emulator"
	"github.com/ezrec/riscy/image"
	"github.com/ezrec/riscy/trace"
)

var (
	runFormat string
	runSource bool
	runStep   bool
)

var errQuit = errors.New("quit")

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run imageFile",
	Short: "Run a program image on the virtual machine",
	Long: `Run loads a program image, '-' for stdin, and executes its text
segment until the last instruction has run. The registers and the data
segment are then printed.

With --source the file is assembled first, so that runtime errors report
the source line.
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		if cmd.Flags().Changed("tick-limit") {
			cfg.TickLimit, err = cmd.Flags().GetInt("tick-limit")
			if err != nil {
				return
			}
		}
		if cmd.Flags().Changed("trace") {
			cfg.Trace = cmd.Flag("trace").Value.String()
		}
		err = cfg.Validate()
		if err != nil {
			return
		}

		prog, img, err := load(cmd, args[0], runSource, runFormat)
		if err != nil {
			return
		}

		emu := emulator.NewEmulator(cfg)
		emu.Program = prog
		emu.Image = img

		if len(cfg.Trace) != 0 {
			var rec *trace.Recorder
			rec, err = trace.Open(cfg.Trace)
			if err != nil {
				return
			}
			defer rec.Close()
			emu.Tracer = rec
		}

		err = emu.Reset()
		if err != nil {
			return
		}

		if runStep {
			err = step(cmd.OutOrStdout(), emu)
		} else {
			err = emu.Run()
		}
		if errors.Is(err, errQuit) {
			err = nil
		}

		out := cmd.OutOrStdout()
		fmt.Fprint(out, emu.Cpu.String())
		dumpData(out, emu.Cpu, img)

		return
	},
}

// dumpData prints the data segment as it is in memory.
func dumpData(w io.Writer, cp *cpu.Cpu, img *image.Image) {
	for n := range img.Data {
		address := image.DATA_START + n
		value := cp.Memory[address]
		fmt.Fprintf(w, "0x%04x: 0x%04x (%d)\n", address, value, int16(value))
	}
}

// step runs the emulator one instruction per key press. 'q' quits, and
// 'c' continues without stopping.
func step(w io.Writer, emu *emulator.Emulator) (err error) {
	tty, err := term.Open("/dev/tty", term.CBreakMode)
	if err != nil {
		return
	}
	defer tty.Close()
	defer tty.Restore()

	key := make([]byte, 1)
	for {
		fmt.Fprintf(w, "%04x: %-24v line %d> ", emu.Cpu.Pc, emu.Code(), emu.LineNo())
		_, err = tty.Read(key)
		fmt.Fprintln(w)
		if err != nil {
			return
		}

		switch key[0] {
		case 'q':
			err = errQuit
			return
		case 'c':
			return emu.Run()
		case 'r':
			fmt.Fprint(w, emu.Cpu.String())
			continue
		}

		var done bool
		done, err = emu.Tick()
		if err != nil || done {
			return
		}
	}
}

func init() {
	runCmd.Flags().StringVar(&runFormat, "format", "auto", "Program image input format: auto, hex, bin or cbor")
	runCmd.Flags().BoolVar(&runSource, "source", false, "Assemble the file before running it")
	runCmd.Flags().BoolVar(&runStep, "step", false, "Single step on key press ('q' quits, 'c' continues, 'r' shows registers)")
	runCmd.Flags().String("trace", "", "Record every step to a SQLite database")
	runCmd.Flags().Int("tick-limit", 0, "Stop after this many instructions, 0 is unlimited")
	rootCmd.AddCommand(runCmd)
}
