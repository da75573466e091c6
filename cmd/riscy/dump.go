package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ezrec/riscy/cpu"
	"github.com/ezrec/riscy/image"
)

var (
	dumpFormat  string
	dumpSource  bool
	dumpSymbols bool
)

// dumpCmd represents the dump command
var dumpCmd = &cobra.Command{
	Use:   "dump imageFile",
	Short: "Disassemble a program image",
	Long: `Dump lists the data segment and disassembles the text segment of a
program image, at the addresses they are loaded at.

With --source the file is assembled first, and --symbols adds the label
table.
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		if dumpSymbols && !dumpSource {
			err = fmt.Errorf("--symbols requires --source")
			return
		}

		prog, img, err := load(cmd, args[0], dumpSource, dumpFormat)
		if err != nil {
			return
		}

		out := cmd.OutOrStdout()

		if dumpSymbols {
			for name, address := range prog.Symbols.All() {
				fmt.Fprintf(out, "%-16s 0x%04x\n", name+":", address)
			}
		}

		fmt.Fprintf(out, "0x%04x: 0x%04x .data %d\n", 0, img.DataSize(), img.DataSize())
		for n, word := range img.Data {
			fmt.Fprintf(out, "0x%04x: 0x%04x .fill %d\n", image.DATA_START+n, word, word)
		}

		fmt.Fprintf(out, "0x%04x: 0x%04x .text %d\n", img.TextHeader(), img.TextSize(), img.TextSize())
		for n, word := range img.Text {
			fmt.Fprintf(out, "0x%04x: 0x%04x %v\n", img.TextStart()+n, word, cpu.Code(word))
		}

		return
	},
}

func init() {
	dumpCmd.Flags().StringVar(&dumpFormat, "format", "auto", "Program image input format: auto, hex, bin or cbor")
	dumpCmd.Flags().BoolVar(&dumpSource, "source", false, "Assemble the file before dumping it")
	dumpCmd.Flags().BoolVar(&dumpSymbols, "symbols", false, "List the labels")
	rootCmd.AddCommand(dumpCmd)
}
