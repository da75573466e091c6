package main

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/bradleyjkemp/memviz"
	"github.com/spf13/cobra"

	"github.com/ezrec/riscy/config"
	"github.com/ezrec/riscy/image"
)

var (
	asmOutput string
	asmGraph  string
)

// asmCmd represents the asm command
var asmCmd = &cobra.Command{
	Use:   "asm sourceFile",
	Short: "Assemble a source file into a program image",
	Long: `Asm assembles a riscy source file, '-' for stdin, into a program
image of the form [data_size] data [text_size] text.

The image is written in the hex format (one 0x%04x word per line) unless
--format selects bin or cbor.
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		if cmd.Flags().Changed("labels") {
			cfg.Labels = config.LabelMode(cmd.Flag("labels").Value.String())
		}
		if cmd.Flags().Changed("format") {
			cfg.Format = cmd.Flag("format").Value.String()
		}
		err = cfg.Validate()
		if err != nil {
			return
		}

		format, err := image.ParseFormat(cfg.Format)
		if err != nil {
			return
		}

		prog, err := assemble(cmd, args[0])
		if err != nil {
			return
		}

		img, err := prog.Image()
		if err != nil {
			return
		}

		buf := &bytes.Buffer{}
		err = image.Write(buf, img, format)
		if err != nil {
			return
		}

		if len(asmOutput) == 0 || asmOutput == "-" {
			_, err = cmd.OutOrStdout().Write(buf.Bytes())
		} else {
			err = writeFile(asmOutput, buf.Bytes())
		}
		if err != nil {
			return
		}

		if len(asmGraph) != 0 {
			graph := &bytes.Buffer{}
			memviz.Map(graph, prog)
			err = writeFile(asmGraph, graph.Bytes())
		}

		return
	},
}

// writeFile replaces a file with data, so that a failed write never leaves
// a partial file behind.
func writeFile(path string, data []byte) (err error) {
	file, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return
	}
	defer func() {
		if err != nil {
			os.Remove(file.Name())
		}
	}()

	_, err = file.Write(data)
	if err == nil {
		err = file.Chmod(0o644)
	}
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return
	}

	err = os.Rename(file.Name(), path)
	return
}

func init() {
	asmCmd.Flags().StringVarP(&asmOutput, "output", "o", "-", "Program image output file")
	asmCmd.Flags().String("format", "hex", "Program image output format: hex, bin or cbor (config 'format')")
	asmCmd.Flags().String("labels", string(config.LABELS_LINE), "Label addressing: line or image")
	asmCmd.Flags().StringVar(&asmGraph, "graph", "", "Write a graphviz dot file of the assembled program")
	rootCmd.AddCommand(asmCmd)
}
