// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/ezrec/riscy/config"
	"github.com/ezrec/riscy/cpu"
	"github.com/ezrec/riscy/image"
	"github.com/ezrec/riscy/translate"
)

var (
	configPath string
	verbosity  int
	cfg        = config.Default()
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "riscy",
	Short: "Assembler and virtual machine for the riscy 16-bit instruction set",
	Long: `Riscy assembles programs for a small eight register, 16-bit word
addressed machine, and runs the resulting program images.

Settings may be read from a TOML file with --config; command line flags
override the file.
`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "TOML configuration file")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Verbose mode (repeat for more)")
}

// loadConfig reads the configuration file, and sets up logging and the
// message language.
func loadConfig(cmd *cobra.Command, args []string) (err error) {
	if len(configPath) != 0 {
		cfg, err = config.Load(configPath)
		if err != nil {
			return
		}
	}

	if verbosity > 0 {
		cfg.Verbose = true
	}
	commonlog.Configure(verbosity, nil)

	if len(cfg.Locale) != 0 {
		translate.SetLanguage(cfg.Locale)
	}

	return
}

// openInput opens a file for reading, with "-" as stdin.
func openInput(cmd *cobra.Command, path string) (r io.ReadCloser, err error) {
	if path == "-" {
		r = io.NopCloser(cmd.InOrStdin())
		return
	}

	return os.Open(path)
}

// assemble parses an assembler source file.
func assemble(cmd *cobra.Command, path string) (prog *cpu.Program, err error) {
	inf, err := openInput(cmd, path)
	if err != nil {
		return
	}
	defer inf.Close()

	asm := &cpu.Assembler{Config: cfg}
	prog, err = asm.Parse(inf)
	if err != nil {
		err = fmt.Errorf("%v: %w", path, err)
	}

	return
}

// loadImage reads a program image file. The format is detected unless
// named.
func loadImage(cmd *cobra.Command, path string, name string) (img *image.Image, err error) {
	format, err := image.ParseFormat(name)
	if err != nil {
		return
	}

	inf, err := openInput(cmd, path)
	if err != nil {
		return
	}
	defer inf.Close()

	img, err = image.Read(inf, format)
	if err != nil {
		err = fmt.Errorf("%v: %w", path, err)
	}

	return
}

// load reads either an assembler source file, or a program image file.
func load(cmd *cobra.Command, path string, source bool, format string) (prog *cpu.Program, img *image.Image, err error) {
	if !source {
		img, err = loadImage(cmd, path, format)
		return
	}

	prog, err = assemble(cmd, path)
	if err != nil {
		return
	}

	img, err = prog.Image()
	return
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
