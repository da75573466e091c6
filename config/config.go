// Package config holds the settings shared by the riscy assembler, virtual
// machine and command line, and loads them from riscy.toml files.
package config

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/ezrec/riscy/translate"
)

var f = translate.From

var (
	ErrLabelMode = errors.New(f("label mode invalid"))
	ErrTickLimit = errors.New(f("tick limit negative"))
	ErrUndecoded = errors.New(f("unknown configuration key"))
)

// LabelMode selects how the assembler assigns addresses to labels.
type LabelMode string

const (
	// LABELS_LINE assigns each label the zero-based index of its source line.
	LABELS_LINE = LabelMode("line")
	// LABELS_IMAGE assigns each label the VM memory address its word is
	// loaded at, and makes beq label targets pc-relative.
	LABELS_IMAGE = LabelMode("image")
)

// Config is the explicit configuration passed into the assembler, the
// emulator and the command line.
type Config struct {
	Verbose   bool      `toml:"verbose"`    // If set, verbosely logs assembler and VM actions.
	Locale    string    `toml:"locale"`     // BCP 47 tag overriding the detected locale.
	Format    string    `toml:"format"`     // Program image format written by asm; readers detect it.
	Labels    LabelMode `toml:"labels"`     // Label addressing mode.
	TickLimit int       `toml:"tick-limit"` // Maximum VM cycles per run, 0 is unlimited.
	Trace     string    `toml:"trace"`      // Trace database path, empty disables tracing.
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Format: "hex",
		Labels: LABELS_LINE,
	}
}

// Validate checks the configuration for values no component can use.
func (cfg Config) Validate() (err error) {
	switch cfg.Labels {
	case LABELS_LINE, LABELS_IMAGE:
	default:
		err = fmt.Errorf("%w: %q", ErrLabelMode, string(cfg.Labels))
		return
	}

	if cfg.TickLimit < 0 {
		err = ErrTickLimit
		return
	}

	return
}

// Load decodes a TOML file over the default configuration.
func Load(path string) (cfg Config, err error) {
	cfg = Default()

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		err = fmt.Errorf("%v: %w", path, err)
		return
	}

	if undecoded := md.Undecoded(); len(undecoded) != 0 {
		err = fmt.Errorf("%v: %w: %v", path, ErrUndecoded, undecoded[0])
		return
	}

	err = cfg.Validate()
	if err != nil {
		err = fmt.Errorf("%v: %w", path, err)
	}

	return
}
