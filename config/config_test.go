package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeConfig(t *testing.T, text string) string {
	path := filepath.Join(t.TempDir(), "riscy.toml")
	err := os.WriteFile(path, []byte(text), 0o644)
	if err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	assert := assert.New(t)

	cfg := Default()
	assert.False(cfg.Verbose)
	assert.Equal("hex", cfg.Format)
	assert.Equal(LABELS_LINE, cfg.Labels)
	assert.Equal(0, cfg.TickLimit)
	assert.NoError(cfg.Validate())
}

func TestLoad(t *testing.T) {
	assert := assert.New(t)

	path := writeConfig(t, `
verbose = true
format = "bin"
labels = "image"
tick-limit = 5000
trace = "run.db"
`)

	cfg, err := Load(path)
	assert.NoError(err)
	assert.True(cfg.Verbose)
	assert.Equal("bin", cfg.Format)
	assert.Equal(LABELS_IMAGE, cfg.Labels)
	assert.Equal(5000, cfg.TickLimit)
	assert.Equal("run.db", cfg.Trace)
}

func TestLoadPartial(t *testing.T) {
	assert := assert.New(t)

	cfg, err := Load(writeConfig(t, "verbose = true\n"))
	assert.NoError(err)
	assert.True(cfg.Verbose)
	assert.Equal("hex", cfg.Format)
	assert.Equal(LABELS_LINE, cfg.Labels)
}

func TestLoadErrors(t *testing.T) {
	assert := assert.New(t)

	_, err := Load(writeConfig(t, `labels = "somewhere"`))
	assert.ErrorIs(err, ErrLabelMode)

	_, err = Load(writeConfig(t, `tick-limit = -1`))
	assert.ErrorIs(err, ErrTickLimit)

	_, err = Load(writeConfig(t, `colour = "blue"`))
	assert.ErrorIs(err, ErrUndecoded)

	_, err = Load(writeConfig(t, `verbose = `))
	assert.Error(err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(err)
}
