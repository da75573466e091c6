package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	assert := assert.New(t)

	SetLanguage("en-US")
	assert.Equal("line 3 'x'", From("line %d '%v'", 3, "x"))
	assert.Equal("label loop missing", From("label %v missing", "loop"))
}

func TestSetLanguage(t *testing.T) {
	assert := assert.New(t)

	assert.NotPanics(func() { SetLanguage() })
	before := Language()

	SetLanguage("en-US")
	assert.Equal(before, Language())
}
