package cpu

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	assert := assert.New(t)

	source := strings.Join([]string{
		"# header",
		"start: add r1, r0, r0   # clear",
		"",
		"   \t",
		"\taddi r1, r1, 1\r",
		"#",
		".fill 5",
	}, "\n")

	lines, err := Clean(strings.NewReader(source))
	assert.NoError(err)
	assert.Equal([]Line{
		{LineNo: 2, Text: "start: add r1, r0, r0"},
		{LineNo: 5, Text: "\taddi r1, r1, 1"},
		{LineNo: 7, Text: ".fill 5"},
	}, lines)

	lines, err = Clean(strings.NewReader(""))
	assert.NoError(err)
	assert.Empty(lines)
}
