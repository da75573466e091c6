package cpu

import (
	"errors"
	"maps"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSymbolTable(t *testing.T) {
	assert := assert.New(t)

	st := SymbolTable{}
	assert.Equal(0, st.Len())
	assert.NoError(st.Insert("start", 3))
	assert.NoError(st.Insert("end", 0xffff))
	assert.ErrorIs(st.Insert("start", 4), ErrLabelDuplicate)

	address, err := st.Lookup("start")
	assert.NoError(err)
	assert.Equal(uint16(3), address)

	_, err = st.Lookup("middle")
	assert.ErrorIs(err, ErrLabel)
	var missing ErrLabelMissing
	assert.True(errors.As(err, &missing))
	assert.Equal(ErrLabelMissing("middle"), missing)

	assert.True(st.Contains("end"))
	assert.False(st.Contains("middle"))
	assert.Equal(2, st.Len())

	names := []string{}
	for name := range st.All() {
		names = append(names, name)
	}
	assert.Equal([]string{"end", "start"}, names)
	assert.Equal(map[string]uint16{"end": 0xffff, "start": 3}, maps.Collect(st.All()))
}
