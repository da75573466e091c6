package image

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImageLayout(t *testing.T) {
	assert := assert.New(t)

	img, err := New([]uint16{5, 6}, []uint16{0x0400, 0x2481, 0xe000})
	assert.NoError(err)

	assert.Equal(uint16(2), img.DataSize())
	assert.Equal(uint16(3), img.TextSize())
	assert.Equal(3, img.TextHeader())
	assert.Equal(4, img.TextStart())
	assert.Equal(7, img.End())
	assert.Equal(7, img.Len())
	assert.Equal([]uint16{2, 5, 6, 3, 0x0400, 0x2481, 0xe000}, img.Slice())
}

func TestImageEmptySegments(t *testing.T) {
	assert := assert.New(t)

	img, err := New(nil, nil)
	assert.NoError(err)
	assert.Equal([]uint16{0, 0}, img.Slice())
	assert.Equal(2, img.TextStart())
	assert.Equal(img.TextStart(), img.End())
}

func TestImageTooLarge(t *testing.T) {
	assert := assert.New(t)

	_, err := New(make([]uint16, MEMORY_SIZE-2), nil)
	assert.NoError(err)

	_, err = New(make([]uint16, MEMORY_SIZE-2), []uint16{0})
	assert.ErrorIs(err, ErrImageTooLarge)

	_, err = FromWords(make([]uint16, MEMORY_SIZE+1))
	assert.ErrorIs(err, ErrImageTooLarge)
}

func TestFromWords(t *testing.T) {
	assert := assert.New(t)

	img, err := FromWords([]uint16{1, 5, 1, 0x0400})
	assert.NoError(err)
	assert.Equal([]uint16{5}, img.Data)
	assert.Equal([]uint16{0x0400}, img.Text)

	table := []struct {
		words []uint16
		err   error
	}{
		{nil, ErrImageEmpty},
		{[]uint16{0}, ErrImageTruncated},
		{[]uint16{3, 1, 2}, ErrImageTruncated},
		{[]uint16{0, 2, 0x0400}, ErrImageTruncated},
		{[]uint16{0, 1, 0x0400, 0x0400}, ErrImageTrailing},
	}

	for _, entry := range table {
		_, err := FromWords(entry.words)
		assert.ErrorIs(err, entry.err, "%v", entry.words)
	}
}
